package surrender

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// newMetrics initialize Prometheus metrics for monitoring the controller.
// Collectors already registered by another controller are reused
func newMetrics(id, namespace string, registerer prometheus.Registerer) *metrics {
	z := &metrics{
		id: id,
		idle: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "surrender",
				Name:      "state_idle",
				Help:      "Indicates current vote state",
			},
			[]string{"id"},
		),
		voting: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "surrender",
				Name:      "state_voting",
				Help:      "Indicates current vote state",
			},
			[]string{"id"},
		),
		votesStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "surrender",
				Name:      "votes_started_total",
				Help:      "Indicates how many surrender votes started",
			},
			[]string{"id"},
		),
		votesCast: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "surrender",
				Name:      "votes_cast_total",
				Help:      "Indicates how many votes were accepted",
			},
			[]string{"id"},
		),
		votesResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "surrender",
				Name:      "votes_resolved_total",
				Help:      "Indicates how many surrender votes ended by outcome",
			},
			[]string{"id", "outcome"},
		),
		eligibilityRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "surrender",
				Name:      "eligibility_rejected_total",
				Help:      "Indicates how many surrender requests were refused by reason",
			},
			[]string{"id", "reason"},
		),
		voteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "surrender",
			Name:      "vote_duration_seconds",
			Help:      "Indicates how much time votes lasted before being resolved",
			Buckets:   []float64{5, 15, 30, 60, 90, 120, 180, 300},
		},
			[]string{"id", "outcome"},
		),
	}

	if registerer != nil {
		z.idle = registerOrReuse(registerer, z.idle)
		z.voting = registerOrReuse(registerer, z.voting)
		z.votesStarted = registerOrReuse(registerer, z.votesStarted)
		z.votesCast = registerOrReuse(registerer, z.votesCast)
		z.votesResolved = registerOrReuse(registerer, z.votesResolved)
		z.eligibilityRejected = registerOrReuse(registerer, z.eligibilityRejected)
		z.voteDuration = registerOrReuse(registerer, z.voteDuration)
	}
	z.setVoteStateGauge(Idle)
	return z
}

// registerOrReuse registers c or returns the collector
// previously registered under the same descriptor
func registerOrReuse[T prometheus.Collector](registerer prometheus.Registerer, c T) T {
	if err := registerer.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

// setVoteStateGauge will set the current vote gauge state with the provided value
func (m *metrics) setVoteStateGauge(state VoteState) {
	// Always reset the default values
	m.idle.With(prometheus.Labels{"id": m.id}).Set(0)
	m.voting.With(prometheus.Labels{"id": m.id}).Set(0)

	if state == Voting {
		m.voting.With(prometheus.Labels{"id": m.id}).Set(1)
		return
	}
	m.idle.With(prometheus.Labels{"id": m.id}).Set(1)
}

// voteStarted increments started votes and flips the state gauge
func (m *metrics) voteStarted() {
	m.votesStarted.With(prometheus.Labels{"id": m.id}).Inc()
	m.setVoteStateGauge(Voting)
}

// voteCast increments accepted votes
func (m *metrics) voteCast() {
	m.votesCast.With(prometheus.Labels{"id": m.id}).Inc()
}

// rejected increments refused surrender requests
func (m *metrics) rejected(reason Eligibility) {
	m.eligibilityRejected.With(prometheus.Labels{"id": m.id, "reason": reason.String()}).Inc()
}

// resolved records how a vote that lasted elapsed ended
func (m *metrics) resolved(outcome Resolution, elapsed time.Duration) {
	labels := prometheus.Labels{"id": m.id, "outcome": outcome.String()}
	m.votesResolved.With(labels).Inc()
	m.voteDuration.With(labels).Observe(float64(elapsed) / float64(time.Second))
	m.setVoteStateGauge(Idle)
}
