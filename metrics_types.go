package surrender

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds Prometheus metrics for monitoring the surrender controller.
type metrics struct {
	// id is the controller ID used as a label for the metrics
	id string

	// idle is a gauge that indicates the current vote state
	idle *prometheus.GaugeVec

	// voting is a gauge that indicates the current vote state
	voting *prometheus.GaugeVec

	// votesStarted is a counter of votes started
	votesStarted *prometheus.CounterVec

	// votesCast is a counter of accepted votes, including the first one
	votesCast *prometheus.CounterVec

	// votesResolved is a counter of votes resolution by outcome
	votesResolved *prometheus.CounterVec

	// eligibilityRejected is a counter of refused surrender attempts by reason
	eligibilityRejected *prometheus.CounterVec

	// voteDuration is an histogram that indicates how long votes lasted
	voteDuration *prometheus.HistogramVec
}
