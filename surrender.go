package surrender

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Lord-Y/surrender/logger"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// NewSurrender returns a disabled controller sending its side effects to host.
// Call Enable to start processing chat events
func NewSurrender(host Host, options Options) (*Surrender, error) {
	if host == nil {
		return nil, ErrHostRequired
	}
	if options.Logger == nil {
		options.Logger = logger.NewLogger()
	}
	if options.ID == "" {
		options.ID = uuid.NewString()
	}
	settings := DefaultSettings()
	if options.Settings != nil {
		settings = options.Settings.clone()
	}
	if len(options.GameModes) == 0 {
		options.GameModes = []string{defaultGameMode}
	}
	if options.Registerer == nil {
		options.Registerer = prometheus.DefaultRegisterer
	}
	if options.clock == nil {
		options.clock = time.Now
	}

	l := options.Logger.With().Str("logProvider", "surrender").Str("id", options.ID).Logger()
	ctx, cancel := context.WithCancel(context.Background())
	r := &Surrender{
		Logger:   &l,
		options:  options,
		host:     host,
		roster:   NewRoster(),
		settings: settings,
		round:    RoundContext{StartTicketCount: unsetTicketCount},
		metrics:  newMetrics(options.ID, options.MetricsNamespacePrefix, options.Registerer),
		ctx:      ctx,
		cancel:   cancel,
	}

	if err := r.restoreSettings(); err != nil {
		cancel()
		return nil, err
	}
	return r, nil
}

// restoreSettings applies values persisted in the settings store.
// Values that do not validate anymore are skipped
func (r *Surrender) restoreSettings() error {
	if r.options.SettingsStore == nil {
		return nil
	}
	stored, err := r.options.SettingsStore.GetSettings()
	if err != nil {
		return fmt.Errorf("fail to restore settings: %w", err)
	}
	for key, value := range stored {
		v, ok := lookupVariable(key)
		if !ok {
			r.Logger.Warn().Err(ErrUnknownVariable).
				Str("variable", key).
				Msgf("Skipping stored variable")
			continue
		}
		_ = r.applyVariable(v, value)
	}
	return nil
}

// Enable starts processing chat events
func (r *Surrender) Enable() {
	defer r.recoverHandler("Enable")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.enabled = true
	r.clearVote(Reset)
	r.Logger.Info().Msgf("Surrender Plugin Enabled")
}

// Disable stops processing chat events, cancels any running vote
// and clears the round baseline
func (r *Surrender) Disable() {
	defer r.recoverHandler("Disable")
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = false
	r.resetRoundLocked("disable")
	r.Logger.Info().Msgf("Surrender Plugin Disabled")
}

// Close disables the controller, aborts every scheduler
// including a pending end round and waits for them to return.
// The settings store is left open
func (r *Surrender) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.enabled = false
	r.clearVote(Reset)
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}

// Roster returns the player roster fed by player events
func (r *Surrender) Roster() *Roster {
	return r.roster
}

// Status returns a snapshot of the controller
func (r *Surrender) Status() StatusReport {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := StatusReport{
		Enabled:          r.enabled,
		State:            Idle,
		TeamID:           -1,
		StartTicketCount: r.round.StartTicketCount,
	}
	if v := r.vote; v != nil {
		report.State = Voting
		report.VoteID = v.id
		report.TeamID = v.teamID
		report.Votes = len(v.voters)
		report.VotesNeeded = v.votesNeeded
		report.TimeLeft = max(0, time.Duration(v.settings.Timeout)*time.Second-r.now().Sub(v.startedAt))
	}
	return report
}

// now returns the current time
func (r *Surrender) now() time.Time {
	return r.options.clock()
}

// debug returns a debug event when debug mode is enabled.
// A nil event is a no-op for zerolog. r.mu must be held
func (r *Surrender) debug() *zerolog.Event {
	if !r.settings.DebugMode {
		return nil
	}
	return r.Logger.Debug()
}

// isEligibleGameMode reports if gameMode allows surrender
func (r *Surrender) isEligibleGameMode(gameMode string) bool {
	gameMode = strings.ToLower(gameMode)
	for _, mode := range r.options.GameModes {
		if strings.Contains(gameMode, strings.ToLower(mode)) {
			return true
		}
	}
	return false
}

// recoverHandler logs a panic raised by an event handler
// so it never reaches the host process
func (r *Surrender) recoverHandler(handler string) {
	if p := recover(); p != nil {
		r.Logger.Error().
			Str("handler", handler).
			Str("panic", fmt.Sprint(p)).
			Str("stack", string(debug.Stack())).
			Msgf("Recovered from panic in event handler")
	}
}

// say sends message to target and logs failures
func (r *Surrender) say(target Target, message string) {
	r.debug().Str("target", target.String()).Msgf("Saying to %s: %s", target, message)
	if err := r.host.Say(target, message); err != nil {
		r.Logger.Error().Err(err).
			Str("target", target.String()).
			Str("message", message).
			Msgf("Fail to say message")
	}
}

// yell sends message to target for seconds and logs failures.
// Nothing is sent when seconds is not positive
func (r *Surrender) yell(target Target, message string, seconds int) {
	if seconds <= 0 {
		return
	}
	r.debug().Str("target", target.String()).Msgf("Yelling to %s: %s", target, message)
	if err := r.host.Yell(target, message, time.Duration(seconds)*time.Second); err != nil {
		r.Logger.Error().Err(err).
			Str("target", target.String()).
			Str("message", message).
			Msgf("Fail to yell message")
	}
}
