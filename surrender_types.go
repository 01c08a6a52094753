package surrender

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	// unsetTicketCount is the sentinel of the round baseline.
	// The next server info refresh will seed the round context
	unsetTicketCount int = -1

	// defaultGameMode is matched against the server game mode
	defaultGameMode string = "conquest"
)

// Options holds config that will be modified by users
type Options struct {
	// Logger expose zerolog so it can be override
	Logger *zerolog.Logger

	// ID identifies this controller in logs and metrics.
	// Default to a random uuid
	ID string

	// Settings are the initial settings.
	// Default to DefaultSettings()
	Settings *Settings

	// SettingsStore persists settings edited with SetVariable.
	// Stored values are applied on top of Settings by NewSurrender
	SettingsStore SettingsStore

	// GameModes holds the game modes allowing surrender.
	// A game mode is eligible when it contains one of them, case insensitive.
	// Default to conquest
	GameModes []string

	// MetricsNamespacePrefix is the namespace to use for all surrender metrics.
	// When set, the full metric name will be `<MetricsNamespacePrefix>_surrender_<metric_name>`.
	// Otherwise it will be `surrender_<metric_name>`.
	MetricsNamespacePrefix string

	// Registerer is where metrics are registered.
	// Default to prometheus.DefaultRegisterer
	Registerer prometheus.Registerer

	// clock is only overridden during unit testing
	clock func() time.Time
}

// ServerInfo is the server state delivered by the host on each refresh
type ServerInfo struct {
	GameMode    string
	PlayerCount int
	TeamScores  []TeamScore
}

// Surrender is the surrender vote controller
type Surrender struct {
	// wg tracks scheduler goroutines
	wg sync.WaitGroup

	// mu is the single exclusive lock covering every field below
	mu sync.Mutex

	// Logger expose zerolog so it can be override
	Logger *zerolog.Logger

	// options are configuration options
	options Options

	// host receives all side effects
	host Host

	// roster maps players to their team
	roster *Roster

	// settings are the live settings, a vote uses its own snapshot
	settings Settings

	// enabled reports if the plugin is enabled
	enabled bool

	// closed is set by Close, the controller cannot be enabled anymore
	closed bool

	// serverInfo is the last server info received
	serverInfo *ServerInfo

	// round is the current round context.
	// StartTicketCount is unsetTicketCount until seeded
	round RoundContext

	// vote is the active vote, nil when Idle
	vote *voteRecord

	// generation is incremented each time a vote starts
	generation uint64

	// metrics holds prometheus metrics
	metrics *metrics

	// ctx is cancelled by Close and aborts every scheduler
	ctx    context.Context
	cancel context.CancelFunc
}

// voteRecord exists only while a vote is active
type voteRecord struct {
	// id correlates log lines of the same vote
	id string

	// generation is the token the timeout scheduler checks before firing
	generation uint64

	// teamID is the surrendering team
	teamID int

	// startedAt is when the vote started
	startedAt time.Time

	// voters holds the players who voted
	voters map[string]struct{}

	// votesNeeded is computed once at vote start
	votesNeeded int

	// settings is the snapshot taken at vote start
	settings Settings

	// cancel releases the timeout scheduler goroutine
	cancel context.CancelFunc
}

// StatusReport is a read only snapshot of the controller
type StatusReport struct {
	// Enabled reports if the plugin is enabled
	Enabled bool

	// State is the current vote state
	State VoteState

	// VoteID identifies the active vote
	VoteID string

	// TeamID is the surrendering team, -1 when Idle
	TeamID int

	// Votes is the number of distinct voters
	Votes int

	// VotesNeeded is the quota of the active vote
	VotesNeeded int

	// TimeLeft is the remaining time before the vote times out
	TimeLeft time.Duration

	// StartTicketCount is the round baseline, -1 when unset
	StartTicketCount int
}
