package surrender

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Lord-Y/surrender/logger"
	"github.com/jackc/fake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

const (
	losingTeamID  int = 1
	winningTeamID int = 2
)

// hostCall is a single side effect recorded by fakeHost
type hostCall struct {
	kind          string
	target        Target
	message       string
	duration      time.Duration
	winningTeamID int
}

// fakeHost records every call it receives
type fakeHost struct {
	mu    sync.Mutex
	calls []hostCall
	// panicOnSay makes Say panic to exercise handler recovery
	panicOnSay bool
}

func (h *fakeHost) Say(target Target, message string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panicOnSay {
		panic("say exploded")
	}
	h.calls = append(h.calls, hostCall{kind: "say", target: target, message: message})
	return nil
}

func (h *fakeHost) Yell(target Target, message string, duration time.Duration) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, hostCall{kind: "yell", target: target, message: message, duration: duration})
	return nil
}

func (h *fakeHost) EndRound(winningTeamID int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, hostCall{kind: "endRound", winningTeamID: winningTeamID})
	return nil
}

// filter returns calls of kind
func (h *fakeHost) filter(kind string) (calls []hostCall) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.calls {
		if c.kind == kind {
			calls = append(calls, c)
		}
	}
	return
}

// says returns messages said to target
func (h *fakeHost) says(target Target) (messages []string) {
	for _, c := range h.filter("say") {
		if c.target == target {
			messages = append(messages, c.message)
		}
	}
	return
}

// lastSay returns the last say call
func (h *fakeHost) lastSay() hostCall {
	calls := h.filter("say")
	if len(calls) == 0 {
		return hostCall{}
	}
	return calls[len(calls)-1]
}

// endRounds returns winning team ids of end round calls
func (h *fakeHost) endRounds() (teams []int) {
	for _, c := range h.filter("endRound") {
		teams = append(teams, c.winningTeamID)
	}
	return
}

// fakeClock is a manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testSetup holds everything a controller test needs
type testSetup struct {
	t       *testing.T
	assert  *assert.Assertions
	host    *fakeHost
	clock   *fakeClock
	s       *Surrender
	losers  []string
	winners []string
}

// testSettings returns default settings with a zero end round delay
func testSettings() Settings {
	settings := DefaultSettings()
	settings.EndRoundDelay = 0
	return settings
}

// newTestSetup builds an enabled controller with teamSize players per team.
// Players are registered but no server info has been received yet
func newTestSetup(t *testing.T, settings Settings, teamSize int) *testSetup {
	ts := &testSetup{
		t:      t,
		assert: assert.New(t),
		host:   &fakeHost{},
		clock:  newFakeClock(),
	}
	l := logger.NewLogger().With().Str("logSource", t.Name()).Logger()
	s, err := NewSurrender(ts.host, Options{
		Logger:     &l,
		Settings:   &settings,
		Registerer: prometheus.NewRegistry(),
		clock:      ts.clock.Now,
	})
	ts.assert.Nil(err)
	ts.s = s
	t.Cleanup(s.Close)

	var players []PlayerInfo
	for i := range teamSize {
		loser := fmt.Sprintf("%s_l%d", fake.UserName(), i)
		winner := fmt.Sprintf("%s_w%d", fake.UserName(), i)
		ts.losers = append(ts.losers, loser)
		ts.winners = append(ts.winners, winner)
		players = append(players,
			PlayerInfo{Name: loser, TeamID: losingTeamID, SquadID: 1},
			PlayerInfo{Name: winner, TeamID: winningTeamID, SquadID: 1},
		)
	}
	s.OnListPlayers(players)
	s.Enable()
	return ts
}

// serverInfo returns a conquest server info with the provided scores
func (ts *testSetup) serverInfo(losingScore, winningScore int) ServerInfo {
	return ServerInfo{
		GameMode:    "ConquestLarge0",
		PlayerCount: len(ts.losers) + len(ts.winners),
		TeamScores: []TeamScore{
			{TeamID: losingTeamID, Score: losingScore},
			{TeamID: winningTeamID, Score: winningScore},
		},
	}
}

// readyRound seeds a round starting with 1000 tickets per team,
// lets elapsed pass and refreshes scores to 300 vs 800
func (ts *testSetup) readyRound(elapsed time.Duration) {
	ts.s.OnServerInfo(ts.serverInfo(1000, 1000))
	ts.clock.Advance(elapsed)
	ts.s.OnServerInfo(ts.serverInfo(300, 800))
}

// surrender makes player type /surrender
func (ts *testSetup) surrender(player string) {
	ts.s.OnTeamChat(player, "/surrender", losingTeamID)
}
