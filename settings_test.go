package surrender

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/fake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestRequiredPlaceholders(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(requiredPlaceholders("You've already voted!"))
	assert.Equal([]string{"{0}"}, requiredPlaceholders(defaultMessages[MsgTooSoon]))
	assert.Equal([]string{"{0}", "{1}", "{2}"}, requiredPlaceholders(defaultMessages[MsgVotingStats]))
	// a gap stops the scan
	assert.Equal([]string{"{0}"}, requiredPlaceholders("{0} {2}"))
}

func TestLookupVariable(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{
		"timeout",
		"Time (in seconds) until surrender expires",
		"Variables|Time (in seconds) until surrender expires",
		" timeout ",
	} {
		v, ok := lookupVariable(name)
		assert.True(ok, name)
		assert.Equal("timeout", v.key)
	}

	for _, name := range []string{"Timeout", "time", "Messages|Time (in seconds) until surrender expires", ""} {
		_, ok := lookupVariable(name)
		assert.False(ok, name)
	}
}

func TestSetVariable(t *testing.T) {
	ts := newTestSetup(t, testSettings(), 1)
	assert := ts.assert

	t.Run("int", func(t *testing.T) {
		assert.Nil(ts.s.SetVariable("min_players", "8"))
		assert.Equal(8, ts.s.Settings().MinPlayers)
	})

	t.Run("int_invalid", func(t *testing.T) {
		assert.ErrorIs(ts.s.SetVariable("min_players", "eight"), ErrInvalidValue)
		assert.ErrorIs(ts.s.SetVariable("timeout", "0"), ErrInvalidValue)
		assert.ErrorIs(ts.s.SetVariable("percent_vote", "101"), ErrInvalidValue)
		assert.ErrorIs(ts.s.SetVariable("time_to_vote", "-5"), ErrInvalidValue)
		settings := ts.s.Settings()
		assert.Equal(8, settings.MinPlayers)
		assert.Equal(180, settings.Timeout)
		assert.Equal(30, settings.PercentVote)
		assert.Equal(300, settings.TimeToVote)
	})

	t.Run("bool", func(t *testing.T) {
		assert.Nil(ts.s.SetVariable("Variables|Debug mode", "true"))
		assert.True(ts.s.Settings().DebugMode)
		assert.ErrorIs(ts.s.SetVariable("debug_mode", "maybe"), ErrInvalidValue)
		assert.True(ts.s.Settings().DebugMode)
	})

	t.Run("description", func(t *testing.T) {
		assert.Nil(ts.s.SetVariable("Percent of team required to vote", "50"))
		assert.Equal(50, ts.s.Settings().PercentVote)
	})

	t.Run("template", func(t *testing.T) {
		assert.Nil(ts.s.SetVariable("surrender_voting_stats", "{0} of {1} votes, {2} remaining"))
		assert.Equal("{0} of {1} votes, {2} remaining", ts.s.Settings().message(MsgVotingStats))

		assert.ErrorIs(ts.s.SetVariable("surrender_voting_stats", "{0} of {1} votes"), ErrMissingPlaceholder)
		assert.Equal("{0} of {1} votes, {2} remaining", ts.s.Settings().message(MsgVotingStats))

		assert.Nil(ts.s.SetVariable("already_voted", ""))
		assert.Equal("", ts.s.Settings().message(MsgAlreadyVoted))
	})

	t.Run("unknown", func(t *testing.T) {
		assert.ErrorIs(ts.s.SetVariable("max_players", "10"), ErrUnknownVariable)
	})
}

// brokenStore fails every write
type brokenStore struct{}

func (brokenStore) Close() error { return nil }

func (brokenStore) SetSetting(key, value string) error { return errors.New("disk full") }

func (brokenStore) GetSettings() (map[string]string, error) { return nil, nil }

func TestSetVariablePersistFailure(t *testing.T) {
	assert := assert.New(t)

	s, err := NewSurrender(&fakeHost{}, Options{SettingsStore: brokenStore{}, Registerer: prometheus.NewRegistry()})
	assert.Nil(err)
	defer s.Close()

	assert.Error(s.SetVariable("timeout", "60"))
	assert.Error(s.SetVariable("already_voted", "Again?"))
	assert.ErrorIs(s.SetVariable("timeout", "0"), ErrInvalidValue)

	settings := s.Settings()
	assert.Equal(180, settings.Timeout)
	assert.Equal(defaultMessages[MsgAlreadyVoted], settings.message(MsgAlreadyVoted))
}

func TestVariables(t *testing.T) {
	ts := newTestSetup(t, testSettings(), 1)
	assert := ts.assert

	assert.Nil(ts.s.SetVariable("timeout", "60"))
	list := ts.s.Variables()
	assert.Len(list, len(variables))

	assert.Equal("time_to_vote", list[0].Key)
	assert.Equal("voting_failed", list[len(list)-1].Key)

	timeout := list[1]
	assert.Equal("timeout", timeout.Key)
	assert.Equal(sectionVariables, timeout.Section)
	assert.Equal(KindInt, timeout.Kind)
	assert.Equal("60", timeout.Value)
	assert.Equal("180", timeout.Default)

	// testSettings overrides the end round delay
	delay := list[8]
	assert.Equal("delay_endround", delay.Key)
	assert.Equal("0", delay.Value)
	assert.Equal("5", delay.Default)

	sayToAll := list[9]
	assert.Equal(KindBool, sayToAll.Kind)
	assert.Equal("false", sayToAll.Value)

	noVoting := list[len(list)-2]
	assert.Equal(sectionMessages, noVoting.Section)
	assert.Equal(KindString, noVoting.Kind)
	assert.Equal(defaultMessages[MsgNoSurrenderVoting], noVoting.Value)
}

func TestSettingsPersistence(t *testing.T) {
	assert := assert.New(t)

	boltOptions := BoltOptions{
		DataDir: filepath.Join(os.TempDir(), "surrender_test", fake.CharactersN(5), "settings_persistence"),
	}
	defer func() {
		assert.Nil(os.RemoveAll(boltOptions.DataDir))
	}()

	store, err := NewBoltStorage(boltOptions)
	assert.Nil(err)

	s, err := NewSurrender(&fakeHost{}, Options{SettingsStore: store, Registerer: prometheus.NewRegistry()})
	assert.Nil(err)
	assert.Nil(s.SetVariable("Time (in seconds) until surrender available", "120"))
	assert.Nil(s.SetVariable("too_soon", "Wait {0} more"))
	assert.Error(s.SetVariable("timeout", "0"))
	s.Close()

	stored, err := store.GetSettings()
	assert.Nil(err)
	assert.Equal(map[string]string{"time_to_vote": "120", "too_soon": "Wait {0} more"}, stored)

	// values that do not validate anymore are skipped
	assert.Nil(store.SetSetting("percent_vote", "250"))
	assert.Nil(store.SetSetting("removed_variable", "1"))

	s, err = NewSurrender(&fakeHost{}, Options{SettingsStore: store, Registerer: prometheus.NewRegistry()})
	assert.Nil(err)
	settings := s.Settings()
	assert.Equal(120, settings.TimeToVote)
	assert.Equal(30, settings.PercentVote)
	assert.Equal("Wait {0} more", settings.message(MsgTooSoon))
	s.Close()

	assert.Nil(store.Close())
	_, err = NewSurrender(&fakeHost{}, Options{SettingsStore: store, Registerer: prometheus.NewRegistry()})
	assert.Error(err)
}
