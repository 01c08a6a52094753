package surrender

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdown(t *testing.T) {
	assert := assert.New(t)

	t.Run("elapsed", func(t *testing.T) {
		start := time.Now()
		assert.True(countdown(context.Background(), 50*time.Millisecond))
		assert.GreaterOrEqual(time.Since(start), 50*time.Millisecond)
	})

	t.Run("zero", func(t *testing.T) {
		assert.True(countdown(context.Background(), 0))
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()
		start := time.Now()
		assert.False(countdown(ctx, time.Minute))
		assert.Less(time.Since(start), time.Minute)
	})
}

func TestScheduleEndRound(t *testing.T) {
	t.Run("fires_once", func(t *testing.T) {
		ts := newTestSetup(t, testSettings(), 1)
		ts.s.scheduleEndRound(winningTeamID, 10*time.Millisecond)
		ts.assert.Eventually(func() bool {
			return len(ts.host.endRounds()) == 1
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("survives_round_reset", func(t *testing.T) {
		ts := newTestSetup(t, testSettings(), 1)
		ts.s.scheduleEndRound(winningTeamID, 50*time.Millisecond)
		ts.s.OnRoundOver(winningTeamID)
		ts.s.Disable()
		ts.assert.Eventually(func() bool {
			return len(ts.host.endRounds()) == 1
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("aborted_by_close", func(t *testing.T) {
		ts := newTestSetup(t, testSettings(), 1)
		ts.s.scheduleEndRound(winningTeamID, time.Minute)
		ts.s.Close()
		ts.assert.Empty(ts.host.endRounds())
	})
}
