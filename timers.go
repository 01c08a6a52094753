package surrender

import (
	"context"
	"time"
)

// countdown blocks until d has elapsed on the wall clock.
// The remaining time is measured again after every wake up
// so an early return of the underlying wait never shortens it.
// It returns false when ctx is done first
func countdown(ctx context.Context, d time.Duration) bool {
	deadline := time.Now().Add(d)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return true
		}
		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}

// startTimeout arms the timeout scheduler of the vote identified by generation.
// r.mu must be held
func (r *Surrender) startTimeout(ctx context.Context, generation uint64, d time.Duration) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if !countdown(ctx, d) {
			return
		}
		r.timeoutVote(generation)
	}()
}

// timeoutVote fails the vote identified by generation.
// It does nothing when that vote is not the active one anymore
func (r *Surrender) timeoutVote(generation uint64) {
	defer r.recoverHandler("timeoutVote")
	r.mu.Lock()
	defer r.mu.Unlock()

	vote := r.vote
	if !r.enabled || vote == nil || vote.generation != generation {
		r.debug().Uint64("generation", generation).Msgf("Stale surrender timeout ignored")
		return
	}

	r.say(ToTeam(vote.teamID), formatMessage(vote.settings.message(MsgVotingFailed), len(vote.voters), vote.votesNeeded))
	r.Logger.Info().
		Str("voteId", vote.id).
		Int("teamId", vote.teamID).
		Int("votes", len(vote.voters)).
		Int("votesNeeded", vote.votesNeeded).
		Msgf("Surrender voting failed! %d/%d votes were cast", len(vote.voters), vote.votesNeeded)
	r.clearVote(TimedOut)
}

// scheduleEndRound ends the round with winningTeamID after d.
// It does not take the lock and fires once whatever happens to votes afterwards.
// Only Close aborts it
func (r *Surrender) scheduleEndRound(winningTeamID int, d time.Duration) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.recoverHandler("endRound")
		if !countdown(r.ctx, d) {
			r.Logger.Warn().Int("winningTeamId", winningTeamID).Msgf("End round aborted by shutdown")
			return
		}
		if err := r.host.EndRound(winningTeamID); err != nil {
			r.Logger.Error().Err(err).
				Int("winningTeamId", winningTeamID).
				Msgf("Fail to end round")
			return
		}
		r.Logger.Info().Int("winningTeamId", winningTeamID).Msgf("Round ended by surrender")
	}()
}
