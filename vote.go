package surrender

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// computeVotesNeeded returns the quota of a team of teamSize players.
// It is never lower than 1
func computeVotesNeeded(percentVote, teamSize int) int {
	return max(1, int(math.Round(float64(percentVote*teamSize)/100)))
}

// roundContext returns the round baseline merged with
// the last server info. r.mu must be held
func (r *Surrender) roundContext() RoundContext {
	rc := r.round
	if r.serverInfo != nil {
		rc.PlayerCount = r.serverInfo.PlayerCount
		rc.TeamScores = r.serverInfo.TeamScores
	}
	return rc
}

// timeLeft returns the remaining seconds of vote
func (r *Surrender) timeLeft(vote *voteRecord) int {
	return vote.settings.Timeout - int(r.now().Sub(vote.startedAt)/time.Second)
}

// formatTimeLeft renders the remaining time of vote
func (r *Surrender) formatTimeLeft(vote *voteRecord) string {
	left := r.timeLeft(vote)
	if left < 0 {
		r.Logger.Error().Str("voteId", vote.id).Int("timeLeft", left).Msgf("formatTime: seconds is negative")
	}
	return formatTime(left)
}

// handleSurrender processes a surrender request from speaker.
// r.mu must be held
func (r *Surrender) handleSurrender(speaker string) {
	r.debug().Str("speaker", speaker).Msgf("Player '%s' has typed /surrender", speaker)

	if !r.round.IsEligibleGameMode {
		r.reject(speaker, WrongGameMode)
		return
	}

	if r.serverInfo == nil {
		r.Logger.Error().Err(ErrNoServerInfo).Str("speaker", speaker).Msgf("Dropping surrender request")
		return
	}

	if r.round.StartTicketCount == unsetTicketCount {
		r.Logger.Error().Err(ErrNoTicketBaseline).Str("speaker", speaker).Msgf("Dropping surrender request")
		return
	}

	if r.vote != nil && r.reconcile() {
		return
	}

	player, ok := r.roster.Get(speaker)
	if !ok {
		r.Logger.Warn().Err(ErrPlayerNotFound).Str("speaker", speaker).Msgf("Dropping surrender request")
		return
	}

	r.debug().
		Str("speaker", speaker).
		Int("teamId", player.TeamID).
		Msgf("Player '%s' has team ID: %d", speaker, player.TeamID)

	if r.vote == nil {
		r.startVote(player)
		return
	}
	r.castVote(player)
}

// handleStatus reports the vote tally to the team of speaker.
// Other teams are told no vote is in progress. r.mu must be held
func (r *Surrender) handleStatus(speaker string) {
	r.debug().Str("speaker", speaker).Msgf("Player '%s' has typed /surrenderstatus", speaker)

	if !r.round.IsEligibleGameMode {
		r.reject(speaker, WrongGameMode)
		return
	}

	if r.vote != nil && r.serverInfo != nil {
		r.reconcile()
	}

	player, ok := r.roster.Get(speaker)
	if r.vote == nil || !ok || player.TeamID != r.vote.teamID {
		r.say(ToPlayer(speaker), r.settings.message(MsgNoSurrenderVoting))
		return
	}

	vote := r.vote
	r.say(ToTeam(vote.teamID), formatMessage(vote.settings.message(MsgVotingStats), len(vote.voters), vote.votesNeeded, r.formatTimeLeft(vote)))
}

// reject tells speaker why the surrender request was refused.
// r.mu must be held
func (r *Surrender) reject(speaker string, reason Eligibility) {
	r.metrics.rejected(reason)
	r.debug().Str("speaker", speaker).Str("reason", reason.String()).Msgf("Surrender request refused")

	s := r.settings
	var message string
	switch reason {
	case WrongGameMode:
		message = s.message(MsgWrongGameMode)
	case NotOnLosingTeam:
		message = s.message(MsgNotOnLosingTeam)
	case TooSoon:
		message = formatMessage(s.message(MsgTooSoon), formatTime(s.TimeToVote))
	case NotEnoughPlayers:
		message = formatMessage(s.message(MsgNotEnoughPlayers), s.MinPlayers)
	case TicketCountTooLow:
		message = formatMessage(s.message(MsgTooLowTicketCount), s.MinPercentTicketRemaining*r.round.StartTicketCount/100)
	case TicketGapTooLow:
		message = formatMessage(s.message(MsgTooLowTicketGap), s.MinTicketGap)
	default:
		return
	}
	r.say(ToPlayer(speaker), message)
}

// startVote evaluates eligibility of player and starts a vote.
// r.mu must be held
func (r *Surrender) startVote(player PlayerInfo) {
	rc := r.roundContext()
	if result := Evaluate(rc, r.settings, player.TeamID, r.now()); result != Eligible {
		r.debug().
			Time("roundStartTime", rc.RoundStartTime).
			Int("timeToVote", r.settings.TimeToVote).
			Int("playerCount", rc.PlayerCount).
			Msgf("Player '%s' is not eligible: %s", player.Name, result)
		r.reject(player.Name, result)
		return
	}

	settings := r.settings.clone()
	teamSize := r.roster.TeamSize(player.TeamID)
	r.debug().Int("teamId", player.TeamID).Msgf("There are %d players in surrendering team with ID: %d", teamSize, player.TeamID)

	r.generation++
	ctx, cancel := context.WithCancel(r.ctx)
	vote := &voteRecord{
		id:          uuid.NewString(),
		generation:  r.generation,
		teamID:      player.TeamID,
		startedAt:   r.now(),
		voters:      map[string]struct{}{player.Name: {}},
		votesNeeded: computeVotesNeeded(settings.PercentVote, teamSize),
		settings:    settings,
		cancel:      cancel,
	}
	r.vote = vote
	r.metrics.voteStarted()
	r.metrics.voteCast()
	r.startTimeout(ctx, vote.generation, time.Duration(settings.Timeout)*time.Second)

	message := formatMessage(settings.message(MsgVotingBegins), vote.votesNeeded, formatTime(settings.Timeout))
	target := ToTeam(vote.teamID)
	if settings.SayVotingBeginsToAll {
		target = ToAll()
	}
	r.say(target, message)
	r.yell(target, message, settings.VotingBeginsYellDuration)

	r.Logger.Info().
		Str("voteId", vote.id).
		Str("speaker", player.Name).
		Int("teamId", vote.teamID).
		Int("votesNeeded", vote.votesNeeded).
		Msgf("Surrender voting begins by Team %d with %d votes needed", vote.teamID, vote.votesNeeded)

	if len(vote.voters) >= vote.votesNeeded {
		r.succeed()
	}
}

// castVote adds the vote of player to the active vote.
// r.mu must be held
func (r *Surrender) castVote(player PlayerInfo) {
	vote := r.vote
	if player.TeamID != vote.teamID {
		r.reject(player.Name, NotOnLosingTeam)
		return
	}

	if _, ok := vote.voters[player.Name]; ok {
		r.say(ToPlayer(player.Name), vote.settings.message(MsgAlreadyVoted))
		return
	}

	vote.voters[player.Name] = struct{}{}
	r.metrics.voteCast()

	if len(vote.voters) >= vote.votesNeeded {
		r.succeed()
		return
	}

	left := r.formatTimeLeft(vote)
	r.say(ToTeam(vote.teamID), formatMessage(vote.settings.message(MsgVotingStats), len(vote.voters), vote.votesNeeded, left))
	r.Logger.Info().
		Str("voteId", vote.id).
		Str("speaker", player.Name).
		Int("votes", len(vote.voters)).
		Int("votesNeeded", vote.votesNeeded).
		Msgf("Surrender voting: %d/%d. %s left to vote!", len(vote.voters), vote.votesNeeded, left)
}

// succeed resolves the active vote as passed and schedules
// the end of the round with the current winning team.
// r.mu must be held
func (r *Surrender) succeed() {
	vote := r.vote
	_, winning, _ := standings(r.serverInfo.TeamScores)

	message := formatMessage(vote.settings.message(MsgVotingPasses), len(vote.voters))
	r.say(ToAll(), message)
	r.yell(ToAll(), message, vote.settings.VotingSuccessYellDuration)

	r.Logger.Info().
		Str("voteId", vote.id).
		Int("teamId", vote.teamID).
		Int("winningTeamId", winning.TeamID).
		Int("votes", len(vote.voters)).
		Msgf("Surrender voting successful with %d votes. Ending round", len(vote.voters))

	r.clearVote(Succeeded)
	r.scheduleEndRound(winning.TeamID, time.Duration(vote.settings.EndRoundDelay)*time.Second)
}

// reconcile invalidates the active vote when the surrendering team
// is not strictly trailing anymore. It reports whether the vote was invalidated.
// r.mu must be held
func (r *Surrender) reconcile() bool {
	vote := r.vote
	if vote == nil || r.serverInfo == nil {
		return false
	}
	losing, winning, tie := standings(r.serverInfo.TeamScores)
	if !tie && losing.TeamID == vote.teamID {
		return false
	}

	r.say(ToTeam(vote.teamID), vote.settings.message(MsgLosingNoMore))
	r.Logger.Info().
		Str("voteId", vote.id).
		Int("teamId", vote.teamID).
		Int("losingTeamId", losing.TeamID).
		Int("winningTeamId", winning.TeamID).
		Bool("tie", tie).
		Msgf("Losing team is now winning team. Surrender voting ending")
	r.clearVote(Invalidated)
	return true
}

// clearVote drops the active vote and releases its timeout scheduler.
// r.mu must be held
func (r *Surrender) clearVote(resolution Resolution) {
	vote := r.vote
	if vote == nil {
		return
	}
	vote.cancel()
	r.vote = nil
	r.metrics.resolved(resolution, r.now().Sub(vote.startedAt))
	r.debug().Str("voteId", vote.id).Str("resolution", resolution.String()).Msgf("Surrender voting cleared")
}
