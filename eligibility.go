package surrender

import "time"

// standings returns the losing and winning team of scores.
// On equal scores the first team reported wins the spot.
// tie is true when losing and winning teams have the same score
func standings(scores []TeamScore) (losing, winning TeamScore, tie bool) {
	if len(scores) == 0 {
		return TeamScore{TeamID: -1}, TeamScore{TeamID: -1}, true
	}
	losing, winning = scores[0], scores[0]
	for _, team := range scores[1:] {
		if team.Score < losing.Score {
			losing = team
		}
		if team.Score > winning.Score {
			winning = team
		}
	}
	return losing, winning, losing.Score == winning.Score
}

// Evaluate computes whether a player of teamID may start a surrender vote.
// The first failing check wins
func Evaluate(round RoundContext, settings Settings, teamID int, now time.Time) Eligibility {
	if !round.IsEligibleGameMode {
		return WrongGameMode
	}

	losing, winning, tie := standings(round.TeamScores)
	if tie || teamID != losing.TeamID {
		return NotOnLosingTeam
	}

	if now.Sub(round.RoundStartTime) < time.Duration(settings.TimeToVote)*time.Second {
		return TooSoon
	}

	if round.PlayerCount < settings.MinPlayers {
		return NotEnoughPlayers
	}

	if round.StartTicketCount <= 0 || float64(losing.Score)/float64(round.StartTicketCount)*100 < float64(settings.MinPercentTicketRemaining) {
		return TicketCountTooLow
	}

	if winning.Score-losing.Score < settings.MinTicketGap {
		return TicketGapTooLow
	}
	return Eligible
}
