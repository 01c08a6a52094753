package surrender

import "time"

// Eligibility is the outcome of a surrender attempt evaluation
type Eligibility uint8

const (
	// Eligible means that a vote may start
	Eligible Eligibility = iota

	// WrongGameMode means that the current game mode does not allow surrender
	WrongGameMode

	// NotOnLosingTeam means that the caller is not on the trailing team
	// or that both teams are tied
	NotOnLosingTeam

	// TooSoon means that the round has not lasted long enough
	TooSoon

	// NotEnoughPlayers means that the server is not populated enough
	NotEnoughPlayers

	// TicketCountTooLow means that the losing team has too few tickets left
	TicketCountTooLow

	// TicketGapTooLow means that the two teams are too close
	TicketGapTooLow
)

// String return a human readable eligibility
func (e Eligibility) String() string {
	switch e {
	case Eligible:
		return "eligible"
	case WrongGameMode:
		return "wrongGameMode"
	case NotOnLosingTeam:
		return "notOnLosingTeam"
	case TooSoon:
		return "tooSoon"
	case NotEnoughPlayers:
		return "notEnoughPlayers"
	case TicketCountTooLow:
		return "ticketCountTooLow"
	case TicketGapTooLow:
		return "ticketGapTooLow"
	}
	return "unknown"
}

// TeamScore is the ticket score of a team
type TeamScore struct {
	TeamID int
	Score  int
}

// RoundContext is the per round snapshot used to evaluate eligibility.
// It is replaced wholesale on each new round
type RoundContext struct {
	// StartTicketCount is the ticket count of the first team at round start
	StartTicketCount int

	// RoundStartTime is when the first server info of the round was received
	RoundStartTime time.Time

	// IsEligibleGameMode tells if the game mode allows surrender
	IsEligibleGameMode bool

	// PlayerCount is the number of players on the server
	PlayerCount int

	// TeamScores holds ticket scores in the order reported by the server
	TeamScores []TeamScore
}
