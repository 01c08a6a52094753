package surrender

import "sync"

// neutralTeamID is the team of players that have not been assigned yet
const neutralTeamID int = 0

// PlayerInfo holds what the controller needs to know about a player
type PlayerInfo struct {
	Name    string
	TeamID  int
	SquadID int
}

// Roster maps player names to their team.
// It is safe for concurrent use
type Roster struct {
	mu      sync.RWMutex
	players map[string]PlayerInfo
}
