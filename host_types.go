package surrender

import "time"

const (
	// maxSayLength is the maximum length of an admin.say message
	maxSayLength int = 128

	// maxYellLength is the maximum length of an admin.yell message
	maxYellLength int = 256
)

// Scope is the audience of an outbound message
type Scope uint8

const (
	ScopeAll Scope = iota
	ScopeTeam
	ScopeSquad
	ScopePlayer
)

// String return a human readable scope
func (s Scope) String() string {
	switch s {
	case ScopeTeam:
		return "team"
	case ScopeSquad:
		return "squad"
	case ScopePlayer:
		return "player"
	}
	return "all"
}

// Target is the recipient of an outbound message
type Target struct {
	Scope   Scope
	TeamID  int
	SquadID int
	Player  string
}

// Host is the game server collaborator that receives
// all side effects of the controller
type Host interface {
	// Say sends a chat message to target
	Say(target Target, message string) error

	// Yell sends an emphasized on-screen message to target for duration
	Yell(target Target, message string, duration time.Duration) error

	// EndRound ends the current round with the provided winner
	EndRound(winningTeamID int) error
}

// Executor sends raw command words to the game server
type Executor interface {
	Execute(words ...string) error
}

// ExecutorFunc is an adapter to use ordinary functions as Executor
type ExecutorFunc func(words ...string) error

// Execute calls f(words...)
func (f ExecutorFunc) Execute(words ...string) error {
	return f(words...)
}

// CommandHost is a Host speaking the Frostbite admin command set
type CommandHost struct {
	executor Executor
}
