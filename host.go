package surrender

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// ToAll targets every player on the server
func ToAll() Target {
	return Target{Scope: ScopeAll}
}

// ToTeam targets every player of teamID
func ToTeam(teamID int) Target {
	return Target{Scope: ScopeTeam, TeamID: teamID}
}

// ToSquad targets every player of squadID in teamID
func ToSquad(teamID, squadID int) Target {
	return Target{Scope: ScopeSquad, TeamID: teamID, SquadID: squadID}
}

// ToPlayer targets a single player
func ToPlayer(name string) Target {
	return Target{Scope: ScopePlayer, Player: name}
}

// words returns the player subset words of the target
func (t Target) words() []string {
	switch t.Scope {
	case ScopeTeam:
		return []string{"team", strconv.Itoa(t.TeamID)}
	case ScopeSquad:
		return []string{"squad", strconv.Itoa(t.TeamID), strconv.Itoa(t.SquadID)}
	case ScopePlayer:
		return []string{"player", t.Player}
	}
	return []string{"all"}
}

// String return a human readable target
func (t Target) String() string {
	switch t.Scope {
	case ScopeTeam:
		return fmt.Sprintf("team %d", t.TeamID)
	case ScopeSquad:
		return fmt.Sprintf("squad %d in team %d", t.SquadID, t.TeamID)
	case ScopePlayer:
		return fmt.Sprintf("player '%s'", t.Player)
	}
	return "all"
}

// NewCommandHost returns a Host sending admin commands through executor
func NewCommandHost(executor Executor) *CommandHost {
	return &CommandHost{executor: executor}
}

// Say sends admin.say.
// Messages longer than 128 characters are refused by the server
// so they are not sent
func (c *CommandHost) Say(target Target, message string) error {
	if length := utf8.RuneCountInString(message); length > maxSayLength {
		return fmt.Errorf("%w: say is %d characters, maximum is %d", ErrMessageTooLong, length, maxSayLength)
	}
	return c.executor.Execute(append([]string{"admin.say", message}, target.words()...)...)
}

// Yell sends admin.yell with duration rounded to seconds
func (c *CommandHost) Yell(target Target, message string, duration time.Duration) error {
	if length := utf8.RuneCountInString(message); length > maxYellLength {
		return fmt.Errorf("%w: yell is %d characters, maximum is %d", ErrMessageTooLong, length, maxYellLength)
	}
	seconds := int(duration.Round(time.Second) / time.Second)
	return c.executor.Execute(append([]string{"admin.yell", message, strconv.Itoa(seconds)}, target.words()...)...)
}

// EndRound sends mapList.endRound
func (c *CommandHost) EndRound(winningTeamID int) error {
	return c.executor.Execute("mapList.endRound", strconv.Itoa(winningTeamID))
}
