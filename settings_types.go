package surrender

// MessageName identifies a player facing message template
type MessageName uint8

const (
	MsgWrongGameMode MessageName = iota
	MsgLosingNoMore
	MsgNotOnLosingTeam
	MsgTooSoon
	MsgNotEnoughPlayers
	MsgTooLowTicketCount
	MsgTooLowTicketGap
	MsgVotingBegins
	MsgAlreadyVoted
	MsgVotingPasses
	MsgVotingStats
	MsgNoSurrenderVoting
	MsgVotingFailed
)

// VariableKind is the type of value a variable holds
type VariableKind string

const (
	KindInt    VariableKind = "int"
	KindBool   VariableKind = "bool"
	KindString VariableKind = "string"
)

// Settings holds all tunables of the surrender vote.
// Durations are expressed in seconds
type Settings struct {
	// TimeToVote is the minimum elapsed round time before a vote can start
	TimeToVote int

	// Timeout is how long a vote stays open
	Timeout int

	// MinPlayers is the minimum number of players on the server
	MinPlayers int

	// MinTicketGap is the minimum ticket difference between winning and losing team
	MinTicketGap int

	// MinPercentTicketRemaining is the minimum percent of start tickets
	// the losing team must still have
	MinPercentTicketRemaining int

	// PercentVote is the percent of the losing team that must vote
	PercentVote int

	// VotingBeginsYellDuration is the yell duration when voting begins.
	// 0 disables the yell
	VotingBeginsYellDuration int

	// VotingSuccessYellDuration is the yell duration when voting succeeds.
	// 0 disables the yell
	VotingSuccessYellDuration int

	// EndRoundDelay is the delay between a successful vote and the end of the round
	EndRoundDelay int

	// SayVotingBeginsToAll announces the vote to the whole server instead of the team only
	SayVotingBeginsToAll bool

	// DebugMode enables debug log lines
	DebugMode bool

	// Messages holds message templates with {n} positional placeholders
	Messages map[MessageName]string
}

// Variable describes a setting exposed to the host configuration surface
type Variable struct {
	// Key is the stable name of the variable
	Key string

	// Section groups variables together, like Variables or Messages
	Section string

	// Description is the human readable name shown by the host
	Description string

	// Kind is the type of the variable
	Kind VariableKind

	// Value is the current value rendered as string
	Value string

	// Default is the built-in value rendered as string
	Default string
}

// variable binds a Variable descriptor to the Settings field it manages
type variable struct {
	key         string
	section     string
	description string
	kind        VariableKind

	// intField, boolField and message only one is set depending on kind
	intField  func(*Settings) *int
	boolField func(*Settings) *bool
	message   MessageName

	// minimum and maximum are the accepted bounds of int variables
	minimum, maximum int
}
