package surrender

// VoteState represent the current status of the surrender vote.
// The state can only be Idle or Voting
type VoteState uint32

const (
	// Idle state means that no vote is in progress.
	// A new eligible surrender request will start one
	Idle VoteState = iota

	// Voting state means that a vote record exists and
	// players of the surrendering team can cast their votes
	Voting
)

// String return a human readable state of the vote
func (s VoteState) String() string {
	if s == Voting {
		return "voting"
	}
	return "idle"
}

// Resolution is the reason why a vote went back to Idle.
// It is never persisted, only reported
type Resolution uint32

const (
	// Succeeded means that the quota was reached and the round will end
	Succeeded Resolution = iota

	// TimedOut means that the timeout elapsed before the quota was reached
	TimedOut

	// Invalidated means that the surrendering team is not losing anymore
	Invalidated

	// Reset means that the round ended, a new one started or the plugin was disabled
	Reset
)

// String return a human readable resolution
func (r Resolution) String() string {
	switch r {
	case Succeeded:
		return "succeeded"
	case TimedOut:
		return "timedOut"
	case Invalidated:
		return "invalidated"
	}
	return "reset"
}
