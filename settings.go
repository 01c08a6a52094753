package surrender

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

const (
	sectionVariables string = "Variables"
	sectionMessages  string = "Messages"
)

// defaultMessages holds built-in templates.
// Placeholders found here are required in any replacement
var defaultMessages = map[MessageName]string{
	MsgWrongGameMode:     "You can't surrender while playing this game mode.",
	MsgLosingNoMore:      "Looks like the losing team has now become the winning team! Surrender voting ending.",
	MsgNotOnLosingTeam:   "You're not on the losing team, how can you surrender?",
	MsgTooSoon:           "Minimum time threshold of {0} has not passed yet to surrender.",
	MsgNotEnoughPlayers:  "Number of players on this server must be at least {0} players to surrender.",
	MsgTooLowTicketCount: "Losing team must have at least {0} tickets remaining to surrender.",
	MsgTooLowTicketGap:   "Minimum ticket gap between the two teams must be {0} tickets to surrender.",
	MsgVotingBegins:      "Surrender voting begins! {0} players must vote within {1} by typing /surrender in chat for vote to pass!",
	MsgAlreadyVoted:      "You've already voted!",
	MsgVotingPasses:      "Surrender voting passed with {0} votes! Losing team has surrendered to the winning team, ending round...",
	MsgVotingStats:       "Surrender voting: {0}/{1}. {2} left to vote!",
	MsgNoSurrenderVoting: "No surrender voting going on at the moment.",
	MsgVotingFailed:      "Surrender voting failed! {0}/{1} votes were cast.",
}

// variables is the registry of every setting exposed to the host.
// Its order is the display order
var variables = []variable{
	{key: "time_to_vote", section: sectionVariables, description: "Time (in seconds) until surrender available", kind: KindInt, intField: func(s *Settings) *int { return &s.TimeToVote }, maximum: -1},
	{key: "timeout", section: sectionVariables, description: "Time (in seconds) until surrender expires", kind: KindInt, intField: func(s *Settings) *int { return &s.Timeout }, minimum: 1, maximum: -1},
	{key: "min_players", section: sectionVariables, description: "Minimum required number of players on server to surrender", kind: KindInt, intField: func(s *Settings) *int { return &s.MinPlayers }, maximum: -1},
	{key: "min_ticket_gap", section: sectionVariables, description: "Minimum ticket gap between two teams", kind: KindInt, intField: func(s *Settings) *int { return &s.MinTicketGap }, maximum: -1},
	{key: "min_percent_ticket_remaining", section: sectionVariables, description: "Percent minimum of tickets remaining", kind: KindInt, intField: func(s *Settings) *int { return &s.MinPercentTicketRemaining }, maximum: 100},
	{key: "percent_vote", section: sectionVariables, description: "Percent of team required to vote", kind: KindInt, intField: func(s *Settings) *int { return &s.PercentVote }, maximum: 100},
	{key: "voting_begins_yell_duration", section: sectionVariables, description: "Duration of yell when voting begins", kind: KindInt, intField: func(s *Settings) *int { return &s.VotingBeginsYellDuration }, maximum: -1},
	{key: "voting_success_yell_duration", section: sectionVariables, description: "Duration of yell when voting is successful", kind: KindInt, intField: func(s *Settings) *int { return &s.VotingSuccessYellDuration }, maximum: -1},
	{key: "delay_endround", section: sectionVariables, description: "Time (in seconds) delay between successful surrender and end of round", kind: KindInt, intField: func(s *Settings) *int { return &s.EndRoundDelay }, maximum: -1},
	{key: "say_voting_begins_to_all", section: sectionVariables, description: "Say and/or yell 'surrender voting begins' to all (false = team only, true = to all)", kind: KindBool, boolField: func(s *Settings) *bool { return &s.SayVotingBeginsToAll }},
	{key: "debug_mode", section: sectionVariables, description: "Debug mode", kind: KindBool, boolField: func(s *Settings) *bool { return &s.DebugMode }},
	{key: "wrong_gamemode", section: sectionMessages, description: "Wrong gamemode message", kind: KindString, message: MsgWrongGameMode},
	{key: "losing_no_more", section: sectionMessages, description: "Not losing anymore, surrender voting ending", kind: KindString, message: MsgLosingNoMore},
	{key: "not_on_losing_team", section: sectionMessages, description: "Not on losing team", kind: KindString, message: MsgNotOnLosingTeam},
	{key: "too_soon", section: sectionMessages, description: "Surrender not available, too soon to vote ({0} = time)", kind: KindString, message: MsgTooSoon},
	{key: "not_enough_players", section: sectionMessages, description: "Not enough players ({0} = minimum players needed)", kind: KindString, message: MsgNotEnoughPlayers},
	{key: "too_low_ticket_count", section: sectionMessages, description: "Too low ticket count remaining ({0} = minimum ticket count)", kind: KindString, message: MsgTooLowTicketCount},
	{key: "too_low_ticket_gap", section: sectionMessages, description: "Too low ticket gap ({0} = minimum ticket gap)", kind: KindString, message: MsgTooLowTicketGap},
	{key: "surrender_voting_begins", section: sectionMessages, description: "Surrender voting begins ({0} = votes needed, {1} = time left)", kind: KindString, message: MsgVotingBegins},
	{key: "already_voted", section: sectionMessages, description: "Already voted", kind: KindString, message: MsgAlreadyVoted},
	{key: "surrender_voting_passes", section: sectionMessages, description: "Surrender voting successful ({0} = vote count)", kind: KindString, message: MsgVotingPasses},
	{key: "surrender_voting_stats", section: sectionMessages, description: "Surrender voting stats ({0} = vote count, {1} = votes needed, {2} = time left)", kind: KindString, message: MsgVotingStats},
	{key: "no_surrender_voting", section: sectionMessages, description: "No surrender voting going on", kind: KindString, message: MsgNoSurrenderVoting},
	{key: "voting_failed", section: sectionMessages, description: "Surrender voting failed ({0} = vote count, {1} votes needed)", kind: KindString, message: MsgVotingFailed},
}

// DefaultSettings returns built-in settings
func DefaultSettings() Settings {
	return Settings{
		TimeToVote:                300,
		Timeout:                   180,
		MinPlayers:                16,
		MinTicketGap:              100,
		MinPercentTicketRemaining: 20,
		PercentVote:               30,
		VotingBeginsYellDuration:  10,
		VotingSuccessYellDuration: 10,
		EndRoundDelay:             5,
		Messages:                  maps.Clone(defaultMessages),
	}
}

// clone returns a deep copy of the settings so a running vote
// keeps its own snapshot
func (s Settings) clone() Settings {
	c := s
	c.Messages = maps.Clone(s.Messages)
	if c.Messages == nil {
		c.Messages = map[MessageName]string{}
	}
	return c
}

// message returns the template of the provided name,
// falling back to the built-in one when unset
func (s Settings) message(name MessageName) string {
	if m, ok := s.Messages[name]; ok {
		return m
	}
	return defaultMessages[name]
}

// lookupVariable find the variable matching exactly the provided name.
// The name can be the key, the description or the section|description
func lookupVariable(name string) (variable, bool) {
	name = strings.TrimSpace(name)
	for _, v := range variables {
		if name == v.key || name == v.description || name == v.section+"|"+v.description {
			return v, true
		}
	}
	return variable{}, false
}

// requiredPlaceholders returns the {n} placeholders found in template,
// counting from zero without gaps
func requiredPlaceholders(template string) (placeholders []string) {
	for a := 0; strings.Contains(template, fmt.Sprintf("{%d}", a)); a++ {
		placeholders = append(placeholders, fmt.Sprintf("{%d}", a))
	}
	return
}

// get returns the current value of v rendered as string
func (s Settings) get(v variable) string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(*v.intField(&s))
	case KindBool:
		return strconv.FormatBool(*v.boolField(&s))
	}
	return s.message(v.message)
}

// set parses and validates value before assigning it to v.
// s is left untouched when an error is returned
func (s *Settings) set(v variable, value string) error {
	switch v.kind {
	case KindInt:
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w for %s: %q is not an integer", ErrInvalidValue, v.key, value)
		}
		if i < v.minimum || (v.maximum >= 0 && i > v.maximum) {
			return fmt.Errorf("%w for %s: %d is out of range", ErrInvalidValue, v.key, i)
		}
		*v.intField(s) = i

	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w for %s: %q is not a boolean", ErrInvalidValue, v.key, value)
		}
		*v.boolField(s) = b

	default:
		for _, placeholder := range requiredPlaceholders(defaultMessages[v.message]) {
			if !strings.Contains(value, placeholder) {
				return fmt.Errorf("%w %s for %s", ErrMissingPlaceholder, placeholder, v.key)
			}
		}
		if s.Messages == nil {
			s.Messages = map[MessageName]string{}
		}
		s.Messages[v.message] = value
	}
	return nil
}

// Variables returns all variables with their current value
func (r *Surrender) Variables() []Variable {
	r.mu.Lock()
	settings := r.settings.clone()
	r.mu.Unlock()

	defaults := DefaultSettings()
	list := make([]Variable, 0, len(variables))
	for _, v := range variables {
		list = append(list, Variable{
			Key:         v.key,
			Section:     v.section,
			Description: v.description,
			Kind:        v.kind,
			Value:       settings.get(v),
			Default:     defaults.get(v),
		})
	}
	return list
}

// Settings returns a copy of the current settings
func (r *Surrender) Settings() Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings.clone()
}

// SetVariable updates the variable matching name with value.
// The previous value is retained when value does not validate
// or cannot be persisted. A running vote keeps the settings it started with
func (r *Surrender) SetVariable(name, value string) error {
	v, ok := lookupVariable(name)
	if !ok {
		r.Logger.Error().Err(ErrUnknownVariable).
			Str("variable", name).
			Str("value", value).
			Msgf("Invalid variable")
		return fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}

	if err := r.validateVariable(v, value); err != nil {
		return err
	}

	if r.options.SettingsStore != nil {
		if err := r.options.SettingsStore.SetSetting(v.key, value); err != nil {
			r.Logger.Error().Err(err).
				Str("variable", v.key).
				Msgf("Fail to persist variable, keeping previous value")
			return fmt.Errorf("fail to persist %s: %w", v.key, err)
		}
	}
	return r.applyVariable(v, value)
}

// validateVariable checks value against a copy of the live settings
func (r *Surrender) validateVariable(v variable, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.settings.clone()
	if err := c.set(v, value); err != nil {
		r.Logger.Error().Err(err).
			Str("variable", v.key).
			Str("value", value).
			Msgf("Invalid value, keeping %s", r.settings.get(v))
		return err
	}
	return nil
}

// applyVariable validates and assigns value to v without persisting it.
// It is used to restore stored settings and after SetVariable persisted value
func (r *Surrender) applyVariable(v variable, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.settings.set(v, value); err != nil {
		r.Logger.Error().Err(err).
			Str("variable", v.key).
			Str("value", value).
			Msgf("Invalid value, keeping %s", r.settings.get(v))
		return err
	}

	if v.kind == KindString {
		r.Logger.Info().Str("variable", v.key).Msgf("%s message modified", v.key)
	} else {
		r.Logger.Info().Str("variable", v.key).Msgf("%s value changed to %s", v.key, r.settings.get(v))
	}
	return nil
}
