package surrender

import (
	"regexp"
	"slices"
)

var (
	// statusCommand must be matched before surrenderCommand
	statusCommand    = regexp.MustCompile(`(?i)^[/]?[@!]?surrenderstatus`)
	surrenderCommand = regexp.MustCompile(`(?i)^[/]?[@!]?surrender`)
)

// OnGlobalChat handles a message sent to everyone
func (r *Surrender) OnGlobalChat(speaker, message string) {
	defer r.recoverHandler("OnGlobalChat")
	r.handleChat(speaker, message)
}

// OnTeamChat handles a message sent to a team
func (r *Surrender) OnTeamChat(speaker, message string, teamID int) {
	defer r.recoverHandler("OnTeamChat")
	r.handleChat(speaker, message)
}

// OnSquadChat handles a message sent to a squad
func (r *Surrender) OnSquadChat(speaker, message string, teamID, squadID int) {
	defer r.recoverHandler("OnSquadChat")
	r.handleChat(speaker, message)
}

// handleChat dispatches surrender commands, other text is ignored
func (r *Surrender) handleChat(speaker, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return
	}

	switch {
	case statusCommand.MatchString(message):
		r.handleStatus(speaker)
	case surrenderCommand.MatchString(message):
		r.handleSurrender(speaker)
	}
}

// OnServerInfo stores the server state.
// The first refresh of a round seeds the round baseline,
// later ones reconcile the active vote
func (r *Surrender) OnServerInfo(info ServerInfo) {
	defer r.recoverHandler("OnServerInfo")
	r.mu.Lock()
	defer r.mu.Unlock()

	info.TeamScores = slices.Clone(info.TeamScores)
	r.serverInfo = &info

	if r.round.StartTicketCount == unsetTicketCount {
		r.clearVote(Reset)
		if len(info.TeamScores) == 0 {
			r.Logger.Error().Err(ErrNoTicketBaseline).Str("gameMode", info.GameMode).Msgf("Server info without team scores")
			return
		}
		r.round = RoundContext{
			StartTicketCount:   info.TeamScores[0].Score,
			RoundStartTime:     r.now(),
			IsEligibleGameMode: r.isEligibleGameMode(info.GameMode),
		}
		r.debug().
			Str("gameMode", info.GameMode).
			Bool("eligibleGameMode", r.round.IsEligibleGameMode).
			Msgf("Start Ticket Count initially set: %d", r.round.StartTicketCount)
		return
	}

	if r.enabled && r.vote != nil {
		r.reconcile()
	}
}

// resetRound cancels any vote and clears the round baseline
// so the next server info seeds a new round
func (r *Surrender) resetRound(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetRoundLocked(event)
}

// resetRoundLocked is resetRound with r.mu held.
// The game mode is kept until the next seed
func (r *Surrender) resetRoundLocked(event string) {
	r.clearVote(Reset)
	r.round = RoundContext{
		StartTicketCount:   unsetTicketCount,
		IsEligibleGameMode: r.round.IsEligibleGameMode,
	}
	r.debug().Str("event", event).Msgf("Round reset")
}

// OnLevelLoaded handles a new level
func (r *Surrender) OnLevelLoaded(mapFileName, gameMode string, roundsPlayed, roundsTotal int) {
	defer r.recoverHandler("OnLevelLoaded")
	r.resetRound("levelLoaded")
}

// OnRoundOver handles the end of a round
func (r *Surrender) OnRoundOver(winningTeamID int) {
	defer r.recoverHandler("OnRoundOver")
	r.resetRound("roundOver")
}

// OnEndRound handles an end round command
func (r *Surrender) OnEndRound(winningTeamID int) {
	defer r.recoverHandler("OnEndRound")
	r.resetRound("endRound")
}

// OnRestartLevel handles a level restart
func (r *Surrender) OnRestartLevel() {
	defer r.recoverHandler("OnRestartLevel")
	r.resetRound("restartLevel")
}

// OnRunNextLevel handles a switch to the next level
func (r *Surrender) OnRunNextLevel() {
	defer r.recoverHandler("OnRunNextLevel")
	r.resetRound("runNextLevel")
}

// OnListPlayers replaces the roster with players
func (r *Surrender) OnListPlayers(players []PlayerInfo) {
	defer r.recoverHandler("OnListPlayers")
	r.roster.Replace(players)
}

// OnPlayerJoin adds a player without team
func (r *Surrender) OnPlayerJoin(name string) {
	defer r.recoverHandler("OnPlayerJoin")
	r.roster.SetIfAbsent(PlayerInfo{Name: name, TeamID: neutralTeamID})
}

// OnPlayerLeft removes a player
func (r *Surrender) OnPlayerLeft(name string) {
	defer r.recoverHandler("OnPlayerLeft")
	r.roster.Remove(name)
}

// OnPlayerTeamChange moves a player to teamID and squadID
func (r *Surrender) OnPlayerTeamChange(name string, teamID, squadID int) {
	defer r.recoverHandler("OnPlayerTeamChange")
	r.roster.Set(PlayerInfo{Name: name, TeamID: teamID, SquadID: squadID})
}
