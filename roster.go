package surrender

// NewRoster returns an empty roster
func NewRoster() *Roster {
	return &Roster{
		players: make(map[string]PlayerInfo),
	}
}

// Replace swaps the whole roster with players
func (r *Roster) Replace(players []PlayerInfo) {
	m := make(map[string]PlayerInfo, len(players))
	for _, p := range players {
		m[p.Name] = p
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = m
}

// Set adds or updates a player
func (r *Roster) Set(player PlayerInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[player.Name] = player
}

// SetIfAbsent adds player unless a player with the same name is known.
// It reports whether player was added
func (r *Roster) SetIfAbsent(player PlayerInfo) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[player.Name]; ok {
		return false
	}
	r.players[player.Name] = player
	return true
}

// Remove deletes a player
func (r *Roster) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, name)
}

// Get returns the player matching name
func (r *Roster) Get(name string) (PlayerInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[name]
	return p, ok
}

// TeamSize returns the number of players in teamID
func (r *Roster) TeamSize(teamID int) (count int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.players {
		if p.TeamID == teamID {
			count++
		}
	}
	return
}

// Len returns the number of players
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}
