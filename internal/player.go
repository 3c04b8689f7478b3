package internal

// RecomputeScore derives Score from the tiles backing every owned word,
// the only source of truth for a player's score — it is never
// incremented or stored divergently from the tiles themselves.
func (p *Player) RecomputeScore() {
	total := 0
	for _, w := range p.Words {
		total += len(w.TileIDs)
	}
	p.Score = total
}

// OwnsWord reports whether the player currently owns a word with the
// given id.
func (p *Player) OwnsWord(wordID string) (*Word, int) {
	for i, w := range p.Words {
		if w.ID == wordID {
			return w, i
		}
	}
	return nil, -1
}

// RemoveWord deletes the word at the given index, preserving order of
// the rest.
func (p *Player) RemoveWord(index int) {
	p.Words = append(p.Words[:index], p.Words[index+1:]...)
}

// Snapshot produces the replay-record form of this player: full words
// and pre-steal entries, no viewer masking.
func (p *Player) Snapshot() PlayerSnapshot {
	words := make([]Word, len(p.Words))
	for i, w := range p.Words {
		words[i] = *w
	}
	entries := append([]PreStealEntry(nil), p.PreStealEntries...)
	return PlayerSnapshot{
		ID:              p.ID,
		Name:            p.Name,
		Words:           words,
		PreStealEntries: entries,
		Score:           p.Score,
	}
}
