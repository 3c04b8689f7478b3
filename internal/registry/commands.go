package registry

import (
	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/game"
	"github.com/anagramthief/core/internal/wordform"
)

// Flip, ClaimIntent, Claim, and the pre-steal mutators are thin
// room-lookup wrappers around internal/game's commands; the transport
// adapter calls one of these per inbound frame, then Publishes on
// success or sends the refusal to the caller alone on error.

func (r *Registry) Flip(roomID, playerID string) (*internal.Room, error) {
	room := r.Get(roomID)
	if room == nil {
		return nil, &game.RefusalError{Kind: game.RefusalRoomNotFound}
	}
	return room, game.Flip(room, playerID)
}

func (r *Registry) ClaimIntent(roomID, playerID string) (*internal.Room, error) {
	room := r.Get(roomID)
	if room == nil {
		return nil, &game.RefusalError{Kind: game.RefusalRoomNotFound}
	}
	return room, game.ClaimIntent(room, playerID)
}

func (r *Registry) Claim(roomID, playerID, word string) (*internal.Room, *wordform.ClaimResult, error) {
	room := r.Get(roomID)
	if room == nil {
		return nil, nil, &game.RefusalError{Kind: game.RefusalRoomNotFound}
	}
	result, err := game.Claim(room, playerID, word)
	return room, result, err
}

func (r *Registry) PreStealAdd(roomID, playerID, triggerLetters, claimWord string) (*internal.Room, *internal.PreStealEntry, error) {
	room := r.Get(roomID)
	if room == nil {
		return nil, nil, &game.RefusalError{Kind: game.RefusalRoomNotFound}
	}
	entry, err := game.PreStealAdd(room, playerID, triggerLetters, claimWord)
	return room, entry, err
}

func (r *Registry) PreStealRemove(roomID, playerID, entryID string) (*internal.Room, error) {
	room := r.Get(roomID)
	if room == nil {
		return nil, &game.RefusalError{Kind: game.RefusalRoomNotFound}
	}
	return room, game.PreStealRemove(room, playerID, entryID)
}

func (r *Registry) PreStealReorder(roomID, playerID string, orderedIDs []string) (*internal.Room, error) {
	room := r.Get(roomID)
	if room == nil {
		return nil, &game.RefusalError{Kind: game.RefusalRoomNotFound}
	}
	return room, game.PreStealReorder(room, playerID, orderedIDs)
}
