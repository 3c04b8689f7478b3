// Package registry is the process-wide room directory: it owns the
// roomId -> *internal.Room map, the per-room subscriber lists, and is
// the only place that both creates/destroys rooms and fans out
// projected state after every mutating command. It is constructed once
// at process startup and passed explicitly to every caller that needs
// it, rather than held in a package-level variable.
package registry

import (
	"context"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/dictionary"
	"github.com/anagramthief/core/internal/game"
	"github.com/anagramthief/core/internal/projection"
)

// Subscriber is anything that can receive an outbound envelope for one
// connected viewer — the transport adapter's per-connection writer is
// the only production implementation.
type Subscriber interface {
	// ID identifies the viewer (playerId or spectatorId).
	ID() string
	// Send delivers one outbound message. A returned error causes the
	// subscriber to be dropped from the room's fan-out list.
	Send(msg internal.Message[any]) error
}

type subscriberEntry struct {
	sub  Subscriber
	kind projection.ViewerKind
}

// Registry is safe for concurrent use. Room-level state is additionally
// guarded by each *internal.Room's own mutex per the single-thread-
// per-room concurrency model; Registry's lock only protects the
// roomId -> *Room map and subscriber lists.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room
	subs  map[string]map[string]subscriberEntry

	dict *dictionary.Dictionary
	rng  func() *rand.Rand
}

// New builds an empty Registry bound to dict. rngSeed == 0 means every
// game's bag is time-seeded; a non-zero seed (from BAG_RNG_SEED or a
// test) makes the bag shuffles of this process's games deterministic.
func New(dict *dictionary.Dictionary, rngSeed int64) *Registry {
	r := &Registry{
		rooms: make(map[string]*internal.Room),
		subs:  make(map[string]map[string]subscriberEntry),
		dict:  dict,
	}
	if rngSeed == 0 {
		r.rng = func() *rand.Rand { return nil }
	} else {
		src := rand.NewSource(rngSeed)
		var mu sync.Mutex
		r.rng = func() *rand.Rand {
			mu.Lock()
			defer mu.Unlock()
			return rand.New(rand.NewSource(src.Int63()))
		}
	}
	return r
}

// CreateRoom builds and registers a new lobby room with hostID already
// seated.
func (r *Registry) CreateRoom(p game.NewRoomParams) *internal.Room {
	room := game.NewRoom(uuid.NewString(), p)

	r.mu.Lock()
	r.rooms[room.ID] = room
	r.subs[room.ID] = make(map[string]subscriberEntry)
	r.mu.Unlock()

	return room
}

// Get returns the room by id, or nil if unknown.
func (r *Registry) Get(roomID string) *internal.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[roomID]
}

// ListPublicRooms projects every public room to its summary form.
func (r *Registry) ListPublicRooms() []internal.RoomSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]internal.RoomSummary, 0, len(r.rooms))
	for _, room := range r.rooms {
		room.Mu.RLock()
		isPublic := room.IsPublic
		room.Mu.RUnlock()
		if isPublic {
			out = append(out, projection.Summarize(room))
		}
	}
	return out
}

// Subscribe registers sub to receive projected state for room. It does
// not itself publish; callers typically Subscribe then Publish.
func (r *Registry) Subscribe(roomID string, kind projection.ViewerKind, sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subs[roomID] == nil {
		r.subs[roomID] = make(map[string]subscriberEntry)
	}
	r.subs[roomID][sub.ID()] = subscriberEntry{sub: sub, kind: kind}
}

// Unsubscribe removes subID from roomID's fan-out list.
func (r *Registry) Unsubscribe(roomID, subID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs[roomID], subID)
}

// Publish projects room's current state once per subscriber and sends
// it, bounding concurrent sends with an errgroup so one slow/broken
// connection can't block the others; a subscriber whose Send errors is
// dropped.
func (r *Registry) Publish(ctx context.Context, room *internal.Room) {
	room.Mu.RLock()
	roomID := room.ID
	room.Mu.RUnlock()

	r.mu.RLock()
	entries := make([]subscriberEntry, 0, len(r.subs[roomID]))
	for _, e := range r.subs[roomID] {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	if len(entries) == 0 {
		return
	}

	var dead []string
	var deadMu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, e := range entries {
		e := e
		g.Go(func() error {
			room.Mu.RLock()
			state := projection.Project(room, e.kind, e.sub.ID())
			room.Mu.RUnlock()

			if err := e.sub.Send(internal.Message[any]{Type: "game:state", Data: state}); err != nil {
				deadMu.Lock()
				dead = append(dead, e.sub.ID())
				deadMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(dead) > 0 {
		r.mu.Lock()
		for _, id := range dead {
			delete(r.subs[roomID], id)
		}
		r.mu.Unlock()
	}
}

// RemoveRoomIfEmpty deletes a room once it has no players, no
// spectators, and no subscribers left — the lobby-side half of "Rooms
// are destroyed when last participant leaves or end-timer terminates
// and everyone exits."
func (r *Registry) RemoveRoomIfEmpty(room *internal.Room) {
	room.Mu.RLock()
	empty := len(room.Players) == 0 && len(room.Spectators) == 0
	roomID := room.ID
	room.Mu.RUnlock()
	if !empty {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.subs[roomID]) == 0 {
		delete(r.rooms, roomID)
		delete(r.subs, roomID)
	}
}

// JoinRoom seats playerID in roomID, erroring if the room does not
// exist; all gameplay guards (full, wrong code, already in room) are
// enforced by game.Join.
func (r *Registry) JoinRoom(roomID, playerID, name, code string) (*internal.Room, error) {
	room := r.Get(roomID)
	if room == nil {
		return nil, &game.RefusalError{Kind: game.RefusalRoomNotFound}
	}
	if err := game.Join(room, playerID, name, code); err != nil {
		return nil, err
	}
	return room, nil
}

// SpectateRoom seats playerID as a spectator of roomID.
func (r *Registry) SpectateRoom(roomID, playerID, name string) (*internal.Room, error) {
	room := r.Get(roomID)
	if room == nil {
		return nil, &game.RefusalError{Kind: game.RefusalRoomNotFound}
	}
	if err := game.Spectate(room, playerID, name); err != nil {
		return nil, err
	}
	return room, nil
}

// LeaveRoom removes playerID from roomID (player or spectator slot) and
// garbage-collects the room if it is now empty.
func (r *Registry) LeaveRoom(roomID, playerID string) {
	room := r.Get(roomID)
	if room == nil {
		return
	}
	game.Leave(room, playerID)
	r.RemoveRoomIfEmpty(room)
}

// StartGame starts roomID's game on behalf of callerID. The new game is
// wired with an OnChange callback so timer-fired transitions (autoFlip,
// pendingFlipReveal, claim window expiry, end countdown) publish fresh
// state to subscribers even though no inbound command triggered them.
func (r *Registry) StartGame(roomID, callerID string) error {
	room := r.Get(roomID)
	if room == nil {
		return &game.RefusalError{Kind: game.RefusalRoomNotFound}
	}
	return game.Start(room, callerID, r.rng(), r.dict, func() {
		r.Publish(context.Background(), room)
	})
}

// Dictionary exposes the process-wide dictionary, e.g. for practice
// sessions managed by the transport layer.
func (r *Registry) Dictionary() *dictionary.Dictionary { return r.dict }
