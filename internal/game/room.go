// Package game implements the per-room state machine: flip/reveal,
// claim windows and cooldowns, pre-steal arbitration, and the commands
// that mutate a Room's live Game. Every exported command acquires the
// owning Room's lock, mutates, then releases the lock before any
// outbound effect. Replay steps are recorded at game start, flip
// reveal, successful claim, claim-window expiry and game end.
package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/anagramthief/core/internal"
)

// RefusalKind enumerates command refusals that are not claim failures:
// they never place a player on cooldown, they just reject the command.
type RefusalKind string

const (
	RefusalNotYourTurn    RefusalKind = "not-your-turn"
	RefusalRoomFull       RefusalKind = "room-full"
	RefusalRoomNotFound   RefusalKind = "room-not-found"
	RefusalWrongCode      RefusalKind = "wrong-code"
	RefusalAlreadyInRoom  RefusalKind = "already-in-room"
	RefusalNotHost        RefusalKind = "not-host"
	RefusalWrongPhase     RefusalKind = "wrong-phase"
	RefusalBagEmpty       RefusalKind = "bag-empty"
	RefusalOnCooldown     RefusalKind = "on-cooldown"
	RefusalNoPreSteal     RefusalKind = "pre-steal-disabled"
	RefusalNotFound       RefusalKind = "not-found"
	RefusalInvalidFormat  RefusalKind = "invalid-format"
)

var refusalMessages = map[RefusalKind]string{
	RefusalNotYourTurn:   "It is not your turn.",
	RefusalRoomFull:      "Room is full.",
	RefusalRoomNotFound:  "Room not found.",
	RefusalWrongCode:     "Wrong room code.",
	RefusalAlreadyInRoom: "You are already in this room.",
	RefusalNotHost:       "Only the host can do that.",
	RefusalWrongPhase:    "That can't be done right now.",
	RefusalBagEmpty:      "The bag is empty.",
	RefusalOnCooldown:    "You are on cooldown.",
	RefusalNoPreSteal:    "Pre-steal is disabled in this room.",
	RefusalNotFound:      "Not found.",
	RefusalInvalidFormat: "Pre-steal entries must use letters A-Z only.",
}

// RefusalError is a command refusal: no cooldown, no replay step, just
// an error event back to the caller.
type RefusalError struct {
	Kind RefusalKind
}

func (e *RefusalError) Error() string { return refusalMessages[e.Kind] }

func refuse(kind RefusalKind) error { return &RefusalError{Kind: kind} }

// NewRoomParams bundles the validated fields of a room:create command.
type NewRoomParams struct {
	Name              string
	IsPublic          bool
	HostID            string
	HostName          string
	FlipTimerEnabled  bool
	FlipTimerSeconds  int
	ClaimTimerSeconds int
	PreStealEnabled   bool
	MaxPlayers        int
}

// clampFlipTimerSeconds and clampClaimTimerSeconds enforce the allowed
// timer ranges (flip 1-60s, claim 1-10s) by clamping rather than
// rejecting out-of-range input outright.
func clampFlipTimerSeconds(s int) int {
	switch {
	case s < internal.MinFlipTimerSeconds:
		return internal.MinFlipTimerSeconds
	case s > internal.MaxFlipTimerSeconds:
		return internal.MaxFlipTimerSeconds
	default:
		return s
	}
}

func clampClaimTimerSeconds(s int) int {
	switch {
	case s < internal.MinClaimTimerSeconds:
		return internal.MinClaimTimerSeconds
	case s > internal.MaxClaimTimerSeconds:
		return internal.MaxClaimTimerSeconds
	default:
		return s
	}
}

// clampMaxPlayers enforces the 2-8 room size range, defaulting to the
// room cap when the caller didn't specify one.
func clampMaxPlayers(n int) int {
	switch {
	case n == 0:
		return internal.MaxPlayersPerRoom
	case n < internal.MinPlayersPerRoom:
		return internal.MinPlayersPerRoom
	case n > internal.MaxPlayersPerRoom:
		return internal.MaxPlayersPerRoom
	default:
		return n
	}
}

// NewRoom builds a lobby-status Room with the host already seated as
// its first player. The room is not registered anywhere; the caller
// (internal/registry) owns the id->*Room map.
func NewRoom(id string, p NewRoomParams) *internal.Room {
	now := time.Now()
	room := &internal.Room{
		ID:                id,
		Name:              p.Name,
		IsPublic:          p.IsPublic,
		HostID:            p.HostID,
		Status:            internal.RoomLobby,
		CreatedAt:         now,
		FlipTimerEnabled:  p.FlipTimerEnabled,
		FlipTimerSeconds:  clampFlipTimerSeconds(p.FlipTimerSeconds),
		ClaimTimerSeconds: clampClaimTimerSeconds(p.ClaimTimerSeconds),
		PreStealEnabled:   p.PreStealEnabled,
		MaxPlayers:        clampMaxPlayers(p.MaxPlayers),
		Players:           make(map[string]*internal.Player),
		Spectators:        make(map[string]*internal.Player),
	}
	if !p.IsPublic {
		room.Code = uuid.NewString()[:6]
	}
	room.Players[p.HostID] = &internal.Player{
		ID:        p.HostID,
		Name:      p.HostName,
		Connected: true,
		JoinedAt:  now,
	}
	room.JoinOrder = append(room.JoinOrder, p.HostID)
	return room
}

// Join seats a new player in room. Guards: not already full, not
// already present, and (for private rooms) a matching code.
func Join(room *internal.Room, playerID, name, code string) error {
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if _, ok := room.Players[playerID]; ok {
		return refuse(RefusalAlreadyInRoom)
	}
	if !room.IsPublic && code != room.Code {
		return refuse(RefusalWrongCode)
	}
	if len(room.Players) >= room.MaxPlayers {
		return refuse(RefusalRoomFull)
	}

	room.Players[playerID] = &internal.Player{
		ID:        playerID,
		Name:      name,
		Connected: true,
		JoinedAt:  time.Now(),
	}
	room.JoinOrder = append(room.JoinOrder, playerID)
	if room.Game != nil {
		room.Game.TurnOrder = append(room.Game.TurnOrder, playerID)
		room.Game.PrecedenceOrder = append(room.Game.PrecedenceOrder, playerID)
	}
	return nil
}

// Spectate seats playerID as a spectator; spectators never occupy a
// player slot, never hold pre-steal entries, and are not subject to
// MaxPlayersPerRoom.
func Spectate(room *internal.Room, playerID, name string) error {
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if _, ok := room.Spectators[playerID]; ok {
		return refuse(RefusalAlreadyInRoom)
	}
	room.Spectators[playerID] = &internal.Player{
		ID:        playerID,
		Name:      name,
		Connected: true,
		JoinedAt:  time.Now(),
	}
	return nil
}

// Leave removes playerID from whichever of Players/Spectators it
// occupies. If a live game is running, the player's words are left in
// place (already-claimed words survive their owner leaving) but they
// are dropped from turn/precedence order and any claim window they held
// is cleared. A pending flip they started is left to reveal.
func Leave(room *internal.Room, playerID string) {
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if _, ok := room.Spectators[playerID]; ok {
		delete(room.Spectators, playerID)
		return
	}
	if _, ok := room.Players[playerID]; !ok {
		return
	}
	delete(room.Players, playerID)
	room.JoinOrder = removeID(room.JoinOrder, playerID)

	g := room.Game
	if g == nil {
		return
	}
	g.TurnOrder = removeID(g.TurnOrder, playerID)
	g.PrecedenceOrder = removeID(g.PrecedenceOrder, playerID)
	delete(g.ClaimCooldowns, playerID)
	if g.ClaimWindow != nil && g.ClaimWindow.PlayerID == playerID {
		if g.Timer != nil {
			g.Timer.Cancel(slotClaimWindow)
		}
		g.ClaimWindow = nil
		g.Phase = internal.PhaseIdle
		scheduleAutoFlipIfEnabled(room)
	}
	if len(g.TurnOrder) > 0 && g.TurnIndex >= len(g.TurnOrder) {
		g.TurnIndex = 0
	}
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
