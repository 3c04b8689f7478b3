package game

import (
	"time"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/replay"
)

// Flip starts the reveal interval for playerID. Guards: Idle phase,
// playerID is the current turn player, and the bag isn't empty.
func Flip(room *internal.Room, playerID string) error {
	room.Mu.Lock()
	defer room.Mu.Unlock()
	return doFlip(room, playerID)
}

func doFlip(room *internal.Room, playerID string) error {
	g := room.Game
	if g == nil || room.Status != internal.RoomInGame {
		return refuse(RefusalWrongPhase)
	}
	if g.Phase != internal.PhaseIdle {
		return refuse(RefusalWrongPhase)
	}
	if playerID != room.TurnPlayerID() {
		return refuse(RefusalNotYourTurn)
	}
	if len(g.Bag) == 0 {
		return refuse(RefusalBagEmpty)
	}

	g.Timer.Cancel(slotAutoFlip)

	now := time.Now()
	g.Phase = internal.PhaseRevealing
	g.PendingFlip = &internal.PendingFlip{
		PlayerID:  playerID,
		StartedAt: now,
		RevealsAt: now.Add(internal.DefaultFlipRevealMs * time.Millisecond),
	}
	g.Timer.Start(slotPendingFlipReveal, internal.DefaultFlipRevealMs*time.Millisecond, func() {
		fireLocked(room, pendingFlipRevealFired)
	})
	return nil
}

// autoFlipFired is the autoFlip timer callback: it flips on behalf of
// the current turn player as if they had called Flip themselves.
// Callers must hold room.Mu.
func autoFlipFired(room *internal.Room) {
	g := room.Game
	if g == nil || room.Status != internal.RoomInGame || g.Phase != internal.PhaseIdle {
		return
	}
	_ = doFlip(room, room.TurnPlayerID())
}

// pendingFlipRevealFired draws the tile, advances the turn, clears all
// cooldowns unconditionally, runs pre-steal arbitration, and re-arms
// autoFlip if the game is still idle afterward. Callers must hold
// room.Mu.
func pendingFlipRevealFired(room *internal.Room) {
	g := room.Game
	if g == nil || g.Phase != internal.PhaseRevealing {
		return
	}

	tile := drawFromGameBag(g)
	if tile != nil {
		g.CenterTiles = append(g.CenterTiles, *tile)
	}
	g.PendingFlip = nil
	g.Phase = internal.PhaseIdle

	if len(g.TurnOrder) > 0 {
		g.TurnIndex = (g.TurnIndex + 1) % len(g.TurnOrder)
	}
	for id := range g.ClaimCooldowns {
		delete(g.ClaimCooldowns, id)
	}

	now := time.Now()
	replay.Record(room, internal.StepFlipRevealed, now)

	arbitratePreSteal(room, now)

	if len(g.Bag) == 0 && len(g.CenterTiles) > 0 && g.EndTimerEndsAt == nil {
		startEndCountdown(room, now)
		return
	}
	if g.Phase == internal.PhaseIdle {
		scheduleAutoFlipIfEnabled(room)
	}
}

// startEndCountdown begins the fixed 60s end-of-game timer. Callers
// must hold room.Mu.
func startEndCountdown(room *internal.Room, now time.Time) {
	g := room.Game
	endsAt := now.Add(internal.EndCountdownSeconds * time.Second)
	g.EndTimerEndsAt = &endsAt
	g.Timer.Start(slotEndCountdown, internal.EndCountdownSeconds*time.Second, func() {
		fireLocked(room, endCountdownFired)
	})
}

func endCountdownFired(room *internal.Room) {
	g := room.Game
	if g == nil || room.Status != internal.RoomInGame {
		return
	}
	room.Status = internal.RoomEnded
	g.Phase = internal.PhaseEnded
	g.Timer.CancelAll()
	replay.Record(room, internal.StepGameEnded, time.Now())
}
