package game

import (
	"math/rand"
	"time"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/bag"
	"github.com/anagramthief/core/internal/dictionary"
	"github.com/anagramthief/core/internal/replay"
	"github.com/anagramthief/core/internal/timer"
)

// Timer slot names, shared by every file in this package. Per-player
// claim cooldowns are not scheduler slots at all: they are endsAt
// timestamps in Game.ClaimCooldowns, checked on demand and cleared as a
// group on every flip-reveal (see flip.go), so there is nothing here to
// cancel individually.
const (
	slotAutoFlip          = "autoFlip"
	slotPendingFlipReveal = "pendingFlipReveal"
	slotClaimWindow       = "claimWindow"
	slotEndCountdown      = "endCountdown"
)

// Start builds the bag, seats the turn/precedence order, and enters
// in-game status. Guard: caller must be the host, room must be in
// lobby, and at least one player must be seated. onChange (may be nil)
// is wired onto the new Game so later timer-fired transitions can tell
// their owner to publish fresh state.
func Start(room *internal.Room, callerID string, rng *rand.Rand, dict *dictionary.Dictionary, onChange func()) error {
	room.Mu.Lock()

	if room.Status != internal.RoomLobby {
		room.Mu.Unlock()
		return refuse(RefusalWrongPhase)
	}
	if callerID != room.HostID {
		room.Mu.Unlock()
		return refuse(RefusalNotHost)
	}
	if len(room.Players) < internal.MinPlayersToStart {
		room.Mu.Unlock()
		return refuse(RefusalWrongPhase)
	}

	order := room.PlayerIDs()
	b := bag.New(rng)
	g := &internal.Game{
		Phase:           internal.PhaseIdle,
		Timer:           timer.New(),
		Dict:            dict,
		Bag:             b.Tiles(),
		TurnOrder:       order,
		TurnIndex:       0,
		ClaimCooldowns:  make(map[string]time.Time),
		PreStealEnabled: room.PreStealEnabled,
		PrecedenceOrder: append([]string(nil), order...),
		OnChange:        onChange,
	}
	room.Game = g
	room.Status = internal.RoomInGame

	replay.Record(room, internal.StepGameStart, time.Now())
	scheduleAutoFlipIfEnabled(room)

	room.Mu.Unlock()
	return nil
}

// fireLocked runs fn under room.Mu then, if the game carries an
// OnChange callback, invokes it after the lock is released. Every timer
// expiry callback (as opposed to a direct command, which publishes
// through its own caller) goes through this so async transitions are
// still observable by subscribers.
func fireLocked(room *internal.Room, fn func(*internal.Room)) {
	room.Mu.Lock()
	fn(room)
	var onChange func()
	if room.Game != nil {
		onChange = room.Game.OnChange
	}
	room.Mu.Unlock()
	if onChange != nil {
		onChange()
	}
}

// drawFromGameBag pops the next tile from g.Bag, mirroring bag.DrawOne
// but operating on the plain slice Game stores (see bag.Tiles doc).
func drawFromGameBag(g *internal.Game) *internal.Tile {
	if len(g.Bag) == 0 {
		return nil
	}
	t := g.Bag[len(g.Bag)-1]
	g.Bag = g.Bag[:len(g.Bag)-1]
	return &t
}

// scheduleAutoFlipIfEnabled (re)arms the idle auto-flip timer when the
// room wants it and the game can still progress. Callers must hold
// room.Mu.
func scheduleAutoFlipIfEnabled(room *internal.Room) {
	g := room.Game
	if g == nil || !room.FlipTimerEnabled || g.Phase != internal.PhaseIdle || len(g.Bag) == 0 {
		return
	}
	g.Timer.Start(slotAutoFlip, time.Duration(room.FlipTimerSeconds)*time.Second, func() {
		fireLocked(room, autoFlipFired)
	})
}
