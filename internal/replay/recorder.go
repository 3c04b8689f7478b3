package replay

import (
	"time"

	"github.com/anagramthief/core/internal"
)

// Record appends a replay step of the given kind iff room's current
// snapshot differs from the last recorded one. Callers must hold
// room.Mu; this never fails and never blocks on I/O.
func Record(room *internal.Room, kind internal.ReplayStepKind, at time.Time) {
	g := room.Game
	if g == nil {
		return
	}
	snap := Snapshot(room)
	h := Hash(snap)
	if h == g.LastReplaySnapshotHash {
		return
	}
	g.LastReplaySnapshotHash = h
	g.Replay.Steps = append(g.Replay.Steps, internal.ReplayStep{
		Index: len(g.Replay.Steps),
		At:    at,
		Kind:  kind,
		State: snap,
	})
}
