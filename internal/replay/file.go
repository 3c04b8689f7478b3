package replay

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/anagramthief/core/internal"
)

const (
	fileKind    = "anagram-thief-replay"
	fileVersion = 1
)

// Meta describes where an exported replay file came from.
type Meta struct {
	Source       string `json:"source"`
	SourceRoomID string `json:"sourceRoomId,omitempty"`
	SourceStatus string `json:"sourceStatus"`
	App          string `json:"app,omitempty"`
}

// File is the v1 replay export format: the recorded steps, optionally
// pre-computed analysis keyed by step index, and export metadata.
type File struct {
	Kind                 string                    `json:"kind"`
	V                     int                       `json:"v"`
	ExportedAt            int64                    `json:"exportedAt"`
	Replay                internal.Replay          `json:"replay"`
	AnalysisByStepIndex   map[string]AnalysisResult `json:"analysisByStepIndex,omitempty"`
	Meta                  Meta                      `json:"meta"`
}

// NewFile builds a File for a just-ended room's replay.
func NewFile(rep internal.Replay, exportedAtMs int64, sourceRoomID string) File {
	return File{
		Kind:       fileKind,
		V:          fileVersion,
		ExportedAt: exportedAtMs,
		Replay:     rep,
		Meta: Meta{
			Source:       "ended-room",
			SourceRoomID: sourceRoomID,
			SourceStatus: string(internal.RoomEnded),
		},
	}
}

// Serialize marshals f to its canonical JSON wire form.
func Serialize(f File) ([]byte, error) {
	return json.Marshal(f)
}

// Parse decodes and validates a v1 replay file: kind and version must
// match exactly, step indices must be 0,1,2,... with no gaps, every
// snapshot must carry a non-empty Status, and analysis keys must fall
// within [0, stepCount).
func Parse(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("replay file: invalid JSON: %w", err)
	}
	if f.Kind != fileKind {
		return nil, fmt.Errorf("replay file: missing or wrong kind %q", f.Kind)
	}
	if f.V != fileVersion {
		return nil, fmt.Errorf("replay file: unsupported version %d", f.V)
	}
	for i, step := range f.Replay.Steps {
		if step.Index != i {
			return nil, fmt.Errorf("replay file: step index %d out of sequence (want %d)", step.Index, i)
		}
		if step.State.Status == "" {
			return nil, fmt.Errorf("replay file: step %d snapshot missing status", i)
		}
	}
	stepCount := len(f.Replay.Steps)
	for key := range f.AnalysisByStepIndex {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= stepCount {
			return nil, fmt.Errorf("replay file: analysis key %q out of range [0,%d)", key, stepCount)
		}
	}
	return &f, nil
}
