package replay

import (
	"errors"
	"fmt"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/dictionary"
	"github.com/anagramthief/core/internal/practice"
	"github.com/anagramthief/core/internal/wordform"
)

// Basis names which recorded step the analysis is computed against.
type Basis string

const (
	BasisStep        Basis = "step"
	BasisBeforeClaim Basis = "before-claim"
)

// AnalysisResult is the outcome of analyzing one replay step: the best
// play available from the chosen basis snapshot, and every option that
// was available.
type AnalysisResult struct {
	RequestedStepIndex int                    `json:"requestedStepIndex"`
	StepKind           internal.ReplayStepKind `json:"stepKind"`
	Basis              Basis                  `json:"basis"`
	BasisStepIndex     int                    `json:"basisStepIndex"`
	BestScore          int                    `json:"bestScore"`
	AllOptions         []wordform.Option      `json:"allOptions"`
}

// ErrAnalysisFailed is the sentinel the transport layer renders as a
// generic "Replay analysis failed." message; wrapped errors carry the
// specific reason for logs.
var ErrAnalysisFailed = errors.New("replay analysis failed")

// AnalyzeStep re-runs the word-formation engine against the basis
// snapshot for stepIndex: the step itself for a flip-revealed step, or
// the previous step for a claim-succeeded step (comparing what was
// possible right before the claim against what was actually played).
func AnalyzeStep(rep internal.Replay, stepIndex int, dict *dictionary.Dictionary) (*AnalysisResult, error) {
	if stepIndex < 0 || stepIndex >= len(rep.Steps) {
		return nil, fmt.Errorf("%w: step %d out of range", ErrAnalysisFailed, stepIndex)
	}
	step := rep.Steps[stepIndex]

	var basis Basis
	var basisIndex int
	switch step.Kind {
	case internal.StepFlipRevealed:
		basis, basisIndex = BasisStep, stepIndex
	case internal.StepClaimSuccess:
		if stepIndex == 0 {
			return nil, fmt.Errorf("%w: claim at step 0 has no prior step", ErrAnalysisFailed)
		}
		basis, basisIndex = BasisBeforeClaim, stepIndex-1
	default:
		return nil, fmt.Errorf("%w: step kind %q is not analyzable", ErrAnalysisFailed, step.Kind)
	}

	basisSnap := rep.Steps[basisIndex].State
	puzzle := practice.Puzzle{CenterTiles: basisSnap.CenterTiles}
	for _, p := range basisSnap.Players {
		for _, w := range p.Words {
			puzzle.ExistingWords = append(puzzle.ExistingWords, wordform.ExistingWord{
				WordID:  w.ID,
				OwnerID: p.ID,
				Text:    w.Text,
				TileIDs: append([]string(nil), w.TileIDs...),
			})
		}
	}

	options := practice.Solve(puzzle, dict)
	bestScore := 0
	if len(options) > 0 {
		bestScore = options[0].Score
	}

	return &AnalysisResult{
		RequestedStepIndex: stepIndex,
		StepKind:           step.Kind,
		Basis:              basis,
		BasisStepIndex:     basisIndex,
		BestScore:          bestScore,
		AllOptions:         options,
	}, nil
}
