package practice

import (
	"errors"
	"math/rand"

	"github.com/anagramthief/core/internal/dictionary"
)

// ErrNoActivePuzzle is returned by Session operations that require a
// puzzle already be started.
var ErrNoActivePuzzle = errors.New("no active practice puzzle")

// Session holds one connection's solo-practice state: the current
// puzzle and difficulty. It carries no timer of its own — any
// time-limit UX for practice mode is a client/transport concern, not
// a core one; the core stays synchronous.
type Session struct {
	Difficulty int
	Puzzle     *Puzzle
	dict       *dictionary.Dictionary
	rng        *rand.Rand
}

// NewSession builds a Session bound to dict, with an optional seeded
// rng for deterministic puzzle generation in tests.
func NewSession(dict *dictionary.Dictionary, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Session{Difficulty: 1, dict: dict, rng: rng}
}

// Start generates (or accepts a shared) puzzle at the session's current
// difficulty and makes it the active puzzle.
func (s *Session) Start(shared *Puzzle) Puzzle {
	if shared != nil {
		s.Puzzle = shared
		return *shared
	}
	p := Generate(s.Difficulty, s.rng, s.dict)
	s.Puzzle = &p
	return p
}

// SetDifficulty changes the difficulty used by future Start calls.
func (s *Session) SetDifficulty(difficulty int) {
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 5 {
		difficulty = 5
	}
	s.Difficulty = difficulty
}

// Submit evaluates word against the active puzzle.
func (s *Session) Submit(word string) (Evaluation, error) {
	if s.Puzzle == nil {
		return Evaluation{}, ErrNoActivePuzzle
	}
	return Evaluate(*s.Puzzle, word, s.dict), nil
}

// Skip abandons the current puzzle and generates a new one at the same
// difficulty.
func (s *Session) Skip() Puzzle {
	return s.Start(nil)
}

// Next is an alias for Skip: skip abandons an unsolved puzzle while
// next follows a scored submission, but both produce a fresh puzzle
// from the session's perspective.
func (s *Session) Next() Puzzle {
	return s.Start(nil)
}

// ValidateCustom reports whether a shared puzzle (e.g. from a share
// token) is solvable at all.
func ValidateCustom(puzzle Puzzle, dict *dictionary.Dictionary) (bool, string) {
	if len(Solve(puzzle, dict)) == 0 {
		return false, "Custom puzzle is invalid or has no valid plays."
	}
	return true, ""
}
