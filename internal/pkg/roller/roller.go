// Package roller provides random sources for the dice engine
package roller

//go:generate mockgen -destination=mock/mock_roller.go -package=rollermock github.com/KirkDiggler/rpg-toolkit/dice Roller

import (
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
)

// Seeded is a deterministic dice.Roller. Two Seeded rollers created with the
// same seed produce the same sequence. It is safe for concurrent use, though
// interleaving between goroutines makes the per-caller sequence unpredictable.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ dice.Roller = (*Seeded)(nil)

// NewSeeded creates a roller backed by a PCG generator
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Roll returns a value in [1, size]
func (s *Seeded) Roll(size int) (int, error) {
	if size < 1 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.IntN(size) + 1, nil
}

// RollN returns count values in [1, size]
func (s *Seeded) RollN(count, size int) ([]int, error) {
	if size < 1 {
		return nil, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}
	if count < 0 {
		return nil, errors.InvalidArgumentf("count must not be negative, got %d", count)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = s.rng.IntN(size) + 1
	}
	return rolls, nil
}

// New returns the seeded roller when seed is set, otherwise the toolkit's
// default source
func New(seed *uint64) dice.Roller {
	if seed != nil {
		return NewSeeded(*seed)
	}
	return dice.DefaultRoller
}
