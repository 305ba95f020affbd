package generator

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// RNG is a deterministic pseudo-random sequence keyed by a single seed.
// It is a plain 64-bit linear congruential generator: no wall clock or
// hardware entropy ever feeds it, so replaying a seed reproduces the
// exact draw sequence. Every component of a generation run must draw
// from the one shared instance.
type RNG struct {
	state uint64
}

// Knuth MMIX constants
const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 1442695040888963407
)

// NewRNG creates an RNG seeded with the given value
func NewRNG(seed int64) *RNG {
	r := &RNG{state: uint64(seed)}
	// First draw after seeding correlates strongly with the raw seed,
	// so burn one step.
	r.step()
	return r
}

func (r *RNG) step() uint64 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return r.state
}

// Float returns the next value in [0, 1)
func (r *RNG) Float() float64 {
	return float64(r.step()>>11) / (1 << 53)
}

// Intn returns a uniform int in [0, n). n must be positive.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float() * float64(n))
}

// Range returns a uniform int in [min, max] inclusive
func (r *RNG) Range(minVal, maxVal int) int {
	if maxVal <= minVal {
		return minVal
	}
	return minVal + r.Intn(maxVal-minVal+1)
}

// Chance returns true with probability p
func (r *RNG) Chance(p float64) bool {
	return r.Float() < p
}

// Pick returns a uniformly chosen element of items, which must be
// non-empty
func Pick[T any](r *RNG, items []T) T {
	return items[r.Intn(len(items))]
}

// Shuffle performs a Fisher-Yates shuffle over n elements
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// WeightedIndex picks an index by cumulative-weight sampling. Returns -1
// when the total weight is not positive.
func (r *RNG) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	roll := r.Float() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if roll < acc {
			return i
		}
	}
	return len(weights) - 1
}

// seededRoller adapts the RNG to the rpg-toolkit dice.Roller interface
// so dice-notation quantities stay on the seeded sequence.
type seededRoller struct {
	rng *RNG
}

// Roller returns a dice.Roller backed by this RNG
func (r *RNG) Roller() dice.Roller {
	return &seededRoller{rng: r}
}

// Roll returns a single die roll in [1, size]
func (s *seededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}
	return 1 + s.rng.Intn(size), nil
}

// RollN returns count rolls of a size-sided die
func (s *seededRoller) RollN(count, size int) ([]int, error) {
	if count <= 0 {
		return nil, errors.InvalidArgumentf("dice count must be positive, got %d", count)
	}
	rolls := make([]int, count)
	for i := range rolls {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		rolls[i] = v
	}
	return rolls, nil
}
