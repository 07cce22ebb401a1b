package math

import (
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// ColorSource draws random RGB triples with channels uniform in [0, 1).
type ColorSource struct {
	rng *rand.Rand
}

// NewColorSource seeds from the wall clock when seed is zero.
func NewColorSource(seed uint64) *ColorSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &ColorSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *ColorSource) Next() [3]float32 {
	return [3]float32{s.rng.Float32(), s.rng.Float32(), s.rng.Float32()}
}
