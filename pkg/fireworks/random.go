package fireworks

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Random is the engine's only source of randomness. Seeding it makes a whole
// show reproducible.
type Random struct {
	src rand.Source
}

// NewRandom returns a PCG-backed Random.
func NewRandom(seed uint64) *Random {
	return &Random{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
}

// NewRandomFrom wraps an existing source.
func NewRandomFrom(src rand.Source) *Random {
	return &Random{src: src}
}

// Between samples uniformly from [min, max). A degenerate range returns min.
func (r *Random) Between(min, max float64) float64 {
	if max <= min {
		return min
	}
	return distuv.Uniform{Min: min, Max: max, Src: r.src}.Rand()
}

// In samples uniformly from rg.
func (r *Random) In(rg Range) float64 {
	return r.Between(rg.Min, rg.Max)
}

// Angle samples a direction in [0, 2π).
func (r *Random) Angle() float64 {
	return r.Between(0, 2*math.Pi)
}

// Chance reports true with probability p.
func (r *Random) Chance(p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return distuv.Bernoulli{P: p, Src: r.src}.Rand() == 1
}

// Index picks an integer in [0, n). n <= 1 yields 0.
func (r *Random) Index(n int) int {
	if n <= 1 {
		return 0
	}
	i := int(r.Between(0, float64(n)))
	if i >= n {
		i = n - 1
	}
	return i
}
