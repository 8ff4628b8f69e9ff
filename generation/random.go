package generation

import "math/rand"

// Random is the deterministic generator every stage draws from. Reseeding
// with the same seed reproduces the same sequence and therefore the same world.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a generator seeded with seed
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// SetSeed restarts the sequence from seed
func (r *Random) SetSeed(seed int64) {
	r.rng = rand.New(rand.NewSource(seed))
}

// Float returns a uniform value in [0, 1)
func (r *Random) Float() float64 {
	return r.rng.Float64()
}

// Int returns a uniform value in [0, n); n <= 0 yields 0
func (r *Random) Int(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// Bool returns true or false with equal probability
func (r *Random) Bool() bool {
	return r.rng.Intn(2) == 1
}
