package utils

import (
	"math"
	"math/rand"
	"sync"
)

// Random is the source of randomness for game mechanics. Engines take one as a
// dependency so tests can seed or script every draw.
type Random interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// Intn returns a value in [0, n). It panics if n <= 0, like math/rand.
	Intn(n int) int
}

// NewRandom returns a deterministic source seeded with seed.
// *rand.Rand is not safe for concurrent use; give each engine its own.
func NewRandom(seed int64) Random {
	//nolint:gosec // G404: math/rand is acceptable for game mechanics, not for cryptographic purposes
	return rand.New(rand.NewSource(seed))
}

// globalRandom adapts the package-level math/rand functions, which are safe
// for concurrent use.
type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() } //nolint:gosec // Game logic randomness
func (globalRandom) Intn(n int) int   { return rand.Intn(n) }   //nolint:gosec // Game logic randomness

// GlobalRandom returns a shared, concurrency-safe source
func GlobalRandom() Random {
	return globalRandom{}
}

// LockedRandom serializes access to an underlying source so a seeded source
// can be shared between goroutines.
type LockedRandom struct {
	mu  sync.Mutex
	src Random
}

// NewLockedRandom wraps src with a mutex
func NewLockedRandom(src Random) *LockedRandom {
	return &LockedRandom{src: src}
}

// Float64 implements Random
func (l *LockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// Intn implements Random
func (l *LockedRandom) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

// RandomFloat returns a random float64 between 0.0 and 1.0
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	return UniformInt(GlobalRandom(), min, max)
}

// UniformInt draws an integer in [min, max] (inclusive) from r
func UniformInt(r Random, min, max int) int {
	if min >= max {
		return min
	}
	return r.Intn(max-min+1) + min
}

// UniformFloat draws a float in [min, max) from r
func UniformFloat(r Random, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.Float64()*(max-min)
}

// statEpsilon absorbs float representation error in stat products, so that
// 5*1.4 (7.000000000000001) is treated as exactly 7.
const statEpsilon = 1e-9

// CeilStat rounds a computed stat up to the next integer
func CeilStat(v float64) int {
	return int(math.Ceil(v - statEpsilon))
}

// RoundStat rounds half up (2.5 -> 3), matching how drop power is rounded
func RoundStat(v float64) int {
	return int(math.Floor(v + 0.5 + statEpsilon))
}
