// Package fakerand provides a scripted utils.Random for tests that need to
// pin exact draws.
package fakerand

import "sync"

// Scripted returns queued values in order. When a queue runs dry it falls
// back to the configured defaults, so tests only script the draws they care about.
type Scripted struct {
	mu           sync.Mutex
	floats       []float64
	ints         []int
	DefaultFloat float64
	DefaultInt   int

	// Calls records every Intn bound, in order
	IntnCalls []int
}

// New creates a Scripted source that returns 0 for every unscripted draw
func New() *Scripted {
	return &Scripted{}
}

// WithFloats appends values to the Float64 queue
func (s *Scripted) WithFloats(v ...float64) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats = append(s.floats, v...)
	return s
}

// WithInts appends values to the Intn queue. Values are clamped into [0, n).
func (s *Scripted) WithInts(v ...int) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints = append(s.ints, v...)
	return s
}

// Float64 implements utils.Random
func (s *Scripted) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return s.DefaultFloat
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// Intn implements utils.Random
func (s *Scripted) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.IntnCalls = append(s.IntnCalls, n)
	v := s.DefaultInt
	if len(s.ints) > 0 {
		v = s.ints[0]
		s.ints = s.ints[1:]
	}
	if v < 0 {
		v = 0
	}
	if n > 0 && v >= n {
		v = n - 1
	}
	return v
}

// Remaining reports how many scripted floats and ints have not been consumed
func (s *Scripted) Remaining() (floats, ints int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.floats), len(s.ints)
}
