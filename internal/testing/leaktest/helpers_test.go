package leaktest

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingTB captures failures instead of failing the real test
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(string, ...any) { r.failed = true }

func TestGoroutineChecker_NoLeak(t *testing.T) {
	checker := NewGoroutineChecker(t)
	checker.Check(0)
}

func TestGoroutineChecker_DetectsLeak(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)

	done := make(chan struct{})
	go func() { <-done }()

	checker.Check(0)
	close(done)

	assert.True(t, rec.failed)
}

func TestGoroutineChecker_WithinTolerance(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)

	done := make(chan struct{})
	go func() { <-done }()

	checker.Check(1)
	close(done)

	assert.False(t, rec.failed)
}

func TestCheckStopped(t *testing.T) {
	var wg sync.WaitGroup
	quit := make(chan struct{})

	CheckStopped(t,
		func() {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-quit
			}()
		},
		func() {
			close(quit)
			wg.Wait()
		})
}
