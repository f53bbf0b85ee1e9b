package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/KubeRPG_Go/internal/worker"
	"github.com/osse101/KubeRPG_Go/internal/testing/leaktest"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount atomic.Int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	m.RunCount.Add(1)
	// Signal that job ran
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	// Create worker pool
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	// Create scheduler
	sched := New(pool)
	defer sched.Stop()

	// Create mock job
	job := &MockJob{
		Done: make(chan struct{}, 10),
	}

	// Schedule job every 10ms
	sched.Schedule(10*time.Millisecond, job)

	// Wait for at least 2 runs
	timeout := time.After(time.Second)
	runCount := 0

	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

func TestScheduler_StopHaltsTicks(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	job := &MockJob{Done: make(chan struct{}, 100)}
	sched.Schedule(5*time.Millisecond, job)

	assert.Eventually(t, func() bool { return job.RunCount.Load() > 0 }, time.Second, 5*time.Millisecond)
	sched.Stop()
	sched.Stop()

	// let an already queued job drain before sampling
	time.Sleep(20 * time.Millisecond)
	after := job.RunCount.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, job.RunCount.Load())
}

func TestScheduler_StopLeavesNoGoroutines(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start()
	defer pool.Stop()

	s := New(pool)
	leaktest.CheckStopped(t, func() {
		s.Schedule(time.Hour, &MockJob{Done: make(chan struct{}, 1)})
	}, s.Stop)
}
