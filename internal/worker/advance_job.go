package worker

import (
	"context"
	"time"

	"github.com/osse101/KubeRPG_Go/internal/logger"
)

// Advancer plays a dungeon round when one is due
type Advancer interface {
	AutoAdvance(ctx context.Context) error
}

// AdvanceJob paces the dungeon: each run plays at most one round
type AdvanceJob struct {
	dungeon Advancer
	timeout time.Duration
}

// NewAdvanceJob creates the pacing job. A zero timeout uses DefaultAdvanceTimeout.
func NewAdvanceJob(dungeon Advancer, timeout time.Duration) *AdvanceJob {
	if timeout <= 0 {
		timeout = DefaultAdvanceTimeout
	}
	return &AdvanceJob{dungeon: dungeon, timeout: timeout}
}

// Process implements Job
func (j *AdvanceJob) Process(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	if err := j.dungeon.AutoAdvance(ctx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgAdvanceFailed, LogFieldError, err)
		return err
	}
	return nil
}
