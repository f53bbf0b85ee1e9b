package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Dungeon Pacing
// ============================================================================

// DefaultAdvanceTimeout bounds one paced round, reward transfer included
const DefaultAdvanceTimeout = 5 * time.Second

// LogMsgAdvanceFailed is logged when a paced round fails
const LogMsgAdvanceFailed = "Paced dungeon round failed"

// Log field keys
const (
	LogFieldError = "error"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
