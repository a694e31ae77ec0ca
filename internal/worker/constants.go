package worker

import "time"

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 30 * time.Second

// Log messages
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerJobPanic  = "Worker job panicked"
	LogMsgQueueFull       = "Worker queue full, job dropped"
	LogMsgPoolStopped     = "Worker pool stopped"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
	TestWaitTimeout      = time.Second
)
