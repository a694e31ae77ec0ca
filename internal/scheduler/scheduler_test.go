package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saofrance/shop-api/internal/worker"
)

type countingJob struct {
	runs atomic.Int32
	done chan struct{}
}

func (j *countingJob) Process(ctx context.Context) error {
	j.runs.Add(1)
	select {
	case j.done <- struct{}{}:
	default:
	}
	return nil
}

func startPool(t *testing.T) *worker.Pool {
	t.Helper()
	pool := worker.NewPool(1, 10)
	pool.Start()
	t.Cleanup(func() { _ = pool.Stop(context.Background()) })
	return pool
}

func waitRuns(t *testing.T, job *countingJob, n int, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for i := 0; i < n; i++ {
		select {
		case <-job.done:
		case <-deadline:
			require.FailNow(t, "timeout waiting for job runs", "got %d of %d", i, n)
		}
	}
}

func TestSchedule_RunsImmediately(t *testing.T) {
	sched := New(startPool(t))
	defer sched.Stop()

	job := &countingJob{done: make(chan struct{}, 10)}
	sched.Schedule("prices", time.Hour, job)

	waitRuns(t, job, 1, time.Second)
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestSchedule_RepeatsOnInterval(t *testing.T) {
	sched := New(startPool(t))
	defer sched.Stop()

	job := &countingJob{done: make(chan struct{}, 10)}
	sched.Schedule("prices", 10*time.Millisecond, job)

	waitRuns(t, job, 3, time.Second)
	assert.GreaterOrEqual(t, job.runs.Load(), int32(3))
}

func TestStop_HaltsTicks(t *testing.T) {
	sched := New(startPool(t))
	job := &countingJob{done: make(chan struct{}, 100)}
	sched.Schedule("prices", 5*time.Millisecond, job)
	waitRuns(t, job, 1, time.Second)

	sched.Stop()
	sched.Stop()
	time.Sleep(20 * time.Millisecond)
	after := job.runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.LessOrEqual(t, job.runs.Load()-after, int32(1))
}
