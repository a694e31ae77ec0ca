// Package scheduler runs periodic jobs, such as price reconciliation, on the worker pool.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/saofrance/shop-api/internal/worker"
)

// Scheduler hands jobs to the worker pool on fixed intervals
type Scheduler struct {
	pool     *worker.Pool
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule runs job once right away and then every interval until Stop.
// Runs that find the pool queue full are dropped, never stacked.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	slog.Default().Info(LogMsgJobScheduled, "job", name, "interval", interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.submit(name, job)
		for {
			select {
			case <-ticker.C:
				s.submit(name, job)
			case <-s.quit:
				return
			}
		}
	}()
}

func (s *Scheduler) submit(name string, job worker.Job) {
	if !s.pool.TryEnqueue(job) {
		slog.Default().Warn(LogMsgTickSkipped, "job", name)
	}
}

// Stop halts every schedule and waits for the tick loops to exit.
// Jobs already queued are left to the pool.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
