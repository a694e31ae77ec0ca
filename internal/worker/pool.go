package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/metrics"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool runs jobs on a fixed number of goroutines
type Pool struct {
	workers    int
	jobQueue   chan Job
	jobTimeout time.Duration
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, queueSize),
		jobTimeout: DefaultJobTimeout,
		quit:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			// finish what was queued before Stop
			for {
				select {
				case job := <-p.jobQueue:
					p.run(job)
				default:
					return
				}
			}
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(p.ctx, p.jobTimeout)
	defer cancel()
	log := logger.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			metrics.BackgroundJobsFailed.Inc()
			log.Error(LogMsgWorkerJobPanic, "panic", fmt.Sprint(r))
		}
	}()

	if err := job.Process(ctx); err != nil {
		metrics.BackgroundJobsFailed.Inc()
		log.Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// Enqueue adds a job to the queue, blocking while it is full.
// It returns false once the pool is stopping.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-p.quit:
		return false
	}
}

// TryEnqueue adds a job without blocking and reports whether it was queued
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.FromContext(p.ctx).Warn(LogMsgQueueFull, "queue_size", cap(p.jobQueue))
		return false
	}
}

// Stop drains the queue, waits for the workers and cancels running jobs once ctx expires
func (p *Pool) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.quit) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		logger.FromContext(ctx).Info(LogMsgPoolStopped)
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return ctx.Err()
	}
}
