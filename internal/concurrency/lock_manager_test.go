package concurrency

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithLock_Serializes(t *testing.T) {
	lm := NewLockManager()
	var wg sync.WaitGroup
	inside, maxInside := 0, 0
	var mu sync.Mutex

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.WithLock("acc-1", func() error {
				mu.Lock()
				inside++
				maxInside = max(maxInside, inside)
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxInside)
	assert.Zero(t, lm.Len(), "idle keys are dropped")
}

func TestWithLock_DistinctKeysDoNotBlock(t *testing.T) {
	lm := NewLockManager()
	held := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = lm.WithLock("acc-1", func() error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	done := make(chan struct{})
	go func() {
		_ = lm.WithLock("acc-2", func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on acc-2 blocked behind acc-1")
	}
	close(release)
}

func TestWithLock_ReturnsError(t *testing.T) {
	lm := NewLockManager()
	errBoom := errors.New("boom")
	assert.ErrorIs(t, lm.WithLock("k", func() error { return errBoom }), errBoom)
	assert.Zero(t, lm.Len())
}
