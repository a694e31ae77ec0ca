// Package concurrency provides keyed locks for per-account critical sections.
package concurrency

import "sync"

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// LockManager serializes work per key, typically an account id.
// A key's lock is released from the table once no caller holds or waits on it.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*keyedLock)}
}

// WithLock runs fn while holding the lock for key and returns its error
func (lm *LockManager) WithLock(key string, fn func() error) error {
	l := lm.acquire(key)
	l.mu.Lock()
	defer lm.release(key, l)
	return fn()
}

func (lm *LockManager) acquire(key string) *keyedLock {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	l, ok := lm.locks[key]
	if !ok {
		l = &keyedLock{}
		lm.locks[key] = l
	}
	l.refs++
	return l
}

func (lm *LockManager) release(key string, l *keyedLock) {
	l.mu.Unlock()
	lm.mu.Lock()
	defer lm.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(lm.locks, key)
	}
}

// Len reports how many keys currently have a holder or waiter
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
