// Package concurrency provides per-key critical sections.
package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key, so work on different accounts
// runs in parallel while work on the same account is serialized.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates an empty LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for key, creating it on first use
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the lock for key
func (lm *LockManager) WithLock(key string, fn func() error) error {
	lock := lm.GetLock(key)
	lock.Lock()
	defer lock.Unlock()
	return fn()
}

// Clear drops every lock. Callers must ensure no lock is held or about to be
// taken, since a later GetLock hands out a fresh mutex.
func (lm *LockManager) Clear() {
	lm.locks.Range(func(key, _ any) bool {
		lm.locks.Delete(key)
		return true
	})
}

// Len reports how many keys currently have a lock
func (lm *LockManager) Len() int {
	n := 0
	lm.locks.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
