package concurrency

import "sync"

// Locker hands out one mutex per key. Every mutating operation on a protocol
// or sale must hold the lock of its token id for the whole transaction, which
// serializes the engine the way a single-writer runtime would.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocker new keyed locker
func NewLocker() *Locker {
	return &Locker{locks: map[string]*sync.Mutex{}}
}

// Lock locks the mutex of key and returns the unlock func
func (l *Locker) Lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
