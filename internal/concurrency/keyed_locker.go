package concurrency

import (
	"context"
	"sync"
)

// KeyedLocker serializes work per key. A key's entry lives only while a caller
// holds or waits on it, so the map stays as small as the set of busy keys.
type KeyedLocker[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*keyedLock
}

type keyedLock struct {
	sem  chan struct{}
	refs int
}

// NewKeyedLocker creates an empty locker
func NewKeyedLocker[K comparable]() *KeyedLocker[K] {
	return &KeyedLocker[K]{locks: make(map[K]*keyedLock)}
}

// Lock blocks until key is free or ctx ends. The returned unlock func releases
// the key and may be called more than once.
func (l *KeyedLocker[K]) Lock(ctx context.Context, key K) (unlock func(), err error) {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &keyedLock{sem: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			l.release(key, entry)
		})
	}, nil
}

func (l *KeyedLocker[K]) release(key K, entry *keyedLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, key)
	}
}

// Len returns the number of keys currently held or awaited
func (l *KeyedLocker[K]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
