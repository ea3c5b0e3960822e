package usecase

import "sync"

type refLock struct {
	sync.RWMutex
	refs int
}

// keyedLocker hands out one RWMutex per key. An entry lives only while someone holds or waits for it.
type keyedLocker struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

func newKeyedLocker() *keyedLocker {
	return &keyedLocker{
		locks: make(map[string]*refLock),
	}
}

// Lock - takes the exclusive lock for key and returns its release func.
func (that *keyedLocker) Lock(key string) func() {
	lock := that.acquire(key)
	lock.Lock()

	return func() {
		lock.Unlock()
		that.release(key)
	}
}

// RLock - takes the shared lock for key and returns its release func.
func (that *keyedLocker) RLock(key string) func() {
	lock := that.acquire(key)
	lock.RLock()

	return func() {
		lock.RUnlock()
		that.release(key)
	}
}

func (that *keyedLocker) acquire(key string) *refLock {
	that.mu.Lock()
	defer that.mu.Unlock()

	lock, ok := that.locks[key]
	if !ok {
		lock = &refLock{}
		that.locks[key] = lock
	}
	lock.refs++

	return lock
}

func (that *keyedLocker) release(key string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	lock := that.locks[key]
	lock.refs--
	if lock.refs == 0 {
		delete(that.locks, key)
	}
}

func (that *keyedLocker) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}
