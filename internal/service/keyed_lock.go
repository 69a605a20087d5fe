package service

import (
	"strconv"
	"sync"
)

// keyedLock serialises work per asset key so that concurrent transforms of
// the same file never interleave their read-modify-write cycles, while
// different assets proceed in parallel. Entries are never evicted; the map
// is bounded by the number of distinct assets touched by the process.
type keyedLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLock() *keyedLock {
	return &keyedLock{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the (ownerID, filename) pair and returns the
// matching unlock function.
func (k *keyedLock) Lock(ownerID int64, filename string) func() {
	key := strconv.FormatInt(ownerID, 10) + "/" + filename

	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
