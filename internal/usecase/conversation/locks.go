package conversation

import "sync"

type userLock struct {
	mu   sync.Mutex
	refs int
}

// keyedMutex serializes work per user. Entries are dropped once no
// goroutine holds or waits for them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int64]*userLock)}
}

func (k *keyedMutex) Lock(id int64) func() {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &userLock{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
