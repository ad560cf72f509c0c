package service

import "sync"

// exchangeLocks hands out one mutex per exchange id and forgets it once unused.
type exchangeLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newExchangeLocks() *exchangeLocks {
	return &exchangeLocks{locks: make(map[string]*lockEntry)}
}

// lock blocks until id is free and returns the matching unlock.
func (l *exchangeLocks) lock(id string) func() {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &lockEntry{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *exchangeLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
