package service

import "sync"

// surveyLocks serializes edits per survey id
type surveyLocks struct {
	mu    sync.Mutex
	locks map[string]*surveyLock
}

type surveyLock struct {
	sync.Mutex
	refs int
}

// lock blocks until id is free and returns the matching unlock
func (l *surveyLocks) lock(id string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*surveyLock)
	}
	sl, ok := l.locks[id]
	if !ok {
		sl = &surveyLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.Lock()
	return func() {
		sl.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
