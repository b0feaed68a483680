package service

import "sync"

// An Inflight is a set of units (cart items, products) with a mutation in
// flight. A unit is locked for mutation while it is in the set.
type Inflight struct {
	mu  sync.Mutex
	ids map[int64]struct{}
}

func NewInflight() *Inflight {
	return &Inflight{ids: make(map[int64]struct{})}
}

// TryAcquire adds id to the set. It returns false if id is already there.
func (f *Inflight) TryAcquire(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ids[id]; ok {
		return false
	}
	f.ids[id] = struct{}{}
	return true
}

func (f *Inflight) Release(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ids, id)
}

// Locked reports whether id is locked for mutation.
func (f *Inflight) Locked(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[id]
	return ok
}

func (f *Inflight) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ids)
}
