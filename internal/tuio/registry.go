package tuio

import "sync"

// registry is the committed entity set of one profile. Readers on any
// goroutine take the read lock; only frame commits take the write lock.
type registry[E any, P entity[E]] struct {
	mu    sync.RWMutex
	items map[int64]P
	order []int64
	ids   *idPool
}

func newRegistry[E any, P entity[E]](dense bool) *registry[E, P] {
	r := &registry[E, P]{items: make(map[int64]P)}
	if dense {
		r.ids = newIDPool()
	}
	return r
}

// snapshot copies every committed entity in arrival order.
func (r *registry[E, P]) snapshot() []E {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]E, 0, len(r.order))
	for _, sid := range r.order {
		out = append(out, r.items[sid].clone())
	}
	return out
}

func (r *registry[E, P]) lookup(sessionID int64) (E, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.items[sessionID]
	if !ok {
		var zero E
		return zero, false
	}
	return e.clone(), true
}

func (r *registry[E, P]) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// denseIDs lists live dense IDs. Callers hold the write lock.
func (r *registry[E, P]) denseIDs() []int {
	out := make([]int, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e.denseID())
	}
	return out
}

func (r *registry[E, P]) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[int64]P)
	r.order = nil
	if r.ids != nil {
		r.ids.reset()
	}
}
