package tuio

import "time"

// frameEvents is the outcome of one accepted frame, already in notification
// order within each slice.
type frameEvents[E any] struct {
	removed []E
	added   []E
	updated []E
	time    time.Duration
}

// reconciler stages one profile's set and alive messages and commits them on
// fseq. Staging state belongs to the single ingest path; the committed
// registry is shared with readers.
type reconciler[E any, P entity[E]] struct {
	kind        Profile
	committed   *registry[E, P]
	staged      map[int64]E
	stagedOrder []int64
	alive       []int64
	clock       frameClock
	pathLimit   int
}

type frameConfig struct {
	tolerance int32
	refresh   time.Duration
	pathLimit int
}

func newReconciler[E any, P entity[E]](kind Profile, dense bool, cfg frameConfig) *reconciler[E, P] {
	return &reconciler[E, P]{
		kind:      kind,
		committed: newRegistry[E, P](dense),
		staged:    make(map[int64]E),
		clock:     newFrameClock(cfg.tolerance, cfg.refresh),
		pathLimit: cfg.pathLimit,
	}
}

// stage records sample for the pending frame. A later set for the same
// session ID within the frame replaces the earlier one.
func (r *reconciler[E, P]) stage(sample E) {
	sid := P(&sample).base().SessionID
	if _, ok := r.staged[sid]; !ok {
		r.stagedOrder = append(r.stagedOrder, sid)
	}
	r.staged[sid] = sample
}

// setAlive replaces the alive list. It persists across frames until the next
// alive message.
func (r *reconciler[E, P]) setAlive(ids []int32) {
	alive := make([]int64, len(ids))
	for i, id := range ids {
		alive[i] = int64(id)
	}
	r.alive = alive
}

// commit closes the pending frame. It reports false when the frame is stale;
// staging is discarded either way.
func (r *reconciler[E, P]) commit(fseq int32, now time.Duration) (frameEvents[E], bool) {
	defer r.clearStaging()
	if !r.clock.admit(fseq, now) {
		return frameEvents[E]{}, false
	}

	t := r.clock.stamp
	ev := frameEvents[E]{time: t}
	alive := make(map[int64]struct{}, len(r.alive))
	for _, sid := range r.alive {
		alive[sid] = struct{}{}
	}

	reg := r.committed
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var gone []int64
	kept := make([]int64, 0, len(reg.order))
	for _, sid := range reg.order {
		if _, ok := alive[sid]; ok {
			kept = append(kept, sid)
		} else {
			gone = append(gone, sid)
		}
	}
	reg.order = kept
	for _, sid := range gone {
		e := reg.items[sid]
		delete(reg.items, sid)
		c := e.base()
		c.remove(t)
		if reg.ids != nil {
			reg.ids.release(e.denseID(), c.X, c.Y, reg.denseIDs())
		}
		ev.removed = append(ev.removed, e.clone())
	}

	var fresh []int64
	isFresh := make(map[int64]struct{})
	for _, sid := range r.stagedOrder {
		if _, ok := alive[sid]; !ok {
			continue
		}
		if _, ok := reg.items[sid]; ok {
			continue
		}
		fresh = append(fresh, sid)
		isFresh[sid] = struct{}{}
	}
	var ids []int
	if reg.ids != nil && len(fresh) > 0 {
		points := make([]Point, len(fresh))
		for i, sid := range fresh {
			sample := r.staged[sid]
			c := P(&sample).base()
			points[i] = Point{X: c.X, Y: c.Y, Time: t}
		}
		ids = reg.ids.allocate(len(reg.items), points)
	}
	for i, sid := range fresh {
		sample := r.staged[sid]
		e := P(new(E))
		e.begin(t, &sample)
		if ids != nil {
			e.setDenseID(ids[i])
		}
		reg.items[sid] = e
		reg.order = append(reg.order, sid)
		ev.added = append(ev.added, e.clone())
	}

	for _, sid := range r.stagedOrder {
		if _, ok := isFresh[sid]; ok {
			continue
		}
		e, ok := reg.items[sid]
		if !ok {
			continue
		}
		sample := r.staged[sid]
		if !e.differs(&sample) {
			continue
		}
		e.merge(t, &sample)
		e.base().trimPath(r.pathLimit)
		ev.updated = append(ev.updated, e.clone())
	}
	return ev, true
}

func (r *reconciler[E, P]) clearStaging() {
	clear(r.staged)
	r.stagedOrder = r.stagedOrder[:0]
}

func (r *reconciler[E, P]) reset() {
	r.committed.reset()
	r.clearStaging()
	r.alive = nil
	r.clock.reset()
}
