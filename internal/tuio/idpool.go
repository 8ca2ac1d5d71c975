package tuio

// freeSlot is a retired dense ID and the position its owner was removed at.
type freeSlot struct {
	id   int
	x, y float32
}

// idPool hands out dense IDs for cursors and blobs. Live IDs and free slots
// together always cover 0..max with no overlap.
type idPool struct {
	max  int
	free []freeSlot
}

func newIDPool() *idPool {
	return &idPool{max: -1}
}

// release retires id. Retiring the highest ID lowers max to the highest
// remaining live ID and forgets free slots above it; lower IDs go to the pool.
func (p *idPool) release(id int, x, y float32, live []int) {
	switch {
	case id == p.max:
		p.max = -1
		for _, v := range live {
			if v > p.max {
				p.max = v
			}
		}
		kept := p.free[:0]
		for _, slot := range p.free {
			if slot.id <= p.max {
				kept = append(kept, slot)
			}
		}
		p.free = kept
	case id < p.max:
		p.free = append(p.free, freeSlot{id: id, x: x, y: y})
	}
}

// allocate assigns IDs to entities appearing at points while live entities
// already hold IDs. Free slots go to the globally closest (slot, point) pair
// first; ties keep the earlier released slot and the earlier point. Points
// left over once the pool drains receive fresh IDs.
func (p *idPool) allocate(live int, points []Point) []int {
	ids := make([]int, len(points))
	for i := range ids {
		ids[i] = -1
	}

	pending := len(points)
	for pending > 0 && len(p.free) > 0 && live <= p.max {
		bestSlot, bestPoint := -1, -1
		var best float32
		for si, slot := range p.free {
			for pi, pt := range points {
				if ids[pi] >= 0 {
					continue
				}
				d := pt.Distance(slot.x, slot.y)
				if bestSlot < 0 || d < best {
					bestSlot, bestPoint, best = si, pi, d
				}
			}
		}
		ids[bestPoint] = p.free[bestSlot].id
		p.free = append(p.free[:bestSlot], p.free[bestSlot+1:]...)
		live++
		pending--
	}

	for pi := range points {
		if ids[pi] >= 0 {
			continue
		}
		ids[pi] = live
		if live > p.max {
			p.max = live
		}
		live++
	}
	return ids
}

func (p *idPool) reset() {
	p.max = -1
	p.free = nil
}
