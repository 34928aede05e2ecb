package ecs

// idInterval is a half-open range [Left, Right) of currently-free ids.
type idInterval struct {
	left, right int64
}

// IdPool allocates and recycles positive integer identifiers by tracking
// the free space as a sorted list of half-open intervals. It never hands
// out 0 (reserved by convention for "unallocated") and never hands out
// the pool's ceiling.
//
// Initial state is a single interval [1, max). reserve() always returns
// the smallest free integer; release(id) inserts [id, id+1) into the
// free list and merges it with adjacent intervals.
type IdPool struct {
	free []idInterval
	max  int64
}

// NewIdPool creates a pool that can hand out ids in [1, max).
func NewIdPool(max int64) *IdPool {
	if max < 2 {
		max = 2
	}
	return &IdPool{
		free: []idInterval{{left: 1, right: max}},
		max:  max,
	}
}

// Reserve returns a fresh or recycled positive id, or 0 if the pool is
// exhausted.
func (p *IdPool) Reserve() int64 {
	if len(p.free) == 0 {
		return 0
	}
	head := &p.free[0]
	id := head.left
	head.left++
	if head.left >= head.right {
		p.free = p.free[1:]
	}
	return id
}

// Release returns id to the free list. Releasing an id that is already
// free, or one outside [1, max), is tolerated and leaves the free list
// unchanged.
func (p *IdPool) Release(id int64) {
	if id <= 0 || id >= p.max {
		return
	}

	// Find the interval that would contain id if it were free, or the
	// insertion point among existing intervals.
	insertAt := len(p.free)
	for i, iv := range p.free {
		if id >= iv.left && id < iv.right {
			// Already free: splitting it is a documented no-op.
			return
		}
		if id < iv.left {
			insertAt = i
			break
		}
	}

	merged := idInterval{left: id, right: id + 1}
	next := make([]idInterval, 0, len(p.free)+1)
	next = append(next, p.free[:insertAt]...)
	next = append(next, merged)
	next = append(next, p.free[insertAt:]...)
	p.free = coalesce(next)
}

// coalesce merges adjacent/overlapping intervals in a sorted interval
// slice produced by Release.
func coalesce(ivs []idInterval) []idInterval {
	if len(ivs) < 2 {
		return ivs
	}
	out := ivs[:1]
	for _, iv := range ivs[1:] {
		last := &out[len(out)-1]
		if iv.left <= last.right {
			if iv.right > last.right {
				last.right = iv.right
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// Len reports the number of free ids remaining.
func (p *IdPool) Len() int64 {
	var n int64
	for _, iv := range p.free {
		n += iv.right - iv.left
	}
	return n
}

// ReserveAt removes a specific id from the free list, for World.Insert's
// caller-supplied-id path. Returns false if id was not free (already in
// use, or out of range).
func (p *IdPool) ReserveAt(id int64) bool {
	if id <= 0 || id >= p.max {
		return false
	}
	for i, iv := range p.free {
		if id < iv.left || id >= iv.right {
			continue
		}
		var next []idInterval
		next = append(next, p.free[:i]...)
		if iv.left < id {
			next = append(next, idInterval{left: iv.left, right: id})
		}
		if id+1 < iv.right {
			next = append(next, idInterval{left: id + 1, right: iv.right})
		}
		next = append(next, p.free[i+1:]...)
		p.free = next
		return true
	}
	return false
}

// GrowTo extends the pool's ceiling to newMax, adding the newly opened
// range to the free list. A no-op if newMax does not exceed the current
// ceiling. Used by World.Insert when the caller supplies an id at or
// beyond the pool's current range.
func (p *IdPool) GrowTo(newMax int64) {
	if newMax <= p.max {
		return
	}
	if n := len(p.free); n > 0 && p.free[n-1].right == p.max {
		p.free[n-1].right = newMax
	} else {
		p.free = append(p.free, idInterval{left: p.max, right: newMax})
	}
	p.max = newMax
}

// Max reports the pool's current exclusive ceiling.
func (p *IdPool) Max() int64 {
	return p.max
}
