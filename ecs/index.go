package ecs

// IndexBase is the linearised record store for one observed type-set: a
// flat array of (entity, c0, c1, ..., c_{k-1}) records, a free-slot list
// reused before growing, and add/remove version counters used by
// IndexIterator to detect set-change between iteration passes.
//
// Grounded on the teacher's ComponentPool (sparse-set-backed parallel
// arrays, ecs/component_storage.go), generalized from "one component
// type per pool" to "k component types per record" per spec.md §4.4, and
// switched from swap-on-remove to tombstone-on-remove so that offsets
// referenced by an in-progress IndexIterator survive a concurrent
// Remove.
//
// Component values are stored as copies (boxed any), not pointers into
// PerTypeStorage: PerTypeStorage itself swap-removes, which would
// silently relocate a live entity's backing slot and leave any pointer
// cached here dangling or pointing at the wrong entity's data. World
// keeps every IndexBase record in sync by re-Emplacing on every mutating
// call. Changes made in place through a pointer from GetPtr or a View
// callback are not copied into index records; they show up here only
// once the component is Emplaced again.
type IndexBase struct {
	types []string // sorted, unique type names
	k     int

	storage      []any
	entityOffset map[Entity]int
	freeOffsets  []int

	addVer, remVer                 uint32
	addVerObserved, remVerObserved bool
}

func newIndexBase(types []string) *IndexBase {
	return &IndexBase{
		types:          types,
		k:              len(types),
		entityOffset:   make(map[Entity]int),
		addVerObserved: true,
		remVerObserved: true,
	}
}

// Types returns the index's sorted, unique component type-name list.
func (ib *IndexBase) Types() []string {
	return ib.types
}

// Add inserts or refreshes the record for entity. comps must hold
// exactly len(ib.types) boxed component values, in the order of
// ib.types.
func (ib *IndexBase) Add(entity Entity, comps []any) {
	offset, exists := ib.entityOffset[entity]
	if !exists {
		if n := len(ib.freeOffsets); n > 0 {
			offset = ib.freeOffsets[n-1]
			ib.freeOffsets = ib.freeOffsets[:n-1]
		} else {
			offset = len(ib.storage)
			ib.storage = append(ib.storage, make([]any, ib.k+1)...)
		}
		ib.entityOffset[entity] = offset
	}

	ib.storage[offset] = entity
	copy(ib.storage[offset+1:offset+1+ib.k], comps)

	if ib.addVerObserved {
		ib.addVer++
		ib.addVerObserved = false
	}
}

// Emplace overwrites the slot for typeName on entity's existing record.
// Returns false if entity has no record yet (the caller should fall
// back to Add once every required type is confirmed present — this is
// how World promotes an entity into an index the moment its last
// missing component type is attached). Panics with TypeNotInIndexError
// if typeName is not one of ib.types: that is a caller bug, not a
// recoverable runtime condition.
func (ib *IndexBase) Emplace(entity Entity, typeNm string, c any) bool {
	offset, exists := ib.entityOffset[entity]
	if !exists {
		return false
	}

	idx := -1
	for i, t := range ib.types {
		if t == typeNm {
			idx = i
			break
		}
	}
	if idx == -1 {
		panic(&TypeNotInIndexError{Type: typeNm, IndexTypes: ib.types})
	}

	ib.storage[offset+1+idx] = c
	return true
}

// Remove tombstones entity's record (rather than swap-with-last) so
// that offsets held by any in-progress IndexIterator remain valid.
// Returns false if entity has no record.
func (ib *IndexBase) Remove(entity Entity) bool {
	offset, exists := ib.entityOffset[entity]
	if !exists {
		return false
	}

	ib.storage[offset] = nil
	for i := 0; i < ib.k; i++ {
		ib.storage[offset+1+i] = nil
	}
	delete(ib.entityOffset, entity)
	ib.freeOffsets = append(ib.freeOffsets, offset)

	if ib.remVerObserved {
		ib.remVer++
		ib.remVerObserved = false
	}
	return true
}

// observeAddVer returns the current add-version counter and arms it: the
// next successful Add bumps the counter again.
func (ib *IndexBase) observeAddVer() uint32 {
	ib.addVerObserved = true
	return ib.addVer
}

// observeRemVer returns the current remove-version counter and arms it.
func (ib *IndexBase) observeRemVer() uint32 {
	ib.remVerObserved = true
	return ib.remVer
}

// Len returns the number of live records (not counting tombstones or
// unused tail capacity).
func (ib *IndexBase) Len() int {
	return len(ib.entityOffset)
}

// IndexIterator is a reusable cursor over an IndexBase. Construct via
// World.Index; walk with the `for it.Start(); it.Next(); { ... }` idiom.
// Read exposed (non-witness) component values at the cursor with the
// free function Field[T](it, alias).
type IndexIterator struct {
	base    *IndexBase
	names   []string // alias per type slot, "" where not exposed (witness)
	exposed []bool

	iS     int
	entity Entity
	fields []any

	addVerSeen, remVerSeen uint32
}

func newIndexIterator(base *IndexBase, names []string, exposed []bool) *IndexIterator {
	it := &IndexIterator{
		base:    base,
		names:   names,
		exposed: exposed,
		fields:  make([]any, base.k),
	}
	it.addVerSeen = base.observeAddVer()
	it.remVerSeen = base.observeRemVer()
	it.Start()
	return it
}

// Start resets the cursor to just before the first record and clears
// all exposed fields. Returns the iterator for chaining with Next.
func (it *IndexIterator) Start() *IndexIterator {
	it.iS = -1 - it.base.k
	it.entity = Null
	for i := range it.fields {
		it.fields[i] = nil
	}
	return it
}

// Next advances to the next live record. Returns false (and clears
// Entity/fields) once the storage is exhausted.
func (it *IndexIterator) Next() bool {
	k := it.base.k
	for {
		it.iS += k + 1
		if it.iS >= len(it.base.storage) {
			it.entity = Null
			for i := range it.fields {
				it.fields[i] = nil
			}
			return false
		}

		e, ok := it.base.storage[it.iS].(Entity)
		if !ok {
			continue // tombstone or unused tail slot
		}

		it.entity = e
		copy(it.fields, it.base.storage[it.iS+1:it.iS+1+k])
		return true
	}
}

// First is shorthand for Start() followed by Next(); returns false when
// the index currently has no live records.
func (it *IndexIterator) First() bool {
	it.Start()
	return it.Next()
}

// Entity returns the entity at the current cursor position, or Null
// before the first Next / after exhaustion.
func (it *IndexIterator) Entity() Entity {
	return it.entity
}

// WasAddedTo reports whether at least one IndexBase.Add has succeeded
// since the iterator's construction or its last WasAddedTo call.
// Records already present at construction do not count: construction
// takes the snapshot and arms the counter. This is a coarse, monotonic
// hint: a round-trip
// add-then-remove between observations still reads as "added".
func (it *IndexIterator) WasAddedTo() bool {
	cur := it.base.observeAddVer()
	if cur != it.addVerSeen {
		it.addVerSeen = cur
		return true
	}
	return false
}

// WasRemovedFrom reports whether at least one IndexBase.Remove has
// succeeded since construction or the last call, with the same coarse
// semantics as WasAddedTo.
func (it *IndexIterator) WasRemovedFrom() bool {
	cur := it.base.observeRemVer()
	if cur != it.remVerSeen {
		it.remVerSeen = cur
		return true
	}
	return false
}

// WasChanged reports whether either WasAddedTo or WasRemovedFrom would
// report a change, consuming both observations.
func (it *IndexIterator) WasChanged() bool {
	added := it.WasAddedTo()
	removed := it.WasRemovedFrom()
	return added || removed
}

// Field reads the current record's value for a non-witness alias,
// type-asserting it to T. Returns false if alias is unknown, witness-
// only, or the cursor is not on a live record.
func Field[T any](it *IndexIterator, alias string) (T, bool) {
	var zero T
	if it.entity == Null {
		return zero, false
	}
	for i, name := range it.names {
		if !it.exposed[i] || name != alias {
			continue
		}
		v, ok := it.fields[i].(T)
		return v, ok
	}
	return zero, false
}
