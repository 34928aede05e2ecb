package ecs

import "sort"

// EntityTracker lets a caller observe World-wide entity lifecycle events
// without threading a callback through every Create/Insert/Destroy call
// site. Either field may be nil.
type EntityTracker struct {
	EntityAdded   func(Entity)
	EntityRemoved func(Entity)
}

// World owns every entity, every per-type component storage, and the
// index subsystem that keeps multi-component views coherent as
// components are attached and detached.
//
// Grounded on the teacher's World (ecs/world.go: EntityManager +
// ComponentRegistry + Query cache), generalized with an IdPool in place
// of EntityManager's generation counters (spec.md has no entity
// generation concept) and a Trie[*IndexBase] in place of the teacher's
// ad hoc query cache.
type World struct {
	idPool *IdPool
	alive  map[Entity]struct{}

	components *componentRegistry

	indexTrie          *Trie[*IndexBase]
	indexesByComponent map[string][]*IndexBase
	subIt              *TrieSubsequenceIterator[*IndexBase]

	singletonActive bool

	tracker EntityTracker

	scratchTypes []string
}

// WorldOptions configures a World at construction time. The zero value
// is usable: MaxEntities falls back to a modest default and Tracker's
// nil callbacks are simply never invoked. Grounded on
// edwinsyarief-lazyecs/world.go's WorldOptions{InitialCapacity int} —
// a plain struct rather than a configuration library, since nothing in
// the retrieval pack reaches for one at this layer.
type WorldOptions struct {
	// MaxEntities bounds the entity id space handed to IdPool.
	MaxEntities int64
	// Tracker receives entity lifecycle callbacks; either field may be
	// left nil.
	Tracker EntityTracker
}

const defaultMaxEntities = 4096

// NewWorld creates an empty World from opts.
func NewWorld(opts WorldOptions) *World {
	max := opts.MaxEntities
	if max <= 0 {
		max = defaultMaxEntities
	}
	return &World{
		idPool:             NewIdPool(max),
		alive:              make(map[Entity]struct{}),
		components:         newComponentRegistry(),
		indexTrie:          NewTrie[*IndexBase](),
		indexesByComponent: make(map[string][]*IndexBase),
		subIt:              NewTrieSubsequenceIterator[*IndexBase](),
		tracker:            opts.Tracker,
	}
}

// IsAlive reports whether entity currently exists in the World.
func (w *World) IsAlive(entity Entity) bool {
	_, ok := w.alive[entity]
	return ok
}

// Len returns the number of live entities, excluding the Singleton
// entity even if it has been used.
func (w *World) Len() int {
	n := len(w.alive)
	if w.singletonActive {
		n--
	}
	return n
}

// All returns a snapshot slice of every live entity, excluding Singleton.
func (w *World) All() []Entity {
	out := make([]Entity, 0, len(w.alive))
	for e := range w.alive {
		if e == Singleton {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ComponentBox is a pending (type, value) pair for Create/Insert, built
// with the free function C.
type ComponentBox struct {
	typeName string
	emplace  func(w *World, e Entity)
}

// C boxes component value c for use with World.Create or World.Insert.
func C[T any](c T) ComponentBox {
	return ComponentBox{
		typeName: typeName[T](),
		emplace: func(w *World, e Entity) {
			storageFor[T](w.components).Emplace(e, c)
			if h, ok := any(c).(Added); ok {
				h.Added(e)
			}
		},
	}
}

// Create allocates a fresh entity and attaches components, seeding any
// existing index whose full type-set the new entity now satisfies.
// Returns DuplicateComponentTypeError if the same component type
// appears twice; no entity is allocated in that case.
func (w *World) Create(components ...ComponentBox) (Entity, error) {
	if dup := firstDuplicateType(components); dup != "" {
		return Null, &DuplicateComponentTypeError{Type: dup, Context: "create"}
	}

	id := w.idPool.Reserve()
	if id == 0 {
		panic("ecs: entity id space exhausted")
	}
	entity := Entity(id)
	w.attach(entity, components)
	return entity, nil
}

// Insert attaches components to entity, allocating it (and, if
// necessary, growing the id space past it) if it does not already
// exist. Unlike Create, Insert preserves any components entity already
// held of types not present in components. Returns
// DuplicateComponentTypeError if the same component type appears twice
// in components.
func (w *World) Insert(entity Entity, components ...ComponentBox) (Entity, error) {
	if dup := firstDuplicateType(components); dup != "" {
		return Null, &DuplicateComponentTypeError{Type: dup, Context: "insert"}
	}

	id := int64(entity)
	if id >= w.idPool.Max() {
		w.idPool.GrowTo(id + 1)
	}
	w.idPool.ReserveAt(id)
	w.attach(entity, components)
	return entity, nil
}

func firstDuplicateType(components []ComponentBox) string {
	seen := make(map[string]struct{}, len(components))
	for _, c := range components {
		if _, ok := seen[c.typeName]; ok {
			return c.typeName
		}
		seen[c.typeName] = struct{}{}
	}
	return ""
}

func (w *World) attach(entity Entity, components []ComponentBox) {
	wasAlive := w.IsAlive(entity)
	w.alive[entity] = struct{}{}
	if !wasAlive && w.tracker.EntityAdded != nil {
		w.tracker.EntityAdded(entity)
	}

	for _, c := range components {
		c.emplace(w, entity)
	}

	// Promotion must be driven by entity's full live type-set, not just
	// the types supplied in this call: Insert (unlike Create) may attach
	// components to an entity that already held others, and an index
	// spanning old+new types would otherwise never see it promoted.
	w.scratchTypes = w.scratchTypes[:0]
	for name, s := range w.components.storages {
		if s.has(entity) {
			w.scratchTypes = append(w.scratchTypes, name)
		}
	}
	sort.Strings(w.scratchTypes)

	w.subIt.Reset(w.indexTrie, w.scratchTypes)
	for w.subIt.Next() {
		ib := w.subIt.Value()
		if comps, ok := w.gatherIndexComponents(ib, entity); ok {
			ib.Add(entity, comps)
		}
	}
}

// Destroy removes entity and every component it holds, demoting it out
// of every index it belonged to before running any component's Freed
// hook, so a Freed hook observes a World already consistent with
// entity's removal.
func (w *World) Destroy(entity Entity) {
	if !w.IsAlive(entity) {
		return
	}
	delete(w.alive, entity)
	if entity != Singleton {
		w.idPool.Release(int64(entity))
	}
	if w.tracker.EntityRemoved != nil {
		w.tracker.EntityRemoved(entity)
	}

	var freedHooks []func(*World, Entity)
	w.scratchTypes = w.scratchTypes[:0]
	for name, s := range w.components.storages {
		if !s.has(entity) {
			continue
		}
		v, _ := s.remove(entity)
		if h, ok := v.(Removed); ok {
			h.Removed(entity)
		}
		if h, ok := v.(Freed); ok {
			freedHooks = append(freedHooks, h.Freed)
		}
		w.scratchTypes = append(w.scratchTypes, name)
	}
	sort.Strings(w.scratchTypes)

	w.subIt.Reset(w.indexTrie, w.scratchTypes)
	for w.subIt.Next() {
		w.subIt.Value().Remove(entity)
	}

	for _, hook := range freedHooks {
		hook(w, entity)
	}
}

// Clear destroys every live entity (Singleton included). Per spec.md §9,
// the id space is not reset: freed ids simply return to the IdPool's
// free list the same way individual Destroy calls do, so ids already in
// flight elsewhere are never silently reused out of order.
func (w *World) Clear() {
	entities := make([]Entity, 0, len(w.alive))
	for e := range w.alive {
		entities = append(entities, e)
	}
	for _, e := range entities {
		w.Destroy(e)
	}
	w.singletonActive = false
}

// componentByTypeName looks up entity's boxed value for a component type
// named by its storage key, type-erased. Used to gather an IndexBase's
// record during seeding, promotion, and Create/Insert.
func (w *World) componentByTypeName(name string, entity Entity) (any, bool) {
	s, ok := w.components.storages[name]
	if !ok {
		return nil, false
	}
	return s.get(entity)
}

func (w *World) gatherIndexComponents(ib *IndexBase, entity Entity) ([]any, bool) {
	comps := make([]any, ib.k)
	for i, t := range ib.types {
		v, ok := w.componentByTypeName(t, entity)
		if !ok {
			return nil, false
		}
		comps[i] = v
	}
	return comps, true
}

// promote is the shared tail of every single-component attach path
// (Emplace[T], AddTag): try an in-place update on each index that
// already has a record for entity, and Add a fresh record to any index
// that entity has just become eligible for.
func (w *World) promote(entity Entity, typeNm string, c any) {
	for _, ib := range w.indexesByComponent[typeNm] {
		if ib.Emplace(entity, typeNm, c) {
			continue
		}
		if comps, ok := w.gatherIndexComponents(ib, entity); ok {
			ib.Add(entity, comps)
		}
	}
}

// Emplace attaches (or overwrites) component value c of type T on
// entity, promoting it into any index now fully satisfied. Returns
// DeadEntityError if entity is not alive.
func Emplace[T any](w *World, entity Entity, c T) error {
	if !w.IsAlive(entity) {
		return &DeadEntityError{Type: typeName[T](), Entity: entity}
	}
	storageFor[T](w.components).Emplace(entity, c)
	if h, ok := any(c).(Added); ok {
		h.Added(entity)
	}
	w.promote(entity, typeName[T](), any(c))
	return nil
}

// Remove detaches component type T from entity, demoting it out of
// every index that required T. Returns the removed value and true, or
// the zero value and false if entity had no T (or is dead).
func Remove[T any](w *World, entity Entity) (T, bool) {
	var zero T
	if !w.IsAlive(entity) {
		return zero, false
	}
	c, ok := storageFor[T](w.components).Remove(entity)
	if !ok {
		return zero, false
	}
	if h, ok2 := any(c).(Removed); ok2 {
		h.Removed(entity)
	}
	name := typeName[T]()
	for _, ib := range w.indexesByComponent[name] {
		ib.Remove(entity)
	}
	return c, true
}

// Get returns entity's component of type T and whether it is present.
// Never errors: a dead entity or a missing component both simply report
// false.
func Get[T any](w *World, entity Entity) (T, bool) {
	var zero T
	if !w.IsAlive(entity) {
		return zero, false
	}
	return storageFor[T](w.components).Get(entity)
}

// GetPtr returns a pointer to entity's component of type T, or nil. The
// pointer is valid only until the next mutation of that component type's
// storage.
func GetPtr[T any](w *World, entity Entity) *T {
	if !w.IsAlive(entity) {
		return nil
	}
	return storageFor[T](w.components).GetPtr(entity)
}

// Has reports whether entity currently holds a component of type T.
func Has[T any](w *World, entity Entity) bool {
	if !w.IsAlive(entity) {
		return false
	}
	return storageFor[T](w.components).Has(entity)
}

// Index resolves spec against the World's index trie, creating and
// seeding a fresh IndexBase on first use of a given type-set, and
// returns a new IndexIterator bound to it in the caller's alias order.
// Returns DuplicateComponentTypeError if spec binds the same component
// type twice.
func (w *World) Index(spec *IndexSpec) (*IndexIterator, error) {
	bindings := append([]indexBinding(nil), spec.bindings...)
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].typeName < bindings[j].typeName })

	types := make([]string, len(bindings))
	names := make([]string, len(bindings))
	exposed := make([]bool, len(bindings))
	for i, b := range bindings {
		if i > 0 && types[i-1] == b.typeName {
			return nil, &DuplicateComponentTypeError{Type: b.typeName, Context: "index"}
		}
		types[i] = b.typeName
		names[i] = b.alias
		exposed[i] = !b.witness
	}

	ib, ok := w.indexTrie.Get(types)
	if !ok {
		ib = newIndexBase(types)
		w.indexTrie.Set(types, ib)
		for _, t := range types {
			w.indexesByComponent[t] = append(w.indexesByComponent[t], ib)
		}
		w.seedIndex(ib)
	}

	return newIndexIterator(ib, names, exposed), nil
}

func (w *World) seedIndex(ib *IndexBase) {
	for e := range w.alive {
		if comps, ok := w.gatherIndexComponents(ib, e); ok {
			ib.Add(e, comps)
		}
	}
}

// RegisterSingleton attaches a globally-unique component of type T to
// the reserved Singleton entity, adding it to the live set on first use.
func RegisterSingleton[T any](w *World, c T) {
	if !w.singletonActive {
		w.singletonActive = true
		w.alive[Singleton] = struct{}{}
	}
	_ = Emplace(w, Singleton, c)
}

// GetSingleton returns the registered component of type T, if any.
func GetSingleton[T any](w *World) (T, bool) {
	return Get[T](w, Singleton)
}

// RemoveSingleton detaches the registered component of type T.
func RemoveSingleton[T any](w *World) (T, bool) {
	return Remove[T](w, Singleton)
}
