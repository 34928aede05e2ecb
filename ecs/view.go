package ecs

// View1, View2, and View3 are the legacy callback-style façade over
// component storage (spec.md §6's View<Ts>.each), grounded directly on
// the teacher's Iterator1/Iterator2/Iterator3 (ecs/query.go): walk the
// first type's storage and fetch the remaining types by direct lookup,
// skipping any entity missing one. Unlike World.Index, a View is not
// cached or change-tracked — it is a cheap one-shot scan, built fresh
// per call via ViewOf1/ViewOf2/ViewOf3 (Go has no generic methods, so
// these live as free functions rather than as World methods).

// View1 iterates entities holding a component of type T1.
type View1[T1 any] struct {
	world *World
}

// ViewOf1 builds a View1 over w.
func ViewOf1[T1 any](w *World) *View1[T1] {
	return &View1[T1]{world: w}
}

// Each calls fn for every entity holding T1, in that storage's current
// dense order. Stops early if fn returns false.
func (v *View1[T1]) Each(fn func(Entity, *T1) bool) {
	s1 := storageFor[T1](v.world.components)
	for _, e := range s1.Entities() {
		c1 := s1.GetPtr(e)
		if c1 == nil {
			continue
		}
		if !fn(e, c1) {
			return
		}
	}
}

// View2 iterates entities holding components of types T1 and T2.
type View2[T1, T2 any] struct {
	world *World
}

// ViewOf2 builds a View2 over w.
func ViewOf2[T1, T2 any](w *World) *View2[T1, T2] {
	return &View2[T1, T2]{world: w}
}

// Each calls fn for every entity holding both T1 and T2, walking T1's
// storage and looking T2 up by direct lookup. Stops early if fn returns
// false.
func (v *View2[T1, T2]) Each(fn func(Entity, *T1, *T2) bool) {
	s1 := storageFor[T1](v.world.components)
	s2 := storageFor[T2](v.world.components)
	for _, e := range s1.Entities() {
		c1 := s1.GetPtr(e)
		if c1 == nil {
			continue
		}
		c2 := s2.GetPtr(e)
		if c2 == nil {
			continue
		}
		if !fn(e, c1, c2) {
			return
		}
	}
}

// View3 iterates entities holding components of types T1, T2, and T3.
type View3[T1, T2, T3 any] struct {
	world *World
}

// ViewOf3 builds a View3 over w.
func ViewOf3[T1, T2, T3 any](w *World) *View3[T1, T2, T3] {
	return &View3[T1, T2, T3]{world: w}
}

// Each calls fn for every entity holding T1, T2, and T3, walking T1's
// storage and looking T2/T3 up by direct lookup. Stops early if fn
// returns false.
func (v *View3[T1, T2, T3]) Each(fn func(Entity, *T1, *T2, *T3) bool) {
	s1 := storageFor[T1](v.world.components)
	s2 := storageFor[T2](v.world.components)
	s3 := storageFor[T3](v.world.components)
	for _, e := range s1.Entities() {
		c1 := s1.GetPtr(e)
		if c1 == nil {
			continue
		}
		c2 := s2.GetPtr(e)
		if c2 == nil {
			continue
		}
		c3 := s3.GetPtr(e)
		if c3 == nil {
			continue
		}
		if !fn(e, c1, c2, c3) {
			return
		}
	}
}
