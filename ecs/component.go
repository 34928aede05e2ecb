package ecs

import "reflect"

// Added is implemented by components that want a callback when they are
// attached to an entity. Invoked by World after the component is stored.
type Added interface {
	Added(entity Entity)
}

// Removed is implemented by components that want a callback when they
// are detached from an entity (explicitly via World.Remove, or as part
// of World.Destroy). Invoked after the component has been removed from
// storage.
type Removed interface {
	Removed(entity Entity)
}

// Freed is implemented by components that want a callback once an
// entity has been fully torn down: every per-type storage and every
// matching index has already been cleaned up by the time Freed runs, so
// a Freed hook may legally call back into World.Destroy for other
// entities.
type Freed interface {
	Freed(world *World, entity Entity)
}

// typeName returns the canonical, package-qualified name of T's zero
// value. This is the storage key for PerTypeStorage, Trie symbols, and
// IndexSpec type resolution: two independently declared component types
// collide here iff reflect.Type.String() collides, preserving the
// source's "keyed by constructor.name" identity property (spec.md §9).
func typeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		// T is an interface type instantiated with a nil value; fall
		// back to the static type via a pointer trick so callers still
		// get a stable, unique string.
		return reflect.TypeOf(&zero).Elem().String()
	}
	return t.String()
}
