package ecs

import "fmt"

// DeadEntityError is returned when an operation targets an entity that is
// not currently alive in the World.
type DeadEntityError struct {
	Type   string
	Entity Entity
}

func (e *DeadEntityError) Error() string {
	return fmt.Sprintf("ecs: emplace %s on dead entity %s", e.Type, e.Entity)
}

// DuplicateComponentTypeError is returned when create or index sees the
// same component type named more than once in one call.
type DuplicateComponentTypeError struct {
	Type    string
	Context string
}

func (e *DuplicateComponentTypeError) Error() string {
	return fmt.Sprintf("ecs: duplicate component type %q in %s", e.Type, e.Context)
}

// TypeNotInIndexError is the panic value raised when IndexBase.Emplace is
// called with a component type that was not part of the index's type
// list. This indicates a caller programming error (a mismatched
// IndexSpec), so it is a panic rather than a returned error, matching
// the teacher's own behavior for malformed generic view specs.
type TypeNotInIndexError struct {
	Type       string
	IndexTypes []string
}

func (e *TypeNotInIndexError) Error() string {
	return fmt.Sprintf("ecs: type %q not in index types %v", e.Type, e.IndexTypes)
}

// SparseSetOverflowError is the panic value raised by SparseSet.Add when
// a value is at or above the sparse set's hard capacity.
type SparseSetOverflowError struct {
	Value int
	Max   int
}

func (e *SparseSetOverflowError) Error() string {
	return fmt.Sprintf("ecs: sparse set overflow: value %d exceeds max capacity %d", e.Value, e.Max)
}
