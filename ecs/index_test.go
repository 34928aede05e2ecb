package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IndexBase_AddThenIterateYieldsRecord(t *testing.T) {
	// Arrange
	ib := newIndexBase([]string{"A", "B"})
	e := Entity(1)

	// Act
	ib.Add(e, []any{10, "x"})
	it := newIndexIterator(ib, []string{"a", "b"}, []bool{true, true})

	// Assert
	assert.True(t, it.Next())
	assert.Equal(t, e, it.Entity())
	a, ok := Field[int](it, "a")
	assert.True(t, ok)
	assert.Equal(t, 10, a)
	b, ok := Field[string](it, "b")
	assert.True(t, ok)
	assert.Equal(t, "x", b)
	assert.False(t, it.Next())
}

func Test_IndexBase_RemoveTombstonesRecord(t *testing.T) {
	// Arrange
	ib := newIndexBase([]string{"A"})
	e := Entity(1)
	ib.Add(e, []any{1})

	// Act
	removed := ib.Remove(e)

	// Assert
	assert.True(t, removed)
	assert.Equal(t, 0, ib.Len())
	it := newIndexIterator(ib, []string{"a"}, []bool{true})
	assert.False(t, it.Next())
}

func Test_IndexBase_RemoveUnknownEntityReturnsFalse(t *testing.T) {
	// Arrange
	ib := newIndexBase([]string{"A"})

	// Act & Assert
	assert.False(t, ib.Remove(Entity(99)))
}

func Test_IndexBase_AddReusesFreedOffsetBeforeGrowing(t *testing.T) {
	// Arrange
	ib := newIndexBase([]string{"A"})
	e1, e2, e3 := Entity(1), Entity(2), Entity(3)
	ib.Add(e1, []any{1})
	ib.Add(e2, []any{2})
	ib.Remove(e1)

	// Act
	ib.Add(e3, []any{3})

	// Assert: storage did not grow past the two original records
	assert.Len(t, ib.storage, 4) // 2 records * (1 + k=1)
	assert.Equal(t, 2, ib.Len())
}

func Test_IndexBase_EmplaceOverwritesExistingSlotOnly(t *testing.T) {
	// Arrange
	ib := newIndexBase([]string{"A", "B"})
	e := Entity(1)
	ib.Add(e, []any{1, "x"})

	// Act
	ok := ib.Emplace(e, "B", "y")

	// Assert
	assert.True(t, ok)
	it := newIndexIterator(ib, []string{"a", "b"}, []bool{true, true})
	it.Next()
	a, _ := Field[int](it, "a")
	b, _ := Field[string](it, "b")
	assert.Equal(t, 1, a)
	assert.Equal(t, "y", b)
}

func Test_IndexBase_EmplaceOnMissingRecordReturnsFalse(t *testing.T) {
	// Arrange
	ib := newIndexBase([]string{"A"})

	// Act & Assert
	assert.False(t, ib.Emplace(Entity(1), "A", 1))
}

func Test_IndexBase_EmplaceUnknownTypePanics(t *testing.T) {
	// Arrange
	ib := newIndexBase([]string{"A"})
	ib.Add(Entity(1), []any{1})

	// Act & Assert
	assert.Panics(t, func() {
		ib.Emplace(Entity(1), "Z", 1)
	})
}

func Test_IndexIterator_WitnessFieldIsNotExposed(t *testing.T) {
	// Arrange
	ib := newIndexBase([]string{"A", "B"})
	ib.Add(Entity(1), []any{1, "x"})
	it := newIndexIterator(ib, []string{"a", ""}, []bool{true, false})

	// Act
	it.Next()

	// Assert
	_, ok := Field[string](it, "")
	assert.False(t, ok)
	a, ok := Field[int](it, "a")
	assert.True(t, ok)
	assert.Equal(t, 1, a)
}

func Test_IndexIterator_WasAddedToIsFalseOnFirstObservation(t *testing.T) {
	// Arrange
	ib := newIndexBase([]string{"A"})
	ib.Add(Entity(1), []any{1})
	it := newIndexIterator(ib, []string{"a"}, []bool{true})

	// Act & Assert: construction snapshots the current version
	assert.False(t, it.WasAddedTo())
}

func Test_IndexIterator_WasAddedToDetectsSubsequentAdd(t *testing.T) {
	// Arrange
	ib := newIndexBase([]string{"A"})
	it := newIndexIterator(ib, []string{"a"}, []bool{true})
	it.WasAddedTo() // arm

	// Act
	ib.Add(Entity(1), []any{1})

	// Assert
	assert.True(t, it.WasAddedTo())
	assert.False(t, it.WasAddedTo()) // consumed
}

func Test_IndexIterator_WasRemovedFromDetectsRemoval(t *testing.T) {
	// Arrange
	ib := newIndexBase([]string{"A"})
	ib.Add(Entity(1), []any{1})
	it := newIndexIterator(ib, []string{"a"}, []bool{true})
	it.WasRemovedFrom() // arm

	// Act
	ib.Remove(Entity(1))

	// Assert
	assert.True(t, it.WasRemovedFrom())
	assert.False(t, it.WasRemovedFrom())
}

func Test_IndexIterator_FirstRestartsFromBeginning(t *testing.T) {
	// Arrange
	ib := newIndexBase([]string{"A"})
	ib.Add(Entity(1), []any{1})
	ib.Add(Entity(2), []any{2})
	it := newIndexIterator(ib, []string{"a"}, []bool{true})
	it.Next()
	it.Next()

	// Act
	ok := it.First()

	// Assert
	assert.True(t, ok)
	assert.Equal(t, Entity(1), it.Entity())
}

func Test_IndexIterator_SurvivesConcurrentRemoveDuringIteration(t *testing.T) {
	// Arrange: remove-during-iteration must not corrupt offsets held by
	// an in-progress cursor (this is why IndexBase tombstones instead of
	// swap-removing).
	ib := newIndexBase([]string{"A"})
	e1, e2, e3 := Entity(1), Entity(2), Entity(3)
	ib.Add(e1, []any{1})
	ib.Add(e2, []any{2})
	ib.Add(e3, []any{3})

	it := newIndexIterator(ib, []string{"a"}, []bool{true})
	assert.True(t, it.Next())
	assert.Equal(t, e1, it.Entity())

	// Act: remove an entity the cursor has not reached yet
	ib.Remove(e2)

	// Assert: iteration still reaches e3 without skipping or corruption
	assert.True(t, it.Next())
	assert.Equal(t, e3, it.Entity())
	assert.False(t, it.Next())
}
