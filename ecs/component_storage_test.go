package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testPosition struct {
	X, Y float64
}

func Test_PerTypeStorage_EmplaceThenGet(t *testing.T) {
	// Arrange
	s := NewPerTypeStorage[testPosition]()
	e := Entity(1)

	// Act
	s.Emplace(e, testPosition{X: 1, Y: 2})

	// Assert
	v, ok := s.Get(e)
	assert.True(t, ok)
	assert.Equal(t, testPosition{X: 1, Y: 2}, v)
}

func Test_PerTypeStorage_EmplaceOverwritesExisting(t *testing.T) {
	// Arrange
	s := NewPerTypeStorage[testPosition]()
	e := Entity(1)
	s.Emplace(e, testPosition{X: 1, Y: 2})

	// Act
	s.Emplace(e, testPosition{X: 9, Y: 9})

	// Assert
	v, _ := s.Get(e)
	assert.Equal(t, testPosition{X: 9, Y: 9}, v)
	assert.Equal(t, 1, s.Size())
}

func Test_PerTypeStorage_RemoveSwapsLastIntoHole(t *testing.T) {
	// Arrange
	s := NewPerTypeStorage[testPosition]()
	e1, e2 := Entity(1), Entity(2)
	s.Emplace(e1, testPosition{X: 1})
	s.Emplace(e2, testPosition{X: 2})

	// Act
	v, ok := s.Remove(e1)

	// Assert
	assert.True(t, ok)
	assert.Equal(t, testPosition{X: 1}, v)
	assert.False(t, s.Has(e1))
	v2, ok2 := s.Get(e2)
	assert.True(t, ok2)
	assert.Equal(t, testPosition{X: 2}, v2)
}

func Test_PerTypeStorage_GetPtrReflectsMutation(t *testing.T) {
	// Arrange
	s := NewPerTypeStorage[testPosition]()
	e := Entity(1)
	s.Emplace(e, testPosition{X: 1, Y: 1})

	// Act
	ptr := s.GetPtr(e)
	ptr.X = 42

	// Assert
	v, _ := s.Get(e)
	assert.Equal(t, 42.0, v.X)
}

func Test_ComponentRegistry_StorageForIsStableAcrossCalls(t *testing.T) {
	// Arrange
	r := newComponentRegistry()

	// Act
	s1 := storageFor[testPosition](r)
	s1.Emplace(Entity(1), testPosition{X: 5})
	s2 := storageFor[testPosition](r)

	// Assert: same backing storage returned both times
	v, ok := s2.Get(Entity(1))
	assert.True(t, ok)
	assert.Equal(t, 5.0, v.X)
}

func Test_TypeName_DifferentlyNamedTypesDoNotCollide(t *testing.T) {
	// Arrange & Act
	type otherPosition struct{ X, Y float64 }

	// Assert
	assert.NotEqual(t, typeName[testPosition](), typeName[otherPosition]())
}

func Test_TypeName_IsStableAcrossCalls(t *testing.T) {
	assert.Equal(t, typeName[testPosition](), typeName[testPosition]())
}
