package ecs

// Tag is a zero-size marker component identified by name rather than by
// Go type. Go has no runtime type synthesis, so unlike the source's
// Tag.For(name) (which mints a genuinely distinct class per name), every
// Tag value here shares one Go type — but TagTypeName(name) gives each
// name its own storage bucket and index-binding key, which is the
// property World and IndexSpec actually rely on: two calls with the same
// name always resolve to the same component class, and different names
// never collide.
type Tag struct {
	name string
}

// Name returns the tag's marker name.
func (t Tag) Name() string {
	return t.name
}

const tagTypeNamePrefix = "ecs.Tag$"

// TagTypeName returns the canonical storage key for the named tag
// marker.
func TagTypeName(name string) string {
	return tagTypeNamePrefix + name
}

// TagComponent constructs the marker value for name. Two calls with the
// same name produce equal values.
func TagComponent(name string) Tag {
	return Tag{name: name}
}

// tagStorage returns (creating if necessary) the PerTypeStorage bucket
// for the named tag marker, bypassing the typeName[T]() keying scheme
// that would otherwise collide every Tag value on the single Go type
// Tag.
func (w *World) tagStorage(name string) *PerTypeStorage[Tag] {
	key := TagTypeName(name)
	if existing, ok := w.components.storages[key]; ok {
		return existing.(*PerTypeStorage[Tag])
	}
	s := &PerTypeStorage[Tag]{name: key, set: NewSparseSet()}
	w.components.storages[key] = s
	return s
}

// AddTag attaches the named tag marker to entity, promoting it into any
// index that now has all of its required types.
func (w *World) AddTag(entity Entity, name string) error {
	if !w.IsAlive(entity) {
		return &DeadEntityError{Type: TagTypeName(name), Entity: entity}
	}
	key := TagTypeName(name)
	c := Tag{name: name}
	w.tagStorage(name).Emplace(entity, c)
	w.promote(entity, key, c)
	return nil
}

// HasTag reports whether entity carries the named tag marker.
func (w *World) HasTag(entity Entity, name string) bool {
	if !w.IsAlive(entity) {
		return false
	}
	return w.tagStorage(name).Has(entity)
}

// RemoveTag detaches the named tag marker from entity, demoting it out
// of any index that required it. Returns false if entity did not carry
// the tag.
func (w *World) RemoveTag(entity Entity, name string) bool {
	if !w.IsAlive(entity) {
		return false
	}
	if _, ok := w.tagStorage(name).Remove(entity); !ok {
		return false
	}
	key := TagTypeName(name)
	for _, ib := range w.indexesByComponent[key] {
		ib.Remove(entity)
	}
	return true
}
