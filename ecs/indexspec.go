package ecs

// indexBinding is one alias->type association collected by an IndexSpec
// builder before World.Index sorts it into an IndexBase's canonical
// type order.
type indexBinding struct {
	alias    string
	typeName string
	witness  bool
}

// IndexSpec is the builder for a multi-component index query. Build one
// with NewIndexSpec, add bindings with the free functions With (exposed)
// and Require (witness-only — required for membership but not exposed
// on the resulting iterator), then pass it to World.Index.
//
// This replaces the source's `_`-prefix alias convention (spec.md §9's
// REDESIGN FLAG: "a typed rewrite should model this as a pair (alias,
// exposure) or as two spec fields") with two distinct builder functions,
// so exposure is a type-checked call site rather than a string hack.
type IndexSpec struct {
	bindings []indexBinding
}

// NewIndexSpec creates an empty index specification.
func NewIndexSpec() *IndexSpec {
	return &IndexSpec{}
}

// With binds alias to component type T and exposes it on the resulting
// IndexIterator via Field[T](it, alias).
func With[T any](spec *IndexSpec, alias string) *IndexSpec {
	spec.bindings = append(spec.bindings, indexBinding{
		alias:    alias,
		typeName: typeName[T](),
		witness:  false,
	})
	return spec
}

// Require binds alias to component type T as a witness: the type must
// be present on a matching entity, but no field is exposed for it on
// the iterator.
func Require[T any](spec *IndexSpec, alias string) *IndexSpec {
	spec.bindings = append(spec.bindings, indexBinding{
		alias:    alias,
		typeName: typeName[T](),
		witness:  true,
	})
	return spec
}

// WithTag binds alias to the named tag marker and exposes it.
func WithTag(spec *IndexSpec, alias, name string) *IndexSpec {
	spec.bindings = append(spec.bindings, indexBinding{
		alias:    alias,
		typeName: TagTypeName(name),
		witness:  false,
	})
	return spec
}

// RequireTag binds alias to the named tag marker as a witness.
func RequireTag(spec *IndexSpec, alias, name string) *IndexSpec {
	spec.bindings = append(spec.bindings, indexBinding{
		alias:    alias,
		typeName: TagTypeName(name),
		witness:  true,
	})
	return spec
}
