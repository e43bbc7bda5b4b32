// Package model defines the read-only view of a CAE document's object
// graph that the rest of femstage queries. The host application owns the
// graph; femstage only looks at it through these capability interfaces.
package model

// Object is a single document object as seen by femstage.
type Object interface {
	// Name is the internal, unique-per-document identifier.
	Name() string
	// Label is the user-visible display name. Not guaranteed unique.
	Label() string
	// Kind returns the most specific type tag of the object. For
	// script-backed objects this is the proxy tag, for native objects
	// the native type id.
	Kind() string
	// DerivedFrom reports whether the object's native type id, or any
	// ancestor of it, equals kind.
	DerivedFrom(kind string) bool
	// Children returns group members, nil for non-group objects.
	Children() []Object
}

// Document is the owning container of a set of objects.
type Document interface {
	// Name is the document's internal name.
	Name() string
	// Path is the save path on disk, empty if never saved.
	Path() string
	// Objects returns all top-level and nested objects, in document
	// order.
	Objects() []Object
}

// Reference points at geometric sub-elements of another object, e.g. a
// face a material or constraint is assigned to.
type Reference struct {
	Object   Object
	SubNames []string // element names like "Face3", "Edge1"
}

// Referencing is implemented by objects that carry geometric references.
type Referencing interface {
	References() []Reference
}

// PartCarrier is implemented by mesh objects that reference the document
// object they mesh (Gmsh-style meshes).
type PartCarrier interface {
	Part() Object
}

// ShapeRefCarrier is implemented by mesh objects that reference their
// source shape object directly (Netgen-style meshes).
type ShapeRefCarrier interface {
	ShapeRef() Object
}

// TypeOf returns the unified type tag of an object: the script proxy tag
// when one is present, otherwise the native type id. Both cases collapse
// into Object.Kind.
func TypeOf(obj Object) string {
	return obj.Kind()
}

// IsOfType reports whether obj's unified tag is exactly kind. Ancestors
// do not match; use IsDerivedFrom for that.
func IsOfType(obj Object, kind string) bool {
	return obj.Kind() == kind
}

// IsDerivedFrom reports whether obj matches kind either by its unified
// tag or anywhere along its native inheritance chain. Every object
// matches KindDocumentObject.
func IsDerivedFrom(obj Object, kind string) bool {
	if obj.Kind() == kind {
		return true
	}
	return obj.DerivedFrom(kind)
}
