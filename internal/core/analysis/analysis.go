// Package analysis implements lookups over an analysis container: which
// analysis owns an object, which members of a given kind it holds, and
// which mesh a solver run should use. All lookups are read-only
// single-pass traversals of the host-owned graph.
package analysis

import (
	"errors"
	"strings"

	"github.com/danweiss/femstage/internal/core/model"
)

var (
	// ErrNoMesh means the analysis holds no usable mesh object.
	ErrNoMesh = errors.New("no mesh object found in analysis")
	// ErrAmbiguousMesh means the analysis holds more than one mesh
	// object. Informational: the caller decides whether to refuse to
	// proceed.
	ErrAmbiguousMesh = errors.New("multiple mesh objects in analysis")
)

// FindAnalysisOfMember returns the analysis container that holds member,
// directly or inside a nested group, or nil when no analysis does.
// Membership is checked by identity (Name within the document).
func FindAnalysisOfMember(doc model.Document, member model.Object) (model.Object, error) {
	if member == nil {
		return nil, errors.New("member must not be nil")
	}
	for _, obj := range doc.Objects() {
		if !model.IsDerivedFrom(obj, model.KindAnalysis) {
			continue
		}
		if containsMember(obj, member) {
			return obj, nil
		}
	}
	return nil, nil
}

// containsMember walks the group tree under root depth-first, without
// recursion. The host guarantees the graph is acyclic.
func containsMember(root, member model.Object) bool {
	stack := append([]model.Object(nil), root.Children()...)
	for len(stack) > 0 {
		obj := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if obj.Name() == member.Name() {
			return true
		}
		stack = append(stack, obj.Children()...)
	}
	return false
}

// Members returns the direct members of an analysis that match kind,
// including kind matches along the native inheritance chain. An empty
// slice means no member matched.
func Members(analysis model.Object, kind string) ([]model.Object, error) {
	if analysis == nil {
		return nil, errors.New("analysis must not be nil")
	}
	var matching []model.Object
	for _, m := range analysis.Children() {
		if model.IsDerivedFrom(m, kind) {
			matching = append(matching, m)
		}
	}
	return matching, nil
}

// SingleMember returns the first member of an analysis matching kind, or
// nil when there is none.
func SingleMember(analysis model.Object, kind string) (model.Object, error) {
	objs, err := Members(analysis, kind)
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 {
		return nil, nil
	}
	return objs[0], nil
}

// Member pairs an analysis member with the shape type of its geometric
// references, the form solver input writers consume.
type Member struct {
	Object       model.Object
	RefShapeType string
}

// SeveralMembers returns all members matching kind together with their
// reference shape types.
func SeveralMembers(analysis model.Object, kind string) ([]Member, error) {
	objs, err := Members(analysis, kind)
	if err != nil {
		return nil, err
	}
	members := make([]Member, 0, len(objs))
	for _, m := range objs {
		members = append(members, Member{Object: m, RefShapeType: RefShapeType(m)})
	}
	return members, nil
}

// MeshToSolve returns the one mesh object a solver run should use. Mesh
// results are skipped. Zero meshes yields ErrNoMesh, more than one
// yields ErrAmbiguousMesh; both are conditions for the caller to react
// to, not failures of the lookup itself.
func MeshToSolve(analysis model.Object) (model.Object, error) {
	if analysis == nil {
		return nil, errors.New("analysis must not be nil")
	}
	var mesh model.Object
	for _, m := range analysis.Children() {
		if !model.IsDerivedFrom(m, model.KindMesh) || model.IsOfType(m, model.KindMeshResult) {
			continue
		}
		if mesh != nil {
			return nil, ErrAmbiguousMesh
		}
		mesh = m
	}
	if mesh == nil {
		return nil, ErrNoMesh
	}
	return mesh, nil
}

// PartToMesh returns the document object a mesh object meshes: Gmsh
// meshes reference a part, Netgen meshes a shape. Mesh kinds that carry
// no geometric reference yield nil.
func PartToMesh(mesh model.Object) model.Object {
	switch {
	case model.IsDerivedFrom(mesh, model.KindMeshGmsh):
		if c, ok := mesh.(model.PartCarrier); ok {
			return c.Part()
		}
	case model.IsDerivedFrom(mesh, model.KindMeshNetgen):
		if c, ok := mesh.(model.ShapeRefCarrier); ok {
			return c.ShapeRef()
		}
	}
	return nil
}

// RefShapeType returns the shape type ("Face", "Edge", "Vertex", ...) of
// the object's first geometric reference, empty when the object has no
// references. References inside one object are assumed to share a type.
func RefShapeType(obj model.Object) string {
	ref, ok := obj.(model.Referencing)
	if !ok {
		return ""
	}
	refs := ref.References()
	if len(refs) == 0 || len(refs[0].SubNames) == 0 {
		return ""
	}
	return elementShapeType(refs[0].SubNames[0])
}

// elementShapeType strips the trailing element index from a sub-element
// name, e.g. "Face3" -> "Face".
func elementShapeType(sub string) string {
	return strings.TrimRight(sub, "0123456789")
}
