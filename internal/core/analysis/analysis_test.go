package analysis

import (
	"errors"
	"testing"

	"github.com/danweiss/femstage/internal/core/model"
)

// fakeObject is a minimal in-memory model.Object for tests.
type fakeObject struct {
	name     string
	label    string
	kind     string
	typeID   string
	children []model.Object
	part     model.Object
	shapeRef model.Object
	refs     []model.Reference
}

func (o *fakeObject) Name() string  { return o.name }
func (o *fakeObject) Label() string { return o.label }
func (o *fakeObject) Kind() string {
	if o.kind != "" {
		return o.kind
	}
	return o.typeID
}
func (o *fakeObject) DerivedFrom(kind string) bool {
	return model.NativeDerivedFrom(o.typeID, kind)
}
func (o *fakeObject) Children() []model.Object      { return o.children }
func (o *fakeObject) Part() model.Object            { return o.part }
func (o *fakeObject) ShapeRef() model.Object        { return o.shapeRef }
func (o *fakeObject) References() []model.Reference { return o.refs }

type fakeDocument struct {
	name    string
	path    string
	objects []model.Object
}

func (d *fakeDocument) Name() string            { return d.name }
func (d *fakeDocument) Path() string            { return d.path }
func (d *fakeDocument) Objects() []model.Object { return d.objects }

func obj(name, typeID string) *fakeObject {
	return &fakeObject{name: name, label: name, typeID: typeID}
}

func TestFindAnalysisOfMember(t *testing.T) {
	mesh := obj("Mesh", model.KindMeshGmsh)
	group := obj("Group", model.KindGroup)
	group.children = []model.Object{mesh}
	ana := obj("Analysis", model.KindAnalysis)
	ana.children = []model.Object{group}
	stray := obj("Box", model.KindPartFeature)

	doc := &fakeDocument{name: "Beam", objects: []model.Object{ana, group, mesh, stray}}

	got, err := FindAnalysisOfMember(doc, mesh)
	if err != nil {
		t.Fatalf("FindAnalysisOfMember() error = %v", err)
	}
	if got == nil || got.Name() != "Analysis" {
		t.Errorf("Expected Analysis, got %v", got)
	}

	// Object outside any analysis
	got, err = FindAnalysisOfMember(doc, stray)
	if err != nil {
		t.Fatalf("FindAnalysisOfMember() error = %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for non-member, got %s", got.Name())
	}

	// Nil member is a caller bug
	if _, err := FindAnalysisOfMember(doc, nil); err == nil {
		t.Error("Expected error for nil member")
	}
}

func TestMembers(t *testing.T) {
	mesh := obj("Mesh", model.KindMeshGmsh)
	mat := obj("Material", model.KindMaterial)
	solver := obj("Solver", model.KindSolver)
	ana := obj("Analysis", model.KindAnalysis)
	ana.children = []model.Object{mesh, mat, solver}

	// KindMesh matches the Gmsh mesh through the inheritance chain
	meshes, err := Members(ana, model.KindMesh)
	if err != nil {
		t.Fatalf("Members() error = %v", err)
	}
	if len(meshes) != 1 || meshes[0].Name() != "Mesh" {
		t.Errorf("Expected [Mesh], got %v", meshes)
	}

	none, err := Members(ana, model.KindResult)
	if err != nil {
		t.Fatalf("Members() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no results, got %d", len(none))
	}

	single, err := SingleMember(ana, model.KindSolver)
	if err != nil {
		t.Fatalf("SingleMember() error = %v", err)
	}
	if single == nil || single.Name() != "Solver" {
		t.Errorf("Expected Solver, got %v", single)
	}

	missing, err := SingleMember(ana, model.KindResult)
	if err != nil {
		t.Fatalf("SingleMember() error = %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil, got %s", missing.Name())
	}
}

func TestSeveralMembers(t *testing.T) {
	mat := obj("Material", model.KindMaterial)
	box := obj("Box", model.KindPartFeature)
	mat.refs = []model.Reference{{Object: box, SubNames: []string{"Face3", "Face5"}}}
	bare := obj("Material2", model.KindMaterial)
	ana := obj("Analysis", model.KindAnalysis)
	ana.children = []model.Object{mat, bare}

	members, err := SeveralMembers(ana, model.KindMaterial)
	if err != nil {
		t.Fatalf("SeveralMembers() error = %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("Expected 2 members, got %d", len(members))
	}
	if members[0].RefShapeType != "Face" {
		t.Errorf("Expected Face, got %q", members[0].RefShapeType)
	}
	if members[1].RefShapeType != "" {
		t.Errorf("Expected empty type for referenceless member, got %q", members[1].RefShapeType)
	}
}

func TestMeshToSolve(t *testing.T) {
	mesh := obj("Mesh", model.KindMeshGmsh)
	result := obj("ResultMesh", model.KindMeshResult)
	ana := obj("Analysis", model.KindAnalysis)
	ana.children = []model.Object{mesh, result}

	got, err := MeshToSolve(ana)
	if err != nil {
		t.Fatalf("MeshToSolve() error = %v", err)
	}
	if got.Name() != "Mesh" {
		t.Errorf("Expected Mesh, got %s", got.Name())
	}

	// Two meshes is ambiguous
	ana.children = append(ana.children, obj("Mesh2", model.KindMeshNetgen))
	if _, err := MeshToSolve(ana); !errors.Is(err, ErrAmbiguousMesh) {
		t.Errorf("Expected ErrAmbiguousMesh, got %v", err)
	}

	// Only a result mesh is no mesh at all
	ana.children = []model.Object{result}
	if _, err := MeshToSolve(ana); !errors.Is(err, ErrNoMesh) {
		t.Errorf("Expected ErrNoMesh, got %v", err)
	}
}

func TestPartToMesh(t *testing.T) {
	box := obj("Box", model.KindPartFeature)

	gmsh := obj("Mesh", model.KindMeshGmsh)
	gmsh.part = box
	if got := PartToMesh(gmsh); got != box {
		t.Errorf("Expected Box for gmsh mesh, got %v", got)
	}

	netgen := obj("NMesh", model.KindMeshNetgen)
	netgen.shapeRef = box
	if got := PartToMesh(netgen); got != box {
		t.Errorf("Expected Box for netgen mesh, got %v", got)
	}

	plain := obj("PMesh", model.KindMesh)
	if got := PartToMesh(plain); got != nil {
		t.Errorf("Expected nil for plain mesh, got %v", got)
	}
}

func TestRefShapeType(t *testing.T) {
	box := obj("Box", model.KindPartFeature)
	cases := []struct {
		sub  string
		want string
	}{
		{"Face12", "Face"},
		{"Edge1", "Edge"},
		{"Vertex7", "Vertex"},
	}
	for _, c := range cases {
		o := obj("Constraint", model.KindConstraint)
		o.refs = []model.Reference{{Object: box, SubNames: []string{c.sub}}}
		if got := RefShapeType(o); got != c.want {
			t.Errorf("RefShapeType(%q) = %q, want %q", c.sub, got, c.want)
		}
	}

	empty := obj("Constraint", model.KindConstraint)
	if got := RefShapeType(empty); got != "" {
		t.Errorf("Expected empty type, got %q", got)
	}
}
