package femdoc

import (
	"testing"

	"github.com/danweiss/femstage/internal/core/analysis"
	"github.com/danweiss/femstage/internal/core/geometry"
	"github.com/danweiss/femstage/internal/core/model"
)

func TestParseFile(t *testing.T) {
	doc, err := ParseFile("testdata/beam.json")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if doc.Name() != "Beam" {
		t.Errorf("Name = %v, want Beam", doc.Name())
	}
	if doc.Path() != "/home/user/Beam.FCStd" {
		t.Errorf("Path = %v", doc.Path())
	}
	if len(doc.Objects()) != 6 {
		t.Errorf("Object count = %d, want 6", len(doc.Objects()))
	}

	ana := doc.Find("Analysis")
	if ana == nil {
		t.Fatal("Analysis object missing")
	}
	if len(ana.Children()) != 4 {
		t.Errorf("Analysis members = %d, want 4", len(ana.Children()))
	}
}

func TestParseFile_InvalidPath(t *testing.T) {
	if _, err := ParseFile("testdata/nonexistent.json"); err == nil {
		t.Error("ParseFile() should return error for invalid path")
	}
}

func TestParse_KindDispatch(t *testing.T) {
	doc, err := ParseFile("testdata/beam.json")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	// Script-backed object: kind is the proxy tag
	mesh := doc.Find("FEMMeshGmsh")
	if got := model.TypeOf(mesh); got != model.KindMeshGmsh {
		t.Errorf("TypeOf(mesh) = %v, want %v", got, model.KindMeshGmsh)
	}
	// Inheritance through the native id of the script object
	if !model.IsDerivedFrom(mesh, model.KindMesh) {
		t.Error("Gmsh mesh should derive from the generic mesh kind")
	}

	// Native object: kind is the type id
	box := doc.Find("Box")
	if got := model.TypeOf(box); got != model.KindPartFeature {
		t.Errorf("TypeOf(box) = %v, want %v", got, model.KindPartFeature)
	}
}

func TestParse_AnalysisLookups(t *testing.T) {
	doc, err := ParseFile("testdata/beam.json")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	ana := doc.Find("Analysis")

	mesh, err := analysis.MeshToSolve(ana)
	if err != nil {
		t.Fatalf("MeshToSolve() error = %v", err)
	}
	if mesh.Name() != "FEMMeshGmsh" {
		t.Errorf("MeshToSolve = %s", mesh.Name())
	}

	part := analysis.PartToMesh(mesh)
	if part == nil || part.Name() != "Box" {
		t.Errorf("PartToMesh = %v, want Box", part)
	}

	owner, err := analysis.FindAnalysisOfMember(doc, mesh)
	if err != nil {
		t.Fatalf("FindAnalysisOfMember() error = %v", err)
	}
	if owner == nil || owner.Name() != "Analysis" {
		t.Errorf("FindAnalysisOfMember = %v", owner)
	}

	mats, err := analysis.SeveralMembers(ana, model.KindMaterial)
	if err != nil {
		t.Fatalf("SeveralMembers() error = %v", err)
	}
	if len(mats) != 1 || mats[0].RefShapeType != "Face" {
		t.Errorf("Unexpected materials: %+v", mats)
	}
}

func TestParse_BoundBox(t *testing.T) {
	doc, err := ParseFile("testdata/beam.json")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	bb := geometry.DocumentBoundBox(doc)
	if bb == nil {
		t.Fatal("Expected a bound box")
	}
	want := geometry.BoundBox{XMin: 0, YMin: 0, ZMin: 0, XMax: 100, YMax: 20, ZMax: 20}
	if *bb != want {
		t.Errorf("DocumentBoundBox = %v, want %v", *bb, want)
	}
}

func TestParse_DanglingLinks(t *testing.T) {
	doc, err := Parse([]byte(`{
		"name": "Partial",
		"objects": [
			{"name": "Analysis", "typeId": "Fem::FemAnalysis", "group": ["Gone", "Mesh"]},
			{"name": "Mesh", "typeId": "Fem::FemMeshObject", "part": "AlsoGone"}
		]
	}`))
	if err != nil {
		t.Fatalf("Parse() error = %v, dangling links should not fail", err)
	}

	ana := doc.Find("Analysis")
	if len(ana.Children()) != 1 {
		t.Errorf("Expected 1 resolvable member, got %d", len(ana.Children()))
	}
	if part := doc.Find("Mesh").Part(); part != nil {
		t.Errorf("Expected nil part for dangling link, got %v", part)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte(`{"name": `)); err == nil {
		t.Error("Expected error for malformed JSON")
	}
	if _, err := Parse([]byte(`{"objects": []}`)); err == nil {
		t.Error("Expected error for missing document name")
	}
	if _, err := Parse([]byte(`{
		"name": "Dup",
		"objects": [
			{"name": "A", "typeId": "Part::Feature"},
			{"name": "A", "typeId": "Part::Feature"}
		]
	}`)); err == nil {
		t.Error("Expected error for duplicate object names")
	}
}

func TestDecodeText(t *testing.T) {
	if got := decodeText("Tr\xe4ger"); got != "Tr�ger" {
		t.Errorf("decodeText = %q", got)
	}
	if got := decodeText("Träger"); got != "Träger" {
		t.Errorf("Valid UTF-8 must pass through, got %q", got)
	}
}
