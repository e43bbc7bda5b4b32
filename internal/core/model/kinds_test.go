package model

import "testing"

func TestNativeDerivedFrom(t *testing.T) {
	cases := []struct {
		typeID string
		kind   string
		want   bool
	}{
		{KindMeshGmsh, KindMeshGmsh, true},
		{KindMeshGmsh, KindMeshShape, true},
		{KindMeshGmsh, KindMesh, true},
		{KindMeshGmsh, KindDocumentObject, true},
		{KindMeshGmsh, KindAnalysis, false},
		{KindMeshResult, KindMesh, true},
		{KindSolver, KindMesh, false},
		// Every object derives from the document-object root
		{"Vendor::Custom", KindDocumentObject, true},
	}
	for _, c := range cases {
		if got := NativeDerivedFrom(c.typeID, c.kind); got != c.want {
			t.Errorf("NativeDerivedFrom(%s, %s) = %v, want %v", c.typeID, c.kind, got, c.want)
		}
	}
}

func TestRegisterKind(t *testing.T) {
	RegisterKind("Vendor::SpecialMesh", KindMeshShape)
	if !NativeDerivedFrom("Vendor::SpecialMesh", KindMesh) {
		t.Error("Registered kind should inherit through its parent chain")
	}
}
