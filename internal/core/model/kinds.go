package model

// Well-known type tags. These mirror the tags the CAE host assigns, so
// document dumps round-trip without translation.
const (
	KindDocumentObject = "App::DocumentObject"
	KindGroup          = "App::DocumentObjectGroup"

	KindAnalysis   = "Fem::FemAnalysis"
	KindSolver     = "Fem::FemSolverObject"
	KindMesh       = "Fem::FemMeshObject"
	KindMeshShape  = "Fem::FemMeshShapeObject"
	KindMeshGmsh   = "Fem::FemMeshGmsh"
	KindMeshNetgen = "Fem::FemMeshShapeNetgenObject"
	KindMeshResult = "Fem::FemMeshResult"
	KindResult     = "Fem::FemResultObject"
	KindConstraint = "Fem::Constraint"
	KindMaterial   = "App::MaterialObject"

	KindPartFeature = "Part::Feature"

	// Native ids of script-backed objects. Their Kind is the proxy tag;
	// these only matter for inheritance checks.
	KindMeshPython     = "Fem::FemMeshObjectPython"
	KindSolverPython   = "Fem::FemSolverObjectPython"
	KindMaterialPython = "App::MaterialObjectPython"

	KindConstraintFixed = "Fem::ConstraintFixed"
	KindConstraintForce = "Fem::ConstraintForce"
)

// ancestry maps each native type id to its parent. Chains terminate at
// KindDocumentObject.
var ancestry = map[string]string{
	KindGroup:       KindDocumentObject,
	KindAnalysis:    KindDocumentObject,
	KindSolver:      KindDocumentObject,
	KindMesh:        KindDocumentObject,
	KindMeshShape:   KindMesh,
	KindMeshGmsh:    KindMeshShape,
	KindMeshNetgen:  KindMeshShape,
	KindMeshResult:  KindMesh,
	KindResult:      KindDocumentObject,
	KindConstraint:  KindDocumentObject,
	KindMaterial:    KindDocumentObject,
	KindPartFeature: KindDocumentObject,

	KindMeshPython:     KindMesh,
	KindSolverPython:   KindSolver,
	KindMaterialPython: KindMaterial,

	KindConstraintFixed: KindConstraint,
	KindConstraintForce: KindConstraint,
}

// NativeDerivedFrom walks the built-in ancestry table from typeID and
// reports whether kind appears on the chain. typeID itself counts.
func NativeDerivedFrom(typeID, kind string) bool {
	if kind == KindDocumentObject {
		return true
	}
	for t := typeID; t != ""; t = ancestry[t] {
		if t == kind {
			return true
		}
		if t == KindDocumentObject {
			break
		}
	}
	return false
}

// RegisterKind extends the ancestry table with a host-specific type id.
// Intended for adapters over hosts that define tags this package does not
// know about.
func RegisterKind(typeID, parent string) {
	ancestry[typeID] = parent
}
