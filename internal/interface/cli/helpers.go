package cli

import (
	"fmt"
	"time"

	"github.com/danweiss/femstage/internal/core/model"
	"github.com/danweiss/femstage/pkg/femdoc"
)

// loadDocument parses the dump named by --doc.
func loadDocument(path string) (*femdoc.Document, error) {
	if path == "" {
		return nil, fmt.Errorf("no document given, use --doc")
	}
	doc, err := femdoc.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return doc, nil
}

// selectSolver picks the solver object a command operates on. With an
// empty label the document must hold exactly one solver; with a label
// it must match exactly one solver.
func selectSolver(doc *femdoc.Document, label string) (model.Object, error) {
	var solvers []model.Object
	for _, obj := range doc.Objects() {
		if !model.IsDerivedFrom(obj, model.KindSolver) {
			continue
		}
		if label != "" && obj.Label() != label {
			continue
		}
		solvers = append(solvers, obj)
	}
	switch len(solvers) {
	case 0:
		if label != "" {
			return nil, fmt.Errorf("no solver labeled %q in document %s", label, doc.Name())
		}
		return nil, fmt.Errorf("no solver object in document %s", doc.Name())
	case 1:
		return solvers[0], nil
	default:
		labels := make([]string, len(solvers))
		for i, s := range solvers {
			labels[i] = s.Label()
		}
		return nil, fmt.Errorf("multiple solvers in document %s, pick one with --solver: %v", doc.Name(), labels)
	}
}

// selectAnalysis picks the analysis container a command operates on,
// by name or as the document's single analysis.
func selectAnalysis(doc *femdoc.Document, name string) (model.Object, error) {
	var analyses []model.Object
	for _, obj := range doc.Objects() {
		if !model.IsDerivedFrom(obj, model.KindAnalysis) {
			continue
		}
		if name != "" && obj.Name() != name {
			continue
		}
		analyses = append(analyses, obj)
	}
	switch len(analyses) {
	case 0:
		if name != "" {
			return nil, fmt.Errorf("no analysis named %q in document %s", name, doc.Name())
		}
		return nil, fmt.Errorf("no analysis in document %s", doc.Name())
	case 1:
		return analyses[0], nil
	default:
		return nil, fmt.Errorf("multiple analyses in document %s, pick one with --analysis", doc.Name())
	}
}

// formatTimestamp renders timestamps for display
func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
