package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danweiss/femstage/internal/core/analysis"
	"github.com/danweiss/femstage/internal/core/model"
)

var infoDoc string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize a document dump",
	Long: `Print a summary of a document dump: save state, analyses and their
member counts, solvers and meshes.

Example:
  femstage info --doc beam.json`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoDoc, "doc", "", "Document dump to inspect")
}

func runInfo(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(infoDoc)
	if err != nil {
		return err
	}

	fmt.Printf("Document: %s\n", doc.Name())
	if doc.Path() != "" {
		fmt.Printf("Saved at: %s\n", doc.Path())
	} else {
		fmt.Println("Saved at: (not saved)")
	}
	fmt.Printf("Objects:  %d\n", len(doc.Objects()))
	fmt.Println()

	for _, obj := range doc.Objects() {
		if !model.IsDerivedFrom(obj, model.KindAnalysis) {
			continue
		}
		fmt.Printf("Analysis %s (%d members)\n", obj.Label(), len(obj.Children()))

		solvers, _ := analysis.Members(obj, model.KindSolver)
		for _, s := range solvers {
			fmt.Printf("  Solver: %s (%s)\n", s.Label(), model.TypeOf(s))
		}

		mesh, err := analysis.MeshToSolve(obj)
		switch {
		case err != nil:
			fmt.Printf("  Mesh: %v\n", err)
		default:
			fmt.Printf("  Mesh: %s", mesh.Label())
			if part := analysis.PartToMesh(mesh); part != nil {
				fmt.Printf(" -> %s", part.Label())
			}
			fmt.Println()
		}

		mats, _ := analysis.Members(obj, model.KindMaterial)
		cons, _ := analysis.Members(obj, model.KindConstraint)
		fmt.Printf("  Materials: %d, Constraints: %d\n", len(mats), len(cons))
	}
	return nil
}
