package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danweiss/femstage/internal/core/analysis"
	"github.com/danweiss/femstage/internal/core/model"
)

var (
	meshDoc      string
	meshAnalysis string
	meshStrict   bool
)

var meshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Show the mesh a solver run would use",
	Long: `Determine the single mesh object of an analysis and the geometry it
meshes. An analysis with no mesh or with several meshes is reported as
a condition; with --strict those conditions fail the command, the way
a solver run would refuse to start.

Examples:
  femstage mesh --doc beam.json
  femstage mesh --doc beam.json --strict`,
	RunE: runMesh,
}

func init() {
	rootCmd.AddCommand(meshCmd)
	meshCmd.Flags().StringVar(&meshDoc, "doc", "", "Document dump to inspect")
	meshCmd.Flags().StringVar(&meshAnalysis, "analysis", "", "Analysis name (required with multiple analyses)")
	meshCmd.Flags().BoolVar(&meshStrict, "strict", false, "Fail on missing or ambiguous mesh")
}

func runMesh(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(meshDoc)
	if err != nil {
		return err
	}
	ana, err := selectAnalysis(doc, meshAnalysis)
	if err != nil {
		return err
	}

	mesh, err := analysis.MeshToSolve(ana)
	if err != nil {
		if errors.Is(err, analysis.ErrNoMesh) || errors.Is(err, analysis.ErrAmbiguousMesh) {
			if meshStrict {
				return err
			}
			fmt.Printf("%s: %v\n", ana.Label(), err)
			return nil
		}
		return err
	}

	fmt.Printf("Mesh: %s (%s)\n", mesh.Label(), model.TypeOf(mesh))
	if part := analysis.PartToMesh(mesh); part != nil {
		fmt.Printf("Meshes: %s (%s)\n", part.Label(), model.TypeOf(part))
	}
	return nil
}
