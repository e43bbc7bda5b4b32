package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danweiss/femstage/internal/core/analysis"
	"github.com/danweiss/femstage/internal/core/model"
)

var (
	membersDoc      string
	membersAnalysis string
	membersKind     string
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the members of an analysis",
	Long: `List the objects grouped under an analysis container, optionally
filtered by kind (inheritance counts, so --kind Fem::FemMeshObject
matches Gmsh and Netgen meshes too).

Examples:
  femstage members --doc beam.json
  femstage members --doc beam.json --kind Fem::Constraint
  femstage members --doc plate.json --analysis Analysis2 --kind App::MaterialObject`,
	RunE: runMembers,
}

func init() {
	rootCmd.AddCommand(membersCmd)
	membersCmd.Flags().StringVar(&membersDoc, "doc", "", "Document dump to inspect")
	membersCmd.Flags().StringVar(&membersAnalysis, "analysis", "", "Analysis name (required with multiple analyses)")
	membersCmd.Flags().StringVar(&membersKind, "kind", "", "Only members of this kind")
}

func runMembers(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(membersDoc)
	if err != nil {
		return err
	}
	ana, err := selectAnalysis(doc, membersAnalysis)
	if err != nil {
		return err
	}

	kind := membersKind
	if kind == "" {
		kind = model.KindDocumentObject
	}
	members, err := analysis.SeveralMembers(ana, kind)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		fmt.Printf("No members of kind %s in %s.\n", kind, ana.Label())
		return nil
	}

	fmt.Printf("%d member(s) of %s:\n\n", len(members), ana.Label())
	for _, m := range members {
		fmt.Printf("  %s\n", m.Object.Label())
		fmt.Printf("    Kind: %s\n", model.TypeOf(m.Object))
		if m.RefShapeType != "" {
			fmt.Printf("    References: %s\n", m.RefShapeType)
		}
	}
	return nil
}
