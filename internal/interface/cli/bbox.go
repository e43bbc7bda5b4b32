package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danweiss/femstage/internal/core/geometry"
)

var bboxDoc string

var bboxCmd = &cobra.Command{
	Use:   "bbox",
	Short: "Show the overall bounding box of a document",
	Long: `Compute the union of the bounding boxes of every shaped object in a
document dump. Useful for sizing mesh regions and sanity-checking unit
scales.

Example:
  femstage bbox --doc beam.json`,
	RunE: runBBox,
}

func init() {
	rootCmd.AddCommand(bboxCmd)
	bboxCmd.Flags().StringVar(&bboxDoc, "doc", "", "Document dump to inspect")
}

func runBBox(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(bboxDoc)
	if err != nil {
		return err
	}

	bb := geometry.DocumentBoundBox(doc)
	if bb == nil {
		fmt.Printf("Document %s has no shaped objects.\n", doc.Name())
		return nil
	}

	fmt.Printf("Bound box of %s: %s\n", doc.Name(), bb)
	fmt.Printf("Extent: %g x %g x %g\n", bb.XMax-bb.XMin, bb.YMax-bb.YMin, bb.ZMax-bb.ZMin)
	return nil
}
