package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danweiss/femstage/internal/core/ledger"
)

var (
	listLimit    int
	listDocument string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged staging directories",
	Long: `List resolved staging directories in reverse chronological order,
with a live check whether each directory still exists.

Examples:
  femstage list
  femstage list --limit 10
  femstage list --document Beam`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of runs to display")
	listCmd.Flags().StringVar(&listDocument, "document", "", "Filter by document name")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := ledger.New(ledgerPath)
	if err != nil {
		return fmt.Errorf("failed to open staging catalog: %w", err)
	}
	defer func() { _ = db.Close() }()

	runs, err := db.List(listDocument)
	if err != nil {
		return fmt.Errorf("failed to list staging runs: %w", err)
	}
	if len(runs) > listLimit {
		runs = runs[:listLimit]
	}

	if len(runs) == 0 {
		if listDocument != "" {
			fmt.Printf("No staging runs found for document: %s\n", listDocument)
		} else {
			fmt.Println("No staging runs found. Run 'femstage resolve' first.")
		}
		return nil
	}

	fmt.Printf("Showing %d staging run(s)", len(runs))
	if listDocument != "" {
		fmt.Printf(" for document: %s", listDocument)
	}
	fmt.Println()
	fmt.Println()

	for i, r := range runs {
		fmt.Printf("[%d] %s / %s\n", i+1, r.Document, r.Label)
		fmt.Printf("    Path: %s\n", r.Path)
		fmt.Printf("    Mode: %s\n", r.Mode)
		if !r.ResolvedAt.IsZero() {
			fmt.Printf("    Resolved: %s (%s)\n", formatTimestamp(r.ResolvedAt), humanize.Time(r.ResolvedAt))
		}
		if !r.Exists {
			fmt.Println("    Status: directory missing")
		}
		fmt.Println()
	}
	return nil
}
