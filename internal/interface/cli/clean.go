package cli

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/danweiss/femstage/internal/core/ledger"
)

var (
	cleanBefore string
	cleanPurge  bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Prune stale staging runs from the catalog",
	Long: `Remove catalog entries resolved before a cutoff. The cutoff accepts
natural language as well as dates. With --purge the staging
directories themselves are deleted from disk too.

Examples:
  femstage clean --before "two weeks ago"
  femstage clean --before 2026-01-01 --purge`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVar(&cleanBefore, "before", "", "Cutoff: entries resolved before this are removed (required)")
	cleanCmd.Flags().BoolVar(&cleanPurge, "purge", false, "Also delete the staging directories from disk")
	_ = cleanCmd.MarkFlagRequired("before")
}

func runClean(cmd *cobra.Command, args []string) error {
	cutoff := parseCutoff(cleanBefore)
	if cutoff == nil {
		return fmt.Errorf("cannot parse cutoff %q", cleanBefore)
	}

	db, err := ledger.New(ledgerPath)
	if err != nil {
		return fmt.Errorf("failed to open staging catalog: %w", err)
	}
	defer func() { _ = db.Close() }()

	removed, err := db.DeleteBefore(*cutoff, cleanPurge)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Printf("Nothing resolved before %s.\n", formatTimestamp(*cutoff))
		return nil
	}

	for _, r := range removed {
		action := "forgot"
		if cleanPurge {
			action = "removed"
		}
		fmt.Printf("%s %s (%s / %s)\n", action, r.Path, r.Document, r.Label)
	}
	fmt.Printf("\nPruned %d staging run(s).\n", len(removed))
	return nil
}

// parseCutoff attempts natural language first, then standard formats
func parseCutoff(s string) *time.Time {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	if result, err := w.Parse(s, time.Now()); err == nil && result != nil {
		return &result.Time
	}

	formats := []string{
		"2006-01-02",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return &t
		}
	}
	return nil
}
