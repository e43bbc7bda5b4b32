package cli

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danweiss/femstage/internal/core/ledger"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show staging catalog statistics",
	Long:  "Show how many staging directories are cataloged, how many are still on disk, and how much space they take.",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := ledger.New(ledgerPath)
	if err != nil {
		return fmt.Errorf("failed to open staging catalog: %w", err)
	}
	defer func() { _ = db.Close() }()

	stats, err := db.GetStats()
	if err != nil {
		return fmt.Errorf("failed to gather stats: %w", err)
	}

	fmt.Println("Staging Catalog Statistics")
	fmt.Println("==========================")
	fmt.Println()
	fmt.Printf("Total runs:  %d\n", stats.TotalRuns)
	fmt.Printf("Still on disk: %d\n", stats.LiveRuns)
	fmt.Printf("Staged data: %s\n", humanize.Bytes(uint64(stats.StagedBytes)))

	if len(stats.RunsByMode) > 0 {
		fmt.Println()
		fmt.Println("By mode:")
		modes := make([]string, 0, len(stats.RunsByMode))
		for mode := range stats.RunsByMode {
			modes = append(modes, mode)
		}
		sort.Strings(modes)
		for _, mode := range modes {
			fmt.Printf("  %-10s %d\n", mode, stats.RunsByMode[mode])
		}
	}
	return nil
}
