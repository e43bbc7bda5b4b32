package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danweiss/femstage/internal/core/ledger"
	"github.com/danweiss/femstage/internal/core/workdir"
)

var checkAll bool

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check that a staging directory still exists",
	Long: `Check whether a previously resolved staging directory is still on
disk. Temp directories in particular may be cleaned by the OS between
sessions.

With --all every cataloged directory is checked instead.

Examples:
  femstage check /tmp/fcfem_123456
  femstage check --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkAll, "all", false, "Check every cataloged staging directory")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkAll {
		return checkCatalog()
	}
	if len(args) != 1 {
		return fmt.Errorf("give a path to check, or --all")
	}

	path := args[0]
	if !workdir.DirectoryExists(path) {
		return fmt.Errorf("staging directory %s does not exist", path)
	}
	fmt.Printf("%s exists\n", path)
	return nil
}

func checkCatalog() error {
	db, err := ledger.New(ledgerPath)
	if err != nil {
		return fmt.Errorf("failed to open staging catalog: %w", err)
	}
	defer func() { _ = db.Close() }()

	runs, err := db.List("")
	if err != nil {
		return fmt.Errorf("failed to list staging runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("Staging catalog is empty.")
		return nil
	}

	missing := 0
	for _, r := range runs {
		status := "ok"
		if !r.Exists {
			status = "MISSING"
			missing++
		}
		fmt.Printf("%-8s %s (%s / %s)\n", status, r.Path, r.Document, r.Label)
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d staging directories missing", missing, len(runs))
	}
	fmt.Printf("\nAll %d staging directories exist.\n", len(runs))
	return nil
}
