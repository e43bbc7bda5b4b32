package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	ledgerPath  string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "femstage",
	Short: "FEM solver staging directory manager",
	Long: `femstage - resolve, inspect, and prune solver staging directories

Resolves the working directory a solver run stages its input and output
files in, following the configured placement policy (temporary, beside
the document, or under a custom base), and keeps a catalog of resolved
directories so stale staging areas can be found and cleaned up later.`,
}

func init() {
	// Global flags
	home, err := os.UserHomeDir()
	if err != nil {
		home = "~"
	}
	defaultLedger := filepath.Join(home, ".config", "femstage", "staging.db")

	rootCmd.PersistentFlags().StringVar(&ledgerPath, "ledger", defaultLedger, "Staging catalog path")
}
