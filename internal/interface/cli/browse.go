package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/danweiss/femstage/internal/core/ledger"
	"github.com/danweiss/femstage/internal/interface/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse staging directories interactively",
	Long: `Launch an interactive terminal UI for browsing cataloged staging
directories. Enter prints the selected path, 'c' copies it to the
clipboard.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	db, err := ledger.New(ledgerPath)
	if err != nil {
		return fmt.Errorf("failed to open staging catalog: %w", err)
	}
	defer func() { _ = db.Close() }()

	model := tui.New(db)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	// Print the chosen path after the alt screen is torn down
	if m, ok := finalModel.(tui.Model); ok && m.ChosenPath != "" {
		fmt.Println(m.ChosenPath)
	}
	return nil
}
