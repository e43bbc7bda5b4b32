package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danweiss/femstage/internal/core/settings"
	"github.com/danweiss/femstage/internal/core/workdir"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show the effective staging preferences",
	Long: `Print the preference file location and the effective directory
placement settings.`,
	RunE: runPrefs,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
}

func runPrefs(cmd *cobra.Command, args []string) error {
	cfg, err := settings.Load()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	fmt.Printf("Config file: %s\n", settings.Path())
	fmt.Printf("Placement mode: %s\n", cfg.DirMode)
	switch cfg.DirMode {
	case workdir.Custom:
		if cfg.CustomDir == "" {
			fmt.Println("Custom base: (not set)")
		} else {
			status := ""
			if !workdir.DirectoryExists(cfg.CustomDir) {
				status = " (missing!)"
			}
			fmt.Printf("Custom base: %s%s\n", cfg.CustomDir, status)
		}
	case workdir.Unknown:
		fmt.Println("No placement mode configured; resolution returns no directory.")
	}
	return nil
}
