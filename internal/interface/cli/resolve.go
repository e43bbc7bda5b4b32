package cli

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/danweiss/femstage/internal/core/ledger"
	"github.com/danweiss/femstage/internal/core/notify"
	"github.com/danweiss/femstage/internal/core/settings"
	"github.com/danweiss/femstage/internal/core/workdir"
)

var (
	resolveDoc      string
	resolveSolver   string
	resolveMode     string
	resolveCustom   string
	resolveCopy     bool
	resolveNoRecord bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the staging directory for a solver",
	Long: `Resolve (and create if needed) the working directory a solver run
stages its files in, according to the configured placement policy.

The policy comes from the preference file and can be overridden with
--mode and --custom-dir. The chosen path is printed on stdout and
recorded in the staging catalog.

Examples:
  femstage resolve --doc beam.json
  femstage resolve --doc beam.json --solver CalculiX
  femstage resolve --doc beam.json --mode custom --custom-dir /srv/fem
  femstage resolve --doc beam.json --copy`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveDoc, "doc", "", "Document dump to resolve against")
	resolveCmd.Flags().StringVar(&resolveSolver, "solver", "", "Solver label (required with multiple solvers)")
	resolveCmd.Flags().StringVar(&resolveMode, "mode", "", "Override placement mode: temporary, beside, custom")
	resolveCmd.Flags().StringVar(&resolveCustom, "custom-dir", "", "Override custom base directory")
	resolveCmd.Flags().BoolVar(&resolveCopy, "copy", false, "Copy the resolved path to the clipboard")
	resolveCmd.Flags().BoolVar(&resolveNoRecord, "no-record", false, "Do not record the resolution in the catalog")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := settings.Load()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	mode := cfg.DirMode
	if resolveMode != "" {
		mode = workdir.ParseMode(resolveMode)
	}
	customBase := cfg.CustomDir
	if resolveCustom != "" {
		customBase = resolveCustom
	}

	doc, err := loadDocument(resolveDoc)
	if err != nil {
		return err
	}
	solver, err := selectSolver(doc, resolveSolver)
	if err != nil {
		return err
	}

	ctx := workdir.SolverContext{
		Label:        solver.Label(),
		DocumentName: doc.Name(),
		DocumentPath: doc.Path(),
	}

	notifier := notify.NewConsole()
	res, err := workdir.Resolve(ctx, mode, customBase)
	if err != nil {
		if errors.Is(err, workdir.ErrDirectoryDoesNotExist) {
			body := notify.Render(cfg.MissingDirTemplate, notify.DefaultMissingDirTemplate, notify.MessageData{
				Label:    ctx.Label,
				Document: ctx.DocumentName,
				Path:     customBase,
			})
			notifier.Error("Cannot resolve working directory", body)
		}
		return err
	}

	var mustSave *workdir.MustSaveDocument
	if errors.As(res.Warning, &mustSave) {
		body := notify.Render(cfg.MustSaveTemplate, notify.DefaultMustSaveTemplate, notify.MessageData{
			Label:    ctx.Label,
			Document: ctx.DocumentName,
			Path:     mustSave.Fallback,
		})
		notifier.Warn("Document not saved", body)
	}

	if res.Path == "" {
		// No placement mode configured: nothing to stage, nothing to
		// print. Mirrors the host's permissive behavior.
		return nil
	}

	if !resolveNoRecord {
		db, err := ledger.New(ledgerPath)
		if err != nil {
			return fmt.Errorf("failed to open staging catalog: %w", err)
		}
		defer func() { _ = db.Close() }()
		if err := db.Record(doc.Name(), solver.Label(), mode, res); err != nil {
			return err
		}
	}

	if resolveCopy {
		if err := clipboard.WriteAll(res.Path); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to copy to clipboard: %v\n", err)
		}
	}

	fmt.Println(res.Path)
	return nil
}
