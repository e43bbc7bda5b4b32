// Package workdir resolves the staging directory a solver run uses for
// its input and output files, according to the user's directory-mode
// preference.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TempPrefix is the name prefix of temporary staging directories.
const TempPrefix = "fcfem_"

// Mode is the user's directory-placement preference.
type Mode int

const (
	// Unknown means no placement preference is configured.
	Unknown Mode = iota
	// Temporary stages files in a fresh OS temp directory.
	Temporary
	// Beside stages files next to the saved document.
	Beside
	// Custom stages files under a user-configured base directory.
	Custom
)

// String returns the preference-store spelling of the mode.
func (m Mode) String() string {
	switch m {
	case Temporary:
		return "temporary"
	case Beside:
		return "beside"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseMode maps a preference-store value to a Mode. Unrecognized values
// map to Unknown rather than erroring, matching the permissive behavior
// of the host preference dialog.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "temporary", "temp":
		return Temporary
	case "beside":
		return Beside
	case "custom":
		return Custom
	default:
		return Unknown
	}
}

// SolverContext is the read-only view of the requesting solver object.
// The caller supplies it; the resolver never mutates it.
type SolverContext struct {
	Label        string // display label of the solver object
	DocumentName string // internal name of the owning document
	DocumentPath string // save path of the document, empty if unsaved
}

// Resolved is the outcome of a resolution.
type Resolved struct {
	// Path is the chosen directory. Empty when Mode was Unknown.
	Path string
	// Created reports whether the directory was freshly created by this
	// call.
	Created bool
	// Warning carries a recoverable condition (currently only
	// MustSaveDocument). The Path is still usable when Warning is set.
	Warning error
}

// Resolve maps the directory-mode preference to a concrete, existing
// directory for the given solver context.
//
// Beside mode on an unsaved document is recoverable: the result carries a
// *MustSaveDocument warning and falls back to a fresh temp directory.
// Custom mode with a base that does not exist is fatal and returns
// ErrDirectoryDoesNotExist; a mistyped custom path must be surfaced, not
// masked. An Unknown mode yields an empty path and no error.
func Resolve(ctx SolverContext, mode Mode, customBase string) (Resolved, error) {
	switch mode {
	case Temporary:
		path, err := tempDir()
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Path: path, Created: true}, nil

	case Beside:
		if ctx.DocumentPath == "" {
			path, err := tempDir()
			if err != nil {
				return Resolved{}, err
			}
			warn := &MustSaveDocument{Label: ctx.Label, Document: ctx.DocumentName, Fallback: path}
			return Resolved{Path: path, Created: true, Warning: warn}, nil
		}
		base := strings.TrimSuffix(ctx.DocumentPath, filepath.Ext(ctx.DocumentPath))
		return ensureDir(filepath.Join(base, ctx.Label))

	case Custom:
		info, err := os.Stat(customBase)
		if err != nil || !info.IsDir() {
			return Resolved{}, fmt.Errorf("custom working directory %q: %w", customBase, ErrDirectoryDoesNotExist)
		}
		return ensureDir(filepath.Join(customBase, ctx.DocumentName, ctx.Label))

	default:
		// No mode configured. Callers treat an empty path as "nothing to
		// stage", so this is deliberately not an error.
		return Resolved{}, nil
	}
}

// DirectoryExists reports whether path names an existing directory. Used
// by callers to re-validate a previously resolved path, e.g. a temp
// directory that the OS may have cleaned between runs.
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func tempDir() (string, error) {
	path, err := os.MkdirTemp("", TempPrefix)
	if err != nil {
		return "", fmt.Errorf("failed to create temp working directory: %w", err)
	}
	return path, nil
}

// ensureDir creates path with all missing parents. A directory that
// already exists is success, so repeated resolution of the same context
// is idempotent. Creation races with other processes are not guarded.
func ensureDir(path string) (Resolved, error) {
	if DirectoryExists(path) {
		return Resolved{Path: path}, nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return Resolved{}, fmt.Errorf("failed to create working directory %s: %w", path, err)
	}
	return Resolved{Path: path, Created: true}, nil
}
