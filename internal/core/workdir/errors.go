package workdir

import (
	"errors"
	"fmt"
)

// ErrDirectoryDoesNotExist is returned when Custom mode points at a base
// directory that is missing on disk. There is no fallback; the user
// configured the path and must be told it is wrong.
var ErrDirectoryDoesNotExist = errors.New("working directory does not exist")

// MustSaveDocument reports that Beside mode was requested for a document
// that has never been saved. It is recoverable: resolution falls back to
// a temp directory and carries this as Resolved.Warning so the caller
// can tell the user to save.
type MustSaveDocument struct {
	Label    string // solver object label
	Document string // owning document name
	Fallback string // temp directory used instead
}

func (e *MustSaveDocument) Error() string {
	return fmt.Sprintf("document %q must be saved before solver %q can stage beside it (using %s)",
		e.Document, e.Label, e.Fallback)
}
