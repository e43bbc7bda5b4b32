// Package notify carries conditions from the core to the user. Which
// surface shows them (console, host dialog, nothing) is the caller's
// choice; resolution code only ever talks to the Notifier interface.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/cbroglie/mustache"
)

// Default message templates, mustache syntax. Overridable through the
// preference store.
const (
	DefaultMustSaveTemplate = `Please save document "{{document}}" before executing a solver or creating a mesh. The working directory is set to "beside" the document file, which requires a save location. For this run a temporary directory is used: {{path}}`

	DefaultMissingDirTemplate = `The configured working directory "{{path}}" does not exist. Fix the custom directory preference before running solver "{{label}}".`
)

// Notifier presents warnings and errors to the user.
type Notifier interface {
	Warn(title, body string)
	Error(title, body string)
}

// Console writes notifications to a stream, stderr by default.
type Console struct {
	Out io.Writer
}

// NewConsole returns a Notifier writing to stderr.
func NewConsole() *Console {
	return &Console{Out: os.Stderr}
}

func (c *Console) Warn(title, body string) {
	fmt.Fprintf(c.Out, "Warning: %s\n%s\n", title, body)
}

func (c *Console) Error(title, body string) {
	fmt.Fprintf(c.Out, "Error: %s\n%s\n", title, body)
}

// Discard drops all notifications. Used where no UI is present.
type Discard struct{}

func (Discard) Warn(title, body string)  {}
func (Discard) Error(title, body string) {}

// MessageData is the template context for notification bodies.
type MessageData struct {
	Label    string
	Document string
	Path     string
}

// Render fills a mustache template with the message data. An empty
// template string selects fallback. Template errors degrade to the raw
// template text rather than suppressing the notification.
func Render(template, fallback string, data MessageData) string {
	if template == "" {
		template = fallback
	}
	body, err := mustache.Render(template, map[string]string{
		"label":    data.Label,
		"document": data.Document,
		"path":     data.Path,
	})
	if err != nil {
		return template
	}
	return body
}
