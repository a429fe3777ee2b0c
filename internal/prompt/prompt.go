// Package prompt asks the user for project settings. The form prompter
// renders charmbracelet/huh fields; the line prompter reads plain lines and
// is used when stdin is not a terminal or plain output is requested.
package prompt

import (
	"context"
	"errors"
	"io"
	"os"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted by user")

// Prompter asks single questions. An empty answer yields the default.
type Prompter interface {
	Input(ctx context.Context, message, defaultValue string) (string, error)
	Confirm(ctx context.Context, message string, defaultValue bool) (bool, error)
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// New picks the form prompter for terminals and the line prompter otherwise.
func New(plain bool, in io.Reader, out io.Writer) Prompter {
	if plain || !IsInteractive() {
		return NewLinePrompter(in, out)
	}
	return NewFormPrompter()
}
