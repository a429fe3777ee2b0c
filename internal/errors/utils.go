package errors

import (
	"errors"
	"fmt"
	"strings"
)

// As, Is and Unwrap re-export the standard helpers so callers importing this
// package under the name errors keep access to them.
var (
	As     = errors.As
	Is     = errors.Is
	Unwrap = errors.Unwrap
	New    = errors.New
)

// Wrap wraps an error with BootstrapError context.
func Wrap(err error, errType ErrorType, code, message string) *BootstrapError {
	if err == nil {
		return nil
	}

	// If it's already a BootstrapError, preserve the original context
	var be *BootstrapError
	if errors.As(err, &be) {
		return &BootstrapError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       err,
			Phase:       be.Phase,
			Output:      be.Output,
			Suggestions: be.Suggestions,
			Recoverable: be.Recoverable,
		}
	}

	return &BootstrapError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapIO wraps an error as an I/O error.
func WrapIO(err error, code, message string) *BootstrapError {
	return Wrap(err, ErrorTypeIO, code, message)
}

// WrapConfig wraps an error as a configuration error.
func WrapConfig(err error, code, message string) *BootstrapError {
	return Wrap(err, ErrorTypeConfig, code, message)
}

// WrapInternal wraps an error as an internal error.
func WrapInternal(err error, code, message string) *BootstrapError {
	return Wrap(err, ErrorTypeInternal, code, message)
}

// FormatError formats an error for user display.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var be *BootstrapError
	if errors.As(err, &be) {
		return be.Error()
	}

	return err.Error()
}

// FormatErrorWithSuggestions formats an error with captured output and
// suggestions when the error carries them.
func FormatErrorWithSuggestions(err error) string {
	if err == nil {
		return ""
	}

	var ve ValidationError
	if errors.As(err, &ve) {
		return appendSuggestions(ve.Error(), ve.Suggestions())
	}

	var be *BootstrapError
	if errors.As(err, &be) {
		result := be.Error()
		if be.Output != "" {
			result += "\n\nError details:\n" + be.Output
		}
		return appendSuggestions(result, be.Suggestions)
	}

	return FormatError(err)
}

func appendSuggestions(result string, suggestions []string) string {
	if len(suggestions) == 0 {
		return result
	}

	var b strings.Builder
	b.WriteString(result)
	b.WriteString("\n\nPossible solutions:")
	for i, suggestion := range suggestions {
		b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
	}
	return b.String()
}

// ExitCode maps an error to the process exit code. Every failure is fatal.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
