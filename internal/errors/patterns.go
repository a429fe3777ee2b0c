package errors

import (
	"fmt"
)

// Phase Error Patterns

// PhaseError creates a standardized pipeline phase error. Causes that are
// already BootstrapErrors keep their type and code and only gain the phase.
func PhaseError(phase, code, message string, cause error) *BootstrapError {
	var be *BootstrapError
	if As(cause, &be) {
		return be.WithPhase(phase)
	}

	return &BootstrapError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Phase:   phase,
		Message: message,
		Cause:   cause,
	}
}

// PrerequisiteError creates an error for a missing or unusable tool.
func PrerequisiteError(tool, message string) *BootstrapError {
	return &BootstrapError{
		Type:    ErrorTypePrerequisite,
		Code:    ErrCodeToolMissing,
		Message: fmt.Sprintf("%s %s", tool, message),
	}
}

// SubprocessError creates an error for a failed command, carrying its output.
func SubprocessError(code, command, output string, cause error) *BootstrapError {
	return NewSubprocessError(code, fmt.Sprintf("command %q failed", command), cause).
		WithOutput(output).
		WithContext("command", command)
}

// FileOperationError creates file operation errors.
func FileOperationError(operation, filePath, message string, cause error) *BootstrapError {
	code := fmt.Sprintf("ERR_FILE_%s", operation)
	return NewIOError(code, fmt.Sprintf("file %s failed for %s: %s", operation, filePath, message), cause).
		WithContext("file_path", filePath)
}

// ConfigurationError creates configuration-related errors.
func ConfigurationError(setting, message string, value interface{}) *BootstrapError {
	return NewConfigError(
		ErrCodeInvalidConfig,
		fmt.Sprintf("invalid configuration for %s: %s", setting, message),
	).WithContext("setting", setting).WithContext("value", value)
}

// PromptError wraps a failure of the interactive prompt layer.
func PromptError(field string, cause error) *BootstrapError {
	return NewInternalError(ErrCodePrompt, fmt.Sprintf("reading %s failed", field), cause)
}

// Error Inspection Helpers

// HasErrorCode checks if an error has a specific error code.
func HasErrorCode(err error, code string) bool {
	var be *BootstrapError
	if As(err, &be) {
		return be.Code == code
	}
	return false
}

// HasErrorType checks if an error is of a specific type.
func HasErrorType(err error, errType ErrorType) bool {
	var be *BootstrapError
	if As(err, &be) {
		return be.Type == errType
	}
	return false
}

// GetErrorChain returns the full error chain.
func GetErrorChain(err error) []error {
	var chain []error
	current := err

	for current != nil {
		chain = append(chain, current)
		current = Unwrap(current)
	}

	return chain
}
