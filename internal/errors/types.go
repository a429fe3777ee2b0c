package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeIO           ErrorType = "io"
	ErrorTypeSubprocess   ErrorType = "subprocess"
	ErrorTypePrerequisite ErrorType = "prerequisite"
	ErrorTypeConfig       ErrorType = "config"
	ErrorTypeInternal     ErrorType = "internal"
)

// BootstrapError is a structured error type carrying the failed phase, the
// captured output of any subprocess involved and remediation hints.
type BootstrapError struct {
	Type        ErrorType
	Code        string
	Phase       string
	Message     string
	Cause       error
	Output      string
	Context     map[string]interface{}
	Suggestions []string
	Recoverable bool
}

// Error implements the error interface.
func (e *BootstrapError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Phase != "" {
		parts = append(parts, "phase:"+e.Phase)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *BootstrapError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *BootstrapError) Is(target error) bool {
	var t *BootstrapError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *BootstrapError) WithContext(key string, value interface{}) *BootstrapError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithPhase records the pipeline phase the error belongs to. An already set
// phase is kept so the innermost phase wins.
func (e *BootstrapError) WithPhase(phase string) *BootstrapError {
	if e.Phase == "" {
		e.Phase = phase
	}

	return e
}

// WithOutput attaches captured subprocess output.
func (e *BootstrapError) WithOutput(output string) *BootstrapError {
	e.Output = strings.TrimSpace(output)

	return e
}

// WithSuggestions appends remediation hints.
func (e *BootstrapError) WithSuggestions(suggestions ...string) *BootstrapError {
	e.Suggestions = append(e.Suggestions, suggestions...)

	return e
}

// Error creation functions

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *BootstrapError {
	return &BootstrapError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *BootstrapError {
	return &BootstrapError{
		Type:    ErrorTypeIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewSubprocessError creates an error for a failed external command.
func NewSubprocessError(code, message string, cause error) *BootstrapError {
	return &BootstrapError{
		Type:    ErrorTypeSubprocess,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *BootstrapError {
	return &BootstrapError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *BootstrapError {
	return &BootstrapError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var be *BootstrapError
	if errors.As(err, &be) {
		return be.Recoverable
	}

	var ve ValidationError
	return errors.As(err, &ve)
}

// Common error codes.
const (
	ErrCodeToolMissing       = "ERR_TOOL_MISSING"
	ErrCodeToolVersion       = "ERR_TOOL_VERSION"
	ErrCodeCreateDir         = "ERR_CREATE_DIR"
	ErrCodeRepositoryExists  = "ERR_REPOSITORY_EXISTS"
	ErrCodeClone             = "ERR_CLONE"
	ErrCodeGitInit           = "ERR_GIT_INIT"
	ErrCodeCustomize         = "ERR_CUSTOMIZE"
	ErrCodeEnvironment       = "ERR_ENVIRONMENT"
	ErrCodeInstall           = "ERR_INSTALL"
	ErrCodeSupabaseCLI       = "ERR_SUPABASE_CLI"
	ErrCodePrompt            = "ERR_PROMPT"
	ErrCodeInvalidConfig     = "ERR_CONFIG_INVALID"
	ErrCodeValidationFailed  = "ERR_VALIDATION_FAILED"
	ErrCodeInternalError     = "ERR_INTERNAL"
	ErrCodeInvariantViolated = "ERR_INVARIANT"
)

// ValidationError interface for field-specific validation errors.
type ValidationError interface {
	error
	Field() string
	Value() interface{}
	Suggestions() []string
}

// FieldValidationError implements ValidationError for a single input field.
// Expected holds a human readable description of the accepted format.
type FieldValidationError struct {
	FieldName    string
	FieldValue   interface{}
	ErrorMessage string
	Expected     string
	HelpText     []string
}

// Error implements the error interface.
func (fve *FieldValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", fve.FieldName, fve.ErrorMessage)
}

// Field returns the field name that failed validation.
func (fve *FieldValidationError) Field() string {
	return fve.FieldName
}

// Value returns the invalid value.
func (fve *FieldValidationError) Value() interface{} {
	return fve.FieldValue
}

// Suggestions returns helpful suggestions for fixing the error.
func (fve *FieldValidationError) Suggestions() []string {
	return fve.HelpText
}

// ToBootstrapError converts the field validation error to a BootstrapError.
func (fve *FieldValidationError) ToBootstrapError() *BootstrapError {
	return NewValidationError(
		"ERR_FIELD_"+strings.ToUpper(strings.ReplaceAll(fve.FieldName, " ", "_")),
		fve.ErrorMessage,
	).WithContext("field", fve.FieldName).WithContext("value", fve.FieldValue)
}

// NewFieldValidationError creates a new field validation error.
func NewFieldValidationError(
	field string,
	value interface{},
	message string,
	expected string,
	suggestions ...string,
) *FieldValidationError {
	return &FieldValidationError{
		FieldName:    field,
		FieldValue:   value,
		ErrorMessage: message,
		Expected:     expected,
		HelpText:     suggestions,
	}
}

// ValidationErrorCollection represents a collection of validation errors.
type ValidationErrorCollection struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (vec *ValidationErrorCollection) Error() string {
	if len(vec.Errors) == 0 {
		return "no validation errors"
	}
	if len(vec.Errors) == 1 {
		return vec.Errors[0].Error()
	}

	var messages []string
	for _, err := range vec.Errors {
		messages = append(messages, err.Error())
	}

	return fmt.Sprintf("validation failed with %d errors: %s", len(vec.Errors), strings.Join(messages, "; "))
}

// Add adds a validation error to the collection.
func (vec *ValidationErrorCollection) Add(err ValidationError) {
	vec.Errors = append(vec.Errors, err)
}

// AddField adds a field validation error to the collection.
func (vec *ValidationErrorCollection) AddField(field string, value interface{}, message string, suggestions ...string) {
	vec.Add(NewFieldValidationError(field, value, message, "", suggestions...))
}

// HasErrors returns true if there are any validation errors.
func (vec *ValidationErrorCollection) HasErrors() bool {
	return len(vec.Errors) > 0
}

// ErrorOrNil returns the collection as an error, or nil when it is empty.
func (vec *ValidationErrorCollection) ErrorOrNil() error {
	if !vec.HasErrors() {
		return nil
	}
	return vec
}
