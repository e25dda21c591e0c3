package policy

import "fmt"

// ValidationError represents a blocking validation failure
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains the outcome of config validation. Errors block
// submission; warnings are advisory and surfaced alongside either outcome.
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []string
}

// AddError adds a blocking validation error
func (r *ValidationResult) AddError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// AddWarning adds a non-blocking warning
func (r *ValidationResult) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// HasErrors returns true if there are validation errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorStrings returns the error messages in the order they were added
func (r *ValidationResult) ErrorStrings() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return msgs
}
