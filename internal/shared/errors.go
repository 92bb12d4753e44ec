package shared

import "fmt"

// Kind classifies a DomainError so handlers can choose a response
// status without inspecting message text.
type Kind int

const (
	// KindUnclassified covers connectivity failures and anything the
	// store layer could not interpret.
	KindUnclassified Kind = iota
	// KindValidation indicates malformed or out-of-range input.
	KindValidation
	// KindNotFound indicates no matching row.
	KindNotFound
	// KindConflict indicates a unique violation or a delete blocked by
	// an existing reference.
	KindConflict
	// KindInvalidReference indicates a write pointing at a nonexistent
	// row, e.g. a product created with an unknown category.
	KindInvalidReference
)

// DomainError is the tagged error produced by repositories and
// validation. Field names the offending input field or unique column,
// Constraint the database constraint that fired, when known.
type DomainError struct {
	Kind       Kind
	Field      string
	Constraint string
	Message    string
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing row for the named resource.
func NotFound(resource string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: resource + " not found"}
}

// Conflict reports a unique violation or a blocked delete.
func Conflict(field, constraint, message string) *DomainError {
	return &DomainError{Kind: KindConflict, Field: field, Constraint: constraint, Message: message}
}

// InvalidReference reports a write that points at a nonexistent row.
func InvalidReference(field, message string) *DomainError {
	return &DomainError{Kind: KindInvalidReference, Field: field, Message: message}
}

// Invalid reports malformed or out-of-range input.
func Invalid(field, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Field: field, Message: message}
}

// Unclassified wraps an unexpected store failure.
func Unclassified(message string, err error) *DomainError {
	return &DomainError{Kind: KindUnclassified, Message: message, Err: err}
}
