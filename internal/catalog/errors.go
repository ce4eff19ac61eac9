package catalog

import "github.com/pkg/errors"

var (
	// ErrValidation matches every *ValidationError
	ErrValidation = errors.New("catalog: invalid product form")
	// ErrNotConfirmed is returned when the user declines a destructive action
	ErrNotConfirmed = errors.New("catalog: action not confirmed")
	// ErrNotFound is returned when no product carries the requested id
	ErrNotFound = errors.New("catalog: product not found")
	// ErrPersist matches every *PersistError
	ErrPersist = errors.New("catalog: persist products")
)

// User-facing messages raised through the Prompter
const (
	MsgRequiredFields = "Please fill required fields name and price"
	MsgInvalidPrice   = "Price must be a valid non-negative number"
	MsgConfirmDelete  = "Are you sure you want to delete product?"
)

// ValidationError describes a rejected form submission
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// PersistError reports a failed storage write. The in-memory mutation that
// triggered the write is kept.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return ErrPersist.Error() + ": " + e.Err.Error()
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

func (e *PersistError) Is(target error) bool {
	return target == ErrPersist
}
