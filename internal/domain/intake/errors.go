package intake

import "errors"

var (
	ErrNotFound         = errors.New("draft not found")
	ErrExpired          = errors.New("draft expired")
	ErrVersionConflict  = errors.New("draft was modified concurrently")
	ErrAlreadySubmitted = errors.New("draft already submitted")
	ErrInvalidService   = errors.New("service not in catalog")
	ErrNoPendingService = errors.New("no service selection in progress")
	ErrWrongStep        = errors.New("operation not allowed at current step")
)

// ValidationError carries per-field problems for one wizard step. It is
// always recoverable by re-prompting the same step.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func newValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
