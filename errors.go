package signup

import (
	"errors"
	"strings"
)

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrNotFound         = errors.New("account not found")
	ErrStoreUnavailable = errors.New("account store unavailable")
)

// FieldViolation is a single broken validation rule on one input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated rule of a registration request,
// in the order the rules are declared. The caller can fix its input and
// retry; it is an expected outcome, not a fault.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return strings.Join(msgs, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
