package service

import (
	"errors"
	"fmt"

	"github.com/forgo/foundry/api/internal/model"
)

// Sentinel errors returned by services. Handlers map these to HTTP problem
// responses in the error mapper.
var (
	ErrStartupNotFound  = errors.New("startup not found")
	ErrProblemNotFound  = errors.New("problem not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvestorNotFound = errors.New("investor not found")

	ErrInvalidStage = errors.New("stage must be one of: idea, mvp, traction, revenue")
	ErrInvalidRole  = errors.New("role must be 'founder' or 'investor'")
)

// ValidationError carries the full list of violations found by the entity
// rules. Violations are returned together, never one at a time, so a caller
// can surface every problem in one round trip.
type ValidationError struct {
	Violations []model.FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (%d violations)", e.Violations[0].Message, len(e.Violations))
}

// AsValidationError unwraps a ValidationError if err is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
