package handler

import (
	"errors"

	"github.com/forgo/foundry/api/internal/database"
	"github.com/forgo/foundry/api/internal/model"
	"github.com/forgo/foundry/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// Validation violations carry the full list and come back as data.
	if verr, ok := service.AsValidationError(err); ok {
		return model.NewValidationError(verr.Violations)
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrStartupNotFound):
		return model.NewNotFoundError("startup")
	case errors.Is(err, service.ErrProblemNotFound):
		return model.NewNotFoundError("problem")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrInvestorNotFound):
		return model.NewNotFoundError("investor")

	// ===== Closed-enum violations → 422 =====
	case errors.Is(err, service.ErrInvalidStage):
		return model.NewValidationError([]model.FieldError{{Field: "stage", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidRole):
		return model.NewValidationError([]model.FieldError{{Field: "role", Message: err.Error()}})

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, database.ErrDuplicate):
		return model.NewConflictError("a record with this id already exists")

	// ===== Default → 500 =====
	// Storage failures stay opaque: no backend detail leaves the boundary.
	default:
		return model.NewInternalError("")
	}
}
