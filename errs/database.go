package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// NewDatabaseError maps a driver error for operation on entity onto a status.
// Postgres and sqlite phrase the same failures differently, so matching is on text.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	var apiErr *ApiErr
	switch msg := causeText(cause); {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "UNIQUE constraint failed"):
		apiErr = NewConflictError(fmt.Sprintf("%s already exists", entity))
	case strings.Contains(msg, "not found"):
		apiErr = &ApiErr{StatusCode: http.StatusNotFound, err: fmt.Errorf("%s %w", entity, ErrNotFound)}
	case strings.Contains(msg, "connection"):
		apiErr = &ApiErr{StatusCode: http.StatusServiceUnavailable, err: ErrDatabaseConnection}
		details = "Unable to connect to database"
	default:
		apiErr = &ApiErr{StatusCode: http.StatusInternalServerError, err: ErrDatabaseQuery}
	}

	apiErr.Details = details
	apiErr.Cause = cause
	return apiErr
}

func causeText(cause error) string {
	if cause == nil {
		return ""
	}
	return cause.Error()
}
