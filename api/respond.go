package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/signature-homes-backend/errs"
	"github.com/rpupo63/signature-homes-backend/gallery"
	"github.com/rpupo63/signature-homes-backend/session"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	// Marshal first so a failure can still produce a 500
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	err = translateDomainError(err)

	var apiErr *errs.ApiErr

	// Unexpected errors become a generic 500 that keeps the original as its cause
	if !errors.As(err, &apiErr) {
		apiErr = errs.NewInternalErrorWithCause("Internal Server Error", err)
	}

	response := ErrorResponse{
		Error:   apiErr.Error(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}

	// The cause is logged, never shown. Relay failures in particular must
	// look the same to the visitor whatever went wrong upstream.
	if apiErr.Cause != nil {
		event := r.logger.Warn()
		if apiErr.StatusCode >= http.StatusInternalServerError {
			event = r.logger.Error()
		}
		event.Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

// translateDomainError maps gallery and session sentinels onto api errors
func translateDomainError(err error) error {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return err
	}

	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return errs.NewNotFoundError(err.Error())
	case errors.Is(err, gallery.ErrImageNotInView), errors.Is(err, gallery.ErrEmptyView):
		return errs.NewNotFoundError(gallery.ErrImageNotInView.Error())
	case errors.Is(err, gallery.ErrLightboxClosed):
		return errs.NewLightboxClosedError()
	case errors.Is(err, gallery.ErrInvalidDirection):
		return errs.NewInvalidFieldError("direction", "must be next or previous")
	}
	return err
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
