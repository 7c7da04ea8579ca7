package api

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/signature-homes-backend/errs"
	"github.com/rpupo63/signature-homes-backend/models"
)

const (
	maxFormBodySize        = 1 << 20
	defaultSubmissionLimit = 20
	maxSubmissionLimit     = 100
)

const contactConfirmation = "Thank you for contacting us. We'll get back to you shortly."

// ContactSubmitter relays a contact form submission
type ContactSubmitter interface {
	Submit(ctx context.Context, submission *models.ContactSubmission) error
}

// SubmissionLister reads back recorded submissions
type SubmissionLister interface {
	FindRecent(limit int) ([]models.ContactSubmission, error)
}

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contact     ContactSubmitter
	submissions SubmissionLister
}

func newContactHandler(contact ContactSubmitter, submissions SubmissionLister) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contact:     contact,
		submissions: submissions,
	}
}

// submitContact relays the contact form. Accepts JSON or a regular HTML form post.
// @Summary Submit contact form
// @Tags Contact
// @Accept json,x-www-form-urlencoded,mpfd
// @Produce json
// @Success 201 {object} ContactResponse "Submitted"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or invalid field"
// @Failure 502 {object} ErrorResponse "Bad Gateway - Submission failed, please try again"
// @Router /contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submission, err := parseContactRequest(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.contact.Submit(r.Context(), &submission); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, ContactResponse{
			Status:  submission.RelayStatus,
			Message: contactConfirmation,
		})
	}
}

// getSubmissions lists the most recent recorded submissions
// @Summary List contact submissions
// @Tags Contact
// @Produce json
// @Param limit query int false "Max results (default 20, max 100)"
// @Success 200 {object} SubmissionCollection "Recent submissions, newest first"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /contact/submissions [get]
func (h contactHandler) getSubmissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultSubmissionLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("limit", "must be a positive integer"))
				return
			}
			limit = min(parsed, maxSubmissionLimit)
		}

		submissions, err := h.submissions.FindRecent(limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find recent", "contact submissions", err))
			return
		}

		h.responder.WriteJSON(w, SubmissionCollection{
			Submissions: submissions,
			Total:       len(submissions),
		})
	}
}

func parseContactRequest(w http.ResponseWriter, r *http.Request) (models.ContactSubmission, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "application/json":
		var req contactRequest
		if err := decodeJSONBody(w, r, &req, false); err != nil {
			return models.ContactSubmission{}, err
		}
		return models.ContactSubmission{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       req.Phone,
			ProjectType: req.ProjectType,
			Message:     req.Message,
		}, nil

	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBodySize)
		var parseErr error
		if mediaType == "multipart/form-data" {
			parseErr = r.ParseMultipartForm(maxFormBodySize)
		} else {
			parseErr = r.ParseForm()
		}
		if parseErr != nil {
			var maxErr *http.MaxBytesError
			if errors.As(parseErr, &maxErr) {
				return models.ContactSubmission{}, errs.NewMaxBodySizeExceededError(maxErr.Limit)
			}
			return models.ContactSubmission{}, errs.NewMalformedPayloadError("form", parseErr)
		}

		submission := models.ContactSubmission{
			FirstName:   r.PostFormValue("firstName"),
			LastName:    r.PostFormValue("lastName"),
			Email:       r.PostFormValue("email"),
			ProjectType: r.PostFormValue("projectType"),
			Message:     r.PostFormValue("message"),
		}
		if phone := r.PostFormValue("phone"); phone != "" {
			submission.Phone = &phone
		}
		return submission, nil

	default:
		return models.ContactSubmission{}, errs.NewUnsupportedMediaTypeError(mediaType, []string{
			"application/json", "application/x-www-form-urlencoded", "multipart/form-data",
		})
	}
}
