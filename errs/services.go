package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// External collaborator errors
var (
	ErrSubmissionFailed   = errors.New("there was an issue with the submission, please try again")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrConfigMissing      = errors.New("configuration missing")
)

// Gallery errors
var (
	ErrSessionNotFound = errors.New("gallery session not found")
	ErrImageNotInView  = errors.New("image is not in the current gallery view")
	ErrLightboxClosed  = errors.New("lightbox is closed")
)

// NewSubmissionFailedError is the single user-facing failure of the contact
// form. The cause is kept for logs but every failure looks the same to the user.
func NewSubmissionFailedError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrSubmissionFailed,
		Cause:      cause,
	}
}

func NewServiceUnavailableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s is unavailable", service),
		Cause:      cause,
	}
}

func NewConfigError(configName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Field:      configName,
	}
}

func NewSessionNotFoundError(sessionID string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrSessionNotFound,
		Details:    fmt.Sprintf("Session %s does not exist or has expired", sessionID),
		Field:      "sessionID",
	}
}

func NewImageNotInViewError(imageID int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrImageNotInView,
		Details:    fmt.Sprintf("Image %d is not part of the selected project", imageID),
		Field:      "imageID",
	}
}

func NewLightboxClosedError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrLightboxClosed,
		Details:    "Open an image before navigating",
	}
}

func IsSubmissionFailed(err error) bool {
	return errors.Is(err, ErrSubmissionFailed)
}
