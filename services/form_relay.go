package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rpupo63/signature-homes-backend/models"
)

// ContactFormName is the hidden form-name field hosted form providers use to
// route submissions
const ContactFormName = "contact"

// FormRelay posts contact submissions to the third-party form endpoint
type FormRelay struct {
	endpoint string
	client   *http.Client
}

func NewFormRelay(endpoint string, timeout time.Duration) *FormRelay {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FormRelay{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// FormValues encodes a submission with the contact form's field names
func FormValues(s models.ContactSubmission) url.Values {
	values := url.Values{}
	values.Set("form-name", ContactFormName)
	values.Set("firstName", s.FirstName)
	values.Set("lastName", s.LastName)
	values.Set("email", s.Email)
	if s.Phone != nil {
		values.Set("phone", *s.Phone)
	} else {
		values.Set("phone", "")
	}
	values.Set("projectType", s.ProjectType)
	values.Set("message", s.Message)
	return values
}

// Relay submits the form. Any non-2xx status is reported as an error.
func (r *FormRelay) Relay(ctx context.Context, submission models.ContactSubmission) error {
	body := FormValues(submission).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create form request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json, text/html")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post form to %s: %w", r.endpoint, err)
	}
	defer resp.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("form endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
