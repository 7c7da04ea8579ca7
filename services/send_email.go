package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/signature-homes-backend/models"
	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ResendMailer sends email through the Resend API
type ResendMailer struct {
	apiKey    string
	fromEmail string
	endpoint  string
	client    *http.Client
}

// NewResendMailer needs RESEND_API_KEY and RESEND_FROM_EMAIL
// (e.g. "Signature Homes <[email protected]>")
func NewResendMailer(apiKey, fromEmail string) *ResendMailer {
	return &ResendMailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		endpoint:  resendEndpoint,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// WithEndpoint points the mailer at another API base, used by tests
func (m *ResendMailer) WithEndpoint(endpoint string) *ResendMailer {
	m.endpoint = endpoint
	return m
}

// SendEmail sends an HTML email to recipients
func (m *ResendMailer) SendEmail(ctx context.Context, subject, body, replyTo string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if m.apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required")
	}
	if m.fromEmail == "" {
		return fmt.Errorf("RESEND_FROM_EMAIL is required")
	}

	// Build the Resend API payload
	payload := ResendEmailRequest{
		From:    m.fromEmail,
		To:      recipients,
		Subject: subject,
		Html:    body,
		ReplyTo: replyTo,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}

// EmailNotifier mails new inquiries to the builder
type EmailNotifier struct {
	mailer     *ResendMailer
	recipients []string
}

func NewEmailNotifier(mailer *ResendMailer, recipients []string) *EmailNotifier {
	return &EmailNotifier{mailer: mailer, recipients: recipients}
}

func (n *EmailNotifier) Name() string { return "email" }

func (n *EmailNotifier) Notify(ctx context.Context, s models.ContactSubmission) error {
	subject := fmt.Sprintf("New %s inquiry from %s", projectTypeLabel(s.ProjectType), s.FullName())
	return n.mailer.SendEmail(ctx, subject, submissionHTML(s), s.Email, n.recipients)
}

func submissionHTML(s models.ContactSubmission) string {
	var b strings.Builder
	b.WriteString("<h2>New contact form submission</h2><ul>")
	row := func(label, value string) {
		fmt.Fprintf(&b, "<li><strong>%s:</strong> %s</li>", label, html.EscapeString(value))
	}
	row("Name", s.FullName())
	row("Email", s.Email)
	if s.Phone != nil {
		row("Phone", *s.Phone)
	}
	row("Project type", projectTypeLabel(s.ProjectType))
	b.WriteString("</ul><p>")
	b.WriteString(strings.ReplaceAll(html.EscapeString(s.Message), "\n", "<br>"))
	b.WriteString("</p>")
	return b.String()
}

var projectTypeLabels = map[string]string{
	models.ProjectTypeCustomHome:   "Custom Home",
	models.ProjectTypeBarndominium: "Barndominium",
	models.ProjectTypeRenovation:   "Home Renovation",
	models.ProjectTypeKitchenBath:  "Kitchen & Bathroom Remodeling",
	models.ProjectTypeAdditions:    "Additions",
	models.ProjectTypeOther:        "Other",
}

func projectTypeLabel(projectType string) string {
	if label, ok := projectTypeLabels[projectType]; ok {
		return label
	}
	return projectType
}
