package services

import (
	"context"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/signature-homes-backend/errs"
	"github.com/rpupo63/signature-homes-backend/metrics"
	"github.com/rpupo63/signature-homes-backend/models"
)

const (
	maxNameLength    = 100
	maxMessageLength = 5000
)

// Relayer forwards a submission to the hosted form provider
type Relayer interface {
	Relay(ctx context.Context, submission models.ContactSubmission) error
}

// Notifier tells the builder about a new inquiry
type Notifier interface {
	Name() string
	Notify(ctx context.Context, submission models.ContactSubmission) error
}

// SubmissionRepo records submissions and their relay outcome
type SubmissionRepo interface {
	Add(submission *models.ContactSubmission) error
	UpdateStatus(id uuid.UUID, status string) error
}

type ContactService struct {
	relay         Relayer
	repo          SubmissionRepo
	notifiers     []Notifier
	notifyTimeout time.Duration
	logger        zerolog.Logger
	now           func() time.Time
	pending       sync.WaitGroup
}

// NewContactService wires the relay with an optional repo (nil skips
// persistence) and any number of notifiers
func NewContactService(relay Relayer, repo SubmissionRepo, logger zerolog.Logger, notifiers ...Notifier) *ContactService {
	return &ContactService{
		relay:         relay,
		repo:          repo,
		notifiers:     notifiers,
		notifyTimeout: 10 * time.Second,
		logger:        logger.With().Str("service", "contact").Logger(),
		now:           time.Now,
	}
}

// Normalize trims every field and drops an empty phone
func Normalize(s *models.ContactSubmission) {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.Email = strings.TrimSpace(s.Email)
	s.ProjectType = strings.TrimSpace(s.ProjectType)
	s.Message = strings.TrimSpace(s.Message)
	if s.Phone != nil {
		phone := strings.TrimSpace(*s.Phone)
		if phone == "" {
			s.Phone = nil
		} else {
			s.Phone = &phone
		}
	}
}

// Validate checks the fields the contact form marks as required. Project type
// may be left unselected but must be one of the offered values when given.
func Validate(s models.ContactSubmission) error {
	switch {
	case s.FirstName == "":
		return errs.NewMissingRequiredFieldError("firstName")
	case s.LastName == "":
		return errs.NewMissingRequiredFieldError("lastName")
	case s.Email == "":
		return errs.NewMissingRequiredFieldError("email")
	case s.Message == "":
		return errs.NewMissingRequiredFieldError("message")
	}

	if len(s.FirstName) > maxNameLength {
		return errs.NewInvalidFieldError("firstName", "too long")
	}
	if len(s.LastName) > maxNameLength {
		return errs.NewInvalidFieldError("lastName", "too long")
	}
	if addr, err := mail.ParseAddress(s.Email); err != nil || addr.Address != s.Email {
		return errs.NewInvalidFieldError("email", "must be a valid email address")
	}
	if s.ProjectType != "" && !models.IsValidProjectType(s.ProjectType) {
		return errs.NewInvalidFieldError("projectType", "must be one of "+strings.Join(models.ProjectTypes, ", "))
	}
	if len(s.Message) > maxMessageLength {
		return errs.NewInvalidFieldError("message", "too long")
	}
	return nil
}

// Submit validates, records and relays the inquiry. Every relay failure comes
// back as the same submission-failed error so the visitor simply retries.
func (s *ContactService) Submit(ctx context.Context, submission *models.ContactSubmission) error {
	Normalize(submission)
	if err := Validate(*submission); err != nil {
		metrics.IncrementContactSubmission("invalid")
		return err
	}

	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = s.now()
	}
	submission.RelayStatus = models.RelayStatusPending

	if s.repo != nil {
		if err := s.repo.Add(submission); err != nil {
			// the relay is what matters to the visitor, keep going
			s.logger.Error().Err(err).Msg("Failed to record contact submission")
		}
	}

	if err := s.relay.Relay(ctx, *submission); err != nil {
		s.logger.Error().Err(err).Str("email", submission.Email).Msg("Failed to relay contact submission")
		s.setStatus(submission, models.RelayStatusFailed)
		metrics.IncrementContactSubmission("failed")
		return errs.NewSubmissionFailedError(err)
	}

	s.setStatus(submission, models.RelayStatusSubmitted)
	metrics.IncrementContactSubmission("submitted")

	s.notify(ctx, *submission)
	return nil
}

// Wait blocks until notifications started by earlier submissions are done
func (s *ContactService) Wait() {
	s.pending.Wait()
}

func (s *ContactService) setStatus(submission *models.ContactSubmission, status string) {
	submission.RelayStatus = status
	if s.repo == nil || submission.ID == uuid.Nil {
		return
	}
	if err := s.repo.UpdateStatus(submission.ID, status); err != nil {
		s.logger.Warn().Err(err).Str("submissionId", submission.ID.String()).Msg("Failed to update relay status")
	}
}

// notify starts every notifier in the background and returns immediately.
// Failures are logged only.
func (s *ContactService) notify(ctx context.Context, submission models.ContactSubmission) {
	if len(s.notifiers) == 0 {
		return
	}

	// detach from the request so a client disconnect does not cancel the sends
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()

		var g errgroup.Group
		for _, n := range s.notifiers {
			n := n
			g.Go(func() error {
				if err := n.Notify(ctx, submission); err != nil {
					s.logger.Warn().Err(err).Str("channel", n.Name()).Msg("Failed to send inquiry notification")
					metrics.IncrementNotification(n.Name(), "failed")
					return nil
				}
				metrics.IncrementNotification(n.Name(), "sent")
				return nil
			})
		}
		_ = g.Wait()
	}()
}
