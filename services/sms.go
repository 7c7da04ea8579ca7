package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/signature-homes-backend/models"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageCreator is the part of the Twilio REST client used to send texts
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioTexter texts new inquiries to the builder's phone
type TwilioTexter struct {
	api  MessageCreator
	from string
	to   string
}

func NewTwilioTexter(accountSID, authToken, from, to string) *TwilioTexter {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return NewTwilioTexterWithAPI(client.Api, from, to)
}

func NewTwilioTexterWithAPI(api MessageCreator, from, to string) *TwilioTexter {
	return &TwilioTexter{api: api, from: from, to: to}
}

func (t *TwilioTexter) Name() string { return "sms" }

// Notify sends a short summary. Twilio's client has no context support, so
// ctx is only checked before the call.
func (t *TwilioTexter) Notify(ctx context.Context, s models.ContactSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(t.to)
	params.SetFrom(t.from)
	params.SetBody(smsBody(s))

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS via Twilio: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Info().Str("messageSid", *resp.Sid).Msg("Successfully sent SMS via Twilio")
	}
	return nil
}

func smsBody(s models.ContactSubmission) string {
	body := fmt.Sprintf("New %s inquiry from %s <%s>", projectTypeLabel(s.ProjectType), s.FullName(), s.Email)
	if s.Phone != nil && *s.Phone != "" {
		body += ", " + *s.Phone
	}
	return body
}
