package services

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/HammerMeetNail/tripboard/internal/logging"
)

type EmailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender delivers mail through the Resend API.
type ResendSender struct {
	emails resendEmails
	from   string
}

func NewResendSender(apiKey, fromAddress, fromName string) *ResendSender {
	return &ResendSender{
		emails: resend.NewClient(apiKey).Emails,
		from:   formatFrom(fromAddress, fromName),
	}
}

func (s *ResendSender) Send(ctx context.Context, msg EmailMessage) error {
	resp, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("sending email via resend: %w", err)
	}
	logging.Info("Email sent", map[string]interface{}{"id": resp.Id, "subject": msg.Subject})
	return nil
}

// ConsoleSender writes emails to the log instead of sending them.
type ConsoleSender struct {
	from string
}

func NewConsoleSender(fromAddress, fromName string) *ConsoleSender {
	return &ConsoleSender{from: formatFrom(fromAddress, fromName)}
}

func (s *ConsoleSender) Send(ctx context.Context, msg EmailMessage) error {
	logging.Info("Email (console provider)", map[string]interface{}{
		"from":    s.from,
		"to":      msg.To,
		"subject": msg.Subject,
		"text":    msg.Text,
	})
	return nil
}

// NewEmailSender picks the sender for provider ("resend" or "console").
func NewEmailSender(provider, apiKey, fromAddress, fromName string) (EmailSender, error) {
	switch provider {
	case "resend":
		if apiKey == "" {
			return nil, fmt.Errorf("%w: RESEND_API_KEY is empty", ErrEmailUnavailable)
		}
		return NewResendSender(apiKey, fromAddress, fromName), nil
	case "", "console":
		return NewConsoleSender(fromAddress, fromName), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", provider)
	}
}

func formatFrom(address, name string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}
