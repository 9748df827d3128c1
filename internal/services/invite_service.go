package services

import (
	"context"
	"fmt"
	"html"
	"net/mail"
	"strings"

	"github.com/HammerMeetNail/tripboard/internal/models"
)

type InviteService struct {
	tokens   *InviteTokens
	email    EmailSender
	tripName string
}

func NewInviteService(tokens *InviteTokens, email EmailSender, tripName string) *InviteService {
	return &InviteService{tokens: tokens, email: email, tripName: tripName}
}

func (s *InviteService) CreateInvite(ctx context.Context, inviter *models.Member, baseURL string) (*Invite, error) {
	return s.tokens.Issue(inviter, baseURL)
}

// SendInviteEmail mails a fresh invite link to address.
func (s *InviteService) SendInviteEmail(ctx context.Context, inviter *models.Member, baseURL, address string) error {
	parsed, err := mail.ParseAddress(strings.TrimSpace(address))
	if err != nil {
		return ErrInvalidEmail
	}
	if s.email == nil {
		return ErrEmailUnavailable
	}

	invite, err := s.tokens.Issue(inviter, baseURL)
	if err != nil {
		return err
	}

	subject, htmlBody, textBody := buildInviteEmail(inviter.Name, s.tripName, invite.URL)
	return s.email.Send(ctx, EmailMessage{
		To:      parsed.Address,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	})
}

func buildInviteEmail(inviterName, tripName, inviteURL string) (string, string, string) {
	subject := fmt.Sprintf("%s invited you to plan %s", inviterName, tripName)

	text := fmt.Sprintf(
		"%s invited you to help plan %s.\n\nJoin here: %s\n\nThe link expires, so use it soon.\n",
		inviterName, tripName, inviteURL,
	)

	safeURL := html.EscapeString(inviteURL)
	htmlBody := fmt.Sprintf(
		`<p><strong>%s</strong> invited you to help plan <strong>%s</strong>.</p>`+
			`<p><a href="%s" style="display:inline-block;padding:10px 16px;background:#2563eb;color:#fff;border-radius:6px;text-decoration:none;">Join the trip</a></p>`+
			`<p style="color:#6b7280;font-size:12px;">Or paste this link into your browser: %s</p>`,
		html.EscapeString(inviterName), html.EscapeString(tripName), safeURL, safeURL,
	)

	return subject, htmlBody, text
}
