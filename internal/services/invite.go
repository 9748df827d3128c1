package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/HammerMeetNail/tripboard/internal/models"
)

const (
	inviteIssuer   = "tripboard"
	inviteAudience = "tripboard-join"
)

// Invite is a signed join link handed out by an existing member.
type Invite struct {
	Token     string    `json:"inviteToken"`
	URL       string    `json:"inviteUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type inviteClaims struct {
	jwt.RegisteredClaims
	InvitedBy string `json:"invited_by"`
}

// InviteTokens signs and verifies HS256 invite tokens.
type InviteTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewInviteTokens(secret string, ttl time.Duration) *InviteTokens {
	return &InviteTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *InviteTokens) Issue(inviter *models.Member, baseURL string) (*Invite, error) {
	if len(t.secret) == 0 {
		return nil, errors.New("invite signing secret is not configured")
	}
	now := t.now()
	expires := now.Add(t.ttl)
	claims := inviteClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    inviteIssuer,
			Audience:  jwt.ClaimStrings{inviteAudience},
			Subject:   inviter.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		InvitedBy: inviter.Name,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return nil, fmt.Errorf("signing invite: %w", err)
	}

	return &Invite{
		Token:     token,
		URL:       strings.TrimSuffix(baseURL, "/") + "/join?token=" + url.QueryEscape(token),
		ExpiresAt: expires.UTC(),
	}, nil
}

// Verify checks signature, issuer, audience and expiry and returns the name
// of the inviting member.
func (t *InviteTokens) Verify(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" || len(t.secret) == 0 {
		return "", ErrInvalidInvite
	}

	var claims inviteClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(inviteIssuer),
		jwt.WithAudience(inviteAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInvite, err)
	}
	return claims.InvitedBy, nil
}
