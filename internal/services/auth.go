package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/HammerMeetNail/tripboard/internal/logging"
	"github.com/HammerMeetNail/tripboard/internal/models"
)

const sessionKeyPrefix = "session:"

type memberStore interface {
	GetOrCreateByName(ctx context.Context, name string) (*models.Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
}

type JoinParams struct {
	Name        string
	Password    string
	InviteToken string
}

// AuthService gates the trip behind a shared password or a signed invite and
// keeps opaque session tokens in Redis.
type AuthService struct {
	members      memberStore
	sessions     KVStore
	invites      *InviteTokens
	passwordHash []byte
	sessionTTL   time.Duration
}

// HashTripPassword returns the bcrypt hash of the shared trip password.
func HashTripPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing trip password: %w", err)
	}
	return string(hash), nil
}

// NewAuthService builds the service from a bcrypt hash of the trip password.
// An empty hash disables password joins; invites still work.
func NewAuthService(members memberStore, sessions KVStore, invites *InviteTokens, passwordHash string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		members:      members,
		sessions:     sessions,
		invites:      invites,
		passwordHash: []byte(passwordHash),
		sessionTTL:   sessionTTL,
	}
}

// Join admits a member by password or invite and opens a session.
func (s *AuthService) Join(ctx context.Context, params JoinParams) (*models.Member, string, error) {
	if err := models.ValidateName(params.Name); err != nil {
		return nil, "", err
	}

	if params.InviteToken != "" {
		invitedBy, err := s.invites.Verify(params.InviteToken)
		if err != nil {
			return nil, "", err
		}
		logging.Debug("Join via invite", map[string]interface{}{"invited_by": invitedBy})
	} else if !s.checkPassword(params.Password) {
		return nil, "", ErrInvalidPassword
	}

	member, err := s.members.GetOrCreateByName(ctx, params.Name)
	if err != nil {
		return nil, "", err
	}

	token, err := s.CreateSession(ctx, member.ID)
	if err != nil {
		return nil, "", err
	}
	return member, token, nil
}

func (s *AuthService) checkPassword(password string) bool {
	password = strings.TrimSpace(password)
	if len(s.passwordHash) == 0 || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
}

func (s *AuthService) CreateSession(ctx context.Context, memberID uuid.UUID) (string, error) {
	token := uuid.NewString()
	if err := s.sessions.Set(ctx, sessionKeyPrefix+token, memberID.String(), s.sessionTTL); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

// ValidateSession resolves a token to its member and slides the expiry.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.Member, error) {
	key := sessionKeyPrefix + token
	raw, err := s.sessions.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}

	memberID, err := uuid.Parse(raw)
	if err != nil {
		_ = s.sessions.Delete(ctx, key)
		return nil, ErrSessionNotFound
	}

	member, err := s.members.GetByID(ctx, memberID)
	if errors.Is(err, ErrMemberNotFound) {
		_ = s.sessions.Delete(ctx, key)
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Touch(ctx, key, s.sessionTTL); err != nil {
		logging.Warn("Failed to extend session", map[string]interface{}{"error": err.Error()})
	}
	return member, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, sessionKeyPrefix+token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
