package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const MaxNameLength = 50

// PlaceholderName is what stateless clients send before a real name is known.
const PlaceholderName = "User"

var (
	ErrNameRequired    = errors.New("name is required")
	ErrNameTooLong     = errors.New("name is too long")
	ErrNamePlaceholder = errors.New("name is a placeholder")
)

type Member struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

// NormalizeName trims surrounding space and puts the name in NFC form so the
// same name typed on different keyboards compares equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// NameKey is the case-folded form used for uniqueness checks.
func NameKey(name string) string {
	return cases.Fold().String(NormalizeName(name))
}

func ValidateName(name string) error {
	name = NormalizeName(name)
	if name == "" {
		return ErrNameRequired
	}
	if name == PlaceholderName {
		return ErrNamePlaceholder
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// Owns reports whether the member is the owner recorded as ownerID/ownerName.
// Snapshots written before members had durable ids carry non-UUID owner ids;
// those are matched on the name instead.
func (m *Member) Owns(ownerID, ownerName string) bool {
	if m == nil {
		return false
	}
	if id, err := uuid.Parse(ownerID); err == nil {
		return id == m.ID
	}
	return ownerName != "" && NameKey(ownerName) == NameKey(m.Name)
}
