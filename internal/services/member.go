package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/tripboard/internal/models"
)

const memberColumns = `id, name, joined_at`

type MemberService struct {
	db Querier
}

func NewMemberService(db Querier) *MemberService {
	return &MemberService{db: db}
}

// GetOrCreateByName returns the member whose name matches case-insensitively,
// creating one on first join. The stored spelling of an existing member wins.
func (s *MemberService) GetOrCreateByName(ctx context.Context, name string) (*models.Member, error) {
	if err := models.ValidateName(name); err != nil {
		return nil, err
	}
	name = models.NormalizeName(name)

	member := &models.Member{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO members (name, name_key)
		 VALUES ($1, $2)
		 ON CONFLICT (name_key) DO UPDATE SET last_seen_at = NOW()
		 RETURNING `+memberColumns,
		name, models.NameKey(name),
	).Scan(&member.ID, &member.Name, &member.JoinedAt)
	if err != nil {
		return nil, fmt.Errorf("upserting member: %w", err)
	}
	return member, nil
}

func (s *MemberService) GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`,
		id,
	).Scan(&member.ID, &member.Name, &member.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting member by id: %w", err)
	}
	return member, nil
}

func (s *MemberService) List(ctx context.Context) ([]models.Member, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+memberColumns+` FROM members ORDER BY joined_at, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	members, err := pgx.CollectRows(rows, scanMember)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

func scanMember(row pgx.CollectableRow) (models.Member, error) {
	var m models.Member
	err := row.Scan(&m.ID, &m.Name, &m.JoinedAt)
	return m, err
}

func (s *MemberService) Remove(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("removing member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}
