package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"jona.app/api-server/internal/model"
)

type membershipStore struct {
	db dbtx
}

const membershipColumns = `id, organization_id, user_id, role, invited_by, department, position, is_active, joined_at`

func (s *membershipStore) GetActive(ctx context.Context, orgID int64, userID string) (*model.OrganizationMembership, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+membershipColumns+`
		FROM organization_members
		WHERE organization_id = $1 AND user_id = $2 AND is_active
	`, orgID, userID)
	return scanMembership(row)
}

func (s *membershipStore) ListActiveByUser(ctx context.Context, userID string) ([]model.OrganizationMembership, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+membershipColumns+`
		FROM organization_members
		WHERE user_id = $1 AND is_active
		ORDER BY joined_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []model.OrganizationMembership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, *m)
	}
	return memberships, rows.Err()
}

func (s *membershipStore) Create(ctx context.Context, m *model.OrganizationMembership) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO organization_members (id, organization_id, user_id, role, invited_by, department, position, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+membershipColumns+`
	`, m.ID, m.OrganizationID, m.UserID, string(m.Role), m.InvitedBy, m.Department, m.Position, m.IsActive)

	created, err := scanMembership(row)
	if err != nil {
		return err
	}
	*m = *created
	return nil
}

func (s *membershipStore) Deactivate(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE organization_members
		SET is_active = FALSE
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *membershipStore) CountActiveByOrganization(ctx context.Context, orgID int64) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(1)
		FROM organization_members
		WHERE organization_id = $1 AND is_active
	`, orgID).Scan(&count)
	return count, err
}

// AcceptInvitation delegates to the accept_organization_invitation database
// function. Under concurrent accepts the function can abort with a deadlock;
// the caller owns the retry policy, this method reports errors verbatim.
func (s *membershipStore) AcceptInvitation(ctx context.Context, token, userID string) error {
	_, err := s.db.Exec(ctx, `SELECT accept_organization_invitation($1, $2)`, token, userID)
	return err
}

func scanMembership(row pgx.Row) (*model.OrganizationMembership, error) {
	var m model.OrganizationMembership
	var role string
	err := row.Scan(
		&m.ID,
		&m.OrganizationID,
		&m.UserID,
		&role,
		&m.InvitedBy,
		&m.Department,
		&m.Position,
		&m.IsActive,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	m.Role = model.MemberRole(role)
	return &m, nil
}
