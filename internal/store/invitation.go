package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"jona.app/api-server/internal/model"
)

type invitationStore struct {
	db dbtx
}

const invitationColumns = `id, organization_id, organization_name, email, role, invited_by, token, expires_at, accepted_at, created_at`

func (s *invitationStore) GetByToken(ctx context.Context, token string) (*model.OrganizationInvitation, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+invitationColumns+`
		FROM organization_invitations
		WHERE token = $1
	`, token)
	return scanInvitation(row)
}

func (s *invitationStore) Create(ctx context.Context, inv *model.OrganizationInvitation) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO organization_invitations (id, organization_id, organization_name, email, role, invited_by, token, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+invitationColumns+`
	`, inv.ID, inv.OrganizationID, inv.OrganizationName, inv.Email, string(inv.Role), inv.InvitedBy, inv.Token, inv.ExpiresAt)

	created, err := scanInvitation(row)
	if err != nil {
		return err
	}
	*inv = *created
	return nil
}

func (s *invitationStore) MarkAccepted(ctx context.Context, id int64, at time.Time) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE organization_invitations
		SET accepted_at = $2
		WHERE id = $1
	`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInvitation(row pgx.Row) (*model.OrganizationInvitation, error) {
	var inv model.OrganizationInvitation
	var role string
	err := row.Scan(
		&inv.ID,
		&inv.OrganizationID,
		&inv.OrganizationName,
		&inv.Email,
		&role,
		&inv.InvitedBy,
		&inv.Token,
		&inv.ExpiresAt,
		&inv.AcceptedAt,
		&inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	inv.Role = model.MemberRole(role)
	return &inv, nil
}
