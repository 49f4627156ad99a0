package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"jona.app/api-server/internal/model"
)

type organizationStore struct {
	db dbtx
}

const orgColumns = `id, owner_user_id, name, slug, is_deleted, created_at, updated_at`

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+orgColumns+`
		FROM organizations
		WHERE id = $1 AND NOT is_deleted
	`, id)
	return scanOrganization(row)
}

func (s *organizationStore) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+orgColumns+`
		FROM organizations
		WHERE slug = $1 AND NOT is_deleted
	`, slug)
	return scanOrganization(row)
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO organizations (id, owner_user_id, name, slug)
		VALUES ($1, $2, $3, $4)
		RETURNING `+orgColumns+`
	`, org.ID, org.OwnerUserID, org.Name, org.Slug)

	created, err := scanOrganization(row)
	if err != nil {
		return err
	}
	*org = *created
	return nil
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	row := s.db.QueryRow(ctx, `
		UPDATE organizations
		SET name = $2, slug = $3, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
		RETURNING `+orgColumns+`
	`, org.ID, org.Name, org.Slug)

	updated, err := scanOrganization(row)
	if err != nil {
		return err
	}
	*org = *updated
	return nil
}

func (s *organizationStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `
		UPDATE organizations
		SET is_deleted = TRUE, updated_at = now()
		WHERE id = $1
	`, id)
	return err
}

func (s *organizationStore) ListUsage(ctx context.Context, orgID int64, months int) ([]model.OrganizationUsage, error) {
	rows, err := s.db.Query(ctx, `
		SELECT organization_id, month, jobs_scraped, applications_sent, seats_used
		FROM organization_usage
		WHERE organization_id = $1
		ORDER BY month DESC
		LIMIT $2
	`, orgID, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []model.OrganizationUsage
	for rows.Next() {
		var u model.OrganizationUsage
		if err := rows.Scan(&u.OrganizationID, &u.Month, &u.JobsScraped, &u.ApplicationsSent, &u.SeatsUsed); err != nil {
			return nil, err
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

func (s *organizationStore) GetSubscription(ctx context.Context, orgID int64) (*model.OrganizationSubscription, error) {
	var sub model.OrganizationSubscription
	err := s.db.QueryRow(ctx, `
		SELECT organization_id, plan_name, status, seats, current_period_end
		FROM organization_subscriptions
		WHERE organization_id = $1
	`, orgID).Scan(&sub.OrganizationID, &sub.PlanName, &sub.Status, &sub.Seats, &sub.CurrentPeriodEnd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func scanOrganization(row pgx.Row) (*model.Organization, error) {
	var org model.Organization
	err := row.Scan(
		&org.ID,
		&org.OwnerUserID,
		&org.Name,
		&org.Slug,
		&org.IsDeleted,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}
