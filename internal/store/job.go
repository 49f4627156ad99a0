package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"jona.app/api-server/internal/model"
)

type jobStore struct {
	db dbtx
}

const jobColumns = `id, organization_id, title, company, location, url, source, status, applied, saved, created_at`

func (s *jobStore) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE id = $1
	`, id)
	return scanJob(row)
}

func (s *jobStore) List(ctx context.Context, limit, offset int) ([]model.Job, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (s *jobStore) Counts(ctx context.Context) (JobCounts, error) {
	var counts JobCounts
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(1),
		       COUNT(1) FILTER (WHERE applied),
		       COUNT(1) FILTER (WHERE saved),
		       COUNT(1) FILTER (WHERE status = 'pending'),
		       COUNT(1) FILTER (WHERE status = 'interview'),
		       COUNT(1) FILTER (WHERE status = 'offer'),
		       COUNT(1) FILTER (WHERE status = 'rejected')
		FROM jobs
	`).Scan(&counts.Total, &counts.Applied, &counts.Saved, &counts.Pending, &counts.Interview, &counts.Offer, &counts.Rejected)
	return counts, err
}

func (s *jobStore) CountActiveByOrganization(ctx context.Context, orgID int64) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(1)
		FROM jobs
		WHERE organization_id = $1 AND status = 'active'
	`, orgID).Scan(&count)
	return count, err
}

func (s *jobStore) CountApplications(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(1)
		FROM user_job_status
		WHERE applied
	`).Scan(&count)
	return count, err
}

func (s *jobStore) CountApplicationsByOrganization(ctx context.Context, orgID int64) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(1)
		FROM user_job_status ujs
		JOIN jobs j ON j.id = ujs.job_id
		WHERE ujs.applied AND j.organization_id = $1
	`, orgID).Scan(&count)
	return count, err
}

func scanJob(row pgx.Row) (*model.Job, error) {
	var job model.Job
	var status string
	err := row.Scan(
		&job.ID,
		&job.OrganizationID,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.URL,
		&job.Source,
		&status,
		&job.Applied,
		&job.Saved,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	job.Status = model.JobStatus(status)
	return &job, nil
}
