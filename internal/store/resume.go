package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"jona.app/api-server/internal/model"
)

type resumeStore struct {
	db dbtx
}

const resumeColumns = `id, user_id, file_name, storage_key, match_score, is_primary, created_at, updated_at`

func (s *resumeStore) GetByID(ctx context.Context, id int64) (*model.Resume, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+resumeColumns+`
		FROM resumes
		WHERE id = $1
	`, id)
	return scanResume(row)
}

func (s *resumeStore) List(ctx context.Context, limit, offset int) ([]model.Resume, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+resumeColumns+`
		FROM resumes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []model.Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, *resume)
	}
	return resumes, rows.Err()
}

func (s *resumeStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(1) FROM resumes`).Scan(&count)
	return count, err
}

func (s *resumeStore) AverageMatchScore(ctx context.Context) (int, error) {
	var avg int
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(ROUND(AVG(match_score)), 0)
		FROM resumes
		WHERE match_score IS NOT NULL
	`).Scan(&avg)
	return avg, err
}

func (s *resumeStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanResume(row pgx.Row) (*model.Resume, error) {
	var resume model.Resume
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.FileName,
		&resume.StorageKey,
		&resume.MatchScore,
		&resume.IsPrimary,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resume, nil
}
