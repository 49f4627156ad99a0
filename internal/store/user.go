package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"jona.app/api-server/internal/model"
)

type userStore struct {
	db dbtx
}

const userColumns = `id, email, full_name, avatar_url, current_organization_id, is_admin, created_at, updated_at`

func (s *userStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (s *userStore) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (s *userStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(1) FROM users`).Scan(&count)
	return count, err
}

func (s *userStore) Upsert(ctx context.Context, user *model.User) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, email, full_name, avatar_url, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    full_name = EXCLUDED.full_name,
		    avatar_url = EXCLUDED.avatar_url,
		    updated_at = now()
		RETURNING `+userColumns+`
	`, user.ID, user.Email, user.FullName, user.AvatarURL, user.IsAdmin)

	updated, err := scanUser(row)
	if err != nil {
		return err
	}
	*user = *updated
	return nil
}

func (s *userStore) Update(ctx context.Context, user *model.User) error {
	row := s.db.QueryRow(ctx, `
		UPDATE users
		SET email = $2, full_name = $3, avatar_url = $4, is_admin = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns+`
	`, user.ID, user.Email, user.FullName, user.AvatarURL, user.IsAdmin)

	updated, err := scanUser(row)
	if err != nil {
		return err
	}
	*user = *updated
	return nil
}

func (s *userStore) SetCurrentOrganization(ctx context.Context, userID string, orgID int64) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users
		SET current_organization_id = $2, updated_at = now()
		WHERE id = $1
	`, userID, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *userStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.AvatarURL,
		&user.CurrentOrganizationID,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
