package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"jona.app/api-server/internal/model"
)

type systemConfigStore struct {
	db dbtx
}

func (s *systemConfigStore) Get(ctx context.Context, key string) (*model.SystemConfig, error) {
	row := s.db.QueryRow(ctx, `
		SELECT key, value, updated_by, created_at, updated_at
		FROM system_config
		WHERE key = $1
	`, key)
	return scanSystemConfig(row)
}

func (s *systemConfigStore) List(ctx context.Context) ([]model.SystemConfig, error) {
	rows, err := s.db.Query(ctx, `
		SELECT key, value, updated_by, created_at, updated_at
		FROM system_config
		ORDER BY key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []model.SystemConfig
	for rows.Next() {
		cfg, err := scanSystemConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, *cfg)
	}
	return configs, rows.Err()
}

func (s *systemConfigStore) Upsert(ctx context.Context, cfg *model.SystemConfig) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO system_config (key, value, updated_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_by = EXCLUDED.updated_by,
		    updated_at = now()
		RETURNING key, value, updated_by, created_at, updated_at
	`, cfg.Key, cfg.Value, cfg.UpdatedBy)

	updated, err := scanSystemConfig(row)
	if err != nil {
		return err
	}
	*cfg = *updated
	return nil
}

func scanSystemConfig(row pgx.Row) (*model.SystemConfig, error) {
	var cfg model.SystemConfig
	err := row.Scan(&cfg.Key, &cfg.Value, &cfg.UpdatedBy, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}
