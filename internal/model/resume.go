package model

import "time"

type Resume struct {
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     string    `json:"user_id"`
	FileName   string    `json:"file_name"`
	StorageKey string    `json:"storage_key"`
	ID         int64     `json:"id,string"`
	MatchScore *int      `json:"match_score,omitempty"`
	IsPrimary  bool      `json:"is_primary"`
}
