package model

import (
	"encoding/json"
	"time"
)

// SystemConfig stores admin-tunable configuration values such as feature
// toggles and scraper schedules.
type SystemConfig struct {
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedBy string          `json:"updated_by"`
}
