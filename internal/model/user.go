package model

import "time"

// User is the profile row mirrored from the auth provider into our own
// users table. The ID is the provider's UUID, not a local snowflake.
type User struct {
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	ID                    string    `json:"id"`
	Email                 string    `json:"email"`
	FullName              string    `json:"full_name"`
	AvatarURL             *string   `json:"avatar_url,omitempty"`
	CurrentOrganizationID *int64    `json:"current_organization_id,omitempty,string"`
	IsAdmin               bool      `json:"is_admin"`
}
