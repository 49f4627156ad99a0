package dto

import (
	"encoding/json"
	"time"

	"jona.app/api-server/internal/model"
)

type AdminUserResponse struct {
	ID                    string    `json:"id"`
	Email                 string    `json:"email"`
	FullName              string    `json:"full_name"`
	AvatarURL             *string   `json:"avatar_url,omitempty"`
	CurrentOrganizationID *int64    `json:"current_organization_id,omitempty,string"`
	IsAdmin               bool      `json:"is_admin"`
	CreatedAt             time.Time `json:"created_at"`
}

func ToAdminUserResponse(u *model.User) *AdminUserResponse {
	return &AdminUserResponse{
		ID:                    u.ID,
		Email:                 u.Email,
		FullName:              u.FullName,
		AvatarURL:             u.AvatarURL,
		CurrentOrganizationID: u.CurrentOrganizationID,
		IsAdmin:               u.IsAdmin,
		CreatedAt:             u.CreatedAt,
	}
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty" binding:"omitempty,min=1,max=255"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
}

type ListResponse[T any] struct {
	Success    bool       `json:"success"`
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type ResumeResponse struct {
	ID         int64     `json:"id,string"`
	UserID     string    `json:"user_id"`
	FileName   string    `json:"file_name"`
	MatchScore *int      `json:"match_score,omitempty"`
	IsPrimary  bool      `json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToResumeResponse(r *model.Resume) *ResumeResponse {
	return &ResumeResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		FileName:   r.FileName,
		MatchScore: r.MatchScore,
		IsPrimary:  r.IsPrimary,
		CreatedAt:  r.CreatedAt,
	}
}

type SubscriptionResponse struct {
	ID         int64      `json:"id,string"`
	UserID     string     `json:"user_id"`
	PlanName   string     `json:"plan_name"`
	Status     string     `json:"status"`
	PricePaid  int64      `json:"price_paid"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ToSubscriptionResponse(s *model.UserSubscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		PlanName:   s.PlanName,
		Status:     string(s.Status),
		PricePaid:  s.PricePaid,
		CanceledAt: s.CanceledAt,
		CreatedAt:  s.CreatedAt,
	}
}

type UpdateSystemConfigRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
}

type SystemConfigResponse struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedBy string          `json:"updated_by"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func ToSystemConfigResponse(cfg *model.SystemConfig) *SystemConfigResponse {
	return &SystemConfigResponse{
		Key:       cfg.Key,
		Value:     cfg.Value,
		UpdatedBy: cfg.UpdatedBy,
		UpdatedAt: cfg.UpdatedAt,
	}
}

type TriggerScrapeRequest struct {
	Keywords []string `json:"keywords,omitempty"`
	Location string   `json:"location,omitempty" binding:"omitempty,max=255"`
	Days     int      `json:"days,omitempty" binding:"omitempty,min=1,max=90"`
}
