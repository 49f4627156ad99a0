package dto

import (
	"time"

	"jona.app/api-server/internal/model"
)

type CreateOrganizationRequest struct {
	Name string  `json:"name" binding:"required,min=1,max=255"`
	Slug *string `json:"slug,omitempty" binding:"omitempty,min=1,max=63"`
}

type OrganizationResponse struct {
	ID          int64     `json:"id,string"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	OwnerUserID string    `json:"owner_user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToOrganizationResponse(org *model.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:          org.ID,
		Name:        org.Name,
		Slug:        org.Slug,
		OwnerUserID: org.OwnerUserID,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}

type InviteMemberRequest struct {
	OrganizationSlug string `json:"organizationSlug" binding:"required,min=1,max=63"`
	Email            string `json:"email" binding:"required,email,max=255"`
	Role             string `json:"role,omitempty" binding:"omitempty,min=1,max=32"`
}

type InviteMemberResponse struct {
	Envelope
	InvitationID int64  `json:"invitation_id,string"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	InviteLink   string `json:"invite_link"`
	ExpiresAt    string `json:"expires_at"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token" binding:"required,uuid"`
}

type VerifyMembershipRequest struct {
	OrganizationSlug string `json:"organizationSlug"`
}

type MembershipResponse struct {
	ID             int64   `json:"id,string"`
	OrganizationID int64   `json:"organization_id,string"`
	UserID         string  `json:"user_id"`
	Role           string  `json:"role"`
	Department     *string `json:"department,omitempty"`
	Position       *string `json:"position,omitempty"`
	IsActive       bool    `json:"is_active"`
}

func ToMembershipResponse(m *model.OrganizationMembership) *MembershipResponse {
	return &MembershipResponse{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           string(m.Role),
		Department:     m.Department,
		Position:       m.Position,
		IsActive:       m.IsActive,
	}
}

type VerifyMembershipResponse struct {
	Envelope
	Organization *OrganizationResponse `json:"organization"`
	Membership   *MembershipResponse   `json:"membership"`
	Role         string                `json:"role"`
}
