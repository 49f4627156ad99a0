package dto

import "jona.app/api-server/internal/model"

type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

type SessionUserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
}

func ToSessionUserResponse(p *model.Principal, role string) *SessionUserResponse {
	return &SessionUserResponse{
		ID:       p.ID,
		Email:    p.Email,
		FullName: p.UserMetadata.FullName,
		Role:     role,
	}
}

type ExchangeCodeResponse struct {
	Envelope
	User     *SessionUserResponse `json:"user"`
	Redirect string               `json:"redirect"`
}
