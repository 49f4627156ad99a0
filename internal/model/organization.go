package model

import "time"

type Organization struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	OwnerUserID string    `json:"owner_user_id"`
	ID          int64     `json:"id,string"`
	IsDeleted   bool      `json:"is_deleted"`
}

// MemberRole is the organization-scoped role stored on a membership row.
type MemberRole string

const (
	RoleOwner     MemberRole = "owner"
	RoleAdmin     MemberRole = "admin"
	RoleManager   MemberRole = "manager"
	RoleMember    MemberRole = "member"
	RoleRecruiter MemberRole = "recruiter"
	RoleUser      MemberRole = "user"
)

func (r MemberRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleManager, RoleMember, RoleRecruiter, RoleUser:
		return true
	}
	return false
}

// OrganizationMembership joins a user to one organization with a scoped role.
// One active membership per organization is consulted per request.
type OrganizationMembership struct {
	JoinedAt       time.Time  `json:"joined_at"`
	UserID         string     `json:"user_id"`
	InvitedBy      string     `json:"invited_by,omitempty"`
	Department     *string    `json:"department,omitempty"`
	Position       *string    `json:"position,omitempty"`
	Role           MemberRole `json:"role"`
	ID             int64      `json:"id,string"`
	OrganizationID int64      `json:"organization_id,string"`
	IsActive       bool       `json:"is_active"`
}

type OrganizationInvitation struct {
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	AcceptedAt       *time.Time `json:"accepted_at,omitempty"`
	Email            string     `json:"email"`
	Token            string     `json:"token"`
	InvitedBy        string     `json:"invited_by"`
	OrganizationName string     `json:"organization_name"`
	Role             MemberRole `json:"role"`
	ID               int64      `json:"id,string"`
	OrganizationID   int64      `json:"organization_id,string"`
}

// OrganizationUsage is one month of usage counters for an organization.
type OrganizationUsage struct {
	Month            time.Time `json:"month"`
	OrganizationID   int64     `json:"organization_id,string"`
	JobsScraped      int       `json:"jobs_scraped"`
	ApplicationsSent int       `json:"applications_sent"`
	SeatsUsed        int       `json:"seats_used"`
}

type OrganizationSubscription struct {
	CurrentPeriodEnd time.Time `json:"current_period_end"`
	PlanName         string    `json:"plan_name"`
	Status           string    `json:"status"`
	OrganizationID   int64     `json:"organization_id,string"`
	Seats            int       `json:"seats"`
}
