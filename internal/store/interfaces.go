package store

import (
	"context"
	"errors"
	"time"

	"jona.app/api-server/internal/model"
)

var ErrNotFound = errors.New("not found")

type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]model.User, error)
	Count(ctx context.Context) (int, error)
	Upsert(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	SetCurrentOrganization(ctx context.Context, userID string, orgID int64) error
	Delete(ctx context.Context, id string) error
}

type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id int64) error // soft delete
	ListUsage(ctx context.Context, orgID int64, months int) ([]model.OrganizationUsage, error)
	GetSubscription(ctx context.Context, orgID int64) (*model.OrganizationSubscription, error)
}

type MembershipStore interface {
	GetActive(ctx context.Context, orgID int64, userID string) (*model.OrganizationMembership, error)
	ListActiveByUser(ctx context.Context, userID string) ([]model.OrganizationMembership, error)
	Create(ctx context.Context, m *model.OrganizationMembership) error
	Deactivate(ctx context.Context, id int64) error
	CountActiveByOrganization(ctx context.Context, orgID int64) (int, error)
	// AcceptInvitation runs the store-side accept_organization_invitation
	// procedure: membership insert, invitation stamp and current-org update
	// happen atomically on the database side.
	AcceptInvitation(ctx context.Context, token, userID string) error
}

type InvitationStore interface {
	GetByToken(ctx context.Context, token string) (*model.OrganizationInvitation, error)
	Create(ctx context.Context, inv *model.OrganizationInvitation) error
	MarkAccepted(ctx context.Context, id int64, at time.Time) error
}

// JobCounts aggregates job rows by tracking state for dashboards.
type JobCounts struct {
	Total     int
	Applied   int
	Saved     int
	Pending   int
	Interview int
	Offer     int
	Rejected  int
}

type JobStore interface {
	GetByID(ctx context.Context, id int64) (*model.Job, error)
	List(ctx context.Context, limit, offset int) ([]model.Job, error)
	Counts(ctx context.Context) (JobCounts, error)
	CountActiveByOrganization(ctx context.Context, orgID int64) (int, error)
	CountApplications(ctx context.Context) (int, error)
	CountApplicationsByOrganization(ctx context.Context, orgID int64) (int, error)
}

type ResumeStore interface {
	GetByID(ctx context.Context, id int64) (*model.Resume, error)
	List(ctx context.Context, limit, offset int) ([]model.Resume, error)
	Count(ctx context.Context) (int, error)
	AverageMatchScore(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}

// SubscriptionTotals is the admin revenue rollup. Amounts are cents.
type SubscriptionTotals struct {
	TotalRevenue     int64
	MonthlyRecurring int64
	ActiveCount      int
	TotalCount       int
}

type SubscriptionStore interface {
	GetByID(ctx context.Context, id int64) (*model.UserSubscription, error)
	List(ctx context.Context, limit, offset int) ([]model.UserSubscription, error)
	Cancel(ctx context.Context, id int64, at time.Time) error
	Totals(ctx context.Context) (SubscriptionTotals, error)
}

type SystemConfigStore interface {
	Get(ctx context.Context, key string) (*model.SystemConfig, error)
	List(ctx context.Context) ([]model.SystemConfig, error)
	Upsert(ctx context.Context, cfg *model.SystemConfig) error
}
