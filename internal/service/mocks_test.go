package service_test

import (
	"context"
	"time"

	"jona.app/api-server/internal/model"
	"jona.app/api-server/internal/store"
)

// mockStores satisfies both store.Provider and service.TxRunner; WithTx
// just runs the function against the same mocks.
type mockStores struct {
	users         *mockUserStore
	organizations *mockOrganizationStore
	memberships   *mockMembershipStore
	invitations   *mockInvitationStore
	jobs          *mockJobStore
	resumes       *mockResumeStore
	subscriptions *mockSubscriptionStore
	systemConfig  *mockSystemConfigStore
}

func newMockStores() *mockStores {
	return &mockStores{
		users:         &mockUserStore{},
		organizations: &mockOrganizationStore{},
		memberships:   &mockMembershipStore{},
		invitations:   &mockInvitationStore{},
		jobs:          &mockJobStore{},
		resumes:       &mockResumeStore{},
		subscriptions: &mockSubscriptionStore{},
		systemConfig:  &mockSystemConfigStore{},
	}
}

func (m *mockStores) Users() store.UserStore                 { return m.users }
func (m *mockStores) Organizations() store.OrganizationStore { return m.organizations }
func (m *mockStores) Memberships() store.MembershipStore     { return m.memberships }
func (m *mockStores) Invitations() store.InvitationStore     { return m.invitations }
func (m *mockStores) Jobs() store.JobStore                   { return m.jobs }
func (m *mockStores) Resumes() store.ResumeStore             { return m.resumes }
func (m *mockStores) Subscriptions() store.SubscriptionStore { return m.subscriptions }
func (m *mockStores) SystemConfig() store.SystemConfigStore  { return m.systemConfig }

func (m *mockStores) WithTx(ctx context.Context, fn func(provider store.Provider) error) error {
	return fn(m)
}

type mockUserStore struct {
	getByIDFn                func(ctx context.Context, id string) (*model.User, error)
	countFn                  func(ctx context.Context) (int, error)
	setCurrentOrganizationFn func(ctx context.Context, userID string, orgID int64) error
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, store.ErrNotFound
}

func (m *mockUserStore) List(_ context.Context, _, _ int) ([]model.User, error) {
	return nil, nil
}

func (m *mockUserStore) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockUserStore) Upsert(_ context.Context, _ *model.User) error { return nil }
func (m *mockUserStore) Update(_ context.Context, _ *model.User) error { return nil }

func (m *mockUserStore) SetCurrentOrganization(ctx context.Context, userID string, orgID int64) error {
	if m.setCurrentOrganizationFn != nil {
		return m.setCurrentOrganizationFn(ctx, userID, orgID)
	}
	return nil
}

func (m *mockUserStore) Delete(_ context.Context, _ string) error { return nil }

type mockOrganizationStore struct {
	getByIDFn         func(ctx context.Context, id int64) (*model.Organization, error)
	getBySlugFn       func(ctx context.Context, slug string) (*model.Organization, error)
	createFn          func(ctx context.Context, org *model.Organization) error
	listUsageFn       func(ctx context.Context, orgID int64, months int) ([]model.OrganizationUsage, error)
	getSubscriptionFn func(ctx context.Context, orgID int64) (*model.OrganizationSubscription, error)
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) Create(ctx context.Context, org *model.Organization) error {
	if m.createFn != nil {
		return m.createFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Update(_ context.Context, _ *model.Organization) error { return nil }
func (m *mockOrganizationStore) Delete(_ context.Context, _ int64) error               { return nil }

func (m *mockOrganizationStore) ListUsage(ctx context.Context, orgID int64, months int) ([]model.OrganizationUsage, error) {
	if m.listUsageFn != nil {
		return m.listUsageFn(ctx, orgID, months)
	}
	return nil, nil
}

func (m *mockOrganizationStore) GetSubscription(ctx context.Context, orgID int64) (*model.OrganizationSubscription, error) {
	if m.getSubscriptionFn != nil {
		return m.getSubscriptionFn(ctx, orgID)
	}
	return nil, store.ErrNotFound
}

type mockMembershipStore struct {
	getActiveFn                 func(ctx context.Context, orgID int64, userID string) (*model.OrganizationMembership, error)
	createFn                    func(ctx context.Context, membership *model.OrganizationMembership) error
	countActiveByOrganizationFn func(ctx context.Context, orgID int64) (int, error)
	acceptInvitationFn          func(ctx context.Context, token, userID string) error
}

func (m *mockMembershipStore) GetActive(ctx context.Context, orgID int64, userID string) (*model.OrganizationMembership, error) {
	if m.getActiveFn != nil {
		return m.getActiveFn(ctx, orgID, userID)
	}
	return nil, store.ErrNotFound
}

func (m *mockMembershipStore) ListActiveByUser(_ context.Context, _ string) ([]model.OrganizationMembership, error) {
	return nil, nil
}

func (m *mockMembershipStore) Create(ctx context.Context, membership *model.OrganizationMembership) error {
	if m.createFn != nil {
		return m.createFn(ctx, membership)
	}
	return nil
}

func (m *mockMembershipStore) Deactivate(_ context.Context, _ int64) error { return nil }

func (m *mockMembershipStore) CountActiveByOrganization(ctx context.Context, orgID int64) (int, error) {
	if m.countActiveByOrganizationFn != nil {
		return m.countActiveByOrganizationFn(ctx, orgID)
	}
	return 0, nil
}

func (m *mockMembershipStore) AcceptInvitation(ctx context.Context, token, userID string) error {
	if m.acceptInvitationFn != nil {
		return m.acceptInvitationFn(ctx, token, userID)
	}
	return nil
}

type mockInvitationStore struct {
	getByTokenFn func(ctx context.Context, token string) (*model.OrganizationInvitation, error)
	createFn     func(ctx context.Context, inv *model.OrganizationInvitation) error
}

func (m *mockInvitationStore) GetByToken(ctx context.Context, token string) (*model.OrganizationInvitation, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, store.ErrNotFound
}

func (m *mockInvitationStore) Create(ctx context.Context, inv *model.OrganizationInvitation) error {
	if m.createFn != nil {
		return m.createFn(ctx, inv)
	}
	return nil
}

func (m *mockInvitationStore) MarkAccepted(_ context.Context, _ int64, _ time.Time) error {
	return nil
}

type mockJobStore struct {
	countsFn                          func(ctx context.Context) (store.JobCounts, error)
	countActiveByOrganizationFn       func(ctx context.Context, orgID int64) (int, error)
	countApplicationsFn               func(ctx context.Context) (int, error)
	countApplicationsByOrganizationFn func(ctx context.Context, orgID int64) (int, error)
}

func (m *mockJobStore) GetByID(_ context.Context, _ int64) (*model.Job, error) {
	return nil, store.ErrNotFound
}

func (m *mockJobStore) List(_ context.Context, _, _ int) ([]model.Job, error) { return nil, nil }

func (m *mockJobStore) Counts(ctx context.Context) (store.JobCounts, error) {
	if m.countsFn != nil {
		return m.countsFn(ctx)
	}
	return store.JobCounts{}, nil
}

func (m *mockJobStore) CountActiveByOrganization(ctx context.Context, orgID int64) (int, error) {
	if m.countActiveByOrganizationFn != nil {
		return m.countActiveByOrganizationFn(ctx, orgID)
	}
	return 0, nil
}

func (m *mockJobStore) CountApplications(ctx context.Context) (int, error) {
	if m.countApplicationsFn != nil {
		return m.countApplicationsFn(ctx)
	}
	return 0, nil
}

func (m *mockJobStore) CountApplicationsByOrganization(ctx context.Context, orgID int64) (int, error) {
	if m.countApplicationsByOrganizationFn != nil {
		return m.countApplicationsByOrganizationFn(ctx, orgID)
	}
	return 0, nil
}

type mockResumeStore struct {
	countFn             func(ctx context.Context) (int, error)
	averageMatchScoreFn func(ctx context.Context) (int, error)
}

func (m *mockResumeStore) GetByID(_ context.Context, _ int64) (*model.Resume, error) {
	return nil, store.ErrNotFound
}

func (m *mockResumeStore) List(_ context.Context, _, _ int) ([]model.Resume, error) {
	return nil, nil
}

func (m *mockResumeStore) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockResumeStore) AverageMatchScore(ctx context.Context) (int, error) {
	if m.averageMatchScoreFn != nil {
		return m.averageMatchScoreFn(ctx)
	}
	return 0, nil
}

func (m *mockResumeStore) Delete(_ context.Context, _ int64) error { return nil }

type mockSubscriptionStore struct {
	totalsFn func(ctx context.Context) (store.SubscriptionTotals, error)
}

func (m *mockSubscriptionStore) GetByID(_ context.Context, _ int64) (*model.UserSubscription, error) {
	return nil, store.ErrNotFound
}

func (m *mockSubscriptionStore) List(_ context.Context, _, _ int) ([]model.UserSubscription, error) {
	return nil, nil
}

func (m *mockSubscriptionStore) Cancel(_ context.Context, _ int64, _ time.Time) error { return nil }

func (m *mockSubscriptionStore) Totals(ctx context.Context) (store.SubscriptionTotals, error) {
	if m.totalsFn != nil {
		return m.totalsFn(ctx)
	}
	return store.SubscriptionTotals{}, nil
}

type mockSystemConfigStore struct{}

func (m *mockSystemConfigStore) Get(_ context.Context, _ string) (*model.SystemConfig, error) {
	return nil, store.ErrNotFound
}

func (m *mockSystemConfigStore) List(_ context.Context) ([]model.SystemConfig, error) {
	return nil, nil
}

func (m *mockSystemConfigStore) Upsert(_ context.Context, _ *model.SystemConfig) error { return nil }

type mockMailer struct {
	sendFn func(ctx context.Context, email, token, orgName string) error
}

func (m *mockMailer) SendInvitation(ctx context.Context, email, token, orgName string) error {
	if m.sendFn != nil {
		return m.sendFn(ctx, email, token, orgName)
	}
	return nil
}

type mockProvider struct {
	adminListUsersFn func(ctx context.Context) ([]model.Principal, error)
}

func (m *mockProvider) ExchangeCode(_ context.Context, _ string) (*model.Session, error) {
	return nil, nil
}

func (m *mockProvider) RefreshSession(_ context.Context, _ string) (*model.Session, error) {
	return nil, nil
}

func (m *mockProvider) GetUser(_ context.Context, _ string) (*model.Principal, error) {
	return nil, nil
}

func (m *mockProvider) AdminListUsers(ctx context.Context) ([]model.Principal, error) {
	if m.adminListUsersFn != nil {
		return m.adminListUsersFn(ctx)
	}
	return nil, nil
}

func (m *mockProvider) Logout(_ context.Context, _ string) error { return nil }
