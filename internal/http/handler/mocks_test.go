package handler_test

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/gomega"

	"jona.app/api-server/internal/model"
	"jona.app/api-server/internal/service"
	"jona.app/api-server/internal/store"
)

const testSecret = "handler-test-secret"

func accessTokenFor(userID string) string {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": userID + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	Expect(err).NotTo(HaveOccurred())
	return signed
}

type mockProvider struct {
	exchangeCodeFn func(ctx context.Context, code string) (*model.Session, error)
	getUserFn      func(ctx context.Context, accessToken string) (*model.Principal, error)
}

func (m *mockProvider) ExchangeCode(ctx context.Context, code string) (*model.Session, error) {
	if m.exchangeCodeFn != nil {
		return m.exchangeCodeFn(ctx, code)
	}
	return nil, nil
}

func (m *mockProvider) RefreshSession(_ context.Context, _ string) (*model.Session, error) {
	return nil, nil
}

func (m *mockProvider) GetUser(ctx context.Context, accessToken string) (*model.Principal, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, accessToken)
	}
	return &model.Principal{ID: "u1", Email: "u1@example.com"}, nil
}

func (m *mockProvider) AdminListUsers(_ context.Context) ([]model.Principal, error) {
	return nil, nil
}

func (m *mockProvider) Logout(_ context.Context, _ string) error { return nil }

type mockOrganizationService struct {
	createFn func(ctx context.Context, name string, slug *string, ownerUserID string) (*model.Organization, error)
}

func (m *mockOrganizationService) Create(ctx context.Context, name string, slug *string, ownerUserID string) (*model.Organization, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name, slug, ownerUserID)
	}
	return nil, nil
}

type mockMembershipService struct {
	inviteFn func(ctx context.Context, params service.InviteParams) (*model.OrganizationInvitation, string, error)
	acceptFn func(ctx context.Context, token, userID string) (*model.Organization, error)
	verifyFn func(ctx context.Context, slug, userID string) (*service.VerifyResult, error)
}

func (m *mockMembershipService) Invite(ctx context.Context, params service.InviteParams) (*model.OrganizationInvitation, string, error) {
	if m.inviteFn != nil {
		return m.inviteFn(ctx, params)
	}
	return nil, "", nil
}

func (m *mockMembershipService) Accept(ctx context.Context, token, userID string) (*model.Organization, error) {
	if m.acceptFn != nil {
		return m.acceptFn(ctx, token, userID)
	}
	return nil, nil
}

func (m *mockMembershipService) Verify(ctx context.Context, slug, userID string) (*service.VerifyResult, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, slug, userID)
	}
	return nil, nil
}

// mockStores implements store.Provider for the handlers that read the
// profile and organization tables directly. Stores the tests never touch
// come back nil.
type mockStores struct {
	users         *mockUserStore
	organizations *mockOrganizationStore
}

func newMockStores() *mockStores {
	return &mockStores{
		users:         &mockUserStore{},
		organizations: &mockOrganizationStore{},
	}
}

func (m *mockStores) Users() store.UserStore                 { return m.users }
func (m *mockStores) Organizations() store.OrganizationStore { return m.organizations }
func (m *mockStores) Memberships() store.MembershipStore     { return nil }
func (m *mockStores) Invitations() store.InvitationStore     { return nil }
func (m *mockStores) Jobs() store.JobStore                   { return nil }
func (m *mockStores) Resumes() store.ResumeStore             { return nil }
func (m *mockStores) Subscriptions() store.SubscriptionStore { return nil }
func (m *mockStores) SystemConfig() store.SystemConfigStore  { return nil }

type mockUserStore struct {
	getByIDFn func(ctx context.Context, id string) (*model.User, error)
	listFn    func(ctx context.Context, limit, offset int) ([]model.User, error)
	countFn   func(ctx context.Context) (int, error)
	updateFn  func(ctx context.Context, user *model.User) error
	deleteFn  func(ctx context.Context, id string) error
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

func (m *mockUserStore) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockUserStore) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockUserStore) Upsert(_ context.Context, _ *model.User) error { return nil }

func (m *mockUserStore) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) SetCurrentOrganization(_ context.Context, _ string, _ int64) error {
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockOrganizationStore struct {
	getByIDFn func(ctx context.Context, id int64) (*model.Organization, error)
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) GetBySlug(_ context.Context, _ string) (*model.Organization, error) {
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) Create(_ context.Context, _ *model.Organization) error { return nil }
func (m *mockOrganizationStore) Update(_ context.Context, _ *model.Organization) error { return nil }
func (m *mockOrganizationStore) Delete(_ context.Context, _ int64) error               { return nil }

func (m *mockOrganizationStore) ListUsage(_ context.Context, _ int64, _ int) ([]model.OrganizationUsage, error) {
	return nil, nil
}

func (m *mockOrganizationStore) GetSubscription(_ context.Context, _ int64) (*model.OrganizationSubscription, error) {
	return nil, store.ErrNotFound
}

type mockStatsService struct {
	orgStatsFn   func(ctx context.Context, orgID int64) (*service.OrgStats, error)
	adminStatsFn func(ctx context.Context) (*service.AdminStats, error)
}

func (m *mockStatsService) OrgStats(ctx context.Context, orgID int64) (*service.OrgStats, error) {
	if m.orgStatsFn != nil {
		return m.orgStatsFn(ctx, orgID)
	}
	return &service.OrgStats{}, nil
}

func (m *mockStatsService) AdminStats(ctx context.Context) (*service.AdminStats, error) {
	if m.adminStatsFn != nil {
		return m.adminStatsFn(ctx)
	}
	return &service.AdminStats{}, nil
}
