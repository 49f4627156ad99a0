package middleware_test

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/gomega"

	"jona.app/api-server/internal/model"
)

const testSecret = "middleware-test-secret"

type mockProvider struct {
	refreshSessionFn func(ctx context.Context, refreshToken string) (*model.Session, error)
	getUserFn        func(ctx context.Context, accessToken string) (*model.Principal, error)
}

func (m *mockProvider) ExchangeCode(_ context.Context, _ string) (*model.Session, error) {
	return nil, nil
}

func (m *mockProvider) RefreshSession(ctx context.Context, refreshToken string) (*model.Session, error) {
	if m.refreshSessionFn != nil {
		return m.refreshSessionFn(ctx, refreshToken)
	}
	return nil, nil
}

func (m *mockProvider) GetUser(ctx context.Context, accessToken string) (*model.Principal, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, accessToken)
	}
	return nil, nil
}

func (m *mockProvider) AdminListUsers(_ context.Context) ([]model.Principal, error) {
	return nil, nil
}

func (m *mockProvider) Logout(_ context.Context, _ string) error { return nil }

func accessTokenFor(userID, userRole, appRole string, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": userID + "@example.com",
		"exp":   time.Now().Add(ttl).Unix(),
	}
	if userRole != "" {
		claims["user_metadata"] = map[string]any{"role": userRole}
	}
	if appRole != "" {
		claims["app_metadata"] = map[string]any{"role": appRole}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	Expect(err).NotTo(HaveOccurred())
	return signed
}
