package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"jona.app/api-server/core/config"
	"jona.app/api-server/internal/model"
)

var (
	ErrUnauthorized   = errors.New("provider rejected credentials")
	ErrInvalidCode    = errors.New("invalid authorization code")
	ErrInvalidRefresh = errors.New("invalid refresh token")
)

// Provider is the hosted auth service. It owns sessions and principals; this
// service only calls it.
type Provider interface {
	ExchangeCode(ctx context.Context, code string) (*model.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*model.Session, error)
	GetUser(ctx context.Context, accessToken string) (*model.Principal, error)
	AdminListUsers(ctx context.Context) ([]model.Principal, error)
	Logout(ctx context.Context, accessToken string) error
}

type client struct {
	httpClient *http.Client
	baseURL    string
	anonKey    string
	serviceKey string
	jwtSecret  string
}

func NewClient(cfg config.AuthProviderConfig) Provider {
	return &client{
		httpClient: &http.Client{},
		baseURL:    cfg.BaseURL,
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceRoleKey,
		jwtSecret:  cfg.JWTSecret,
	}
}

type tokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"`
	User         model.Principal `json:"user"`
}

func (c *client) ExchangeCode(ctx context.Context, code string) (*model.Session, error) {
	session, err := c.token(ctx, "authorization_code", map[string]string{"auth_code": code})
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	return session, nil
}

func (c *client) RefreshSession(ctx context.Context, refreshToken string) (*model.Session, error) {
	session, err := c.token(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	return session, nil
}

func (c *client) token(ctx context.Context, grantType string, body map[string]string) (*model.Session, error) {
	endpoint := fmt.Sprintf("%s/auth/v1/token?grant_type=%s", c.baseURL, url.QueryEscape(grantType))

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}

	session, err := ParseAccessToken(tr.AccessToken, c.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("validating issued token: %w", err)
	}
	session.RefreshToken = tr.RefreshToken
	if tr.User.ID != "" {
		session.Principal = tr.User
	}

	return session, nil
}

func (c *client) GetUser(ctx context.Context, accessToken string) (*model.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("building user request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling user endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user endpoint returned %d", resp.StatusCode)
	}

	var principal model.Principal
	if err := json.NewDecoder(resp.Body).Decode(&principal); err != nil {
		return nil, fmt.Errorf("decoding user response: %w", err)
	}
	return &principal, nil
}

func (c *client) AdminListUsers(ctx context.Context) ([]model.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/admin/users", nil)
	if err != nil {
		return nil, fmt.Errorf("building admin users request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing auth users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("admin users endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		Users []model.Principal `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding admin users response: %w", err)
	}
	return payload.Users, nil
}

func (c *client) Logout(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("building logout request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling logout endpoint: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("logout endpoint returned %d", resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		slog.DebugContext(ctx, "logout rejected by provider", "status", resp.StatusCode)
	}
	return nil
}
