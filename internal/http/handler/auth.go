package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/auth"
	"jona.app/api-server/internal/http/dto"
	"jona.app/api-server/internal/http/middleware"
	"jona.app/api-server/internal/identity"
	"jona.app/api-server/internal/model"
	"jona.app/api-server/internal/store"
)

type AuthHandler struct {
	sessions *middleware.SessionManager
	provider identity.Provider
	stores   store.Provider
}

func NewAuthHandler(sessions *middleware.SessionManager, provider identity.Provider, stores store.Provider) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		provider: provider,
		stores:   stores,
	}
}

// Exchange trades an auth code for a session, sets the cookie pair and
// tells the client which dashboard the resolved role lands on.
func (h *AuthHandler) Exchange(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("code is required"))
		return
	}

	session, err := h.provider.ExchangeCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCode) {
			c.JSON(http.StatusBadRequest, dto.Fail("Invalid authorization code"))
			return
		}
		slog.ErrorContext(ctx, "code exchange failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Authentication failed"))
		return
	}

	h.sessions.SetCookies(c, session)

	role := auth.Resolve(&session.Principal, "")
	redirect := auth.DashboardPath(role, h.currentOrgSlug(c, session.Principal.ID))

	slog.InfoContext(ctx, "user signed in",
		"user_id", session.Principal.ID,
		"role", role,
	)

	c.JSON(http.StatusOK, dto.ExchangeCodeResponse{
		Envelope: dto.Envelope{Success: true},
		User:     dto.ToSessionUserResponse(&session.Principal, role),
		Redirect: redirect,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	session := h.sessions.Current(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	role := auth.Resolve(&session.Principal, "")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto.ToSessionUserResponse(&session.Principal, role),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if session := h.sessions.Current(c); session != nil {
		if err := h.provider.Logout(ctx, session.AccessToken); err != nil {
			slog.WarnContext(ctx, "provider logout failed", "error", err)
		}
	}

	h.sessions.ClearCookies(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

// currentOrgSlug finds the slug for the user's current organization, if
// the profile points at one. Missing profile rows are normal right after
// signup and resolve to the personal dashboard.
func (h *AuthHandler) currentOrgSlug(c *gin.Context, userID string) string {
	ctx := c.Request.Context()

	user, err := h.stores.Users().GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "loading profile for dashboard routing", "error", err, "user_id", userID)
		}
		return ""
	}
	if user.CurrentOrganizationID == nil {
		return ""
	}

	org, err := h.stores.Organizations().GetByID(ctx, *user.CurrentOrganizationID)
	if err != nil {
		slog.WarnContext(ctx, "loading current organization for dashboard routing",
			"error", err,
			"org_id", *user.CurrentOrganizationID,
		)
		return ""
	}
	return org.Slug
}

// requireVerifiedUser re-checks the caller against the provider. Sensitive
// handlers use this instead of the cookie claims; a deleted or banned user
// fails here even with a valid-looking token.
func requireVerifiedUser(c *gin.Context, sessions *middleware.SessionManager) (*model.Principal, bool) {
	principal, err := sessions.CurrentUser(c)
	if err != nil {
		if errors.Is(err, identity.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
			return nil, false
		}
		slog.ErrorContext(c.Request.Context(), "verifying user against provider", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to verify session"))
		return nil, false
	}
	return principal, true
}

// requireVerifiedAdmin re-checks both identity and role against the
// provider, independent of whatever the gate already decided.
func requireVerifiedAdmin(c *gin.Context, sessions *middleware.SessionManager) (*model.Principal, bool) {
	principal, ok := requireVerifiedUser(c, sessions)
	if !ok {
		return nil, false
	}
	if !auth.IsAdmin(auth.Resolve(principal, "")) {
		c.JSON(http.StatusForbidden, dto.Fail("Admin access required"))
		return nil, false
	}
	return principal, true
}
