package middleware

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/identity"
	"jona.app/api-server/internal/model"
)

const (
	accessCookieName  = "sb-access-token"
	refreshCookieName = "sb-refresh-token"

	accessCookieMaxAge  = 60 * 60
	refreshCookieMaxAge = 7 * 24 * 60 * 60

	sessionContextKey   = "session"
	principalContextKey = "principal"
	roleContextKey      = "role"
)

// SessionManager turns the auth cookies on a request into a verified
// session. Reads never hit the provider; only an expired access token
// triggers a refresh round-trip.
type SessionManager struct {
	provider     identity.Provider
	jwtSecret    string
	isProduction bool
}

func NewSessionManager(provider identity.Provider, jwtSecret string, isProduction bool) *SessionManager {
	return &SessionManager{
		provider:     provider,
		jwtSecret:    jwtSecret,
		isProduction: isProduction,
	}
}

// Current returns the session for the request, or nil when there is none.
// Every failure mode (bad signature, missing cookies, failed refresh) maps
// to nil so callers gate on presence alone. The result is cached on the
// gin context for the rest of the request.
func (m *SessionManager) Current(c *gin.Context) *model.Session {
	if cached, ok := c.Get(sessionContextKey); ok {
		session, _ := cached.(*model.Session)
		return session
	}

	session := m.resolve(c)
	c.Set(sessionContextKey, session)
	if session != nil {
		c.Set(principalContextKey, &session.Principal)
	}
	return session
}

func (m *SessionManager) resolve(c *gin.Context) *model.Session {
	ctx := c.Request.Context()

	accessToken, accessErr := c.Cookie(accessCookieName)
	refreshToken, refreshErr := c.Cookie(refreshCookieName)

	if accessErr != nil {
		if refreshErr != nil {
			return nil
		}
		// Access cookie expired out of the jar but the refresh token is
		// still there; recover the session transparently.
		return m.refresh(c, refreshToken)
	}

	session, err := identity.ParseAccessToken(accessToken, m.jwtSecret)
	if err != nil {
		if errors.Is(err, identity.ErrTokenExpired) && refreshErr == nil {
			return m.refresh(c, refreshToken)
		}
		slog.DebugContext(ctx, "rejecting session cookie", "error", err)
		return nil
	}

	session.RefreshToken = refreshToken
	return session
}

func (m *SessionManager) refresh(c *gin.Context, refreshToken string) *model.Session {
	ctx := c.Request.Context()

	session, err := m.provider.RefreshSession(ctx, refreshToken)
	if err != nil {
		if !errors.Is(err, identity.ErrInvalidRefresh) {
			slog.WarnContext(ctx, "session refresh failed", "error", err)
		}
		return nil
	}

	// Rotated tokens must reach the client on every response shape,
	// redirects included, or the next request replays the stale pair.
	m.SetCookies(c, session)

	return session
}

// CurrentUser re-verifies the principal against the provider. Handlers for
// sensitive operations call this instead of trusting the cookie claims.
func (m *SessionManager) CurrentUser(c *gin.Context) (*model.Principal, error) {
	session := m.Current(c)
	if session == nil {
		return nil, identity.ErrUnauthorized
	}
	return m.provider.GetUser(c.Request.Context(), session.AccessToken)
}

func (m *SessionManager) SetCookies(c *gin.Context, session *model.Session) {
	c.SetCookie(accessCookieName, session.AccessToken, accessCookieMaxAge, "/", "", m.isProduction, true)
	c.SetCookie(refreshCookieName, session.RefreshToken, refreshCookieMaxAge, "/", "", m.isProduction, true)
}

func (m *SessionManager) ClearCookies(c *gin.Context) {
	c.SetCookie(accessCookieName, "", -1, "/", "", m.isProduction, true)
	c.SetCookie(refreshCookieName, "", -1, "/", "", m.isProduction, true)
}

// Principal returns the verified principal a gating middleware stored on
// the context, if any.
func Principal(c *gin.Context) *model.Principal {
	if v, ok := c.Get(principalContextKey); ok {
		principal, _ := v.(*model.Principal)
		return principal
	}
	return nil
}
