package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/auth"
	"jona.app/api-server/internal/http/dto"
)

// publicPaths are reachable with no session at all.
var publicPaths = map[string]bool{
	"/":                true,
	"/login":           true,
	"/signup":          true,
	"/forgot-password": true,
	"/reset-password":  true,
	"/auth/callback":   true,
	"/org/login":       true,
	"/org/register":    true,
	"/health":          true,
	"/api/health":      true,
}

var publicPrefixes = []string{
	"/_next",
	"/static",
	"/favicon",
	"/api/auth",
	"/api/public",
}

// apiPrefixes fail with a JSON 401 rather than a login redirect; the
// caller is a fetch, not a browser navigation.
var apiPrefixes = []string{
	"/api/admin",
	"/api/org",
	"/api/create-subscription",
}

const adminPagePrefix = "/admin"

// Gate is the single entry checkpoint. It classifies the request path,
// resolves the session once, and either passes the request through,
// redirects the browser, or rejects the API call. Anything it does not
// recognize is treated as protected.
func Gate(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if isPublic(path) {
			// Still resolve the session so rotated cookies land on
			// responses for public pages too.
			sessions.Current(c)
			c.Next()
			return
		}

		session := sessions.Current(c)

		if isAPI(path) {
			if session == nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Envelope{
					Success: false,
					Message: "Unauthorized",
				})
				return
			}
			if strings.HasPrefix(path, adminAPIPrefix) {
				role := auth.Resolve(&session.Principal, "")
				if !auth.IsAdmin(role) {
					c.AbortWithStatusJSON(http.StatusForbidden, dto.Envelope{
						Success: false,
						Message: "Admin access required",
					})
					return
				}
				c.Set(roleContextKey, role)
			}
			c.Next()
			return
		}

		if session == nil {
			redirectToLogin(c, path)
			return
		}

		if strings.HasPrefix(path, adminPagePrefix) {
			role := auth.Resolve(&session.Principal, "")
			if !auth.IsAdmin(role) {
				slog.InfoContext(c.Request.Context(), "non-admin redirected from admin area",
					"user_id", session.Principal.ID,
					"path", path,
				)
				c.Redirect(http.StatusFound, "/dashboard")
				c.Abort()
				return
			}
			c.Set(roleContextKey, role)
		}

		c.Next()
	}
}

const adminAPIPrefix = "/api/admin"

func redirectToLogin(c *gin.Context, path string) {
	// The path goes in verbatim; clients expect redirect=/dashboard, not a
	// percent-escaped form.
	c.Redirect(http.StatusFound, "/login?redirect="+path)
	c.Abort()
}

func isPublic(path string) bool {
	if publicPaths[path] {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isAPI(path string) bool {
	for _, prefix := range apiPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
