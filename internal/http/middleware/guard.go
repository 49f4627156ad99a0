package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/auth"
	"jona.app/api-server/internal/http/dto"
)

// Layout guards re-check what the gate already checked. They are cheap
// (no provider round-trip) and keep a route group safe even if the gate's
// path table drifts out of sync with the route tree.

// RequireSession rejects anonymous requests with a plain login redirect.
func RequireSession(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.Current(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin admits only principals whose resolved role is admin.
// Anonymous users go to login with a return path, authenticated non-admins
// go to their own dashboard.
func RequireAdmin(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Current(c)
		if session == nil {
			c.Redirect(http.StatusFound, "/login?redirect=/admin/dashboard")
			c.Abort()
			return
		}

		role := auth.Resolve(&session.Principal, "")
		if !auth.IsAdmin(role) {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}

		c.Set(roleContextKey, role)
		c.Next()
	}
}

// RequireSessionAPI is the API-group variant: a JSON 401 instead of a
// login redirect, since the caller is a fetch rather than a navigation.
func RequireSessionAPI(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.Current(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Envelope{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}
		c.Next()
	}
}

// RequireOrganization guards the organization page tree. The org login
// page itself stays reachable so signed-out members can get back in.
func RequireOrganization(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/org/login" {
			c.Next()
			return
		}
		if sessions.Current(c) == nil {
			c.Redirect(http.StatusFound, "/org/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
