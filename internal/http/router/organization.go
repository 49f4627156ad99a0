package router

import (
	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/http/handler"
	"jona.app/api-server/internal/http/middleware"
)

func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler, limiter *middleware.RateLimiter) {
	rg.POST("/create", h.Create)
	rg.POST("/invite", limiter.Middleware(), h.Invite)
	rg.POST("/accept-invitation", h.AcceptInvitation)
	rg.GET("/verify-membership", h.VerifyMembership)
	rg.POST("/verify-membership", h.VerifyMembership)
	rg.GET("/stats", h.Stats)
}
