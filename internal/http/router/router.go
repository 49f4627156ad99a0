package router

import (
	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/http/handler"
	"jona.app/api-server/internal/http/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Organization *handler.OrganizationHandler
	Scraper      *handler.ScraperHandler
	Admin        AdminHandlers
}

func SetupRoutes(router *gin.Engine, sessions *middleware.SessionManager, h Handlers, limiter *middleware.RateLimiter) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	AuthRouter(router.Group("/api/auth"), h.Auth)

	// Scraper health is reachable without a session; the trigger endpoint
	// keeps the upstream path shape and is admin-only plus rate limited.
	router.GET("/api/health", h.Scraper.Health)
	router.POST("/api/create-subscription/scraper/trigger", limiter.Middleware(), h.Scraper.Trigger)

	org := router.Group("/api/org")
	org.Use(middleware.RequireSessionAPI(sessions))
	OrganizationRouter(org, h.Organization, limiter)

	admin := router.Group("/api/admin")
	admin.Use(middleware.RequireSessionAPI(sessions))
	AdminRouter(admin, h.Admin)

	// Page-shaped routes run the guards server-side behind the gate; the
	// client owns the actual rendering.
	shell := func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true})
	}

	router.GET("/dashboard", middleware.RequireSession(sessions), shell)

	adminPages := router.Group("/admin", middleware.RequireAdmin(sessions))
	adminPages.GET("/dashboard", shell)

	orgPages := router.Group("/org", middleware.RequireOrganization(sessions))
	orgPages.GET("/login", shell)
	orgPages.GET("/:segment/:slug/dashboard", shell)
}
