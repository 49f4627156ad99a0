package router

import (
	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/http/handler"
)

type AdminHandlers struct {
	Users         *handler.UserHandler
	Resumes       *handler.ResumeHandler
	Subscriptions *handler.SubscriptionHandler
	SystemConfig  *handler.SystemConfigHandler
	Stats         *handler.StatsHandler
}

func AdminRouter(rg *gin.RouterGroup, h AdminHandlers) {
	rg.GET("/stats", h.Stats.AdminStats)

	users := rg.Group("/users")
	{
		users.GET("", h.Users.List)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)
	}

	resumes := rg.Group("/resumes")
	{
		resumes.GET("", h.Resumes.List)
		resumes.GET("/:id", h.Resumes.Get)
		resumes.DELETE("/:id", h.Resumes.Delete)
	}

	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.GET("", h.Subscriptions.List)
		subscriptions.GET("/stats", h.Subscriptions.Stats)
		subscriptions.POST("/:id/cancel", h.Subscriptions.Cancel)
	}

	config := rg.Group("/config")
	{
		config.GET("", h.SystemConfig.List)
		config.GET("/:key", h.SystemConfig.Get)
		config.PUT("/:key", h.SystemConfig.Put)
	}
}
