package router

import (
	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler) {
	rg.POST("/exchange", h.Exchange)
	rg.GET("/me", h.Me)
	rg.POST("/logout", h.Logout)
}
