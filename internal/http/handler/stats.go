package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/http/dto"
	"jona.app/api-server/internal/http/middleware"
	"jona.app/api-server/internal/service"
)

type StatsHandler struct {
	sessions *middleware.SessionManager
	stats    service.StatsService
}

func NewStatsHandler(sessions *middleware.SessionManager, stats service.StatsService) *StatsHandler {
	return &StatsHandler{
		sessions: sessions,
		stats:    stats,
	}
}

func (h *StatsHandler) AdminStats(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := requireVerifiedAdmin(c, h.sessions); !ok {
		return
	}

	stats, err := h.stats.AdminStats(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load admin stats", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to load stats"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
