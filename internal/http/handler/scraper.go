package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/http/dto"
	"jona.app/api-server/internal/http/middleware"
	"jona.app/api-server/internal/service"
)

type ScraperHandler struct {
	sessions *middleware.SessionManager
	scraper  service.ScraperService
}

func NewScraperHandler(sessions *middleware.SessionManager, scraper service.ScraperService) *ScraperHandler {
	return &ScraperHandler{
		sessions: sessions,
		scraper:  scraper,
	}
}

// Health always answers 200; the scraper's availability is carried in the
// payload so callers can render a degraded state instead of an error page.
func (h *ScraperHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.scraper.Health(c.Request.Context()))
}

func (h *ScraperHandler) Trigger(c *gin.Context) {
	ctx := c.Request.Context()

	admin, ok := requireVerifiedAdmin(c, h.sessions)
	if !ok {
		return
	}

	var req dto.TriggerScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	result, err := h.scraper.Trigger(ctx, service.TriggerParams{
		Keywords: req.Keywords,
		Location: req.Location,
		Days:     req.Days,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to trigger scraper", "error", err, "triggered_by", admin.ID)
		c.JSON(http.StatusBadGateway, dto.Fail("Failed to trigger scraper"))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true, "result": result})
}
