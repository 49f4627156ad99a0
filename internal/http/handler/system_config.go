package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/http/dto"
	"jona.app/api-server/internal/http/middleware"
	"jona.app/api-server/internal/model"
	"jona.app/api-server/internal/store"
)

type SystemConfigHandler struct {
	sessions *middleware.SessionManager
	stores   store.Provider
}

func NewSystemConfigHandler(sessions *middleware.SessionManager, stores store.Provider) *SystemConfigHandler {
	return &SystemConfigHandler{
		sessions: sessions,
		stores:   stores,
	}
}

func (h *SystemConfigHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := requireVerifiedAdmin(c, h.sessions); !ok {
		return
	}

	configs, err := h.stores.SystemConfig().List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list system config", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to load configuration"))
		return
	}

	out := make([]*dto.SystemConfigResponse, 0, len(configs))
	for i := range configs {
		out = append(out, dto.ToSystemConfigResponse(&configs[i]))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "config": out})
}

func (h *SystemConfigHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := requireVerifiedAdmin(c, h.sessions); !ok {
		return
	}

	cfg, err := h.stores.SystemConfig().Get(ctx, c.Param("key"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("Configuration key not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to load system config", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to load configuration"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "config": dto.ToSystemConfigResponse(cfg)})
}

func (h *SystemConfigHandler) Put(c *gin.Context) {
	ctx := c.Request.Context()

	admin, ok := requireVerifiedAdmin(c, h.sessions)
	if !ok {
		return
	}

	var req dto.UpdateSystemConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("value is required"))
		return
	}

	cfg := &model.SystemConfig{
		Key:       c.Param("key"),
		Value:     req.Value,
		UpdatedBy: admin.ID,
	}
	if err := h.stores.SystemConfig().Upsert(ctx, cfg); err != nil {
		slog.ErrorContext(ctx, "failed to update system config", "error", err, "key", cfg.Key)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to update configuration"))
		return
	}

	slog.InfoContext(ctx, "system config updated", "key", cfg.Key, "updated_by", admin.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "config": dto.ToSystemConfigResponse(cfg)})
}
