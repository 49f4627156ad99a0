package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/http/dto"
	"jona.app/api-server/internal/http/middleware"
	"jona.app/api-server/internal/store"
)

type SubscriptionHandler struct {
	sessions *middleware.SessionManager
	stores   store.Provider
}

func NewSubscriptionHandler(sessions *middleware.SessionManager, stores store.Provider) *SubscriptionHandler {
	return &SubscriptionHandler{
		sessions: sessions,
		stores:   stores,
	}
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := requireVerifiedAdmin(c, h.sessions); !ok {
		return
	}

	p := dto.ParsePagination(c)

	subs, err := h.stores.Subscriptions().List(ctx, p.Limit, p.Offset())
	if err != nil {
		slog.ErrorContext(ctx, "failed to list subscriptions", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to list subscriptions"))
		return
	}

	totals, err := h.stores.Subscriptions().Totals(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to total subscriptions", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to list subscriptions"))
		return
	}
	p.Total = totals.TotalCount

	out := make([]*dto.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, dto.ToSubscriptionResponse(&subs[i]))
	}

	c.JSON(http.StatusOK, dto.ListResponse[*dto.SubscriptionResponse]{
		Success:    true,
		Data:       out,
		Pagination: p,
	})
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	admin, ok := requireVerifiedAdmin(c, h.sessions)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid subscription id"))
		return
	}

	if err := h.stores.Subscriptions().Cancel(ctx, id, time.Now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("Subscription not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to cancel subscription", "error", err, "subscription_id", id)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to cancel subscription"))
		return
	}

	slog.InfoContext(ctx, "subscription canceled", "subscription_id", id, "canceled_by", admin.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscription canceled"})
}

func (h *SubscriptionHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := requireVerifiedAdmin(c, h.sessions); !ok {
		return
	}

	totals, err := h.stores.Subscriptions().Totals(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to total subscriptions", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to load subscription stats"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"total_revenue":             totals.TotalRevenue,
			"monthly_recurring_revenue": totals.MonthlyRecurring,
			"active_subscriptions":      totals.ActiveCount,
			"total_subscriptions":       totals.TotalCount,
		},
	})
}
