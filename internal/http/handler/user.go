package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/http/dto"
	"jona.app/api-server/internal/http/middleware"
	"jona.app/api-server/internal/store"
)

type UserHandler struct {
	sessions *middleware.SessionManager
	stores   store.Provider
}

func NewUserHandler(sessions *middleware.SessionManager, stores store.Provider) *UserHandler {
	return &UserHandler{
		sessions: sessions,
		stores:   stores,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := requireVerifiedAdmin(c, h.sessions); !ok {
		return
	}

	p := dto.ParsePagination(c)

	users, err := h.stores.Users().List(ctx, p.Limit, p.Offset())
	if err != nil {
		slog.ErrorContext(ctx, "failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to list users"))
		return
	}

	total, err := h.stores.Users().Count(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count users", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to list users"))
		return
	}
	p.Total = total

	out := make([]*dto.AdminUserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.ToAdminUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, dto.ListResponse[*dto.AdminUserResponse]{
		Success:    true,
		Data:       out,
		Pagination: p,
	})
}

func (h *UserHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := requireVerifiedAdmin(c, h.sessions); !ok {
		return
	}

	user, err := h.stores.Users().GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("User not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to load user", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to load user"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": dto.ToAdminUserResponse(user)})
}

func (h *UserHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := requireVerifiedAdmin(c, h.sessions); !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	user, err := h.stores.Users().GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("User not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to load user", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to update user"))
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := h.stores.Users().Update(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to update user", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to update user"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": dto.ToAdminUserResponse(user)})
}

func (h *UserHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	admin, ok := requireVerifiedAdmin(c, h.sessions)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == admin.ID {
		c.JSON(http.StatusBadRequest, dto.Fail("You cannot delete your own account"))
		return
	}

	if err := h.stores.Users().Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("User not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to delete user", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to delete user"))
		return
	}

	slog.InfoContext(ctx, "user deleted", "user_id", id, "deleted_by", admin.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}
