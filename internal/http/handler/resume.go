package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/http/dto"
	"jona.app/api-server/internal/http/middleware"
	"jona.app/api-server/internal/store"
)

type ResumeHandler struct {
	sessions *middleware.SessionManager
	stores   store.Provider
}

func NewResumeHandler(sessions *middleware.SessionManager, stores store.Provider) *ResumeHandler {
	return &ResumeHandler{
		sessions: sessions,
		stores:   stores,
	}
}

func (h *ResumeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := requireVerifiedAdmin(c, h.sessions); !ok {
		return
	}

	p := dto.ParsePagination(c)

	resumes, err := h.stores.Resumes().List(ctx, p.Limit, p.Offset())
	if err != nil {
		slog.ErrorContext(ctx, "failed to list resumes", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to list resumes"))
		return
	}

	total, err := h.stores.Resumes().Count(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count resumes", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to list resumes"))
		return
	}
	p.Total = total

	out := make([]*dto.ResumeResponse, 0, len(resumes))
	for i := range resumes {
		out = append(out, dto.ToResumeResponse(&resumes[i]))
	}

	c.JSON(http.StatusOK, dto.ListResponse[*dto.ResumeResponse]{
		Success:    true,
		Data:       out,
		Pagination: p,
	})
}

func (h *ResumeHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := requireVerifiedAdmin(c, h.sessions); !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid resume id"))
		return
	}

	resume, err := h.stores.Resumes().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("Resume not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to load resume", "error", err, "resume_id", id)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to load resume"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "resume": dto.ToResumeResponse(resume)})
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	admin, ok := requireVerifiedAdmin(c, h.sessions)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid resume id"))
		return
	}

	if err := h.stores.Resumes().Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("Resume not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to delete resume", "error", err, "resume_id", id)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to delete resume"))
		return
	}

	slog.InfoContext(ctx, "resume deleted", "resume_id", id, "deleted_by", admin.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Resume deleted"})
}
