package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jona.app/api-server/internal/http/dto"
	"jona.app/api-server/internal/http/middleware"
	"jona.app/api-server/internal/model"
	"jona.app/api-server/internal/service"
)

type OrganizationHandler struct {
	sessions      *middleware.SessionManager
	organizations service.OrganizationService
	memberships   service.MembershipService
	stats         service.StatsService
}

func NewOrganizationHandler(
	sessions *middleware.SessionManager,
	organizations service.OrganizationService,
	memberships service.MembershipService,
	stats service.StatsService,
) *OrganizationHandler {
	return &OrganizationHandler{
		sessions:      sessions,
		organizations: organizations,
		memberships:   memberships,
		stats:         stats,
	}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	principal, ok := requireVerifiedUser(c, h.sessions)
	if !ok {
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("name is required"))
		return
	}

	org, err := h.organizations.Create(ctx, req.Name, req.Slug, principal.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create organization", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to create organization"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"organization": dto.ToOrganizationResponse(org),
	})
}

// Invite requires an owner or admin membership in the target organization,
// checked against the database on every call.
func (h *OrganizationHandler) Invite(c *gin.Context) {
	ctx := c.Request.Context()

	principal, ok := requireVerifiedUser(c, h.sessions)
	if !ok {
		return
	}

	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("organizationSlug and a valid email are required"))
		return
	}

	result, ok := h.verifyMember(c, req.OrganizationSlug, principal.ID)
	if !ok {
		return
	}
	if result.Membership.Role != model.RoleOwner && result.Membership.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, dto.Fail("Only organization admins can invite members"))
		return
	}

	invitation, link, err := h.memberships.Invite(ctx, service.InviteParams{
		OrganizationID:   result.Organization.ID,
		OrganizationName: result.Organization.Name,
		Email:            req.Email,
		Role:             model.MemberRole(req.Role),
		InvitedBy:        principal.ID,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create invitation", "error", err, "org_id", result.Organization.ID)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to create invitation"))
		return
	}

	c.JSON(http.StatusCreated, dto.InviteMemberResponse{
		Envelope:     dto.Envelope{Success: true, Message: "Invitation sent"},
		InvitationID: invitation.ID,
		Email:        invitation.Email,
		Role:         string(invitation.Role),
		InviteLink:   link,
		ExpiresAt:    invitation.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (h *OrganizationHandler) AcceptInvitation(c *gin.Context) {
	ctx := c.Request.Context()

	principal, ok := requireVerifiedUser(c, h.sessions)
	if !ok {
		return
	}

	var req dto.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("token is required"))
		return
	}

	org, err := h.memberships.Accept(ctx, req.Token, principal.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInvitation):
			c.JSON(http.StatusNotFound, dto.Fail("Invalid invitation"))
		case errors.Is(err, service.ErrInvitationExpired):
			c.JSON(http.StatusGone, dto.Fail("This invitation has expired"))
		case errors.Is(err, service.ErrAlreadyAccepted):
			c.JSON(http.StatusConflict, dto.Fail("This invitation has already been accepted"))
		case errors.Is(err, service.ErrRetriesExhausted):
			slog.ErrorContext(ctx, "invitation accept gave up after retries", "error", err)
			c.JSON(http.StatusInternalServerError, dto.Fail(err.Error()))
		default:
			slog.ErrorContext(ctx, "failed to accept invitation", "error", err)
			c.JSON(http.StatusInternalServerError, dto.Fail("Failed to accept invitation"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"organization": dto.ToOrganizationResponse(org),
	})
}

// VerifyMembership is what layout guards on the client call before
// rendering an organization page.
func (h *OrganizationHandler) VerifyMembership(c *gin.Context) {
	principal, ok := requireVerifiedUser(c, h.sessions)
	if !ok {
		return
	}

	slug := h.requestedSlug(c)
	if slug == "" {
		c.JSON(http.StatusBadRequest, dto.Fail("Organization slug is required"))
		return
	}

	result, ok := h.verifyMember(c, slug, principal.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.VerifyMembershipResponse{
		Envelope:     dto.Envelope{Success: true},
		Organization: dto.ToOrganizationResponse(result.Organization),
		Membership:   dto.ToMembershipResponse(result.Membership),
		Role:         string(result.Membership.Role),
	})
}

func (h *OrganizationHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	principal, ok := requireVerifiedUser(c, h.sessions)
	if !ok {
		return
	}

	slug := h.requestedSlug(c)
	if slug == "" {
		c.JSON(http.StatusBadRequest, dto.Fail("Organization slug is required"))
		return
	}

	result, ok := h.verifyMember(c, slug, principal.ID)
	if !ok {
		return
	}

	stats, err := h.stats.OrgStats(ctx, result.Organization.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load organization stats", "error", err, "org_id", result.Organization.ID)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to load stats"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

// requestedSlug accepts the slug from the query string on GET and from the
// body on POST; both spellings the clients use are honored.
func (h *OrganizationHandler) requestedSlug(c *gin.Context) string {
	if slug := c.Query("organizationSlug"); slug != "" {
		return slug
	}
	if slug := c.Query("slug"); slug != "" {
		return slug
	}
	if c.Request.Method == http.MethodPost {
		var req dto.VerifyMembershipRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			return req.OrganizationSlug
		}
	}
	return ""
}

// verifyMember maps the service's membership errors onto the wire: the 404
// names the slug the caller asked for, the 403 carries the fixed
// non-member message.
func (h *OrganizationHandler) verifyMember(c *gin.Context, slug, userID string) (*service.VerifyResult, bool) {
	ctx := c.Request.Context()

	result, err := h.memberships.Verify(ctx, slug, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrganizationNotFound):
			c.JSON(http.StatusNotFound, dto.Fail(fmt.Sprintf("Organization '%s' not found", slug)))
		case errors.Is(err, service.ErrNotMember):
			c.JSON(http.StatusForbidden, dto.Fail("You are not a member of this organization"))
		default:
			slog.ErrorContext(ctx, "membership verification failed", "error", err, "slug", slug)
			c.JSON(http.StatusInternalServerError, dto.Fail("Failed to verify membership"))
		}
		return nil, false
	}
	return result, true
}
