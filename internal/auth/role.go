// Package auth resolves one canonical role string for a principal. Every
// gating layer (edge gate, guards, handlers) goes through Resolve so the
// precedence lives in exactly one place.
package auth

import (
	"log/slog"
	"strings"

	"jona.app/api-server/internal/model"
)

const RoleAdmin = "admin"
const RoleDefault = "user"

// Resolve returns the canonical role for a principal. Precedence, first
// match wins:
//
//  1. explicit override (an organization membership role for org-scoped
//     decisions)
//  2. user_metadata.role
//  3. app_metadata.role
//  4. "user"
//
// The user-editable bag deliberately outranks the app-controlled one; that
// matches the observed upstream contract and is flagged as a known weak
// point rather than corrected here.
func Resolve(p *model.Principal, override string) string {
	if override != "" {
		return strings.ToLower(override)
	}
	if p == nil {
		return RoleDefault
	}
	if p.UserMetadata.Role != "" {
		return strings.ToLower(p.UserMetadata.Role)
	}
	if p.AppMetadata.Role != "" {
		return strings.ToLower(p.AppMetadata.Role)
	}
	return RoleDefault
}

// IsAdmin is the only privileged comparison in the system: exact string
// equality, everything that is not "admin" counts as a regular user.
func IsAdmin(role string) bool {
	return role == RoleAdmin
}

// DashboardPath maps a resolved role to the dashboard it lands on.
// Organization roles need the org slug; owner and admin share the org-admin
// dashboard segment, member and user share the member one.
func DashboardPath(role, orgSlug string) string {
	if role == RoleAdmin && orgSlug == "" {
		return "/admin/dashboard"
	}
	if orgSlug == "" {
		return "/dashboard"
	}

	switch role {
	case "owner", "admin":
		return "/org/admin/" + orgSlug + "/dashboard"
	case "manager":
		return "/org/manager/" + orgSlug + "/dashboard"
	case "member", "user":
		return "/org/member/" + orgSlug + "/dashboard"
	case "recruiter":
		return "/org/recruiter/" + orgSlug + "/dashboard"
	default:
		slog.Warn("unknown role for dashboard mapping", "role", role, "org_slug", orgSlug)
		return "/org/" + orgSlug + "/dashboard"
	}
}
