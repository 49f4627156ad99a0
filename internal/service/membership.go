package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"jona.app/api-server/common/id"
	"jona.app/api-server/internal/model"
	"jona.app/api-server/internal/store"
)

var (
	ErrInvalidInvitation    = errors.New("invalid invitation")
	ErrInvitationExpired    = errors.New("invitation has expired")
	ErrAlreadyAccepted      = errors.New("invitation already accepted")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNotMember            = errors.New("not a member of this organization")
	ErrRetriesExhausted     = errors.New("transaction failed after 3 attempts")
)

// pgDeadlockCode is Postgres error class 40P01 (deadlock_detected), the only
// store error worth retrying.
const pgDeadlockCode = "40P01"

const acceptAttempts = 3

const invitationTTL = 7 * 24 * time.Hour

type InvitationMailer interface {
	SendInvitation(ctx context.Context, email, token, orgName string) error
}

type InviteParams struct {
	OrganizationID   int64
	OrganizationName string
	Email            string
	Role             model.MemberRole
	InvitedBy        string
}

type VerifyResult struct {
	Organization *model.Organization
	Membership   *model.OrganizationMembership
}

type MembershipService interface {
	Invite(ctx context.Context, params InviteParams) (*model.OrganizationInvitation, string, error)
	Accept(ctx context.Context, token, userID string) (*model.Organization, error)
	Verify(ctx context.Context, slug, userID string) (*VerifyResult, error)
}

type membershipService struct {
	stores     store.Provider
	mailer     InvitationMailer
	appBaseURL string
}

func NewMembershipService(stores store.Provider, mailer InvitationMailer, appBaseURL string) MembershipService {
	return &membershipService{
		stores:     stores,
		mailer:     mailer,
		appBaseURL: appBaseURL,
	}
}

func (s *membershipService) Invite(ctx context.Context, params InviteParams) (*model.OrganizationInvitation, string, error) {
	role := params.Role
	if role == "" {
		role = model.RoleMember
	}
	if !role.Valid() {
		return nil, "", fmt.Errorf("invalid role %q", role)
	}

	invitation := &model.OrganizationInvitation{
		ID:               id.New(),
		OrganizationID:   params.OrganizationID,
		OrganizationName: params.OrganizationName,
		Email:            params.Email,
		Role:             role,
		InvitedBy:        params.InvitedBy,
		Token:            uuid.NewString(),
		ExpiresAt:        time.Now().Add(invitationTTL),
	}

	if err := s.stores.Invitations().Create(ctx, invitation); err != nil {
		return nil, "", fmt.Errorf("creating invitation: %w", err)
	}

	if err := s.mailer.SendInvitation(ctx, invitation.Email, invitation.Token, invitation.OrganizationName); err != nil {
		// Invitation row already exists; the link in the response still
		// works, so a mail failure is not fatal.
		slog.ErrorContext(ctx, "failed to send invitation email",
			"error", err,
			"invitation_id", invitation.ID,
		)
	}

	link := fmt.Sprintf("%s/org/join?token=%s", s.appBaseURL, invitation.Token)
	return invitation, link, nil
}

func (s *membershipService) Accept(ctx context.Context, token, userID string) (*model.Organization, error) {
	invitation, err := s.stores.Invitations().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidInvitation
		}
		return nil, fmt.Errorf("looking up invitation: %w", err)
	}

	if time.Now().After(invitation.ExpiresAt) {
		return nil, ErrInvitationExpired
	}
	if invitation.AcceptedAt != nil {
		return nil, ErrAlreadyAccepted
	}

	if err := s.acceptWithRetry(ctx, token, userID); err != nil {
		return nil, err
	}

	org, err := s.stores.Organizations().GetByID(ctx, invitation.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("loading joined organization: %w", err)
	}

	slog.InfoContext(ctx, "invitation accepted",
		"org_id", org.ID,
		"user_id", userID,
		"invitation_id", invitation.ID,
	)

	return org, nil
}

// acceptWithRetry retries the store-side accept procedure only on deadlock,
// up to 3 attempts. Any other error aborts immediately.
func (s *membershipService) acceptWithRetry(ctx context.Context, token, userID string) error {
	for attempt := 0; attempt < acceptAttempts; attempt++ {
		err := s.stores.Memberships().AcceptInvitation(ctx, token, userID)
		if err == nil {
			return nil
		}
		if !isDeadlock(err) {
			return fmt.Errorf("accepting invitation: %w", err)
		}
		slog.WarnContext(ctx, "deadlock detected, retrying", "attempt", attempt+1)
	}
	return ErrRetriesExhausted
}

func isDeadlock(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgDeadlockCode
}

func (s *membershipService) Verify(ctx context.Context, slug, userID string) (*VerifyResult, error) {
	org, err := s.stores.Organizations().GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("looking up organization: %w", err)
	}

	membership, err := s.stores.Memberships().GetActive(ctx, org.ID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotMember
		}
		return nil, fmt.Errorf("checking membership: %w", err)
	}

	return &VerifyResult{Organization: org, Membership: membership}, nil
}
