package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jona.app/api-server/common"
	"jona.app/api-server/common/id"
	"jona.app/api-server/internal/model"
	"jona.app/api-server/internal/store"
)

type OrganizationService interface {
	Create(ctx context.Context, name string, slug *string, ownerUserID string) (*model.Organization, error)
}

type organizationService struct {
	tx TxRunner
}

func NewOrganizationService(tx TxRunner) OrganizationService {
	return &organizationService{
		tx: tx,
	}
}

// Create inserts the organization and its owner membership atomically and
// points the owner's profile at the new organization.
func (s *organizationService) Create(ctx context.Context, name string, slug *string, ownerUserID string) (*model.Organization, error) {
	var createdOrg *model.Organization

	err := s.tx.WithTx(ctx, func(stores store.Provider) error {
		orgStore := stores.Organizations()

		finalSlug, err := s.ensureOrgSlug(ctx, orgStore, name, slug)
		if err != nil {
			return err
		}

		org := &model.Organization{
			ID:          id.New(),
			OwnerUserID: ownerUserID,
			Name:        name,
			Slug:        finalSlug,
		}

		if err := orgStore.Create(ctx, org); err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}

		membership := &model.OrganizationMembership{
			ID:             id.New(),
			OrganizationID: org.ID,
			UserID:         ownerUserID,
			Role:           model.RoleOwner,
			InvitedBy:      ownerUserID,
			IsActive:       true,
		}
		if err := stores.Memberships().Create(ctx, membership); err != nil {
			return fmt.Errorf("creating owner membership: %w", err)
		}

		if err := stores.Users().SetCurrentOrganization(ctx, ownerUserID, org.ID); err != nil {
			// The profile row may not exist yet for a freshly signed-up
			// owner; the client fixes this on next profile sync.
			if !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("updating current organization: %w", err)
			}
			slog.WarnContext(ctx, "no profile row for new organization owner", "user_id", ownerUserID)
		}

		createdOrg = org
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "organization created",
		"org_id", createdOrg.ID,
		"slug", createdOrg.Slug,
		"owner_user_id", ownerUserID,
	)

	return createdOrg, nil
}

func (s *organizationService) ensureOrgSlug(ctx context.Context, orgStore store.OrganizationStore, name string, slug *string) (string, error) {
	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}

	base, err := common.Slugify(input, "org")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	// Fast path
	if _, err := orgStore.GetBySlug(ctx, base); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return base, nil
		}
		return "", fmt.Errorf("checking slug availability: %w", err)
	}

	// Add numeric suffix until available
	for i := 1; i <= 20; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		_, err := orgStore.GetBySlug(ctx, candidate)
		if errors.Is(err, store.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
	}

	return "", fmt.Errorf("unable to find available slug for %q", base)
}
