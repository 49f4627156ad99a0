package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"jona.app/api-server/internal/identity"
	"jona.app/api-server/internal/model"
	"jona.app/api-server/internal/store"
)

type OrgStats struct {
	Subscription     *model.OrganizationSubscription `json:"subscription"`
	Usage            []model.OrganizationUsage       `json:"usage"`
	MemberCount      int                             `json:"member_count"`
	ActiveJobs       int                             `json:"active_jobs"`
	ApplicationsSent int                             `json:"applications_sent"`
}

type AdminStats struct {
	TotalJobs               int   `json:"totalJobs"`
	AppliedJobs             int   `json:"appliedJobs"`
	SavedJobs               int   `json:"savedJobs"`
	PendingJobs             int   `json:"pendingJobs"`
	InterviewJobs           int   `json:"interviewJobs"`
	OfferJobs               int   `json:"offerJobs"`
	RejectedJobs            int   `json:"rejectedJobs"`
	MatchScore              int   `json:"matchScore"`
	TotalUsers              int   `json:"totalUsers"`
	TotalResumes            int   `json:"totalResumes"`
	TotalApplications       int   `json:"totalApplications"`
	ActiveSubscriptions     int   `json:"activeSubscriptions"`
	TotalRevenue            int64 `json:"totalRevenue"`
	MonthlyRecurringRevenue int64 `json:"monthlyRecurringRevenue"`
}

type StatsService interface {
	OrgStats(ctx context.Context, orgID int64) (*OrgStats, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
}

type statsService struct {
	stores   store.Provider
	provider identity.Provider
}

func NewStatsService(stores store.Provider, provider identity.Provider) StatsService {
	return &statsService{
		stores:   stores,
		provider: provider,
	}
}

// OrgStats fetches the three counters concurrently; they are independent
// reads with no ordering dependency.
func (s *statsService) OrgStats(ctx context.Context, orgID int64) (*OrgStats, error) {
	stats := &OrgStats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.stores.Memberships().CountActiveByOrganization(gctx, orgID)
		if err != nil {
			return fmt.Errorf("counting members: %w", err)
		}
		stats.MemberCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.stores.Jobs().CountActiveByOrganization(gctx, orgID)
		if err != nil {
			return fmt.Errorf("counting active jobs: %w", err)
		}
		stats.ActiveJobs = count
		return nil
	})
	g.Go(func() error {
		count, err := s.stores.Jobs().CountApplicationsByOrganization(gctx, orgID)
		if err != nil {
			return fmt.Errorf("counting applications: %w", err)
		}
		stats.ApplicationsSent = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	usage, err := s.stores.Organizations().ListUsage(ctx, orgID, 12)
	if err != nil {
		return nil, fmt.Errorf("listing usage: %w", err)
	}
	stats.Usage = usage

	subscription, err := s.stores.Organizations().GetSubscription(ctx, orgID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("loading subscription: %w", err)
	}
	stats.Subscription = subscription

	return stats, nil
}

func (s *statsService) AdminStats(ctx context.Context) (*AdminStats, error) {
	var (
		jobCounts    store.JobCounts
		userCount    int
		resumeCount  int
		applications int
		matchScore   int
		subTotals    store.SubscriptionTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := s.stores.Jobs().Counts(gctx)
		if err != nil {
			return fmt.Errorf("counting jobs: %w", err)
		}
		jobCounts = counts
		return nil
	})
	g.Go(func() error {
		count, err := s.countAuthUsers(gctx)
		if err != nil {
			return err
		}
		userCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.stores.Resumes().Count(gctx)
		if err != nil {
			return fmt.Errorf("counting resumes: %w", err)
		}
		resumeCount = count
		return nil
	})
	g.Go(func() error {
		count, err := s.stores.Jobs().CountApplications(gctx)
		if err != nil {
			return fmt.Errorf("counting applications: %w", err)
		}
		applications = count
		return nil
	})
	g.Go(func() error {
		avg, err := s.stores.Resumes().AverageMatchScore(gctx)
		if err != nil {
			return fmt.Errorf("averaging match scores: %w", err)
		}
		matchScore = avg
		return nil
	})
	g.Go(func() error {
		totals, err := s.stores.Subscriptions().Totals(gctx)
		if err != nil {
			return fmt.Errorf("totaling subscriptions: %w", err)
		}
		subTotals = totals
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &AdminStats{
		TotalJobs:               jobCounts.Total,
		AppliedJobs:             jobCounts.Applied,
		SavedJobs:               jobCounts.Saved,
		PendingJobs:             jobCounts.Pending,
		InterviewJobs:           jobCounts.Interview,
		OfferJobs:               jobCounts.Offer,
		RejectedJobs:            jobCounts.Rejected,
		MatchScore:              matchScore,
		TotalUsers:              userCount,
		TotalResumes:            resumeCount,
		TotalApplications:       applications,
		ActiveSubscriptions:     subTotals.ActiveCount,
		TotalRevenue:            subTotals.TotalRevenue,
		MonthlyRecurringRevenue: subTotals.MonthlyRecurring,
	}, nil
}

// countAuthUsers prefers the provider's authoritative registry and falls
// back to the mirrored profile table when the provider is unreachable.
func (s *statsService) countAuthUsers(ctx context.Context) (int, error) {
	principals, err := s.provider.AdminListUsers(ctx)
	if err == nil {
		return len(principals), nil
	}
	slog.WarnContext(ctx, "falling back to profile count for user stats", "error", err)

	count, err := s.stores.Users().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}
