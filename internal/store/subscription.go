package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"jona.app/api-server/internal/model"
)

type subscriptionStore struct {
	db dbtx
}

const subscriptionColumns = `id, user_id, plan_name, status, price_paid, canceled_at, created_at`

func (s *subscriptionStore) GetByID(ctx context.Context, id int64) (*model.UserSubscription, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+subscriptionColumns+`
		FROM user_subscriptions
		WHERE id = $1
	`, id)
	return scanSubscription(row)
}

func (s *subscriptionStore) List(ctx context.Context, limit, offset int) ([]model.UserSubscription, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+subscriptionColumns+`
		FROM user_subscriptions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.UserSubscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func (s *subscriptionStore) Cancel(ctx context.Context, id int64, at time.Time) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE user_subscriptions
		SET status = 'canceled', canceled_at = $2
		WHERE id = $1 AND status != 'canceled'
	`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *subscriptionStore) Totals(ctx context.Context) (SubscriptionTotals, error) {
	var totals SubscriptionTotals
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(price_paid), 0),
		       COALESCE(SUM(price_paid) FILTER (WHERE status = 'active'), 0),
		       COUNT(1) FILTER (WHERE status = 'active'),
		       COUNT(1)
		FROM user_subscriptions
	`).Scan(&totals.TotalRevenue, &totals.MonthlyRecurring, &totals.ActiveCount, &totals.TotalCount)
	return totals, err
}

func scanSubscription(row pgx.Row) (*model.UserSubscription, error) {
	var sub model.UserSubscription
	var status string
	err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.PlanName,
		&status,
		&sub.PricePaid,
		&sub.CanceledAt,
		&sub.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	sub.Status = model.SubscriptionStatus(status)
	return &sub, nil
}
