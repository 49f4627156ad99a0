package model

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionTrialing SubscriptionStatus = "trialing"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionCanceled, SubscriptionPastDue, SubscriptionTrialing:
		return true
	}
	return false
}

// UserSubscription mirrors what the payment processor reports; the processor
// itself is consumed as an opaque upstream service.
type UserSubscription struct {
	CreatedAt  time.Time          `json:"created_at"`
	CanceledAt *time.Time         `json:"canceled_at,omitempty"`
	UserID     string             `json:"user_id"`
	PlanName   string             `json:"plan_name"`
	Status     SubscriptionStatus `json:"status"`
	ID         int64              `json:"id,string"`
	PricePaid  int64              `json:"price_paid"` // cents
}
