package models

import (
	"time"

	"gorm.io/gorm"
)

// UserSubscription stores the Stripe subscription that grants unlimited
// hearts. Rows are written by the payment webhook only; "active" is derived
// from the period end, never stored.
type UserSubscription struct {
	gorm.Model
	UserID                 string    `json:"user_id" gorm:"uniqueIndex;not null"`
	CustomerEmail          string    `json:"customer_email"`
	StripeCustomerID       string    `json:"stripe_customer_id" gorm:"index;not null"`
	StripeSubscriptionID   string    `json:"stripe_subscription_id" gorm:"index;not null"`
	StripePriceID          string    `json:"stripe_price_id"`
	StripeCurrentPeriodEnd time.Time `json:"stripe_current_period_end"`
	ReminderSent           bool      `json:"reminder_sent" gorm:"default:false"` // expiry reminder email already sent for this period
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

// IsActive reports whether the subscription currently grants benefits.
// A full day of grace is allowed past the recorded period end so renewals
// that land late do not interrupt service.
func (us *UserSubscription) IsActive(now time.Time) bool {
	if us == nil {
		return false
	}
	return us.StripeCurrentPeriodEnd.Add(24 * time.Hour).After(now)
}
