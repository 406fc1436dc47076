package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ZuchiSpeed/jigitone/models"
	"github.com/ZuchiSpeed/jigitone/payments"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrMissingUserMetadata is returned when a checkout event arrives without
// the user id the session was created with.
var ErrMissingUserMetadata = errors.New("no user id in session metadata")

// Service bridges UserSubscription rows to the payment provider's sessions
// and event stream. It owns every write to that table.
type Service struct {
	db       *gorm.DB
	provider payments.Provider
}

// NewService builds the gateway over a store handle and a provider client.
func NewService(db *gorm.DB, provider payments.Provider) *Service {
	return &Service{db: db, provider: provider}
}

// CreatePaymentURL returns a redirect URL: the billing portal for existing
// customers, a fresh checkout session otherwise.
func (s *Service) CreatePaymentURL(userID, email string) (string, error) {
	var subscription models.UserSubscription
	err := s.db.Where("user_id = ?", userID).First(&subscription).Error
	if err == nil && subscription.StripeCustomerID != "" {
		return s.provider.CreateBillingPortalSession(subscription.StripeCustomerID)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	return s.provider.CreateCheckoutSession(userID, email)
}

// ProcessEvent applies one verified webhook event. Checkout completion
// creates the subscription row, a successful renewal payment refreshes the
// billing period, and every other event type is acknowledged untouched.
func (s *Service) ProcessEvent(event *payments.Event) error {
	switch event.Type {
	case payments.EventCheckoutCompleted:
		return s.handleCheckoutCompleted(event)
	case payments.EventInvoicePaid:
		return s.handleInvoicePaid(event)
	default:
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(event *payments.Event) error {
	var session payments.CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return fmt.Errorf("decoding checkout session: %w", err)
	}

	if session.Metadata.UserID == "" {
		return ErrMissingUserMetadata
	}

	subscription, err := s.provider.RetrieveSubscription(session.Subscription)
	if err != nil {
		return err
	}

	record := models.UserSubscription{
		UserID:                 session.Metadata.UserID,
		CustomerEmail:          session.CustomerDetails.Email,
		StripeCustomerID:       subscription.Customer,
		StripeSubscriptionID:   subscription.ID,
		StripePriceID:          subscription.PriceID(),
		StripeCurrentPeriodEnd: subscription.PeriodEnd(),
	}

	// A returning subscriber keeps a single row per the (user_id) key.
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"customer_email": record.CustomerEmail,
			"stripe_customer_id": record.StripeCustomerID,
			"stripe_subscription_id": record.StripeSubscriptionID,
			"stripe_price_id": record.StripePriceID,
			"stripe_current_period_end": record.StripeCurrentPeriodEnd,
			"reminder_sent": false,
		}),
	}).Create(&record).Error
}

func (s *Service) handleInvoicePaid(event *payments.Event) error {
	var session payments.CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return fmt.Errorf("decoding invoice payload: %w", err)
	}

	subscription, err := s.provider.RetrieveSubscription(session.Subscription)
	if err != nil {
		return err
	}

	result := s.db.Model(&models.UserSubscription{}).
		Where("stripe_subscription_id = ?", subscription.ID).
		Updates(map[string]interface{}{
			"stripe_price_id": subscription.PriceID(),
			"stripe_current_period_end": subscription.PeriodEnd(),
			"reminder_sent": false,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		log.Printf("[BILLING] Renewal for unknown subscription %s ignored", subscription.ID)
	}
	return nil
}
