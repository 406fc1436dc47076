package billing

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/models"
	"github.com/ZuchiSpeed/jigitone/payments"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeProvider records the sessions it was asked for and serves a canned
// subscription object.
type fakeProvider struct {
	subscription *payments.Subscription

	checkoutCalls []string
	portalCalls   []string
}

func (f *fakeProvider) CreateCheckoutSession(userID, email string) (string, error) {
	f.checkoutCalls = append(f.checkoutCalls, userID)
	return "https://checkout.example.com/cs_1", nil
}

func (f *fakeProvider) CreateBillingPortalSession(customerID string) (string, error) {
	f.portalCalls = append(f.portalCalls, customerID)
	return "https://portal.example.com/ps_1", nil
}

func (f *fakeProvider) RetrieveSubscription(subscriptionID string) (*payments.Subscription, error) {
	return f.subscription, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func fakeSubscription(periodEnd time.Time) *payments.Subscription {
	raw := fmt.Sprintf(
		`{"id":"sub_1","customer":"cus_1","current_period_end":%d,"items":{"data":[{"price":{"id":"price_1"}}]}}`,
		periodEnd.Unix(),
	)

	var subscription payments.Subscription
	if err := json.Unmarshal([]byte(raw), &subscription); err != nil {
		panic(err)
	}
	return &subscription
}

func checkoutEvent(t *testing.T, userID string) *payments.Event {
	t.Helper()

	session := map[string]interface{}{
		"id":           "cs_1",
		"customer":     "cus_1",
		"subscription": "sub_1",
		"metadata":     map[string]string{"userId": userID},
		"customer_details": map[string]string{
			"email": "ada@example.com",
		},
	}
	raw, err := json.Marshal(session)
	require.NoError(t, err)

	event := &payments.Event{ID: "evt_1", Type: payments.EventCheckoutCompleted}
	event.Data.Object = raw
	return event
}

func invoiceEvent(t *testing.T) *payments.Event {
	t.Helper()

	raw, err := json.Marshal(map[string]string{"subscription": "sub_1"})
	require.NoError(t, err)

	event := &payments.Event{ID: "evt_2", Type: payments.EventInvoicePaid}
	event.Data.Object = raw
	return event
}

func TestCheckoutCompletedCreatesSubscription(t *testing.T) {
	db := newTestDB(t)
	periodEnd := time.Now().Add(30 * 24 * time.Hour).Truncate(time.Second)
	provider := &fakeProvider{subscription: fakeSubscription(periodEnd)}
	service := NewService(db, provider)

	require.NoError(t, service.ProcessEvent(checkoutEvent(t, "user-1")))

	var record models.UserSubscription
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&record).Error)
	require.Equal(t, "cus_1", record.StripeCustomerID)
	require.Equal(t, "sub_1", record.StripeSubscriptionID)
	require.Equal(t, "price_1", record.StripePriceID)
	require.Equal(t, "ada@example.com", record.CustomerEmail)
	require.WithinDuration(t, periodEnd, record.StripeCurrentPeriodEnd, time.Second)
	require.False(t, record.ReminderSent)
}

func TestCheckoutCompletedUpsertsReturningSubscriber(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{subscription: fakeSubscription(time.Now().Add(30 * 24 * time.Hour))}
	service := NewService(db, provider)

	stale := models.UserSubscription{
		UserID:                 "user-1",
		StripeCustomerID:       "cus_old",
		StripeSubscriptionID:   "sub_old",
		StripePriceID:          "price_old",
		StripeCurrentPeriodEnd: time.Now().Add(-60 * 24 * time.Hour),
		ReminderSent:           true,
	}
	require.NoError(t, db.Create(&stale).Error)

	require.NoError(t, service.ProcessEvent(checkoutEvent(t, "user-1")))

	var count int64
	require.NoError(t, db.Model(&models.UserSubscription{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	var record models.UserSubscription
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&record).Error)
	require.Equal(t, "sub_1", record.StripeSubscriptionID)
	require.False(t, record.ReminderSent)
}

func TestCheckoutCompletedWithoutUserMetadata(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{subscription: fakeSubscription(time.Now())}
	service := NewService(db, provider)

	err := service.ProcessEvent(checkoutEvent(t, ""))
	require.ErrorIs(t, err, ErrMissingUserMetadata)

	var count int64
	require.NoError(t, db.Model(&models.UserSubscription{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestInvoicePaidRefreshesBillingPeriod(t *testing.T) {
	db := newTestDB(t)
	renewedEnd := time.Now().Add(60 * 24 * time.Hour).Truncate(time.Second)
	provider := &fakeProvider{subscription: fakeSubscription(renewedEnd)}
	service := NewService(db, provider)

	existing := models.UserSubscription{
		UserID:                 "user-1",
		StripeCustomerID:       "cus_1",
		StripeSubscriptionID:   "sub_1",
		StripePriceID:          "price_1",
		StripeCurrentPeriodEnd: time.Now().Add(24 * time.Hour),
		ReminderSent:           true,
	}
	require.NoError(t, db.Create(&existing).Error)

	require.NoError(t, service.ProcessEvent(invoiceEvent(t)))

	var record models.UserSubscription
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&record).Error)
	require.WithinDuration(t, renewedEnd, record.StripeCurrentPeriodEnd, time.Second)
	require.False(t, record.ReminderSent)
}

func TestInvoicePaidForUnknownSubscription(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{subscription: fakeSubscription(time.Now())}
	service := NewService(db, provider)

	// Not an error: the delivery is acknowledged and logged
	require.NoError(t, service.ProcessEvent(invoiceEvent(t)))

	var count int64
	require.NoError(t, db.Model(&models.UserSubscription{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUnhandledEventIsIgnored(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db, &fakeProvider{})

	event := &payments.Event{ID: "evt_3", Type: "customer.created"}
	require.NoError(t, service.ProcessEvent(event))
}

func TestCreatePaymentURLNewCustomer(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{}
	service := NewService(db, provider)

	url, err := service.CreatePaymentURL("user-1", "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "https://checkout.example.com/cs_1", url)
	require.Equal(t, []string{"user-1"}, provider.checkoutCalls)
	require.Empty(t, provider.portalCalls)
}

func TestCreatePaymentURLExistingCustomer(t *testing.T) {
	db := newTestDB(t)
	provider := &fakeProvider{}
	service := NewService(db, provider)

	existing := models.UserSubscription{
		UserID:                 "user-1",
		StripeCustomerID:       "cus_1",
		StripeSubscriptionID:   "sub_1",
		StripeCurrentPeriodEnd: time.Now(),
	}
	require.NoError(t, db.Create(&existing).Error)

	url, err := service.CreatePaymentURL("user-1", "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "https://portal.example.com/ps_1", url)
	require.Equal(t, []string{"cus_1"}, provider.portalCalls)
	require.Empty(t, provider.checkoutCalls)
}
