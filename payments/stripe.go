package payments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ZuchiSpeed/jigitone/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const stripeBaseURL = "https://api.stripe.com/v1"

// Provider is the outbound payment-provider surface the rest of the app
// depends on. Tests substitute a fake.
type Provider interface {
	CreateCheckoutSession(userID, email string) (string, error)
	CreateBillingPortalSession(customerID string) (string, error)
	RetrieveSubscription(subscriptionID string) (*Subscription, error)
}

// Subscription is the slice of Stripe's subscription object we consume.
type Subscription struct {
	ID               string `json:"id"`
	Customer         string `json:"customer"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
	Items            struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

// PriceID returns the price of the subscription's single line item.
func (s *Subscription) PriceID() string {
	if len(s.Items.Data) == 0 {
		return ""
	}
	return s.Items.Data[0].Price.ID
}

// PeriodEnd returns the end of the current billing period.
func (s *Subscription) PeriodEnd() time.Time {
	return time.Unix(s.CurrentPeriodEnd, 0)
}

// Client talks to the Stripe REST API.
type Client struct {
	http *resty.Client
}

// NewClient builds a Stripe client from the application configuration.
func NewClient() *Client {
	httpClient := resty.New().
		SetBaseURL(stripeBaseURL).
		SetTimeout(15 * time.Second).
		SetAuthToken(config.AppConfig.StripeApiKey).
		SetHeader("Content-Type", "application/x-www-form-urlencoded")

	return &Client{http: httpClient}
}

type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession opens a checkout for the fixed monthly premium plan
// and returns the redirect URL. The user id travels in the session metadata
// so the webhook can attach the subscription to the right account.
func (c *Client) CreateCheckoutSession(userID, email string) (string, error) {
	returnURL := config.AppConfig.AppURL + "/shop"

	form := map[string]string{
		"mode":                                          "subscription",
		"payment_method_types[0]":                       "card",
		"customer_email":                                email,
		"line_items[0][quantity]":                       "1",
		"line_items[0][price_data][currency]":           config.AppConfig.StripeCurrency,
		"line_items[0][price_data][unit_amount]":        strconv.Itoa(config.AppConfig.StripePriceAmount),
		"line_items[0][price_data][recurring][interval]": "month",
		"line_items[0][price_data][product_data][name]": "Jigitone Premium",
		"line_items[0][price_data][product_data][description]": "Unlimited Hearts",
		"metadata[userId]": userID,
		"success_url":      returnURL,
		"cancel_url":       returnURL,
	}

	var session sessionResponse
	var apiErr stripeError
	resp, err := c.http.R().
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetFormData(form).
		SetResult(&session).
		SetError(&apiErr).
		Post("/checkout/sessions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("stripe checkout session: %s", apiErr.Error.Message)
	}

	return session.URL, nil
}

// CreateBillingPortalSession returns a billing-portal URL for an existing
// customer to manage or cancel the subscription.
func (c *Client) CreateBillingPortalSession(customerID string) (string, error) {
	form := map[string]string{
		"customer":   customerID,
		"return_url": config.AppConfig.AppURL + "/shop",
	}

	var session sessionResponse
	var apiErr stripeError
	resp, err := c.http.R().
		SetFormData(form).
		SetResult(&session).
		SetError(&apiErr).
		Post("/billing_portal/sessions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("stripe billing portal session: %s", apiErr.Error.Message)
	}

	return session.URL, nil
}

// RetrieveSubscription fetches the full subscription object referenced by a
// webhook event.
func (c *Client) RetrieveSubscription(subscriptionID string) (*Subscription, error) {
	var subscription Subscription
	var apiErr stripeError
	resp, err := c.http.R().
		SetResult(&subscription).
		SetError(&apiErr).
		Get("/subscriptions/" + subscriptionID)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stripe subscription %s: %s", subscriptionID, apiErr.Error.Message)
	}

	return &subscription, nil
}
