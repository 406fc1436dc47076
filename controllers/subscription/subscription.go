package controllers

import (
	"errors"
	"log"

	"github.com/ZuchiSpeed/jigitone/config"
	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/middleware"
	"github.com/ZuchiSpeed/jigitone/payments"
	"github.com/ZuchiSpeed/jigitone/services/billing"
	"github.com/ZuchiSpeed/jigitone/services/progress"

	"github.com/gofiber/fiber/v2"
)

// GetSubscription returns the caller's subscription and derived active flag
func GetSubscription(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	queries := progress.NewQueries(database.Database.Db, middleware.CacheFromCtx(c))

	subscription, err := queries.GetUserSubscription(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription fetched!", fiber.Map{
		"subscription": subscription,
		"active":       subscription != nil && subscription.Active,
	})
}

// CreatePaymentURL returns a redirect URL to either the provider's billing
// portal (existing customers) or a new checkout session
func CreatePaymentURL(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	email, _ := c.Locals("userEmail").(string)

	service := billing.NewService(database.Database.Db, payments.NewClient())

	url, err := service.CreatePaymentURL(userID, email)
	if err != nil {
		log.Printf("[BILLING] Failed to create payment session for %s: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment session created!", fiber.Map{
		"url": url,
	})
}

// HandleStripeWebhook receives signed payment-provider events. The signature
// is verified before the payload is parsed; unverified deliveries are
// rejected unprocessed.
func HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	event, err := payments.ConstructEvent(payload, signature, config.AppConfig.StripeWebhookSecret)
	if err != nil {
		log.Printf("[WEBHOOK] Rejected delivery: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook signature!", nil)
	}

	service := billing.NewService(database.Database.Db, payments.NewClient())

	if err := service.ProcessEvent(event); err != nil {
		if errors.Is(err, billing.ErrMissingUserMetadata) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No user ID in metadata!", nil)
		}
		log.Printf("[WEBHOOK] Failed to process %s event %s: %v", event.Type, event.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process event!", nil)
	}

	return c.SendStatus(fiber.StatusOK)
}
