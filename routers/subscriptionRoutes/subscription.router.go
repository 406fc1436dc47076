package subscriptionRoutes

import (
	controllers "github.com/ZuchiSpeed/jigitone/controllers/subscription"
	"github.com/ZuchiSpeed/jigitone/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupSubscriptionRoutes sets up subscription and payment-provider routes.
// The webhook endpoint carries no JWT; it authenticates by payload signature.
func SetupSubscriptionRoutes(app *fiber.App) {
	subscriptionGroup := app.Group("/subscription")

	subscriptionGroup.Get("/", middleware.JWTMiddleware, controllers.GetSubscription)
	subscriptionGroup.Post("/url", middleware.JWTMiddleware, controllers.CreatePaymentURL)

	app.Post("/webhooks/stripe", controllers.HandleStripeWebhook)
}
