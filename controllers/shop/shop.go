package controllers

import (
	"errors"

	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/middleware"
	"github.com/ZuchiSpeed/jigitone/models"
	"github.com/ZuchiSpeed/jigitone/services/progress"

	"github.com/gofiber/fiber/v2"
)

// GetShopItems returns the caller's balance alongside what the shop offers:
// the heart refill and the unlimited-hearts subscription.
func GetShopItems(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	queries := progress.NewQueries(database.Database.Db, middleware.CacheFromCtx(c))

	userProgress, err := queries.GetUserProgress(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	if userProgress == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User progress not found!", nil)
	}

	subscription, err := queries.GetUserSubscription(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Shop fetched!", fiber.Map{
		"hearts":           userProgress.Hearts,
		"points":           userProgress.Points,
		"refill_cost":      models.HeartsRefillCost,
		"has_subscription": subscription != nil && subscription.Active,
	})
}

// RefillHearts trades points for full hearts
func RefillHearts(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	service := progress.NewService(database.Database.Db, middleware.CacheFromCtx(c))

	result, err := service.RefillHearts(userID)
	if err != nil {
		if errors.Is(err, progress.ErrProgressNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User progress not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to refill hearts!", nil)
	}

	if result.Denied() {
		message := "Hearts are already full!"
		if result.Denial == progress.DenialPoints {
			message = "Not enough points!"
		}
		return middleware.JsonResponse(c, fiber.StatusOK, false, message, fiber.Map{
			"error": result.Denial,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Hearts refilled!", fiber.Map{
		"hearts": models.MaxHearts,
	})
}
