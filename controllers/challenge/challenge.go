package controllers

import (
	"errors"

	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/middleware"
	"github.com/ZuchiSpeed/jigitone/services/progress"

	"github.com/gofiber/fiber/v2"
)

// SubmitCorrectAnswer records a correct answer for a challenge. Denials
// (out of hearts) come back with status=false and an error code the client
// branches on; they are not HTTP failures.
func SubmitCorrectAnswer(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	challengeID := c.Locals("challengeID").(uint)

	service := progress.NewService(database.Database.Db, middleware.CacheFromCtx(c))

	result, err := service.RecordCorrectAnswer(userID, challengeID)
	if err != nil {
		return hardFailureResponse(c, err)
	}

	if result.Denied() {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Out of hearts!", fiber.Map{
			"error": result.Denial,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer recorded!", result)
}

// SubmitWrongAnswer records an incorrect answer. Practice retries are free;
// everyone else loses a heart, floored at zero.
func SubmitWrongAnswer(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	challengeID := c.Locals("challengeID").(uint)

	service := progress.NewService(database.Database.Db, middleware.CacheFromCtx(c))

	result, err := service.RecordIncorrectAnswer(userID, challengeID)
	if err != nil {
		return hardFailureResponse(c, err)
	}

	if result.Denied() {
		message := "Out of hearts!"
		if result.Denial == progress.DenialPractice {
			message = "Practice attempts don't cost hearts!"
		}
		return middleware.JsonResponse(c, fiber.StatusOK, false, message, fiber.Map{
			"error": result.Denial,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer recorded!", result)
}

func hardFailureResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, progress.ErrProgressNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User progress not found!", nil)
	case errors.Is(err, progress.ErrChallengeNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Challenge not found!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}
