package challengeValidator

import (
	"strconv"
	"strings"

	"github.com/ZuchiSpeed/jigitone/middleware"

	"github.com/gofiber/fiber/v2"
)

// ChallengeID validates the :id path parameter on challenge routes
func ChallengeID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		challengeIDStr := strings.TrimSpace(c.Params("id"))
		if challengeIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Challenge ID is required!", nil)
		}

		challengeID, err := strconv.Atoi(challengeIDStr)
		if err != nil || challengeID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Challenge ID!", nil)
		}

		c.Locals("challengeID", uint(challengeID))
		return c.Next()
	}
}

// LessonID validates the :id path parameter on lesson routes
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonIDStr := strings.TrimSpace(c.Params("id"))
		if lessonIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson ID is required!", nil)
		}

		lessonID, err := strconv.Atoi(lessonIDStr)
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		c.Locals("lessonID", uint(lessonID))
		return c.Next()
	}
}
