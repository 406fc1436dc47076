package controllers

import (
	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/middleware"
	"github.com/ZuchiSpeed/jigitone/services/progress"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns everything the learn page composes: the caller's
// progress row, the units of the active course with per-lesson completion,
// the first unfinished lesson and the active lesson percentage.
func GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	queries := progress.NewQueries(database.Database.Db, middleware.CacheFromCtx(c))

	userProgress, err := queries.GetUserProgress(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	if userProgress == nil || userProgress.ActiveCourseID == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active course. Pick a course first!", nil)
	}

	units, err := queries.GetUnitsWithProgress(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch units!", nil)
	}

	courseProgress, err := queries.GetCourseProgress(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course progress!", nil)
	}

	percentage, err := queries.GetLessonPercentage(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson percentage!", nil)
	}

	subscription, err := queries.GetUserSubscription(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched!", fiber.Map{
		"user_progress":     userProgress,
		"units":             units,
		"course_progress":   courseProgress,
		"lesson_percentage": percentage,
		"has_subscription":  subscription != nil && subscription.Active,
	})
}

// GetUserProgress returns just the caller's progress row with its course
func GetUserProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	queries := progress.NewQueries(database.Database.Db, middleware.CacheFromCtx(c))

	userProgress, err := queries.GetUserProgress(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	if userProgress == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User progress not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched!", fiber.Map{
		"user_progress": userProgress,
	})
}

// GetCourseProgress returns the first unfinished lesson of the active course
func GetCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	queries := progress.NewQueries(database.Database.Db, middleware.CacheFromCtx(c))

	courseProgress, err := queries.GetCourseProgress(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course progress fetched!", fiber.Map{
		"course_progress": courseProgress,
	})
}

// GetLessonPercentage returns the completion percentage of the active lesson
func GetLessonPercentage(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	queries := progress.NewQueries(database.Database.Db, middleware.CacheFromCtx(c))

	percentage, err := queries.GetLessonPercentage(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson percentage!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson percentage fetched!", fiber.Map{
		"percentage": percentage,
	})
}
