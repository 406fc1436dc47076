package controllers

import (
	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/middleware"
	"github.com/ZuchiSpeed/jigitone/services/progress"

	"github.com/gofiber/fiber/v2"
)

// GetActiveLesson returns the caller's current lesson: the first unfinished
// one of the active course, with challenges, options and completion flags
func GetActiveLesson(c *fiber.Ctx) error {
	return respondWithLesson(c, 0)
}

// GetLessonByID returns one lesson by explicit id
func GetLessonByID(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(uint)
	return respondWithLesson(c, lessonID)
}

func respondWithLesson(c *fiber.Ctx, lessonID uint) error {
	userID := c.Locals("userId").(string)

	queries := progress.NewQueries(database.Database.Db, middleware.CacheFromCtx(c))

	lesson, err := queries.GetLesson(userID, lessonID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}
	if lesson == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched!", fiber.Map{
		"lesson": lesson,
	})
}
