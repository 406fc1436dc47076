package controllers

import (
	"errors"

	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/middleware"
	"github.com/ZuchiSpeed/jigitone/services/progress"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists every course for the course picker
func GetAllCourses(c *fiber.Ctx) error {
	queries := progress.NewQueries(database.Database.Db, middleware.CacheFromCtx(c))

	courses, err := queries.GetCourses()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched!", fiber.Map{
		"courses": courses,
	})
}

// GetCourseDetails returns a single course
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	queries := progress.NewQueries(database.Database.Db, middleware.CacheFromCtx(c))

	course, err := queries.GetCourseByID(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	if course == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched!", fiber.Map{
		"course": course,
	})
}

// SelectCourse makes a course the caller's active course, creating the
// progress row on first selection
func SelectCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	courseID := c.Locals("courseID").(uint)

	userName, _ := c.Locals("userName").(string)
	userImage, _ := c.Locals("userImageUrl").(string)

	service := progress.NewService(database.Database.Db, middleware.CacheFromCtx(c))

	if err := service.SelectCourse(userID, courseID, userName, userImage); err != nil {
		if errors.Is(err, progress.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to select course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course selected!", fiber.Map{
		"active_course_id": courseID,
	})
}
