package controllers

import (
	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/middleware"
	"github.com/ZuchiSpeed/jigitone/models"
	adminValidator "github.com/ZuchiSpeed/jigitone/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// Content authoring endpoints. These are the out-of-band write path for the
// course → unit → lesson → challenge → option hierarchy; end-user flows never
// touch these tables. Deletes are hard deletes so the FK cascade clears the
// whole subtree.

// CreateCourse creates a new course
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*adminValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:    reqData.Title,
		ImageSrc: reqData.ImageSrc,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created!", course)
}

// UpdateCourse updates an existing course
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("entityID").(uint)

	reqData, ok := c.Locals("validatedCourse").(*adminValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := database.Database.Db.Model(&models.Course{}).Where("id = ?", courseID).
		Updates(map[string]interface{}{"title": reqData.Title, "image_src": reqData.ImageSrc})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated!", nil)
}

// DeleteCourse removes a course and, through the cascade, its whole subtree
func DeleteCourse(c *fiber.Ctx) error {
	return deleteEntity(c, &models.Course{}, "Course")
}

// CreateUnit creates a new unit inside a course
func CreateUnit(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUnit").(*adminValidator.UnitRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	unit := models.Unit{
		Title:       reqData.Title,
		Description: reqData.Description,
		CourseID:    reqData.CourseID,
		Order:       reqData.Order,
	}

	if err := database.Database.Db.Create(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Unit created!", unit)
}

// UpdateUnit updates an existing unit
func UpdateUnit(c *fiber.Ctx) error {
	unitID := c.Locals("entityID").(uint)

	reqData, ok := c.Locals("validatedUnit").(*adminValidator.UnitRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := database.Database.Db.Model(&models.Unit{}).Where("id = ?", unitID).
		Updates(map[string]interface{}{
			"title":       reqData.Title,
			"description": reqData.Description,
			"course_id":   reqData.CourseID,
			"order_index": reqData.Order,
		})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update unit!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit updated!", nil)
}

// DeleteUnit removes a unit and its lessons
func DeleteUnit(c *fiber.Ctx) error {
	return deleteEntity(c, &models.Unit{}, "Unit")
}

// CreateLesson creates a new lesson inside a unit
func CreateLesson(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLesson").(*adminValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson := models.Lesson{
		Title:  reqData.Title,
		UnitID: reqData.UnitID,
		Order:  reqData.Order,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created!", lesson)
}

// UpdateLesson updates an existing lesson
func UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("entityID").(uint)

	reqData, ok := c.Locals("validatedLesson").(*adminValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := database.Database.Db.Model(&models.Lesson{}).Where("id = ?", lessonID).
		Updates(map[string]interface{}{
			"title":       reqData.Title,
			"unit_id":     reqData.UnitID,
			"order_index": reqData.Order,
		})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated!", nil)
}

// DeleteLesson removes a lesson and its challenges
func DeleteLesson(c *fiber.Ctx) error {
	return deleteEntity(c, &models.Lesson{}, "Lesson")
}

// CreateChallenge creates a new challenge inside a lesson
func CreateChallenge(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedChallenge").(*adminValidator.ChallengeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	challenge := models.Challenge{
		LessonID: reqData.LessonID,
		Type:     reqData.Type,
		Question: reqData.Question,
		Order:    reqData.Order,
	}

	if err := database.Database.Db.Create(&challenge).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create challenge!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Challenge created!", challenge)
}

// UpdateChallenge updates an existing challenge
func UpdateChallenge(c *fiber.Ctx) error {
	challengeID := c.Locals("entityID").(uint)

	reqData, ok := c.Locals("validatedChallenge").(*adminValidator.ChallengeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := database.Database.Db.Model(&models.Challenge{}).Where("id = ?", challengeID).
		Updates(map[string]interface{}{
			"lesson_id":   reqData.LessonID,
			"type":        reqData.Type,
			"question":    reqData.Question,
			"order_index": reqData.Order,
		})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update challenge!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Challenge not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Challenge updated!", nil)
}

// DeleteChallenge removes a challenge and its options
func DeleteChallenge(c *fiber.Ctx) error {
	return deleteEntity(c, &models.Challenge{}, "Challenge")
}

// CreateOption creates a new option for a challenge
func CreateOption(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedOption").(*adminValidator.OptionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	option := models.ChallengeOption{
		ChallengeID: reqData.ChallengeID,
		Text:        reqData.Text,
		Correct:     reqData.Correct,
		ImageSrc:    reqData.ImageSrc,
		AudioSrc:    reqData.AudioSrc,
	}

	if err := database.Database.Db.Create(&option).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create option!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Option created!", option)
}

// UpdateOption updates an existing option
func UpdateOption(c *fiber.Ctx) error {
	optionID := c.Locals("entityID").(uint)

	reqData, ok := c.Locals("validatedOption").(*adminValidator.OptionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := database.Database.Db.Model(&models.ChallengeOption{}).Where("id = ?", optionID).
		Updates(map[string]interface{}{
			"challenge_id": reqData.ChallengeID,
			"text":         reqData.Text,
			"correct":      reqData.Correct,
			"image_src":    reqData.ImageSrc,
			"audio_src":    reqData.AudioSrc,
		})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update option!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Option not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Option updated!", nil)
}

// DeleteOption removes a single option
func DeleteOption(c *fiber.Ctx) error {
	return deleteEntity(c, &models.ChallengeOption{}, "Option")
}

func deleteEntity(c *fiber.Ctx, model interface{}, name string) error {
	id := c.Locals("entityID").(uint)

	result := database.Database.Db.Unscoped().Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete "+name+"!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, name+" not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, name+" deleted!", nil)
}
