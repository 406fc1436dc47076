package adminValidator

import (
	"strconv"
	"strings"

	"github.com/ZuchiSpeed/jigitone/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CourseRequest is the authoring payload for a course
type CourseRequest struct {
	Title    string `json:"title" validate:"required"`
	ImageSrc string `json:"image_src"`
}

// UnitRequest is the authoring payload for a unit
type UnitRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	CourseID    uint   `json:"course_id" validate:"required"`
	Order       int    `json:"order" validate:"gte=0"`
}

// LessonRequest is the authoring payload for a lesson
type LessonRequest struct {
	Title  string `json:"title" validate:"required"`
	UnitID uint   `json:"unit_id" validate:"required"`
	Order  int    `json:"order" validate:"gte=0"`
}

// ChallengeRequest is the authoring payload for a challenge
type ChallengeRequest struct {
	LessonID uint   `json:"lesson_id" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=SELECT ASSIST"`
	Question string `json:"question" validate:"required"`
	Order    int    `json:"order" validate:"gte=0"`
}

// OptionRequest is the authoring payload for a challenge option
type OptionRequest struct {
	ChallengeID uint   `json:"challenge_id" validate:"required"`
	Text        string `json:"text" validate:"required"`
	Correct     bool   `json:"correct"`
	ImageSrc    string `json:"image_src"`
	AudioSrc    string `json:"audio_src"`
}

// Course validates a course authoring request
func Course() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := parseAndValidate(c, reqData); err != nil {
			return err
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// Unit validates a unit authoring request
func Unit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UnitRequest)
		if err := parseAndValidate(c, reqData); err != nil {
			return err
		}
		c.Locals("validatedUnit", reqData)
		return c.Next()
	}
}

// Lesson validates a lesson authoring request
func Lesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonRequest)
		if err := parseAndValidate(c, reqData); err != nil {
			return err
		}
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// Challenge validates a challenge authoring request
func Challenge() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChallengeRequest)
		if err := parseAndValidate(c, reqData); err != nil {
			return err
		}
		c.Locals("validatedChallenge", reqData)
		return c.Next()
	}
}

// Option validates a challenge-option authoring request
func Option() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(OptionRequest)
		if err := parseAndValidate(c, reqData); err != nil {
			return err
		}
		c.Locals("validatedOption", reqData)
		return c.Next()
	}
}

// EntityID validates the :id path parameter shared by update/delete routes
func EntityID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}

		c.Locals("entityID", uint(id))
		return c.Next()
	}
}

func parseAndValidate(c *fiber.Ctx, reqData interface{}) error {
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if err := validate.Struct(reqData); err != nil {
		errors := make(map[string]string)
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				errors[fieldErr.Field()] = "failed on '" + fieldErr.Tag() + "' rule"
			}
		} else {
			errors["body"] = err.Error()
		}
		return middleware.ValidationErrorResponse(c, errors)
	}

	return nil
}
