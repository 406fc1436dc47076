package lessonRoutes

import (
	challengeControllers "github.com/ZuchiSpeed/jigitone/controllers/challenge"
	lessonControllers "github.com/ZuchiSpeed/jigitone/controllers/lesson"
	"github.com/ZuchiSpeed/jigitone/middleware"
	validators "github.com/ZuchiSpeed/jigitone/validators/challenge"

	"github.com/gofiber/fiber/v2"
)

// SetupLessonRoutes sets up lesson viewing and challenge answer routes
func SetupLessonRoutes(app *fiber.App) {
	lessonGroup := app.Group("/lesson")

	lessonGroup.Get("/", middleware.JWTMiddleware, lessonControllers.GetActiveLesson)
	lessonGroup.Get("/:id", middleware.JWTMiddleware, validators.LessonID(), lessonControllers.GetLessonByID)

	challengeGroup := app.Group("/challenge")

	challengeGroup.Post("/:id/correct", middleware.JWTMiddleware, validators.ChallengeID(), challengeControllers.SubmitCorrectAnswer)
	challengeGroup.Post("/:id/wrong", middleware.JWTMiddleware, validators.ChallengeID(), challengeControllers.SubmitWrongAnswer)
}
