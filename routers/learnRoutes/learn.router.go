package learnRoutes

import (
	controllers "github.com/ZuchiSpeed/jigitone/controllers/learn"
	"github.com/ZuchiSpeed/jigitone/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupLearnRoutes sets up the learning dashboard routes
func SetupLearnRoutes(app *fiber.App) {
	learnGroup := app.Group("/learn")

	learnGroup.Get("/dashboard", middleware.JWTMiddleware, controllers.GetDashboard)
	learnGroup.Get("/progress", middleware.JWTMiddleware, controllers.GetUserProgress)
	learnGroup.Get("/course-progress", middleware.JWTMiddleware, controllers.GetCourseProgress)
	learnGroup.Get("/lesson-percentage", middleware.JWTMiddleware, controllers.GetLessonPercentage)
}
