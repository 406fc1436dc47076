package courseRoutes

import (
	controllers "github.com/ZuchiSpeed/jigitone/controllers/course"
	"github.com/ZuchiSpeed/jigitone/middleware"
	validators "github.com/ZuchiSpeed/jigitone/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course listing and selection routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Post("/:id/select", middleware.JWTMiddleware, validators.CourseID(), controllers.SelectCourse)
}
