package adminRoutes

import (
	controllers "github.com/ZuchiSpeed/jigitone/controllers/admin"
	"github.com/ZuchiSpeed/jigitone/middleware"
	validators "github.com/ZuchiSpeed/jigitone/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the content-authoring routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Post("/course", validators.Course(), controllers.CreateCourse)
	adminGroup.Put("/course/:id", validators.EntityID(), validators.Course(), controllers.UpdateCourse)
	adminGroup.Delete("/course/:id", validators.EntityID(), controllers.DeleteCourse)

	adminGroup.Post("/unit", validators.Unit(), controllers.CreateUnit)
	adminGroup.Put("/unit/:id", validators.EntityID(), validators.Unit(), controllers.UpdateUnit)
	adminGroup.Delete("/unit/:id", validators.EntityID(), controllers.DeleteUnit)

	adminGroup.Post("/lesson", validators.Lesson(), controllers.CreateLesson)
	adminGroup.Put("/lesson/:id", validators.EntityID(), validators.Lesson(), controllers.UpdateLesson)
	adminGroup.Delete("/lesson/:id", validators.EntityID(), controllers.DeleteLesson)

	adminGroup.Post("/challenge", validators.Challenge(), controllers.CreateChallenge)
	adminGroup.Put("/challenge/:id", validators.EntityID(), validators.Challenge(), controllers.UpdateChallenge)
	adminGroup.Delete("/challenge/:id", validators.EntityID(), controllers.DeleteChallenge)

	adminGroup.Post("/option", validators.Option(), controllers.CreateOption)
	adminGroup.Put("/option/:id", validators.EntityID(), validators.Option(), controllers.UpdateOption)
	adminGroup.Delete("/option/:id", validators.EntityID(), controllers.DeleteOption)
}
