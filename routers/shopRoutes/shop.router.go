package shopRoutes

import (
	controllers "github.com/ZuchiSpeed/jigitone/controllers/shop"
	"github.com/ZuchiSpeed/jigitone/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupShopRoutes sets up the shop, leaderboard and quests routes
func SetupShopRoutes(app *fiber.App) {
	shopGroup := app.Group("/shop")

	shopGroup.Get("/items", middleware.JWTMiddleware, controllers.GetShopItems)
	shopGroup.Post("/refill-hearts", middleware.JWTMiddleware, controllers.RefillHearts)

	app.Get("/leaderboard", middleware.JWTMiddleware, controllers.GetLeaderboard)
	app.Get("/quests", middleware.JWTMiddleware, controllers.GetQuests)
}
