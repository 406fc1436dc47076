package main

import (
	"log"

	"github.com/ZuchiSpeed/jigitone/config"
	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/middleware"
	adminRoutes "github.com/ZuchiSpeed/jigitone/routers/adminRoutes"
	courseRoutes "github.com/ZuchiSpeed/jigitone/routers/courseRoutes"
	learnRoutes "github.com/ZuchiSpeed/jigitone/routers/learnRoutes"
	lessonRoutes "github.com/ZuchiSpeed/jigitone/routers/lessonRoutes"
	shopRoutes "github.com/ZuchiSpeed/jigitone/routers/shopRoutes"
	subscriptionRoutes "github.com/ZuchiSpeed/jigitone/routers/subscriptionRoutes"
	"github.com/ZuchiSpeed/jigitone/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization,Stripe-Signature", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Request-scoped memoization for the read views
	app.Use(middleware.ViewCache())

	courseRoutes.SetupCourseRoutes(app)
	learnRoutes.SetupLearnRoutes(app)
	lessonRoutes.SetupLessonRoutes(app)
	shopRoutes.SetupShopRoutes(app)
	subscriptionRoutes.SetupSubscriptionRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	utils.InitializeSubscriptionScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
