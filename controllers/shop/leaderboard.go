package controllers

import (
	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/middleware"
	"github.com/ZuchiSpeed/jigitone/services/progress"

	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard returns the ten users with the most points
func GetLeaderboard(c *fiber.Ctx) error {
	queries := progress.NewQueries(database.Database.Db, middleware.CacheFromCtx(c))

	topUsers, err := queries.GetTopUsers(10)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	type entry struct {
		UserID       string `json:"user_id"`
		UserName     string `json:"user_name"`
		UserImageSrc string `json:"user_image_src"`
		Points       int    `json:"points"`
	}

	leaderboard := make([]entry, len(topUsers))
	for i, user := range topUsers {
		leaderboard[i] = entry{
			UserID:       user.UserID,
			UserName:     user.UserName,
			UserImageSrc: user.UserImageSrc,
			Points:       user.Points,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched!", fiber.Map{
		"leaderboard": leaderboard,
	})
}
