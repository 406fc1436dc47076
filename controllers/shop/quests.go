package controllers

import (
	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/middleware"
	"github.com/ZuchiSpeed/jigitone/services/progress"

	"github.com/gofiber/fiber/v2"
)

// Point thresholds for the fixed quest ladder
var quests = []struct {
	Title string `json:"title"`
	Value int    `json:"value"`
}{
	{"Earn 20 XP", 20},
	{"Earn 50 XP", 50},
	{"Earn 100 XP", 100},
	{"Earn 500 XP", 500},
	{"Earn 1000 XP", 1000},
}

// GetQuests returns the quest ladder with the caller's progress toward each
// threshold, derived from total points
func GetQuests(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	queries := progress.NewQueries(database.Database.Db, middleware.CacheFromCtx(c))

	userProgress, err := queries.GetUserProgress(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	if userProgress == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User progress not found!", nil)
	}

	type questView struct {
		Title    string `json:"title"`
		Value    int    `json:"value"`
		Progress int    `json:"progress"` // 0-100
	}

	views := make([]questView, len(quests))
	for i, quest := range quests {
		pct := userProgress.Points * 100 / quest.Value
		if pct > 100 {
			pct = 100
		}
		views[i] = questView{Title: quest.Title, Value: quest.Value, Progress: pct}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quests fetched!", fiber.Map{
		"points": userProgress.Points,
		"quests": views,
	})
}
