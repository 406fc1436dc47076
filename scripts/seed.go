package main

import (
	"log"

	"github.com/ZuchiSpeed/jigitone/config"
	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/models"
)

// Seeds the content hierarchy with a small Spanish course. Wipes existing
// content first; user rows are left alone.
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	log.Println("Seeding content...")

	// Clear existing content bottom-up so FK constraints stay satisfied
	for _, model := range []interface{}{
		&models.ChallengeOption{},
		&models.Challenge{},
		&models.Lesson{},
		&models.Unit{},
		&models.Course{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			log.Fatalf("Failed to clear table: %v", err)
		}
	}

	courses := []models.Course{
		{Title: "Spanish", ImageSrc: "/es.svg"},
		{Title: "French", ImageSrc: "/fr.svg"},
		{Title: "Croatian", ImageSrc: "/hr.svg"},
		{Title: "Italian", ImageSrc: "/it.svg"},
	}
	if err := db.Create(&courses).Error; err != nil {
		log.Fatalf("Failed to seed courses: %v", err)
	}

	unit := models.Unit{
		Title:       "Unit 1",
		Description: "Learn the basics of Spanish",
		CourseID:    courses[0].ID,
		Order:       1,
	}
	if err := db.Create(&unit).Error; err != nil {
		log.Fatalf("Failed to seed unit: %v", err)
	}

	lessons := []models.Lesson{
		{Title: "Nouns", UnitID: unit.ID, Order: 1},
		{Title: "Verbs", UnitID: unit.ID, Order: 2},
		{Title: "Adjectives", UnitID: unit.ID, Order: 3},
	}
	if err := db.Create(&lessons).Error; err != nil {
		log.Fatalf("Failed to seed lessons: %v", err)
	}

	challenges := []models.Challenge{
		{LessonID: lessons[0].ID, Type: models.ChallengeTypeSelect, Question: `Which one of these is "the man"?`, Order: 1},
		{LessonID: lessons[0].ID, Type: models.ChallengeTypeAssist, Question: `"the man"`, Order: 2},
		{LessonID: lessons[0].ID, Type: models.ChallengeTypeSelect, Question: `Which one of these is "the robot"?`, Order: 3},
	}
	if err := db.Create(&challenges).Error; err != nil {
		log.Fatalf("Failed to seed challenges: %v", err)
	}

	options := []models.ChallengeOption{
		{ChallengeID: challenges[0].ID, Text: "el hombre", Correct: true, ImageSrc: "/man.svg", AudioSrc: "/es_man.mp3"},
		{ChallengeID: challenges[0].ID, Text: "la mujer", Correct: false, ImageSrc: "/woman.svg", AudioSrc: "/es_woman.mp3"},
		{ChallengeID: challenges[0].ID, Text: "el robot", Correct: false, ImageSrc: "/robot.svg", AudioSrc: "/es_robot.mp3"},

		{ChallengeID: challenges[1].ID, Text: "el hombre", Correct: true, AudioSrc: "/es_man.mp3"},
		{ChallengeID: challenges[1].ID, Text: "la mujer", Correct: false, AudioSrc: "/es_woman.mp3"},
		{ChallengeID: challenges[1].ID, Text: "el robot", Correct: false, AudioSrc: "/es_robot.mp3"},

		{ChallengeID: challenges[2].ID, Text: "el hombre", Correct: false, ImageSrc: "/man.svg", AudioSrc: "/es_man.mp3"},
		{ChallengeID: challenges[2].ID, Text: "la mujer", Correct: false, ImageSrc: "/woman.svg", AudioSrc: "/es_woman.mp3"},
		{ChallengeID: challenges[2].ID, Text: "el robot", Correct: true, ImageSrc: "/robot.svg", AudioSrc: "/es_robot.mp3"},
	}
	if err := db.Create(&options).Error; err != nil {
		log.Fatalf("Failed to seed options: %v", err)
	}

	log.Println("Seeding finished.")
}
