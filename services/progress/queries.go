package progress

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ZuchiSpeed/jigitone/models"

	"gorm.io/gorm"
)

// Queries derives read-only views from raw progress rows. Completion is
// always recomputed from ChallengeProgress, never cached as a flag on the
// content rows. Results are memoized in the request-scoped cache so a page
// that composes several views does not re-issue the same lookups.
type Queries struct {
	db    *gorm.DB
	cache *RequestCache
}

// NewQueries builds a query service. A nil cache disables memoization.
func NewQueries(db *gorm.DB, cache *RequestCache) *Queries {
	return &Queries{db: db, cache: cache}
}

// LessonSummary is a lesson annotated with the caller's completion state.
type LessonSummary struct {
	models.Lesson
	Completed bool `json:"completed"`
}

// UnitWithLessons is a unit of the active course with annotated lessons.
type UnitWithLessons struct {
	models.Unit
	Lessons []LessonSummary `json:"lessons"`
}

// ChallengeView is a challenge with its options and the caller's completion flag.
type ChallengeView struct {
	models.Challenge
	Completed bool `json:"completed"`
}

// LessonView is a lesson with its ordered, annotated challenges.
type LessonView struct {
	models.Lesson
	Challenges []ChallengeView `json:"challenges"`
}

// CourseProgress points at the first unfinished lesson of the active course.
// Both fields are zero when every lesson is finished or no course is active.
type CourseProgress struct {
	ActiveLesson   *models.Lesson `json:"active_lesson"`
	ActiveLessonID uint           `json:"active_lesson_id"`
}

// SubscriptionStatus is a subscription row with its derived active flag.
type SubscriptionStatus struct {
	*models.UserSubscription
	Active bool `json:"active"`
}

// GetCourses returns every course, for the course picker.
func (q *Queries) GetCourses() ([]models.Course, error) {
	if v, ok := q.cache.Get("courses"); ok {
		return v.([]models.Course), nil
	}

	var courses []models.Course
	if err := q.db.Order("id asc").Find(&courses).Error; err != nil {
		return nil, err
	}

	q.cache.Set("courses", courses)
	return courses, nil
}

// GetCourseByID returns one course or nil when it does not exist.
func (q *Queries) GetCourseByID(courseID uint) (*models.Course, error) {
	var course models.Course
	if err := q.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

// GetUserProgress returns the caller's progress row joined with the active
// course, or nil when the caller has none yet.
func (q *Queries) GetUserProgress(userID string) (*models.UserProgress, error) {
	key := "user-progress:" + userID
	if v, ok := q.cache.Get(key); ok {
		return v.(*models.UserProgress), nil
	}

	var userProgress models.UserProgress
	err := q.db.Preload("ActiveCourse").Where("user_id = ?", userID).First(&userProgress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	q.cache.Set(key, &userProgress)
	return &userProgress, nil
}

// GetUnitsWithProgress returns every unit of the caller's active course with
// each lesson's derived completed flag. A lesson is completed only when it
// has at least one challenge and every challenge has progress rows that are
// all completed; empty lessons never auto-complete.
func (q *Queries) GetUnitsWithProgress(userID string) ([]UnitWithLessons, error) {
	units, err := q.activeCourseUnits(userID)
	if err != nil {
		return nil, err
	}

	out := make([]UnitWithLessons, 0, len(units))
	for _, unit := range units {
		lessons := make([]LessonSummary, 0, len(unit.Lessons))
		for _, lesson := range unit.Lessons {
			lessons = append(lessons, LessonSummary{
				Lesson:    stripChallenges(lesson),
				Completed: lessonCompleted(lesson.Challenges),
			})
		}
		unit.Lessons = nil
		out = append(out, UnitWithLessons{Unit: unit, Lessons: lessons})
	}
	return out, nil
}

// GetCourseProgress finds the first unfinished lesson, scanning units then
// lessons in ascending order and stopping at the first lesson with any
// challenge whose progress is missing or incomplete.
func (q *Queries) GetCourseProgress(userID string) (*CourseProgress, error) {
	key := "course-progress:" + userID
	if v, ok := q.cache.Get(key); ok {
		return v.(*CourseProgress), nil
	}

	units, err := q.activeCourseUnits(userID)
	if err != nil {
		return nil, err
	}

	result := &CourseProgress{}
	for _, unit := range units {
		for _, lesson := range unit.Lessons {
			if lessonUnfinished(lesson.Challenges) {
				active := stripChallenges(lesson)
				result.ActiveLesson = &active
				result.ActiveLessonID = lesson.ID

				q.cache.Set(key, result)
				return result, nil
			}
		}
	}

	q.cache.Set(key, result)
	return result, nil
}

// GetLesson loads one lesson with ordered challenges, their options and the
// caller's completion flags. A zero id resolves to the active lesson from
// GetCourseProgress. Returns nil when no lesson is resolvable.
func (q *Queries) GetLesson(userID string, lessonID uint) (*LessonView, error) {
	if lessonID == 0 {
		courseProgress, err := q.GetCourseProgress(userID)
		if err != nil {
			return nil, err
		}
		if courseProgress.ActiveLessonID == 0 {
			return nil, nil
		}
		lessonID = courseProgress.ActiveLessonID
	}

	key := fmt.Sprintf("lesson:%s:%d", userID, lessonID)
	if v, ok := q.cache.Get(key); ok {
		return v.(*LessonView), nil
	}

	var lesson models.Lesson
	err := q.db.
		Preload("Challenges", func(db *gorm.DB) *gorm.DB {
			return db.Order("challenges.order_index asc")
		}).
		Preload("Challenges.Options").
		Preload("Challenges.Progress", "user_id = ?", userID).
		First(&lesson, lessonID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	challenges := make([]ChallengeView, 0, len(lesson.Challenges))
	for _, challenge := range lesson.Challenges {
		completed := challengeCompleted(challenge)
		challenge.Progress = nil
		challenges = append(challenges, ChallengeView{Challenge: challenge, Completed: completed})
	}
	lesson.Challenges = nil

	view := &LessonView{Lesson: lesson, Challenges: challenges}
	q.cache.Set(key, view)
	return view, nil
}

// GetLessonPercentage returns how much of the active lesson is completed,
// rounded to the nearest integer. Zero when there is no active lesson or it
// has no challenges.
func (q *Queries) GetLessonPercentage(userID string) (int, error) {
	lesson, err := q.GetLesson(userID, 0)
	if err != nil {
		return 0, err
	}
	if lesson == nil || len(lesson.Challenges) == 0 {
		return 0, nil
	}

	completed := 0
	for _, challenge := range lesson.Challenges {
		if challenge.Completed {
			completed++
		}
	}

	return int(math.Round(float64(completed) / float64(len(lesson.Challenges)) * 100)), nil
}

// GetTopUsers returns the leaderboard: users ordered by points.
func (q *Queries) GetTopUsers(limit int) ([]models.UserProgress, error) {
	key := fmt.Sprintf("leaderboard:%d", limit)
	if v, ok := q.cache.Get(key); ok {
		return v.([]models.UserProgress), nil
	}

	var users []models.UserProgress
	if err := q.db.Order("points desc").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	q.cache.Set(key, users)
	return users, nil
}

// GetUserSubscription returns the caller's subscription with its derived
// active flag, or nil when the user never subscribed.
func (q *Queries) GetUserSubscription(userID string) (*SubscriptionStatus, error) {
	key := "subscription:" + userID
	if v, ok := q.cache.Get(key); ok {
		return v.(*SubscriptionStatus), nil
	}

	var subscription models.UserSubscription
	err := q.db.Where("user_id = ?", userID).First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	status := &SubscriptionStatus{
		UserSubscription: &subscription,
		Active:           subscription.IsActive(time.Now()),
	}
	q.cache.Set(key, status)
	return status, nil
}

// activeCourseUnits loads the active course's full unit → lesson → challenge
// → progress tree in one nested fetch, memoized per request since both the
// units view and the course-progress scan consume it.
func (q *Queries) activeCourseUnits(userID string) ([]models.Unit, error) {
	userProgress, err := q.GetUserProgress(userID)
	if err != nil {
		return nil, err
	}
	if userProgress == nil || userProgress.ActiveCourseID == nil {
		return []models.Unit{}, nil
	}

	key := fmt.Sprintf("course-units:%s:%d", userID, *userProgress.ActiveCourseID)
	if v, ok := q.cache.Get(key); ok {
		return v.([]models.Unit), nil
	}

	var units []models.Unit
	err = q.db.
		Where("course_id = ?", *userProgress.ActiveCourseID).
		Order("order_index asc").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.order_index asc")
		}).
		Preload("Lessons.Challenges", func(db *gorm.DB) *gorm.DB {
			return db.Order("challenges.order_index asc")
		}).
		Preload("Lessons.Challenges.Progress", "user_id = ?", userID).
		Find(&units).Error
	if err != nil {
		return nil, err
	}

	q.cache.Set(key, units)
	return units, nil
}

// challengeCompleted applies the completion rule for one challenge: at least
// one progress row for the caller and none of them incomplete.
func challengeCompleted(challenge models.Challenge) bool {
	if len(challenge.Progress) == 0 {
		return false
	}
	for _, row := range challenge.Progress {
		if !row.Completed {
			return false
		}
	}
	return true
}

// lessonCompleted requires a non-empty lesson with every challenge completed.
func lessonCompleted(challenges []models.Challenge) bool {
	if len(challenges) == 0 {
		return false
	}
	for _, challenge := range challenges {
		if !challengeCompleted(challenge) {
			return false
		}
	}
	return true
}

// lessonUnfinished reports whether any challenge lacks completed progress.
// An empty lesson has nothing to finish and is skipped by the scan.
func lessonUnfinished(challenges []models.Challenge) bool {
	for _, challenge := range challenges {
		if !challengeCompleted(challenge) {
			return true
		}
	}
	return false
}

func stripChallenges(lesson models.Lesson) models.Lesson {
	lesson.Challenges = nil
	return lesson
}
