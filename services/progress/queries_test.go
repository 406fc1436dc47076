package progress

import (
	"testing"
	"time"

	"github.com/ZuchiSpeed/jigitone/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedTree builds a two-unit course: unit 1 has lessons "L1" (2 challenges)
// and "L2" (1 challenge), unit 2 has lesson "L3" (1 challenge) plus an empty
// lesson "L4". Returns the course id and the challenge ids keyed by lesson.
func seedTree(t *testing.T, db *gorm.DB) (uint, map[string][]uint) {
	t.Helper()

	course := models.Course{Title: "Spanish", ImageSrc: "/es.svg"}
	require.NoError(t, db.Create(&course).Error)

	challenges := map[string][]uint{}
	lessonSpecs := []struct {
		unitOrder  int
		title      string
		order      int
		challenges int
	}{
		{1, "L1", 1, 2},
		{1, "L2", 2, 1},
		{2, "L3", 1, 1},
		{2, "L4", 2, 0},
	}

	units := map[int]uint{}
	for _, order := range []int{1, 2} {
		unit := models.Unit{Title: "Unit", CourseID: course.ID, Order: order}
		require.NoError(t, db.Create(&unit).Error)
		units[order] = unit.ID
	}

	for _, spec := range lessonSpecs {
		lesson := models.Lesson{Title: spec.title, UnitID: units[spec.unitOrder], Order: spec.order}
		require.NoError(t, db.Create(&lesson).Error)

		for i := 0; i < spec.challenges; i++ {
			challenge := models.Challenge{
				LessonID: lesson.ID,
				Type:     models.ChallengeTypeSelect,
				Question: "Which one?",
				Order:    i + 1,
			}
			require.NoError(t, db.Create(&challenge).Error)
			challenges[spec.title] = append(challenges[spec.title], challenge.ID)
		}
	}

	return course.ID, challenges
}

func completeChallenge(t *testing.T, db *gorm.DB, userID string, challengeID uint) {
	t.Helper()

	row := models.ChallengeProgress{UserID: userID, ChallengeID: challengeID, Completed: true}
	require.NoError(t, db.Create(&row).Error)
}

func TestGetUserProgressAbsent(t *testing.T) {
	db := newTestDB(t)

	queries := NewQueries(db, nil)

	userProgress, err := queries.GetUserProgress("ghost")
	require.NoError(t, err)
	require.Nil(t, userProgress)
}

func TestGetUserProgressJoinsActiveCourse(t *testing.T) {
	db := newTestDB(t)
	courseID, _ := seedTree(t, db)
	seedUser(t, db, "user-1", courseID, 4, 30)

	queries := NewQueries(db, nil)

	userProgress, err := queries.GetUserProgress("user-1")
	require.NoError(t, err)
	require.NotNil(t, userProgress)
	require.Equal(t, 4, userProgress.Hearts)
	require.NotNil(t, userProgress.ActiveCourse)
	require.Equal(t, "Spanish", userProgress.ActiveCourse.Title)
}

func TestUnitsWithProgressCompletionRules(t *testing.T) {
	db := newTestDB(t)
	courseID, challenges := seedTree(t, db)
	seedUser(t, db, "user-1", courseID, 5, 0)

	// Fully complete L1, half-complete nothing else
	for _, id := range challenges["L1"] {
		completeChallenge(t, db, "user-1", id)
	}

	queries := NewQueries(db, nil)

	units, err := queries.GetUnitsWithProgress("user-1")
	require.NoError(t, err)
	require.Len(t, units, 2)

	byTitle := map[string]bool{}
	for _, unit := range units {
		for _, lesson := range unit.Lessons {
			byTitle[lesson.Title] = lesson.Completed
		}
	}

	require.True(t, byTitle["L1"])
	require.False(t, byTitle["L2"])
	require.False(t, byTitle["L3"])
	// An empty lesson never reports completed
	require.False(t, byTitle["L4"])
}

func TestUnitsWithProgressIgnoresOtherUsers(t *testing.T) {
	db := newTestDB(t)
	courseID, challenges := seedTree(t, db)
	seedUser(t, db, "user-1", courseID, 5, 0)

	for _, id := range challenges["L1"] {
		completeChallenge(t, db, "someone-else", id)
	}

	queries := NewQueries(db, nil)

	units, err := queries.GetUnitsWithProgress("user-1")
	require.NoError(t, err)
	for _, unit := range units {
		for _, lesson := range unit.Lessons {
			require.False(t, lesson.Completed)
		}
	}
}

func TestCourseProgressScanOrder(t *testing.T) {
	db := newTestDB(t)
	courseID, challenges := seedTree(t, db)
	seedUser(t, db, "user-1", courseID, 5, 0)

	queries := NewQueries(db, nil)

	// Nothing completed: first lesson of the first unit is active
	courseProgress, err := queries.GetCourseProgress("user-1")
	require.NoError(t, err)
	require.NotNil(t, courseProgress.ActiveLesson)
	require.Equal(t, "L1", courseProgress.ActiveLesson.Title)

	for _, id := range challenges["L1"] {
		completeChallenge(t, db, "user-1", id)
	}

	courseProgress, err = queries.GetCourseProgress("user-1")
	require.NoError(t, err)
	require.Equal(t, "L2", courseProgress.ActiveLesson.Title)
}

func TestCourseProgressSkipsEmptyLessons(t *testing.T) {
	db := newTestDB(t)
	courseID, challenges := seedTree(t, db)
	seedUser(t, db, "user-1", courseID, 5, 0)

	for _, ids := range challenges {
		for _, id := range ids {
			completeChallenge(t, db, "user-1", id)
		}
	}

	queries := NewQueries(db, nil)

	// Every non-empty lesson is done; the empty L4 must not become active
	courseProgress, err := queries.GetCourseProgress("user-1")
	require.NoError(t, err)
	require.Nil(t, courseProgress.ActiveLesson)
	require.Zero(t, courseProgress.ActiveLessonID)
}

func TestCourseProgressWithoutActiveCourse(t *testing.T) {
	db := newTestDB(t)

	queries := NewQueries(db, nil)

	courseProgress, err := queries.GetCourseProgress("ghost")
	require.NoError(t, err)
	require.Nil(t, courseProgress.ActiveLesson)
}

func TestGetLessonExplicit(t *testing.T) {
	db := newTestDB(t)
	courseID, challenges := seedTree(t, db)
	seedUser(t, db, "user-1", courseID, 5, 0)
	completeChallenge(t, db, "user-1", challenges["L1"][0])

	queries := NewQueries(db, nil)

	var lesson models.Lesson
	require.NoError(t, db.Where("title = ?", "L1").First(&lesson).Error)

	view, err := queries.GetLesson("user-1", lesson.ID)
	require.NoError(t, err)
	require.NotNil(t, view)
	require.Len(t, view.Challenges, 2)
	require.True(t, view.Challenges[0].Completed)
	require.False(t, view.Challenges[1].Completed)
}

func TestGetLessonResolvesActive(t *testing.T) {
	db := newTestDB(t)
	courseID, challenges := seedTree(t, db)
	seedUser(t, db, "user-1", courseID, 5, 0)

	for _, id := range challenges["L1"] {
		completeChallenge(t, db, "user-1", id)
	}

	queries := NewQueries(db, nil)

	view, err := queries.GetLesson("user-1", 0)
	require.NoError(t, err)
	require.NotNil(t, view)
	require.Equal(t, "L2", view.Title)
}

func TestGetLessonMissing(t *testing.T) {
	db := newTestDB(t)

	queries := NewQueries(db, nil)

	view, err := queries.GetLesson("user-1", 9999)
	require.NoError(t, err)
	require.Nil(t, view)
}

func TestGetLessonPercentage(t *testing.T) {
	db := newTestDB(t)
	courseID, challenges := seedTree(t, db)
	seedUser(t, db, "user-1", courseID, 5, 0)

	queries := NewQueries(db, nil)

	pct, err := queries.GetLessonPercentage("user-1")
	require.NoError(t, err)
	require.Equal(t, 0, pct)

	completeChallenge(t, db, "user-1", challenges["L1"][0])

	pct, err = queries.GetLessonPercentage("user-1")
	require.NoError(t, err)
	require.Equal(t, 50, pct)
}

func TestGetLessonPercentageRounds(t *testing.T) {
	db := newTestDB(t)
	courseID, challengeIDs := seedCourse(t, db, 3)
	seedUser(t, db, "user-1", courseID, 5, 0)
	completeChallenge(t, db, "user-1", challengeIDs[0])

	queries := NewQueries(db, nil)

	// 1 of 3: 33.33 rounds down
	pct, err := queries.GetLessonPercentage("user-1")
	require.NoError(t, err)
	require.Equal(t, 33, pct)

	completeChallenge(t, db, "user-1", challengeIDs[1])

	// 2 of 3: 66.67 rounds up
	pct, err = queries.GetLessonPercentage("user-1")
	require.NoError(t, err)
	require.Equal(t, 67, pct)
}

func TestGetLessonPercentageWithoutActiveLesson(t *testing.T) {
	db := newTestDB(t)

	queries := NewQueries(db, nil)

	pct, err := queries.GetLessonPercentage("ghost")
	require.NoError(t, err)
	require.Zero(t, pct)
}

func TestGetTopUsers(t *testing.T) {
	db := newTestDB(t)
	courseID, _ := seedTree(t, db)
	seedUser(t, db, "low", courseID, 5, 10)
	seedUser(t, db, "high", courseID, 5, 90)
	seedUser(t, db, "mid", courseID, 5, 40)

	queries := NewQueries(db, nil)

	users, err := queries.GetTopUsers(2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "high", users[0].UserID)
	require.Equal(t, "mid", users[1].UserID)
}

func TestGetUserSubscriptionGracePeriod(t *testing.T) {
	db := newTestDB(t)

	queries := NewQueries(db, nil)

	status, err := queries.GetUserSubscription("ghost")
	require.NoError(t, err)
	require.Nil(t, status)

	// Lapsed an hour ago: still inside the one-day grace window
	seedSubscription(t, db, "user-1", time.Now().Add(-time.Hour))

	status, err = queries.GetUserSubscription("user-1")
	require.NoError(t, err)
	require.NotNil(t, status)
	require.True(t, status.Active)

	require.NoError(t, db.Model(&models.UserSubscription{}).
		Where("user_id = ?", "user-1").
		Update("stripe_current_period_end", time.Now().Add(-48*time.Hour)).Error)

	status, err = queries.GetUserSubscription("user-1")
	require.NoError(t, err)
	require.False(t, status.Active)
}

func TestQueriesMemoizeUntilFlush(t *testing.T) {
	db := newTestDB(t)
	courseID, _ := seedTree(t, db)
	seedUser(t, db, "user-1", courseID, 5, 0)

	cache := NewRequestCache()
	queries := NewQueries(db, cache)

	first, err := queries.GetUserProgress("user-1")
	require.NoError(t, err)
	require.Equal(t, 0, first.Points)

	require.NoError(t, db.Model(&models.UserProgress{}).
		Where("user_id = ?", "user-1").Update("points", 70).Error)

	// Same request: the memoized row wins
	memoized, err := queries.GetUserProgress("user-1")
	require.NoError(t, err)
	require.Equal(t, 0, memoized.Points)

	cache.Flush()

	fresh, err := queries.GetUserProgress("user-1")
	require.NoError(t, err)
	require.Equal(t, 70, fresh.Points)
}
