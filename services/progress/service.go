package progress

import (
	"errors"
	"time"

	"github.com/ZuchiSpeed/jigitone/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service is the progress/economy state machine. Every mutation runs in one
// storage transaction, and heart/point arithmetic is done server-side with
// conditional updates so concurrent attempts for the same user cannot
// double-award past the caps.
type Service struct {
	db    *gorm.DB
	cache *RequestCache
}

// NewService builds a mutation service over the given store handle. The cache
// may be nil when no request-scoped views need invalidation (schedulers,
// scripts, tests that don't exercise memoization).
func NewService(db *gorm.DB, cache *RequestCache) *Service {
	return &Service{db: db, cache: cache}
}

// RecordCorrectAnswer handles a correct answer for a challenge. First-time
// completion inserts the progress row; practice retries award a heart (capped)
// and points. A user with zero hearts is blocked unless practicing or
// subscribed.
func (s *Service) RecordCorrectAnswer(userID string, challengeID uint) (*AttemptResult, error) {
	res := &AttemptResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		userProgress, err := loadUserProgress(tx, userID)
		if err != nil {
			return err
		}

		var challenge models.Challenge
		if err := tx.First(&challenge, challengeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeNotFound
			}
			return err
		}
		res.LessonID = challenge.LessonID

		existing, err := loadChallengeProgress(tx, userID, challengeID)
		if err != nil {
			return err
		}
		isPractice := existing != nil

		if userProgress.Hearts == 0 && !isPractice && !hasActiveSubscription(tx, userID) {
			res.Denial = DenialHearts
			return nil
		}

		if isPractice {
			res.Practice = true

			// Already-true rows stay true; the write is idempotent.
			if err := tx.Model(&models.ChallengeProgress{}).
				Where("id = ?", existing.ID).
				Update("completed", true).Error; err != nil {
				return err
			}

			// Server-side clamp; a stale in-memory read can never push
			// hearts past the cap.
			return tx.Model(&models.UserProgress{}).
				Where("user_id = ?", userID).
				Updates(map[string]interface{}{
					"hearts": gorm.Expr("CASE WHEN hearts + 1 > ? THEN ? ELSE hearts + 1 END",
						models.MaxHearts, models.MaxHearts),
					"points": gorm.Expr("points + ?", models.PracticePoints),
				}).Error
		}

		// First completion. Upsert by (user, challenge) so a duplicate
		// delivery racing this insert collapses into the same row.
		record := models.ChallengeProgress{
			UserID:      userID,
			ChallengeID: challengeID,
			Completed:   true,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"completed": true}),
		}).Create(&record).Error
	})
	if err != nil {
		return nil, err
	}

	if !res.Denied() {
		s.cache.Flush()
	}
	return res, nil
}

// RecordIncorrectAnswer handles a wrong answer. Practice attempts never cost
// hearts (checked before the zero-hearts gate), subscribers never lose hearts,
// everyone else loses one, floored at zero.
func (s *Service) RecordIncorrectAnswer(userID string, challengeID uint) (*AttemptResult, error) {
	res := &AttemptResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		userProgress, err := loadUserProgress(tx, userID)
		if err != nil {
			return err
		}

		var challenge models.Challenge
		if err := tx.First(&challenge, challengeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeNotFound
			}
			return err
		}
		res.LessonID = challenge.LessonID

		existing, err := loadChallengeProgress(tx, userID, challengeID)
		if err != nil {
			return err
		}

		// Practice short-circuits before the hearts gate: retries are free
		// even at zero hearts.
		if existing != nil {
			res.Practice = true
			res.Denial = DenialPractice
			return nil
		}

		if hasActiveSubscription(tx, userID) {
			return nil
		}

		if userProgress.Hearts == 0 {
			res.Denial = DenialHearts
			return nil
		}

		return tx.Model(&models.UserProgress{}).
			Where("user_id = ?", userID).
			Update("hearts", gorm.Expr("CASE WHEN hearts > 0 THEN hearts - 1 ELSE 0 END")).Error
	})
	if err != nil {
		return nil, err
	}

	if !res.Denied() {
		s.cache.Flush()
	}
	return res, nil
}

// RefillHearts trades points for a full set of hearts.
func (s *Service) RefillHearts(userID string) (*RefillResult, error) {
	res := &RefillResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		userProgress, err := loadUserProgress(tx, userID)
		if err != nil {
			return err
		}

		if userProgress.Hearts >= models.MaxHearts {
			res.Denial = DenialHeartsFull
			return nil
		}
		if userProgress.Points < models.HeartsRefillCost {
			res.Denial = DenialPoints
			return nil
		}

		// The funds check is repeated in the WHERE clause; a concurrent
		// spend between the read and this write denies instead of going
		// negative.
		result := tx.Model(&models.UserProgress{}).
			Where("user_id = ? AND points >= ? AND hearts < ?",
				userID, models.HeartsRefillCost, models.MaxHearts).
			Updates(map[string]interface{}{
				"hearts": models.MaxHearts,
				"points": gorm.Expr("points - ?", models.HeartsRefillCost),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			res.Denial = DenialPoints
			return nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !res.Denied() {
		s.cache.Flush()
	}
	return res, nil
}

// SelectCourse makes the course the user's active one, creating the progress
// row with default hearts and points on first selection. Switching courses
// does not touch hearts, points or per-challenge progress; the economy is
// global to the user.
func (s *Service) SelectCourse(userID string, courseID uint, userName, userImageSrc string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		var existing models.UserProgress
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		if err == nil {
			updates := map[string]interface{}{"active_course_id": courseID}
			// Refresh the identity-provider snapshot when present
			if userName != "" {
				updates["user_name"] = userName
			}
			if userImageSrc != "" {
				updates["user_image_src"] = userImageSrc
			}
			return tx.Model(&models.UserProgress{}).
				Where("user_id = ?", userID).
				Updates(updates).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record := models.UserProgress{
			UserID:         userID,
			UserName:       fallback(userName, "User"),
			UserImageSrc:   fallback(userImageSrc, "/mascot.svg"),
			ActiveCourseID: &courseID,
			Hearts:         models.DefaultHearts,
			Points:         0,
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return err
	}

	s.cache.Flush()
	return nil
}

func loadUserProgress(tx *gorm.DB, userID string) (*models.UserProgress, error) {
	var userProgress models.UserProgress
	if err := tx.Where("user_id = ?", userID).First(&userProgress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return &userProgress, nil
}

func loadChallengeProgress(tx *gorm.DB, userID string, challengeID uint) (*models.ChallengeProgress, error) {
	var record models.ChallengeProgress
	err := tx.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func hasActiveSubscription(tx *gorm.DB, userID string) bool {
	var subscription models.UserSubscription
	if err := tx.Where("user_id = ?", userID).First(&subscription).Error; err != nil {
		return false
	}
	return subscription.IsActive(time.Now())
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
