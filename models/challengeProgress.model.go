package models

import "gorm.io/gorm"

// ChallengeProgress tracks a user's completion of a single challenge.
// One row per (user, challenge); repeated attempts update the row in place.
type ChallengeProgress struct {
	gorm.Model
	UserID      string `json:"user_id" gorm:"not null;uniqueIndex:idx_challenge_progress_user_challenge"`
	ChallengeID uint   `json:"challenge_id" gorm:"not null;uniqueIndex:idx_challenge_progress_user_challenge"`
	Completed   bool   `json:"completed" gorm:"default:false"`
}

func (ChallengeProgress) TableName() string {
	return "challenge_progress"
}
