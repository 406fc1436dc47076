package models

import "gorm.io/gorm"

// ChallengeType enum values
const (
	ChallengeTypeSelect = "SELECT"
	ChallengeTypeAssist = "ASSIST"
)

// Challenge represents a question inside a lesson
type Challenge struct {
	gorm.Model
	LessonID uint   `json:"lesson_id" gorm:"index;not null;uniqueIndex:idx_challenges_lesson_order"`
	Type     string `json:"type" gorm:"type:varchar(20);not null;default:'SELECT'"`
	Question string `json:"question" gorm:"not null"`
	Order    int    `json:"order" gorm:"column:order_index;uniqueIndex:idx_challenges_lesson_order"`

	// Relations
	Options  []ChallengeOption   `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	Progress []ChallengeProgress `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"progress,omitempty"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// ChallengeOption represents one answer option of a challenge
type ChallengeOption struct {
	gorm.Model
	ChallengeID uint   `json:"challenge_id" gorm:"index;not null"`
	Text        string `json:"text" gorm:"not null"`
	Correct     bool   `json:"correct" gorm:"default:false"`
	ImageSrc    string `json:"image_src"`
	AudioSrc    string `json:"audio_src"`
}

func (ChallengeOption) TableName() string {
	return "challenge_options"
}
