package models

// Heart and point economy constants
const (
	MaxHearts        = 5
	DefaultHearts    = 5
	PracticePoints   = 10 // points awarded per correct practice answer
	HeartsRefillCost = 10 // points charged to refill hearts from the shop
)

// UserProgress is the per-user economy row: hearts, points and the active
// course. The user id comes from the identity provider and is treated as an
// opaque string key.
type UserProgress struct {
	UserID         string `json:"user_id" gorm:"primaryKey"`
	UserName       string `json:"user_name" gorm:"default:'User'"`
	UserImageSrc   string `json:"user_image_src" gorm:"default:'/mascot.svg'"`
	ActiveCourseID *uint  `json:"active_course_id"`
	Hearts         int    `json:"hearts" gorm:"default:5"`
	Points         int    `json:"points" gorm:"default:0"`

	// Relations
	ActiveCourse *Course `gorm:"foreignKey:ActiveCourseID" json:"active_course,omitempty"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
