package models

import "gorm.io/gorm"

// Lesson represents a single lesson inside a unit
type Lesson struct {
	gorm.Model
	Title  string `json:"title" gorm:"not null"`
	UnitID uint   `json:"unit_id" gorm:"index;not null;uniqueIndex:idx_lessons_unit_order"`
	Order  int    `json:"order" gorm:"column:order_index;uniqueIndex:idx_lessons_unit_order"`

	// Relations
	Challenges []Challenge `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"challenges,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}
