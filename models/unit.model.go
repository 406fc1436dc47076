package models

import "gorm.io/gorm"

// Unit represents a section of a course, ordered within it
type Unit struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	CourseID    uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_units_course_order"`
	Order       int    `json:"order" gorm:"column:order_index;uniqueIndex:idx_units_course_order"`

	// Relations
	Lessons []Lesson `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

func (Unit) TableName() string {
	return "units"
}
