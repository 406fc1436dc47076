package models

import "gorm.io/gorm"

// Course represents a language course users can enroll in
type Course struct {
	gorm.Model
	Title    string `json:"title" gorm:"not null"`
	ImageSrc string `json:"image_src"`

	// Relations
	Units []Unit `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"units,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
