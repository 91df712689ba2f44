package models

import "gorm.io/gorm"

// Category is a subject area a learner can express interest in.
// A category has at most one placement quiz attached.
type Category struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}
