package models

import "gorm.io/gorm"

// UserSkill holds the derived difficulty level of a user in one category.
// At most one row per (user_id, category_id), maintained by the engine's
// read-then-update-or-insert upsert.
type UserSkill struct {
	gorm.Model
	UserID          uint   `json:"user_id" gorm:"index;not null"`
	CategoryID      uint   `json:"category_id" gorm:"index;not null"`
	DifficultyLevel string `json:"difficulty_level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	IsDeleted       bool   `gorm:"default:false"`
}
