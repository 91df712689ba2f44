package models

import "gorm.io/gorm"

// UserInterest records that a user selected a category during onboarding.
type UserInterest struct {
	gorm.Model
	UserID     uint     `json:"user_id" gorm:"index;not null"`
	CategoryID uint     `json:"category_id" gorm:"index;not null"`
	IsDeleted  bool     `gorm:"default:false"`
	User       User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Category   Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}
