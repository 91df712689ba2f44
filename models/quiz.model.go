package models

import "gorm.io/gorm"

// Quiz is the placement quiz for one category.
type Quiz struct {
	gorm.Model
	CategoryID uint   `json:"category_id" gorm:"index;not null"`
	Title      string `json:"title"`
	IsDeleted  bool   `gorm:"default:false"`
}

// Question belongs to a quiz; answers are stored separately.
type Question struct {
	gorm.Model
	QuizID     uint   `json:"quiz_id" gorm:"index;not null"`
	Text       string `json:"text" gorm:"type:text"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// Answer is one option of a question. Points is signed: positive answers
// contribute to the max score, zero or negative ones do not.
type Answer struct {
	gorm.Model
	QuestionID  uint   `json:"question_id" gorm:"index;not null"`
	Text        string `json:"text" gorm:"type:text"`
	Points      int    `json:"points" gorm:"default:0"`
	Explanation string `json:"explanation" gorm:"type:text;default:''"`
	IsDeleted   bool   `gorm:"default:false"`
}
