package models

import "gorm.io/gorm"

// QuizResult stores the final score of one placement quiz for one user.
// There is deliberately no compound unique index on (user_id, quiz_id);
// uniqueness is maintained by the engine's delete-then-insert write protocol.
type QuizResult struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"index;not null"`
	QuizID   uint `json:"quiz_id" gorm:"index;not null"`
	Score    int  `json:"score"`
	MaxScore int  `json:"max_score"`
}
