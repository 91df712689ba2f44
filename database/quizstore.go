package database

import (
	"context"
	"errors"

	"lms/engine"
	"lms/models"

	"gorm.io/gorm"
)

// QuizStore is the production engine.DataStore backed by GORM. It hides
// soft-deleted rows and keeps the engine free of any GORM types.
type QuizStore struct {
	db *gorm.DB
}

// NewQuizStore creates a QuizStore over db.
func NewQuizStore(db *gorm.DB) *QuizStore {
	return &QuizStore{db: db}
}

// ListQuestions returns the questions of a quiz in authoring order,
// without answers.
func (s *QuizStore) ListQuestions(ctx context.Context, quizID uint) ([]engine.Question, error) {
	var rows []models.Question
	err := s.db.WithContext(ctx).
		Where("quiz_id = ? AND is_deleted = ?", quizID, false).
		Order("order_index, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	questions := make([]engine.Question, len(rows))
	for i, row := range rows {
		questions[i] = engine.Question{ID: row.ID, Text: row.Text}
	}
	return questions, nil
}

// ListAnswers returns the answer options of a question.
func (s *QuizStore) ListAnswers(ctx context.Context, questionID uint) ([]engine.Answer, error) {
	var rows []models.Answer
	err := s.db.WithContext(ctx).
		Where("question_id = ? AND is_deleted = ?", questionID, false).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	answers := make([]engine.Answer, len(rows))
	for i, row := range rows {
		answers[i] = engine.Answer{
			ID:          row.ID,
			Text:        row.Text,
			Points:      row.Points,
			Explanation: row.Explanation,
		}
	}
	return answers, nil
}

// DeleteQuizResult removes any existing result rows for (user, quiz).
// Part of the delete-then-insert protocol that keeps at most one row per
// pair without a unique constraint.
func (s *QuizStore) DeleteQuizResult(ctx context.Context, userID, quizID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Delete(&models.QuizResult{}).Error
}

// InsertQuizResult writes a fresh result row.
func (s *QuizStore) InsertQuizResult(ctx context.Context, userID, quizID uint, score, maxScore int) error {
	result := models.QuizResult{
		UserID:   userID,
		QuizID:   quizID,
		Score:    score,
		MaxScore: maxScore,
	}
	return s.db.WithContext(ctx).Create(&result).Error
}

// GetSkillRecord returns the skill record for (user, category), or nil
// when none exists.
func (s *QuizStore) GetSkillRecord(ctx context.Context, userID, categoryID uint) (*engine.SkillRecord, error) {
	var row models.UserSkill
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ? AND is_deleted = ?", userID, categoryID, false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &engine.SkillRecord{
		UserID:          row.UserID,
		CategoryID:      row.CategoryID,
		DifficultyLevel: row.DifficultyLevel,
	}, nil
}

// UpsertSkillRecord updates the existing skill row for (user, category)
// or inserts a new one, keeping at most one row per pair.
func (s *QuizStore) UpsertSkillRecord(ctx context.Context, userID, categoryID uint, difficultyLevel string) error {
	db := s.db.WithContext(ctx)

	var row models.UserSkill
	err := db.Where("user_id = ? AND category_id = ? AND is_deleted = ?", userID, categoryID, false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&models.UserSkill{
			UserID:          userID,
			CategoryID:      categoryID,
			DifficultyLevel: difficultyLevel,
		}).Error
	}
	if err != nil {
		return err
	}

	row.DifficultyLevel = difficultyLevel
	return db.Save(&row).Error
}
