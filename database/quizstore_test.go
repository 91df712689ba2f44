package database

import (
	"context"
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.QuizResult{},
		&models.UserSkill{},
	))
	return db
}

func TestListQuestionsOrdersAndFilters(t *testing.T) {
	db := openTestDB(t)
	store := NewQuizStore(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Question{QuizID: 1, Text: "second", OrderIndex: 2}).Error)
	require.NoError(t, db.Create(&models.Question{QuizID: 1, Text: "first", OrderIndex: 1}).Error)
	require.NoError(t, db.Create(&models.Question{QuizID: 1, Text: "removed", OrderIndex: 3, IsDeleted: true}).Error)
	require.NoError(t, db.Create(&models.Question{QuizID: 2, Text: "other quiz", OrderIndex: 1}).Error)

	questions, err := store.ListQuestions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "first", questions[0].Text)
	assert.Equal(t, "second", questions[1].Text)
}

func TestListAnswersFiltersDeleted(t *testing.T) {
	db := openTestDB(t)
	store := NewQuizStore(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Answer{QuestionID: 5, Text: "yes", Points: 2, Explanation: "because"}).Error)
	require.NoError(t, db.Create(&models.Answer{QuestionID: 5, Text: "no", Points: -1}).Error)
	require.NoError(t, db.Create(&models.Answer{QuestionID: 5, Text: "gone", IsDeleted: true}).Error)

	answers, err := store.ListAnswers(ctx, 5)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "yes", answers[0].Text)
	assert.Equal(t, 2, answers[0].Points)
	assert.Equal(t, "because", answers[0].Explanation)
	assert.Equal(t, -1, answers[1].Points)
}

func TestResultRewriteKeepsOneRow(t *testing.T) {
	db := openTestDB(t)
	store := NewQuizStore(db)
	ctx := context.Background()

	require.NoError(t, store.InsertQuizResult(ctx, 7, 1, 3, 10))

	// Rewrite with the delete-then-insert protocol.
	require.NoError(t, store.DeleteQuizResult(ctx, 7, 1))
	require.NoError(t, store.InsertQuizResult(ctx, 7, 1, 8, 10))

	var rows []models.QuizResult
	require.NoError(t, db.Where("user_id = ? AND quiz_id = ?", 7, 1).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 8, rows[0].Score)
	assert.Equal(t, 10, rows[0].MaxScore)
}

func TestDeleteQuizResultLeavesOtherUsersAlone(t *testing.T) {
	db := openTestDB(t)
	store := NewQuizStore(db)
	ctx := context.Background()

	require.NoError(t, store.InsertQuizResult(ctx, 7, 1, 3, 10))
	require.NoError(t, store.InsertQuizResult(ctx, 8, 1, 5, 10))
	require.NoError(t, store.DeleteQuizResult(ctx, 7, 1))

	var count int64
	require.NoError(t, db.Model(&models.QuizResult{}).Where("user_id = ?", 8).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetSkillRecordAbsentIsNil(t *testing.T) {
	store := NewQuizStore(openTestDB(t))

	record, err := store.GetSkillRecord(context.Background(), 7, 9)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestUpsertSkillRecordInsertsThenUpdates(t *testing.T) {
	db := openTestDB(t)
	store := NewQuizStore(db)
	ctx := context.Background()

	require.NoError(t, store.UpsertSkillRecord(ctx, 7, 9, "BEGINNER"))
	require.NoError(t, store.UpsertSkillRecord(ctx, 7, 9, "ADVANCED"))

	var rows []models.UserSkill
	require.NoError(t, db.Where("user_id = ? AND category_id = ?", 7, 9).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "ADVANCED", rows[0].DifficultyLevel)

	record, err := store.GetSkillRecord(ctx, 7, 9)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "ADVANCED", record.DifficultyLevel)
}
