package engine

import (
	"context"
	"time"
)

// Difficulty levels persisted to user skill records.
const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
)

// Status is the lifecycle state of a placement run.
type Status string

const (
	StatusIdle              Status = "IDLE"
	StatusLoadingQuiz       Status = "LOADING_QUIZ"
	StatusAwaitingAnswer    Status = "AWAITING_ANSWER"
	StatusAdvancingQuestion Status = "ADVANCING_QUESTION"
	StatusAdvancingQuiz     Status = "ADVANCING_QUIZ"
	StatusCompleted         Status = "COMPLETED"
	StatusFailed            Status = "FAILED"
)

// Terminal reports whether no further actions are accepted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// QuizRef identifies one quiz of a run together with its category.
type QuizRef struct {
	QuizID     uint `json:"quiz_id"`
	CategoryID uint `json:"category_id"`
}

// Answer is one selectable option of a question. Points is signed:
// positive answers count toward the max score, zero or negative ones
// do not (negatives act as penalties).
type Answer struct {
	ID          uint   `json:"id"`
	Text        string `json:"text"`
	Points      int    `json:"points"`
	Explanation string `json:"explanation,omitempty"`
}

// Question is one quiz question. Answers is populated lazily when the
// question is entered; IsMultiSelect is classified once at quiz load.
type Question struct {
	ID            uint     `json:"id"`
	Text          string   `json:"text"`
	IsMultiSelect bool     `json:"is_multi_select"`
	Answers       []Answer `json:"answers,omitempty"`
}

// SkillRecord is the persisted difficulty level of a user in a category.
type SkillRecord struct {
	UserID          uint
	CategoryID      uint
	DifficultyLevel string
}

// DataStore is the engine's only view of the backing store. The production
// implementation lives in the database package; tests supply fakes. Any
// call may fail transiently.
type DataStore interface {
	ListQuestions(ctx context.Context, quizID uint) ([]Question, error)
	ListAnswers(ctx context.Context, questionID uint) ([]Answer, error)
	DeleteQuizResult(ctx context.Context, userID, quizID uint) error
	InsertQuizResult(ctx context.Context, userID, quizID uint, score, maxScore int) error
	GetSkillRecord(ctx context.Context, userID, categoryID uint) (*SkillRecord, error)
	UpsertSkillRecord(ctx context.Context, userID, categoryID uint, difficultyLevel string) error
}

// Config carries the engine's tunable constants. Zero values fall back to
// the shipped defaults so tests can construct partial configs.
type Config struct {
	AnswerFailureThreshold int           // failed answer loads before a question is degraded
	LoadFailureThreshold   int           // consecutive quiz-load failures before the run fails
	IntermediateCutoff     float64       // score fraction for INTERMEDIATE
	AdvancedCutoff         float64       // score fraction for ADVANCED
	StoreTimeout           time.Duration // per-action data store timeout (0 = none)
}

// DefaultConfig returns the shipped engine defaults.
func DefaultConfig() Config {
	return Config{
		AnswerFailureThreshold: 3,
		LoadFailureThreshold:   3,
		IntermediateCutoff:     0.50,
		AdvancedCutoff:         0.80,
		StoreTimeout:           10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.AnswerFailureThreshold <= 0 {
		c.AnswerFailureThreshold = def.AnswerFailureThreshold
	}
	if c.LoadFailureThreshold <= 0 {
		c.LoadFailureThreshold = def.LoadFailureThreshold
	}
	if c.IntermediateCutoff <= 0 {
		c.IntermediateCutoff = def.IntermediateCutoff
	}
	if c.AdvancedCutoff <= 0 {
		c.AdvancedCutoff = def.AdvancedCutoff
	}
	return c
}

// Snapshot is the observable state of a run, returned by every action and
// by the state endpoint.
type Snapshot struct {
	RunID             string    `json:"run_id"`
	Status            Status    `json:"status"`
	QuizIndex         int       `json:"quiz_index"`
	QuizCount         int       `json:"quiz_count"`
	CategoryID        uint      `json:"category_id,omitempty"`
	QuizID            uint      `json:"quiz_id,omitempty"`
	QuestionIndex     int       `json:"question_index"`
	QuestionCount     int       `json:"question_count"`
	Question          *Question `json:"question,omitempty"`
	SelectedAnswerIDs []uint    `json:"selected_answer_ids"`
	Score             int       `json:"score"`
	IsLoading         bool      `json:"is_loading"`
	Warnings          []string  `json:"warnings,omitempty"`
}
