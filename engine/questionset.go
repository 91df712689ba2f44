package engine

import (
	"context"
	"fmt"
	"log"
)

// QuestionSet loads the ordered question list for one quiz and classifies
// each question as single- or multi-select.
type QuestionSet struct {
	store DataStore
}

// NewQuestionSet creates a QuestionSet over store.
func NewQuestionSet(store DataStore) *QuestionSet {
	return &QuestionSet{store: store}
}

// Load fetches the questions for quizID. An empty slice with a nil error
// means the quiz has no questions and should be skipped, not failed.
//
// Each question's IsMultiSelect flag is derived once here, from how many
// of its answers carry positive points: more than one means multi-select.
// The flag is never re-derived from user behavior later.
func (s *QuestionSet) Load(ctx context.Context, quizID uint) ([]Question, error) {
	questions, err := s.store.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions for quiz %d: %w", quizID, err)
	}
	if len(questions) == 0 {
		return []Question{}, nil
	}

	for i := range questions {
		questions[i].IsMultiSelect = s.classify(ctx, questions[i].ID)
	}
	return questions, nil
}

// classify counts positive-point answers for one question. A failed
// answer fetch classifies the question single-select, matching the
// placeholder pair it will degrade to.
func (s *QuestionSet) classify(ctx context.Context, questionID uint) bool {
	answers, err := s.store.ListAnswers(ctx, questionID)
	if err != nil {
		log.Printf("[QUIZ-ENGINE] Could not classify question %d, defaulting to single-select: %v", questionID, err)
		return false
	}
	positive := 0
	for _, a := range answers {
		if a.Points > 0 {
			positive++
		}
	}
	return positive > 1
}
