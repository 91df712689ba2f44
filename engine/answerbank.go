package engine

import (
	"context"
	"log"
	"math"
	"math/rand"
)

// Synthetic placeholder answer IDs, far outside the range of real rows.
const (
	placeholderKnownID   = uint(math.MaxUint32) - 1
	placeholderUnknownID = uint(math.MaxUint32)
)

// AnswerBank loads and shuffles the answer options for one question at a
// time. It never fails outward: when the store errors or returns nothing
// it hands back a fixed synthetic pair so the run can keep moving, and
// after AnswerFailureThreshold failures for the same question it stops
// calling the store for it entirely.
type AnswerBank struct {
	store    DataStore
	cfg      Config
	failures map[uint]int // per-question failed load count
}

// NewAnswerBank creates an AnswerBank over store.
func NewAnswerBank(store DataStore, cfg Config) *AnswerBank {
	return &AnswerBank{
		store:    store,
		cfg:      cfg.withDefaults(),
		failures: make(map[uint]int),
	}
}

// Load returns the shuffled answers for questionID. The second return is
// true when the result is the synthetic placeholder pair, which callers
// should surface as a non-fatal warning.
func (b *AnswerBank) Load(ctx context.Context, questionID uint) ([]Answer, bool) {
	if b.failures[questionID] >= b.cfg.AnswerFailureThreshold {
		// Degraded question: stop hammering the failing dependency.
		return PlaceholderAnswers(), true
	}

	answers, err := b.store.ListAnswers(ctx, questionID)
	if err != nil || len(answers) == 0 {
		b.failures[questionID]++
		if err != nil {
			log.Printf("[QUIZ-ENGINE] Failed to load answers for question %d (attempt %d): %v",
				questionID, b.failures[questionID], err)
		} else {
			log.Printf("[QUIZ-ENGINE] No answers found for question %d (attempt %d)",
				questionID, b.failures[questionID])
		}
		return PlaceholderAnswers(), true
	}

	shuffled := make([]Answer, len(answers))
	copy(shuffled, answers)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled, false
}

// Degraded reports whether questionID has exhausted its load attempts.
func (b *AnswerBank) Degraded(questionID uint) bool {
	return b.failures[questionID] >= b.cfg.AnswerFailureThreshold
}

// PlaceholderAnswers returns the fixed synthetic pair served when real
// answers cannot be loaded: one 1-point option and one 0-point option.
func PlaceholderAnswers() []Answer {
	return []Answer{
		{ID: placeholderKnownID, Text: "I am familiar with this topic", Points: 1},
		{ID: placeholderUnknownID, Text: "This topic is new to me", Points: 0},
	}
}
