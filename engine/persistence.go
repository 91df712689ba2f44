package engine

import (
	"context"
	"log"
)

// ResultPersistence writes a quiz attempt's score and the derived skill
// level to the store, exactly once per quiz per run.
//
// The store has no compound unique constraint on (user, quiz), so the
// result row is written delete-then-insert, and the savedQuizIDs set
// guards against a second write from the same run.
type ResultPersistence struct {
	store DataStore
	cfg   Config
	saved map[uint]bool // quiz IDs already persisted this run
}

// NewResultPersistence creates a ResultPersistence over store.
func NewResultPersistence(store DataStore, cfg Config) *ResultPersistence {
	return &ResultPersistence{
		store: store,
		cfg:   cfg.withDefaults(),
		saved: make(map[uint]bool),
	}
}

// Save persists the quiz result and upserts the category skill record.
// It reports whether the result row landed. Already-saved quizzes are a
// no-op returning true.
//
// A failure writing the result row aborts the save. A failure upserting
// the skill record is only logged: the result row is authoritative and
// the quiz still counts as saved.
func (p *ResultPersistence) Save(ctx context.Context, userID uint, ref QuizRef, score, maxScore int) bool {
	if p.saved[ref.QuizID] {
		return true
	}

	if err := p.store.DeleteQuizResult(ctx, userID, ref.QuizID); err != nil {
		log.Printf("[QUIZ-ENGINE] Failed to clear previous result (user %d, quiz %d): %v", userID, ref.QuizID, err)
		return false
	}
	if err := p.store.InsertQuizResult(ctx, userID, ref.QuizID, score, maxScore); err != nil {
		log.Printf("[QUIZ-ENGINE] Failed to insert result (user %d, quiz %d): %v", userID, ref.QuizID, err)
		return false
	}

	// The skill upsert is read-update-or-insert inside the store, keeping
	// at most one row per (user, category).
	level := SkillTier(score, maxScore, p.cfg)
	if err := p.store.UpsertSkillRecord(ctx, userID, ref.CategoryID, level); err != nil {
		log.Printf("[QUIZ-ENGINE] Result saved but skill level not updated (user %d, category %d): %v",
			userID, ref.CategoryID, err)
	}

	p.saved[ref.QuizID] = true
	return true
}

// Saved reports whether quizID has been persisted in this run.
func (p *ResultPersistence) Saved(quizID uint) bool {
	return p.saved[quizID]
}
