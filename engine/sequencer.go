package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// quizAttempt is the in-progress state of one quiz within a run. It is
// discarded once its result is saved; only the persisted rows survive.
type quizAttempt struct {
	ref       QuizRef
	questions []Question
	index     int
	score     int // running total, clamped to >= 0 after each question
}

// Runner drives one user's placement run through its quizzes. It owns all
// of its state exclusively; the NavigationGuard is the only serialization
// point, and every externally triggered action goes through it.
type Runner struct {
	userID uint
	runID  string
	cfg    Config
	store  DataStore

	questions *QuestionSet
	answers   *AnswerBank
	results   *ResultPersistence

	guard  NavigationGuard
	closed atomic.Bool // set when the manager replaces or evicts this run

	mu           sync.Mutex // guards the fields below against snapshot reads
	status       Status
	refs         []QuizRef
	quizIndex    int
	attempt      *quizAttempt
	selected     map[uint]bool // selection for the current question only
	loadFailures int           // consecutive quiz-load failures (circuit breaker)
	warnings     []string      // non-fatal notices from the most recent action
	lastActivity time.Time
}

// NewRunner creates an idle runner for one user. Callers normally go
// through the Manager, which enforces one active run per user.
func NewRunner(userID uint, store DataStore, cfg Config) *Runner {
	cfg = cfg.withDefaults()
	return &Runner{
		userID:       userID,
		runID:        uuid.NewString(),
		cfg:          cfg,
		store:        store,
		questions:    NewQuestionSet(store),
		answers:      NewAnswerBank(store, cfg),
		results:      NewResultPersistence(store, cfg),
		status:       StatusIdle,
		selected:     make(map[uint]bool),
		lastActivity: time.Now(),
	}
}

// RunID returns the unique identifier of this run, used by callers to
// detect stale responses from an abandoned run.
func (r *Runner) RunID() string {
	return r.runID
}

// Close marks the runner stale. In-flight actions abandon their mutations
// at the next checkpoint, so a late-arriving load from a replaced run can
// never corrupt anything the caller still observes.
func (r *Runner) Close() {
	r.closed.Store(true)
}

// Closed reports whether the runner has been replaced or evicted.
func (r *Runner) Closed() bool {
	return r.closed.Load()
}

// Start begins the run over refs. Only an idle runner accepts it.
func (r *Runner) Start(ctx context.Context, refs []QuizRef) Snapshot {
	if !r.guard.Enter("start") {
		return r.Snapshot()
	}
	defer r.guard.Exit()

	ctx, cancel := r.actionContext(ctx)
	defer cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.beginAction()

	if r.status != StatusIdle {
		r.warnf("Run already started")
		return r.snapshotLocked()
	}
	r.refs = refs
	r.quizIndex = 0
	r.loadCurrentQuiz(ctx)
	return r.snapshotLocked()
}

// SelectAnswer records a choice for the current question. Single-select
// questions replace the selection; multi-select questions toggle it.
func (r *Runner) SelectAnswer(ctx context.Context, answerID uint) Snapshot {
	if !r.guard.Enter("select answer") {
		return r.Snapshot()
	}
	defer r.guard.Exit()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.beginAction()

	if r.closed.Load() || r.status != StatusAwaitingAnswer || r.attempt == nil {
		return r.snapshotLocked()
	}

	q := r.currentQuestion()
	if q == nil || !answerKnown(q.Answers, answerID) {
		r.warnf("Unknown answer %d for the current question", answerID)
		return r.snapshotLocked()
	}

	if q.IsMultiSelect {
		if r.selected[answerID] {
			delete(r.selected, answerID)
		} else {
			r.selected[answerID] = true
		}
	} else {
		r.selected = map[uint]bool{answerID: true}
	}
	return r.snapshotLocked()
}

// Advance scores the current question and moves to the next question, or
// past the quiz when it was the last one. Dropped unless the run is
// awaiting an answer.
func (r *Runner) Advance(ctx context.Context) Snapshot {
	if !r.guard.Enter("advance") {
		return r.Snapshot()
	}
	defer r.guard.Exit()

	ctx, cancel := r.actionContext(ctx)
	defer cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.beginAction()

	if r.closed.Load() || r.status != StatusAwaitingAnswer || r.attempt == nil {
		return r.snapshotLocked()
	}

	q := r.currentQuestion()
	r.attempt.score += SelectPoints(*q, r.selected)
	if r.attempt.score < 0 {
		r.attempt.score = 0
	}

	if r.attempt.index < len(r.attempt.questions)-1 {
		r.status = StatusAdvancingQuestion
		r.enterQuestion(ctx, r.attempt.index+1)
		if !r.closed.Load() {
			r.status = StatusAwaitingAnswer
		}
		return r.snapshotLocked()
	}

	// Last question: persist the quiz result, then move on.
	r.status = StatusAdvancingQuiz
	maxScore := 0
	for _, qq := range r.attempt.questions {
		maxScore += MaxScore(qq)
	}
	if !r.results.Save(ctx, r.userID, r.attempt.ref, r.attempt.score, maxScore) {
		r.warnf("Could not save your result for this quiz")
	}
	if r.closed.Load() {
		return r.snapshotLocked()
	}

	r.quizIndex++
	r.attempt = nil
	r.loadCurrentQuiz(ctx)
	return r.snapshotLocked()
}

// Snapshot returns the observable state of the run.
func (r *Runner) Snapshot() Snapshot {
	loading := r.guard.Busy()
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.snapshotLocked()
	snap.IsLoading = loading
	return snap
}

// LastActivity returns when the run last processed an action.
func (r *Runner) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActivity
}

// Status returns the current run status.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// loadCurrentQuiz walks forward from quizIndex until a non-empty quiz is
// loaded, the list is exhausted (Completed), or the consecutive-failure
// breaker trips (Failed). Empty quizzes are skipped without ever being
// exposed to the caller.
func (r *Runner) loadCurrentQuiz(ctx context.Context) {
	for {
		if r.closed.Load() {
			return
		}
		if r.quizIndex >= len(r.refs) {
			r.status = StatusCompleted
			r.attempt = nil
			log.Printf("[QUIZ-ENGINE] Run %s completed for user %d", r.runID, r.userID)
			return
		}

		r.status = StatusLoadingQuiz
		ref := r.refs[r.quizIndex]
		questions, err := r.questions.Load(ctx, ref.QuizID)
		if err != nil {
			r.loadFailures++
			log.Printf("[QUIZ-ENGINE] Quiz %d load failed (%d consecutive): %v", ref.QuizID, r.loadFailures, err)
			if r.loadFailures >= r.cfg.LoadFailureThreshold {
				r.status = StatusFailed
				r.attempt = nil
				r.warnf("Quizzes are unavailable right now, please try again later")
				return
			}
			continue
		}
		r.loadFailures = 0

		if len(questions) == 0 {
			r.quizIndex++
			continue
		}

		r.attempt = &quizAttempt{ref: ref, questions: questions}
		r.enterQuestion(ctx, 0)
		if r.closed.Load() {
			return
		}
		r.status = StatusAwaitingAnswer
		return
	}
}

// enterQuestion loads (and shuffles) the answers for questions[i] and
// resets the selection state. Answer loading never fails; at worst the
// question degrades to the synthetic placeholder pair.
func (r *Runner) enterQuestion(ctx context.Context, i int) {
	r.attempt.index = i
	q := &r.attempt.questions[i]
	answers, synthetic := r.answers.Load(ctx, q.ID)
	if r.closed.Load() {
		return
	}
	q.Answers = answers
	r.selected = make(map[uint]bool)
	if synthetic {
		r.warnf("Answers for this question could not be loaded; showing a fallback")
	}
}

func (r *Runner) currentQuestion() *Question {
	if r.attempt == nil || r.attempt.index >= len(r.attempt.questions) {
		return nil
	}
	return &r.attempt.questions[r.attempt.index]
}

// beginAction resets per-action bookkeeping. Callers hold r.mu.
func (r *Runner) beginAction() {
	r.warnings = nil
	r.lastActivity = time.Now()
}

func (r *Runner) warnf(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// actionContext bounds every store call of one action so a hung load
// turns into an ordinary load failure for the circuit breaker instead of
// leaving the run busy forever.
func (r *Runner) actionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.cfg.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.cfg.StoreTimeout)
}

func (r *Runner) snapshotLocked() Snapshot {
	snap := Snapshot{
		RunID:             r.runID,
		Status:            r.status,
		QuizIndex:         r.quizIndex,
		QuizCount:         len(r.refs),
		SelectedAnswerIDs: []uint{},
		Warnings:          r.warnings,
	}
	if r.attempt != nil {
		snap.CategoryID = r.attempt.ref.CategoryID
		snap.QuizID = r.attempt.ref.QuizID
		snap.QuestionIndex = r.attempt.index
		snap.QuestionCount = len(r.attempt.questions)
		snap.Score = r.attempt.score
		if q := r.currentQuestion(); q != nil {
			qCopy := *q
			snap.Question = &qCopy
		}
		for id := range r.selected {
			snap.SelectedAnswerIDs = append(snap.SelectedAnswerIDs, id)
		}
	}
	return snap
}

func answerKnown(answers []Answer, id uint) bool {
	for _, a := range answers {
		if a.ID == id {
			return true
		}
	}
	return false
}
