package engine

import (
	"context"
	"sync"
)

// resultRow mirrors one persisted quiz result in the fake store.
type resultRow struct {
	userID, quizID  uint
	score, maxScore int
}

// fakeStore is an in-memory DataStore with per-method error injection and
// call counting. Safe for concurrent use so guard tests can hammer it.
type fakeStore struct {
	mu sync.Mutex

	questions map[uint][]Question // quizID -> questions
	answers   map[uint][]Answer   // questionID -> answers

	questionErr error
	answerErr   error
	deleteErr   error
	insertErr   error
	getSkillErr error
	upsertErr   error

	questionCalls int
	answerCalls   map[uint]int
	ops           []string // chronological op log

	results []resultRow
	skills  map[[2]uint]string // (userID, categoryID) -> level

	// answerGate, when set, blocks ListAnswers until released. Used to
	// hold a load in flight for guard tests.
	answerGate chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		questions:   make(map[uint][]Question),
		answers:     make(map[uint][]Answer),
		answerCalls: make(map[uint]int),
		skills:      make(map[[2]uint]string),
	}
}

func (s *fakeStore) logOp(op string) {
	s.ops = append(s.ops, op)
}

func (s *fakeStore) ListQuestions(ctx context.Context, quizID uint) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questionCalls++
	s.logOp("listQuestions")
	if s.questionErr != nil {
		return nil, s.questionErr
	}
	qs := make([]Question, len(s.questions[quizID]))
	copy(qs, s.questions[quizID])
	return qs, nil
}

func (s *fakeStore) ListAnswers(ctx context.Context, questionID uint) ([]Answer, error) {
	s.mu.Lock()
	gate := s.answerGate
	s.answerCalls[questionID]++
	s.logOp("listAnswers")
	err := s.answerErr
	answers := make([]Answer, len(s.answers[questionID]))
	copy(answers, s.answers[questionID])
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (s *fakeStore) DeleteQuizResult(ctx context.Context, userID, quizID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logOp("deleteResult")
	if s.deleteErr != nil {
		return s.deleteErr
	}
	kept := s.results[:0]
	for _, row := range s.results {
		if row.userID != userID || row.quizID != quizID {
			kept = append(kept, row)
		}
	}
	s.results = kept
	return nil
}

func (s *fakeStore) InsertQuizResult(ctx context.Context, userID, quizID uint, score, maxScore int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logOp("insertResult")
	if s.insertErr != nil {
		return s.insertErr
	}
	s.results = append(s.results, resultRow{userID: userID, quizID: quizID, score: score, maxScore: maxScore})
	return nil
}

func (s *fakeStore) GetSkillRecord(ctx context.Context, userID, categoryID uint) (*SkillRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logOp("getSkill")
	if s.getSkillErr != nil {
		return nil, s.getSkillErr
	}
	level, ok := s.skills[[2]uint{userID, categoryID}]
	if !ok {
		return nil, nil
	}
	return &SkillRecord{UserID: userID, CategoryID: categoryID, DifficultyLevel: level}, nil
}

func (s *fakeStore) UpsertSkillRecord(ctx context.Context, userID, categoryID uint, difficultyLevel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logOp("upsertSkill")
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.skills[[2]uint{userID, categoryID}] = difficultyLevel
	return nil
}

func (s *fakeStore) resultCount(userID, quizID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, row := range s.results {
		if row.userID == userID && row.quizID == quizID {
			count++
		}
	}
	return count
}

func (s *fakeStore) answerCallCount(questionID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answerCalls[questionID]
}

func (s *fakeStore) skillLevel(userID, categoryID uint) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skills[[2]uint{userID, categoryID}]
}
