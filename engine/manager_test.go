package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerStartReplacesPreviousRun(t *testing.T) {
	store := newFakeStore()
	seedTwoQuestionQuiz(store)
	ctx := context.Background()

	m := NewManager(store, Config{})
	_, err := m.Start(ctx, testUserID, []QuizRef{{QuizID: 1, CategoryID: 9}})
	require.NoError(t, err)

	first, err := m.Get(testUserID)
	require.NoError(t, err)

	_, err = m.Start(ctx, testUserID, []QuizRef{{QuizID: 1, CategoryID: 9}})
	require.NoError(t, err)

	second, err := m.Get(testUserID)
	require.NoError(t, err)

	assert.True(t, first.Closed())
	assert.False(t, second.Closed())
	assert.NotEqual(t, first.RunID(), second.RunID())
	assert.Equal(t, 1, m.Active())
}

func TestManagerStartRejectsEmptyQuizList(t *testing.T) {
	m := NewManager(newFakeStore(), Config{})
	_, err := m.Start(context.Background(), testUserID, nil)
	assert.Error(t, err)
}

func TestManagerGetWithoutRun(t *testing.T) {
	m := NewManager(newFakeStore(), Config{})
	_, err := m.Get(testUserID)
	assert.ErrorIs(t, err, ErrNoActiveRun)
}

func TestSweepEvictsIdleRuns(t *testing.T) {
	store := newFakeStore()
	seedTwoQuestionQuiz(store)

	m := NewManager(store, Config{})
	_, err := m.Start(context.Background(), testUserID, []QuizRef{{QuizID: 1, CategoryID: 9}})
	require.NoError(t, err)

	// Fresh run survives a generous idle cutoff.
	assert.Equal(t, 0, m.Sweep(time.Hour))
	assert.Equal(t, 1, m.Active())

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, m.Sweep(time.Nanosecond))
	assert.Equal(t, 0, m.Active())

	_, err = m.Get(testUserID)
	assert.ErrorIs(t, err, ErrNoActiveRun)
}

func TestSweepEvictsTerminalRunsAfterGrace(t *testing.T) {
	store := newFakeStore()
	// No questions anywhere: the run completes immediately.
	m := NewManager(store, Config{})
	snap, err := m.Start(context.Background(), testUserID, []QuizRef{{QuizID: 1, CategoryID: 9}})
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, snap.Status)

	// Within the grace period the final state stays readable.
	assert.Equal(t, 0, m.Sweep(time.Hour))

	runner, err := m.Get(testUserID)
	require.NoError(t, err)
	runner.mu.Lock()
	runner.lastActivity = time.Now().Add(-2 * time.Minute)
	runner.mu.Unlock()

	assert.Equal(t, 1, m.Sweep(time.Hour))
	assert.Equal(t, 0, m.Active())
	assert.True(t, runner.Closed())
}
