package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesResultAndSkill(t *testing.T) {
	store := newFakeStore()
	p := NewResultPersistence(store, Config{})

	ok := p.Save(context.Background(), 7, QuizRef{QuizID: 3, CategoryID: 9}, 8, 10)

	assert.True(t, ok)
	assert.Equal(t, 1, store.resultCount(7, 3))
	assert.Equal(t, LevelAdvanced, store.skillLevel(7, 9))
	assert.True(t, p.Saved(3))
}

func TestSaveIsIdempotent(t *testing.T) {
	store := newFakeStore()
	p := NewResultPersistence(store, Config{})
	ctx := context.Background()
	ref := QuizRef{QuizID: 3, CategoryID: 9}

	require.True(t, p.Save(ctx, 7, ref, 5, 10))
	opsAfterFirst := len(store.ops)

	// Second save: still success, exactly one row, no further store calls.
	assert.True(t, p.Save(ctx, 7, ref, 5, 10))
	assert.Equal(t, 1, store.resultCount(7, 3))
	assert.Equal(t, opsAfterFirst, len(store.ops))
}

func TestSaveDeletesBeforeInserting(t *testing.T) {
	store := newFakeStore()
	// A row from an earlier run is already present.
	store.results = append(store.results, resultRow{userID: 7, quizID: 3, score: 1, maxScore: 10})

	p := NewResultPersistence(store, Config{})
	require.True(t, p.Save(context.Background(), 7, QuizRef{QuizID: 3, CategoryID: 9}, 6, 10))

	assert.Equal(t, 1, store.resultCount(7, 3))
	assert.Equal(t, []string{"deleteResult", "insertResult", "upsertSkill"}, store.ops)
}

func TestSaveAbortsOnDeleteFailure(t *testing.T) {
	store := newFakeStore()
	store.deleteErr = errors.New("store down")

	p := NewResultPersistence(store, Config{})
	ok := p.Save(context.Background(), 7, QuizRef{QuizID: 3, CategoryID: 9}, 5, 10)

	assert.False(t, ok)
	assert.False(t, p.Saved(3))
	assert.Equal(t, 0, store.resultCount(7, 3))
}

func TestSaveAbortsOnInsertFailure(t *testing.T) {
	store := newFakeStore()
	store.insertErr = errors.New("store down")

	p := NewResultPersistence(store, Config{})
	ok := p.Save(context.Background(), 7, QuizRef{QuizID: 3, CategoryID: 9}, 5, 10)

	assert.False(t, ok)
	assert.False(t, p.Saved(3))
	// Skill record untouched when the result row did not land.
	assert.Empty(t, store.skillLevel(7, 9))
}

func TestSaveSucceedsDespiteSkillUpsertFailure(t *testing.T) {
	store := newFakeStore()
	store.upsertErr = errors.New("store down")

	p := NewResultPersistence(store, Config{})
	ok := p.Save(context.Background(), 7, QuizRef{QuizID: 3, CategoryID: 9}, 5, 10)

	// The result row is authoritative; the quiz still counts as saved.
	assert.True(t, ok)
	assert.True(t, p.Saved(3))
	assert.Equal(t, 1, store.resultCount(7, 3))
}
