package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectPoints(t *testing.T) {
	q := Question{
		ID: 1,
		Answers: []Answer{
			{ID: 10, Points: 2},
			{ID: 11, Points: 1},
			{ID: 12, Points: 0},
			{ID: 13, Points: -3},
		},
	}

	tests := []struct {
		name     string
		selected map[uint]bool
		want     int
	}{
		{"nothing selected", map[uint]bool{}, 0},
		{"single correct", map[uint]bool{10: true}, 2},
		{"all positive", map[uint]bool{10: true, 11: true}, 3},
		{"penalty answer goes negative", map[uint]bool{13: true}, -3},
		{"mixed can stay negative", map[uint]bool{11: true, 13: true}, -2},
		{"unknown ids ignored", map[uint]bool{99: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectPoints(q, tt.selected))
		})
	}
}

func TestMaxScore(t *testing.T) {
	q := Question{Answers: []Answer{
		{ID: 1, Points: 2},
		{ID: 2, Points: 1},
		{ID: 3, Points: 0},
		{ID: 4, Points: -5},
	}}
	assert.Equal(t, 3, MaxScore(q))

	assert.Equal(t, 0, MaxScore(Question{}))
}

func TestQuizScoreClampsRunningTotal(t *testing.T) {
	q1 := Question{ID: 1, Answers: []Answer{{ID: 10, Points: -5}, {ID: 11, Points: 1}}}
	q2 := Question{ID: 2, Answers: []Answer{{ID: 20, Points: 3}, {ID: 21, Points: 0}}}
	questions := []Question{q1, q2}

	// A deeply negative first question must not eat into the second
	// question's points: the running total clamps after each question.
	score, maxScore := QuizScore(questions, map[uint]map[uint]bool{
		1: {10: true},
		2: {20: true},
	})
	assert.Equal(t, 3, score)
	assert.Equal(t, 4, maxScore)

	// Every selected answer negative: total stays at zero.
	score, _ = QuizScore(questions, map[uint]map[uint]bool{
		1: {10: true},
	})
	assert.Equal(t, 0, score)
	assert.GreaterOrEqual(t, score, 0)
}

func TestSkillTierBoundaries(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		score    int
		maxScore int
		want     string
	}{
		{"zero score", 0, 10, LevelBeginner},
		{"exactly half", 5, 10, LevelIntermediate},
		{"just under half", 49, 100, LevelBeginner},
		{"exactly eighty percent", 8, 10, LevelAdvanced},
		{"just under eighty percent", 79, 100, LevelIntermediate},
		{"full score", 10, 10, LevelAdvanced},
		{"zero max score never divides", 7, 0, LevelBeginner},
		{"negative max score", 7, -1, LevelBeginner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SkillTier(tt.score, tt.maxScore, cfg))
		})
	}
}

func TestSkillTierCustomCutoffs(t *testing.T) {
	cfg := Config{IntermediateCutoff: 0.30, AdvancedCutoff: 0.60}

	assert.Equal(t, LevelBeginner, SkillTier(2, 10, cfg))
	assert.Equal(t, LevelIntermediate, SkillTier(3, 10, cfg))
	assert.Equal(t, LevelAdvanced, SkillTier(6, 10, cfg))
}
