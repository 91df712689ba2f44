package engine

// Pure scoring rules for placement quizzes. The tier cutoffs come from
// Config; nothing else in the codebase may re-derive them.

// SelectPoints returns the summed points of the selected answers of q.
// Negative-point answers contribute their negative value, so the result
// can be below zero; clamping happens at the quiz level, not here.
func SelectPoints(q Question, selected map[uint]bool) int {
	points := 0
	for _, a := range q.Answers {
		if selected[a.ID] {
			points += a.Points
		}
	}
	return points
}

// MaxScore returns the best achievable score for q: the sum of all
// positive answer points.
func MaxScore(q Question) int {
	max := 0
	for _, a := range q.Answers {
		if a.Points > 0 {
			max += a.Points
		}
	}
	return max
}

// QuizScore accumulates score and max score over all questions. The
// running score is clamped to a minimum of 0 after each question; a bad
// question can wipe out earlier points but never push the total negative.
func QuizScore(questions []Question, selections map[uint]map[uint]bool) (score, maxScore int) {
	for _, q := range questions {
		score += SelectPoints(q, selections[q.ID])
		if score < 0 {
			score = 0
		}
		maxScore += MaxScore(q)
	}
	return score, maxScore
}

// SkillTier classifies a quiz score into a difficulty level. A max score
// of zero never divides and always yields BEGINNER.
func SkillTier(score, maxScore int, cfg Config) string {
	cfg = cfg.withDefaults()
	if maxScore <= 0 {
		return LevelBeginner
	}
	pct := float64(score) / float64(maxScore)
	switch {
	case pct >= cfg.AdvancedCutoff:
		return LevelAdvanced
	case pct >= cfg.IntermediateCutoff:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}
