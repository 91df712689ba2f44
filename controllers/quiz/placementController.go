package quizController

import (
	"errors"
	"log"

	"lms/database"
	"lms/engine"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// StartPlacement builds the quiz list from the user's saved interests and
// starts a placement run. Categories without an attached quiz are simply
// left out; a previous unfinished run is replaced.
func StartPlacement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var interests []models.UserInterest
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).Find(&interests).Error; err != nil {
		log.Printf("Error fetching interests for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch interests!", nil)
	}
	if len(interests) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Select your interests first!", nil)
	}

	var refs []engine.QuizRef
	for _, interest := range interests {
		var quiz models.Quiz
		err := db.Where("category_id = ? AND is_deleted = ?", interest.CategoryID, false).First(&quiz).Error
		if err != nil {
			continue // category without a placement quiz
		}
		refs = append(refs, engine.QuizRef{QuizID: quiz.ID, CategoryID: interest.CategoryID})
	}
	if len(refs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "None of your interests have a placement quiz yet!", nil)
	}

	snap, err := engine.Sessions.Start(c.UserContext(), userID, refs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start placement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Placement started.", snap)
}

// GetPlacementState returns the snapshot of the active run
func GetPlacementState(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	runner, err := engine.Sessions.Get(userID)
	if errors.Is(err, engine.ErrNoActiveRun) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active placement run!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Placement state fetched.", runner.Snapshot())
}

// SelectAnswer records an answer choice for the current question
func SelectAnswer(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	answerID, ok := c.Locals("validatedAnswerID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	runner, err := engine.Sessions.Get(userID)
	if errors.Is(err, engine.ErrNoActiveRun) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active placement run!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer recorded.", runner.SelectAnswer(c.UserContext(), answerID))
}

// Advance moves past the current question, or past the quiz when it was
// the last question
func Advance(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	runner, err := engine.Sessions.Get(userID)
	if errors.Is(err, engine.ErrNoActiveRun) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active placement run!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Advanced.", runner.Advance(c.UserContext()))
}

// GetSkillLevels lists the user's persisted per-category skill levels
func GetSkillLevels(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var skills []models.UserSkill
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Find(&skills).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch skill levels!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Skill levels fetched.", skills)
}

// GetQuizResults lists the user's persisted quiz results
func GetQuizResults(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var results []models.QuizResult
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&results).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz results fetched.", results)
}
