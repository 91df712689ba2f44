package quizRoutes

import (
	quizControllers "lms/controllers/quiz"
	"lms/middleware"
	quizValidators "lms/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// SetupQuizRoutes sets up the placement quiz routes
func SetupQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/placement")

	quizGroup.Post("/start", middleware.JWTMiddleware, quizControllers.StartPlacement)
	quizGroup.Get("/state", middleware.JWTMiddleware, quizControllers.GetPlacementState)
	quizGroup.Post("/select", middleware.JWTMiddleware, quizValidators.SelectAnswer(), quizControllers.SelectAnswer)
	quizGroup.Post("/advance", middleware.JWTMiddleware, quizControllers.Advance)
	quizGroup.Get("/skills", middleware.JWTMiddleware, quizControllers.GetSkillLevels)
	quizGroup.Get("/results", middleware.JWTMiddleware, quizControllers.GetQuizResults)
}
