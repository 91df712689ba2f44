package quizValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SelectAnswer validator middleware
func SelectAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			AnswerID uint `json:"answer_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.AnswerID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"answer_id": "Answer id is required!",
			})
		}

		c.Locals("validatedAnswerID", reqData.AnswerID)
		return c.Next()
	}
}
