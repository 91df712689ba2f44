package userProfileRoutes

import (
	userProfileController "lms/controllers/userControllers"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userProfileController.GetProfile)
	userGroup.Patch("/profile", middleware.JWTMiddleware, userProfileController.UpdateProfile)
	userGroup.Post("/interests", middleware.JWTMiddleware, userProfileController.SelectInterests)
	userGroup.Get("/interests", middleware.JWTMiddleware, userProfileController.GetInterests)
}
