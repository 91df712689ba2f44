package userController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// GetProfile returns the logged-in user's profile
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched.", user)
}

// UpdateProfile updates mutable profile fields
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Name         string `json:"name" validate:"omitempty,min=3,max=100"`
		ProfileImage string `json:"profile_image" validate:"omitempty,url"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if err := validate.Struct(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.ProfileImage != "" {
		user.ProfileImage = reqData.ProfileImage
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error updating profile for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated.", user)
}

// SelectInterests replaces the user's interest set with the given
// categories. Finishing interest selection is what makes placement
// quizzes available, so the category IDs are checked against live rows.
func SelectInterests(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		CategoryIDs []uint `json:"category_ids" validate:"required,min=1,dive,gt=0"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if err := validate.Struct(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Select at least one category!", nil)
	}

	db := database.Database.Db

	var count int64
	db.Model(&models.Category{}).
		Where("id IN ? AND is_deleted = ?", reqData.CategoryIDs, false).
		Count(&count)
	if count != int64(len(reqData.CategoryIDs)) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "One or more categories do not exist!", nil)
	}

	// Replace the previous set
	if err := db.Where("user_id = ?", userID).Delete(&models.UserInterest{}).Error; err != nil {
		log.Printf("Error clearing interests for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save interests!", nil)
	}

	interests := make([]models.UserInterest, len(reqData.CategoryIDs))
	for i, categoryID := range reqData.CategoryIDs {
		interests[i] = models.UserInterest{UserID: userID, CategoryID: categoryID}
	}
	if err := db.Create(&interests).Error; err != nil {
		log.Printf("Error saving interests for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save interests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Interests saved.", interests)
}

// GetInterests lists the user's selected categories
func GetInterests(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var interests []models.UserInterest
	if err := database.Database.Db.
		Preload("Category").
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Find(&interests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch interests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Interests fetched.", interests)
}
