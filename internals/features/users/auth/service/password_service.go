package service

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/constants"
	authHelper "africrea_backend/internals/features/users/auth/helper"
	authRepo "africrea_backend/internals/features/users/auth/repository"
	helper "africrea_backend/internals/helpers"
)

// ========================== CHANGE PASSWORD ==========================
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password"     validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := helper.NewValidator().Struct(input); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	if err := authHelper.ValidatePassword(input.NewPassword); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"new_password": {err.Error()}})
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	tx := db.WithContext(c.UserContext())

	user, err := authRepo.FindUserByID(tx, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if err := authHelper.CheckPasswordHash(user.Password, input.CurrentPassword); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	}

	newHash, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}
	if err := authRepo.UpdateUserPassword(tx, userID, newHash); err != nil {
		log.WithError(err).WithField(constants.FldUser, userID).Error("change password failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonUpdated(c, "Password changed successfully", nil)
}
