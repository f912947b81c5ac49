package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/configs"
	"africrea_backend/internals/constants"
	authHelper "africrea_backend/internals/features/users/auth/helper"
	authRepo "africrea_backend/internals/features/users/auth/repository"
	userModel "africrea_backend/internals/features/users/user/model"
	helpers "africrea_backend/internals/helpers"
)

type RegisterInput struct {
	FirstName string  `json:"first_name" validate:"required,max=80"`
	LastName  string  `json:"last_name"  validate:"required,max=80"`
	Email     string  `json:"email"      validate:"required,email,max=255"`
	Password  string  `json:"password"   validate:"required"`
	Pole      *string `json:"pole"       validate:"omitempty,oneof=GRAPHISME AUDIOVISUEL ANIMATION_3D"`
}

func (in *RegisterInput) Normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = authHelper.NormalizeEmail(in.Email)
	if in.Pole != nil {
		p := strings.ToUpper(strings.TrimSpace(*in.Pole))
		if p == "" {
			in.Pole = nil
		} else {
			in.Pole = &p
		}
	}
}

// ToUser builds a STUDENT account; passwordHash is already bcrypt-hashed.
func (in RegisterInput) ToUser(passwordHash string) *userModel.UserModel {
	return &userModel.UserModel{
		ID:        uuid.New(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  passwordHash,
		Role:      constants.RoleStudent,
		Pole:      in.Pole,
		IsActive:  true,
	}
}

// ========================== REGISTER ==========================
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Normalize()
	if err := helpers.NewValidator().Struct(input); err != nil {
		return helpers.JsonValidationError(c, helpers.ValidationErrors(err))
	}
	if err := authHelper.ValidatePassword(input.Password); err != nil {
		return helpers.JsonValidationError(c, map[string][]string{"password": {err.Error()}})
	}

	tx := db.WithContext(c.UserContext())
	taken, err := authRepo.EmailTaken(tx, input.Email)
	if err != nil {
		log.WithError(err).Error("register: email lookup failed")
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}
	if taken {
		return helpers.JsonError(c, fiber.StatusBadRequest, "email already used")
	}

	hash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := input.ToUser(hash)
	if err := authRepo.CreateUser(tx, user); err != nil {
		if helpers.IsUniqueViolation(err) {
			return helpers.JsonError(c, fiber.StatusBadRequest, "email already used")
		}
		log.WithError(err).Error("register: create user failed")
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	log.WithField(constants.FldUser, user.ID).Info("user registered")
	return helpers.JsonCreated(c, "Registration successful", user)
}

// ========================== ME ==========================
func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(db.WithContext(c.UserContext()), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		log.WithError(err).WithField(constants.FldUser, userID).Error("me: load user failed")
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	return helpers.JsonOK(c, "ok", user)
}

// ========================== LOGOUT ==========================
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	token, _ := c.Locals(helpers.LocToken).(string)
	if token == "" {
		return helpers.JsonOK(c, "Logout successful", nil)
	}

	until := blacklistUntil(c.Locals("token_exp"), time.Now().UTC(), configs.AppConfig.TokenBlacklistTTLDays)
	if err := authRepo.BlacklistToken(db.WithContext(c.UserContext()), token, until); err != nil {
		log.WithError(err).Warn("logout: blacklist token failed")
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Logout failed")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helpers.JsonOK(c, "Logout successful", nil)
}

// blacklistUntil keeps the token blacklisted until it expires; tokens without
// a readable exp stay for ttlDays.
func blacklistUntil(exp interface{}, now time.Time, ttlDays int) time.Time {
	if t, ok := exp.(time.Time); ok && t.After(now) {
		return t.Add(time.Minute)
	}
	if ttlDays <= 0 {
		ttlDays = 7
	}
	return now.Add(time.Duration(ttlDays) * 24 * time.Hour)
}
