package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/constants"
	"africrea_backend/internals/features/users/user/dto"
	"africrea_backend/internals/features/users/user/model"
	helper "africrea_backend/internals/helpers"
)

type UserController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, validate: helper.NewValidator()}
}

const userListColumns = `u.id, u.email, u.first_name, u.last_name, u.role, u.pole, u.is_active, u.created_at,
	(SELECT COUNT(*) FROM submissions s WHERE s.submission_student_id = u.id) AS submissions_count,
	(SELECT COUNT(*) FROM equipment_reservations r WHERE r.reservation_user_id = u.id) AS reservations_count,
	(SELECT COUNT(*) FROM event_registrations er WHERE er.event_registration_user_id = u.id) AS event_registrations_count`

// GET /api/admin/users?role=&pole=&q=&page=&per_page=
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	q := uc.DB.WithContext(c.UserContext()).Table("users AS u")

	if role := strings.ToUpper(strings.TrimSpace(c.Query("role"))); role != "" {
		if !constants.IsValidRole(role) {
			return helper.JsonError(c, fiber.StatusBadRequest, "unknown role filter")
		}
		q = q.Where("u.role = ?", role)
	}
	if pole := strings.ToUpper(strings.TrimSpace(c.Query("pole"))); pole != "" {
		if !constants.IsValidPole(pole) {
			return helper.JsonError(c, fiber.StatusBadRequest, "unknown pole filter")
		}
		q = q.Where("u.pole = ?", pole)
	}
	if term := strings.TrimSpace(c.Query("q")); term != "" {
		like := "%" + term + "%"
		q = q.Where("u.first_name ILIKE ? OR u.last_name ILIKE ? OR u.email ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		log.WithError(err).Error("count users failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load users")
	}

	p := helper.ResolvePaging(c, 20, 100)
	var rows []dto.UserListItem
	err := q.Select(userListColumns).
		Order("u.created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Scan(&rows).Error
	if err != nil {
		log.WithError(err).Error("list users failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load users")
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows))
	return helper.JsonList(c, "ok", rows, &pg)
}

// PATCH /api/admin/users/:id {role?, pole?, is_active?}
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	upd, fieldErrs := req.Changes(constants.IsValidRole, constants.IsValidPole)
	if fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	if len(upd) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "nothing to update")
	}

	user, err := uc.apply(c, id, upd)
	if err != nil {
		return uc.fail(c, err)
	}

	adminID, _ := helper.GetUserIDFromToken(c)
	log.WithFields(log.Fields{
		constants.FldUser: user.ID,
		"by":              adminID,
		constants.FldRole: user.Role,
	}).Info("user updated")
	return helper.JsonUpdated(c, "user updated", user)
}

// PATCH /api/users/me
func (uc *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := uc.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	upd := req.Changes()
	if len(upd) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "nothing to update")
	}

	user, err := uc.apply(c, userID, upd)
	if err != nil {
		return uc.fail(c, err)
	}
	return helper.JsonUpdated(c, "profile updated", user)
}

func (uc *UserController) apply(c *fiber.Ctx, id uuid.UUID, upd map[string]interface{}) (*model.UserModel, error) {
	var user model.UserModel
	err := uc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.UserModel{}).Where("id = ?", id).Updates(upd)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&user, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (uc *UserController) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "user not found")
	}
	status, msg := helper.MapPGError(err)
	if status >= fiber.StatusInternalServerError {
		log.WithError(err).WithField(constants.FldRequestID, c.Locals(constants.FldRequestID)).Error("update user failed")
	}
	return helper.JsonError(c, status, msg)
}
