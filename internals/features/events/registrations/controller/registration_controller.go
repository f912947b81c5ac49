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
	"africrea_backend/internals/features/events/registrations/dto"
	"africrea_backend/internals/features/events/registrations/model"
	"africrea_backend/internals/features/events/registrations/repository"
	"africrea_backend/internals/features/events/registrations/service"
	helper "africrea_backend/internals/helpers"
)

type RegistrationController struct {
	svc      *service.Service
	validate *validator.Validate
}

func NewRegistrationController(db *gorm.DB) *RegistrationController {
	return NewWithService(service.NewService(repository.New(db)))
}

func NewWithService(svc *service.Service) *RegistrationController {
	return &RegistrationController{svc: svc, validate: helper.NewValidator()}
}

// POST /api/events/registrations
func (ctl *RegistrationController) Register(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	reg, err := ctl.svc.Register(c.UserContext(), uuid.MustParse(req.EventID), userID)
	if err != nil {
		return ctl.fail(c, err)
	}
	msg := "registration confirmed"
	if reg.EventRegistrationStatus == model.RegistrationWaitlist {
		msg = "event is full, you are on the waitlist"
	}
	return helper.JsonCreated(c, msg, dto.FromModel(reg))
}

// DELETE /api/events/registrations?event_id=
func (ctl *RegistrationController) Unregister(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	raw := strings.TrimSpace(c.Query("event_id"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id is required")
	}
	eventID, err := uuid.Parse(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid event_id")
	}

	if err := ctl.svc.Unregister(c.UserContext(), eventID, userID); err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonDeleted(c, "registration cancelled", fiber.Map{"event_id": eventID})
}

// GET /api/events/registrations/mine
func (ctl *RegistrationController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	rows, err := ctl.svc.ListMine(c.UserContext(), userID)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

// GET /api/admin/events/:id/registrations
func (ctl *RegistrationController) ByEvent(c *fiber.Ctx) error {
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	rows, err := ctl.svc.ListByEvent(c.UserContext(), eventID)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

// POST /api/admin/events/:id/waitlist/promote
func (ctl *RegistrationController) PromoteWaitlist(c *fiber.Ctx) error {
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	promoted, err := ctl.svc.PromoteWaitlist(c.UserContext(), eventID)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "waitlist processed", fiber.Map{
		"promoted_count": len(promoted),
		"promoted":       dto.FromModels(promoted),
	})
}

func (ctl *RegistrationController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrRegistrationNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyRegistered):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}

	status, msg := helper.MapPGError(err)
	if status >= fiber.StatusInternalServerError {
		log.WithError(err).WithField(constants.FldRequestID, c.Locals(constants.FldRequestID)).Error("registration request failed")
	}
	return helper.JsonError(c, status, msg)
}
