package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/constants"
	"africrea_backend/internals/features/equipment/reservations/dto"
	"africrea_backend/internals/features/equipment/reservations/model"
	"africrea_backend/internals/features/equipment/reservations/repository"
	"africrea_backend/internals/features/equipment/reservations/service"
	helper "africrea_backend/internals/helpers"
)

type ReservationController struct {
	svc      *service.Service
	validate *validator.Validate
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return NewWithService(service.NewService(repository.New(db)))
}

func NewWithService(svc *service.Service) *ReservationController {
	return &ReservationController{svc: svc, validate: helper.NewValidator()}
}

// POST /api/equipment/reservations
func (ctl *ReservationController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	equipmentID, start, end, fieldErrs := req.Parse()
	if fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	res, err := ctl.svc.Request(c.UserContext(), service.RequestInput{
		EquipmentID: equipmentID,
		UserID:      userID,
		StartDate:   start,
		EndDate:     end,
		Purpose:     req.Purpose,
	})
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "reservation requested", dto.FromModel(res))
}

// GET /api/equipment/reservations/mine
func (ctl *ReservationController) Mine(c *fiber.Ctx) error {
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

// DELETE /api/equipment/reservations/:id
func (ctl *ReservationController) CancelOwn(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	res, err := ctl.svc.CancelOwn(c.UserContext(), id, userID)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "reservation cancelled", dto.FromModel(res))
}

// GET /api/admin/reservations?status=&page=&per_page=
func (ctl *ReservationController) List(c *fiber.Ctx) error {
	var f repository.Filter
	if raw := strings.ToUpper(strings.TrimSpace(c.Query("status"))); raw != "" {
		st := model.ReservationStatus(raw)
		if !st.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "unknown status filter")
		}
		f.Status = &st
	}
	p := helper.ResolvePaging(c, 20, 100)
	f.Offset, f.Limit = p.Offset, p.Limit

	rows, total, err := ctl.svc.ListAll(c.UserContext(), f)
	if err != nil {
		return ctl.fail(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows))
	return helper.JsonList(c, "ok", dto.FromModels(rows), &pg)
}

// PATCH /api/admin/reservations/:id/decision
func (ctl *ReservationController) Decide(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	decision := model.ReservationStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	res, err := ctl.svc.Decide(c.UserContext(), id, decision, adminID)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "reservation "+strings.ToLower(string(decision)), dto.FromModel(res))
}

// PATCH /api/admin/reservations/:id/status
func (ctl *ReservationController) Transition(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	to := model.ReservationStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	res, err := ctl.svc.Transition(c.UserContext(), id, to, actorID)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "reservation status updated", dto.FromModel(res))
}

func (ctl *ReservationController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEquipmentNotFound), errors.Is(err, service.ErrReservationNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrReservationConflict),
		errors.Is(err, service.ErrAlreadyDecided),
		errors.Is(err, service.ErrIllegalTransition):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidDecision), errors.Is(err, service.ErrInvalidStatus):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidRange):
		return helper.JsonValidationError(c, map[string][]string{"end_date": {"must not precede start_date"}})
	case errors.Is(err, service.ErrNotOwner):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}

	status, msg := helper.MapPGError(err)
	if status >= fiber.StatusInternalServerError {
		log.WithError(err).WithField(constants.FldRequestID, c.Locals(constants.FldRequestID)).Error("reservation request failed")
	}
	return helper.JsonError(c, status, msg)
}
