package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/constants"
	"africrea_backend/internals/features/equipment/equipments/dto"
	"africrea_backend/internals/features/equipment/equipments/model"
	"africrea_backend/internals/features/equipment/equipments/service"
	reservationModel "africrea_backend/internals/features/equipment/reservations/model"
	helper "africrea_backend/internals/helpers"
	"africrea_backend/internals/helpers/dbtime"
)

type EquipmentController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewEquipmentController(db *gorm.DB) *EquipmentController {
	return &EquipmentController{DB: db, validate: helper.NewValidator()}
}

// GET /api/equipment?category=&status=
func (ctl *EquipmentController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.EquipmentModel{})
	if cat := strings.ToUpper(strings.TrimSpace(c.Query("category"))); cat != "" {
		q = q.Where("equipment_category = ?", cat)
	}
	if st := strings.ToUpper(strings.TrimSpace(c.Query("status"))); st != "" {
		q = q.Where("equipment_status = ?", st)
	}

	var items []model.EquipmentModel
	if err := q.Order("equipment_name ASC").Find(&items).Error; err != nil {
		log.WithError(err).Error("list equipment failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load equipment")
	}

	ids := make([]interface{}, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.EquipmentID)
	}

	var upcoming []reservationModel.ReservationModel
	if len(ids) > 0 {
		err := ctl.DB.WithContext(c.UserContext()).
			Preload("User").
			Where("reservation_equipment_id IN ?", ids).
			Where("reservation_status IN ?", []string{
				string(reservationModel.ReservationApproved),
				string(reservationModel.ReservationActive),
			}).
			Where("reservation_end_date >= ?::date", dbtime.Today().Format(dbtime.DateLayout)).
			Find(&upcoming).Error
		if err != nil {
			log.WithError(err).Error("load upcoming reservations failed")
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load equipment")
		}
	}

	next := service.NextByEquipment(upcoming)
	out := make([]dto.EquipmentResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.FromModel(&items[i], next[items[i].EquipmentID]))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// POST /api/admin/equipment
func (ctl *EquipmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateEquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	eq := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(eq).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "serial number already registered")
		}
		status, msg := helper.MapPGError(err)
		log.WithError(err).Error("create equipment failed")
		return helper.JsonError(c, status, msg)
	}

	log.WithFields(log.Fields{
		constants.FldEquipment: eq.EquipmentID,
		constants.FldUser:      c.Locals(helper.LocUserID),
	}).Info("equipment created")
	return helper.JsonCreated(c, "equipment created", dto.FromModel(eq, nil))
}

// PATCH /api/admin/equipment/:id/status
func (ctl *EquipmentController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	var eq model.EquipmentModel
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("equipment_id = ?", id).First(&eq).Error; err != nil {
			return err
		}
		eq.EquipmentStatus = model.EquipmentStatus(req.Status)
		return tx.Model(&eq).Update("equipment_status", eq.EquipmentStatus).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "equipment not found")
		}
		log.WithError(err).WithField(constants.FldEquipment, id).Error("update equipment status failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update equipment")
	}

	log.WithFields(log.Fields{
		constants.FldEquipment: id,
		constants.FldStatus:    eq.EquipmentStatus,
	}).Info("equipment status set manually")
	return helper.JsonUpdated(c, "equipment status updated", dto.FromModel(&eq, nil))
}
