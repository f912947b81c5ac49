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
	"africrea_backend/internals/features/events/events/dto"
	"africrea_backend/internals/features/events/events/model"
	helper "africrea_backend/internals/helpers"
)

type EventController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db, validate: helper.NewValidator()}
}

func (ctl *EventController) loadCounts(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]dto.Counts, error) {
	out := make(map[uuid.UUID]dto.Counts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []dto.Counts
	err := db.Raw(`
		SELECT event_registration_event_id AS event_id,
		       COUNT(*) FILTER (WHERE event_registration_status = 'CONFIRMED') AS confirmed,
		       COUNT(*) FILTER (WHERE event_registration_status = 'WAITLIST')  AS waitlist
		FROM event_registrations
		WHERE event_registration_event_id IN ?
		GROUP BY event_registration_event_id`, ids).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.EventID] = r
	}
	return out, nil
}

// GET /api/events?type=&upcoming=true
func (ctl *EventController) List(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	q := db.Preload("Creator")
	if t := strings.ToUpper(strings.TrimSpace(c.Query("type"))); t != "" {
		q = q.Where("event_type = ?", t)
	}
	if c.QueryBool("upcoming") {
		q = q.Where("event_date >= NOW()")
	}

	var events []model.EventModel
	if err := q.Order("event_date ASC").Find(&events).Error; err != nil {
		log.WithError(err).Error("list events failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load events")
	}

	ids := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.EventID)
	}
	counts, err := ctl.loadCounts(db, ids)
	if err != nil {
		log.WithError(err).Error("count registrations failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load events")
	}

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, dto.FromModel(&events[i], counts[events[i].EventID]))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// GET /api/events/:id
func (ctl *EventController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	db := ctl.DB.WithContext(c.UserContext())

	var ev model.EventModel
	if err := db.Preload("Creator").Where("event_id = ?", id).First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "event not found")
		}
		log.WithError(err).WithField(constants.FldEvent, id).Error("load event failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load event")
	}
	counts, err := ctl.loadCounts(db, []uuid.UUID{id})
	if err != nil {
		log.WithError(err).WithField(constants.FldEvent, id).Error("count registrations failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load event")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&ev, counts[id]))
}

// POST /api/admin/events
func (ctl *EventController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	ev, fieldErrs := req.ToModel(userID)
	if fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	if err := ctl.DB.WithContext(c.UserContext()).Omit("Creator").Create(ev).Error; err != nil {
		status, msg := helper.MapPGError(err)
		log.WithError(err).Error("create event failed")
		return helper.JsonError(c, status, msg)
	}

	log.WithFields(log.Fields{
		constants.FldEvent: ev.EventID,
		constants.FldUser:  userID,
	}).Info("event created")
	return helper.JsonCreated(c, "event created", dto.FromModel(ev, dto.Counts{}))
}
