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
	"africrea_backend/internals/features/projects/projects/dto"
	"africrea_backend/internals/features/projects/projects/model"
	"africrea_backend/internals/features/projects/projects/repository"
	"africrea_backend/internals/features/projects/projects/service"
	helper "africrea_backend/internals/helpers"
)

type ProjectController struct {
	DB       *gorm.DB
	svc      *service.Service
	validate *validator.Validate
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{
		DB:       db,
		svc:      service.NewService(repository.New(db)),
		validate: helper.NewValidator(),
	}
}

// GET /api/projects?status=&type=
func (ctl *ProjectController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).
		Preload("Creator").
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("participant_created_at ASC")
		}).
		Preload("Participants.User")
	if st := strings.ToUpper(strings.TrimSpace(c.Query("status"))); st != "" {
		q = q.Where("project_status = ?", st)
	}
	if t := strings.ToUpper(strings.TrimSpace(c.Query("type"))); t != "" {
		q = q.Where("project_type = ?", t)
	}

	var items []model.ProjectModel
	if err := q.Order("project_created_at DESC").Find(&items).Error; err != nil {
		log.WithError(err).Error("list projects failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load projects")
	}

	out := make([]dto.ProjectResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.FromModel(&items[i]))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// POST /api/admin/projects
func (ctl *ProjectController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	p, fieldErrs := req.ToModel(userID)
	if fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	if err := ctl.DB.WithContext(c.UserContext()).Omit("Creator", "Participants").Create(p).Error; err != nil {
		status, msg := helper.MapPGError(err)
		log.WithError(err).Error("create project failed")
		return helper.JsonError(c, status, msg)
	}

	log.WithFields(log.Fields{
		constants.FldProject: p.ProjectID,
		constants.FldUser:    userID,
	}).Info("project created")
	return helper.JsonCreated(c, "project created", dto.FromModel(p))
}

// POST /api/projects/applications
func (ctl *ProjectController) Apply(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	part, err := ctl.svc.Apply(c.UserContext(), uuid.MustParse(req.ProjectID), userID, req.Message)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "application sent", dto.ParticipantFromModel(part))
}

// PATCH /api/admin/projects/:id/participants/:userId {status}
func (ctl *ProjectController) Decide(c *fiber.Ctx) error {
	projectID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	userID, err := helper.ParseUUIDParam(c, "userId")
	if err != nil {
		return err
	}

	var req dto.DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	decision := model.ParticipantStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	part, err := ctl.svc.Decide(c.UserContext(), projectID, userID, decision)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "application "+strings.ToLower(string(decision)), dto.ParticipantFromModel(part))
}

func (ctl *ProjectController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProjectNotFound), errors.Is(err, service.ErrApplicationNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyApplied),
		errors.Is(err, service.ErrAlreadyDecided),
		errors.Is(err, service.ErrProjectFull):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidDecision):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	status, msg := helper.MapPGError(err)
	if status >= fiber.StatusInternalServerError {
		log.WithError(err).WithField(constants.FldRequestID, c.Locals(constants.FldRequestID)).Error("project request failed")
	}
	return helper.JsonError(c, status, msg)
}
