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
	"africrea_backend/internals/features/challenges/submissions/dto"
	"africrea_backend/internals/features/challenges/submissions/model"
	"africrea_backend/internals/features/challenges/submissions/repository"
	"africrea_backend/internals/features/challenges/submissions/service"
	helper "africrea_backend/internals/helpers"
)

type SubmissionController struct {
	svc      *service.Service
	validate *validator.Validate
}

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return NewWithService(service.NewService(repository.New(db)))
}

func NewWithService(svc *service.Service) *SubmissionController {
	return &SubmissionController{svc: svc, validate: helper.NewValidator()}
}

// POST /api/challenges/submissions
func (ctl *SubmissionController) Submit(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	sub, err := ctl.svc.Submit(c.UserContext(), service.SubmitInput{
		ChallengeID: uuid.MustParse(req.ChallengeID),
		StudentID:   studentID,
		FileURL:     req.FileURL,
		Description: req.Description,
	})
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "submission received", dto.FromModel(sub))
}

// GET /api/challenges/submissions/mine
func (ctl *SubmissionController) Mine(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	rows, err := ctl.svc.ListMine(c.UserContext(), studentID)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

// GET /api/admin/submissions?status=&challenge_id=&page=&per_page=
func (ctl *SubmissionController) List(c *fiber.Ctx) error {
	var f repository.Filter
	if raw := strings.ToUpper(strings.TrimSpace(c.Query("status"))); raw != "" {
		st := model.SubmissionStatus(raw)
		if !st.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "unknown status filter")
		}
		f.Status = &st
	}
	if raw := strings.TrimSpace(c.Query("challenge_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "challenge_id must be a valid UUID")
		}
		f.ChallengeID = &id
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

// PATCH /api/admin/submissions/:id/review
func (ctl *SubmissionController) Review(c *fiber.Ctx) error {
	reviewerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	sub, err := ctl.svc.Review(c.UserContext(), id, service.ReviewInput{
		Status:     model.SubmissionStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		Grade:      req.Grade,
		Feedback:   req.Feedback,
		ReviewerID: reviewerID,
	})
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "submission reviewed", dto.FromModel(sub))
}

func (ctl *SubmissionController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrChallengeNotFound), errors.Is(err, service.ErrSubmissionNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDeadlinePassed), errors.Is(err, service.ErrInvalidReview):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidGrade):
		return helper.JsonValidationError(c, map[string][]string{"grade": {"must be between 0 and 100"}})
	}

	status, msg := helper.MapPGError(err)
	if status >= fiber.StatusInternalServerError {
		log.WithError(err).WithField(constants.FldRequestID, c.Locals(constants.FldRequestID)).Error("submission request failed")
	}
	return helper.JsonError(c, status, msg)
}
