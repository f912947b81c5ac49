package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/constants"
	"africrea_backend/internals/features/videos/videos/dto"
	"africrea_backend/internals/features/videos/videos/model"
	helper "africrea_backend/internals/helpers"
)

type VideoController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewVideoController(db *gorm.DB) *VideoController {
	return &VideoController{DB: db, validate: helper.NewValidator()}
}

// GET /api/videos?category=&pole=
func (ctl *VideoController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Preload("Uploader")
	if cat := strings.ToUpper(strings.TrimSpace(c.Query("category"))); cat != "" {
		q = q.Where("video_category = ?", cat)
	}
	if pole := strings.ToUpper(strings.TrimSpace(c.Query("pole"))); pole != "" {
		q = q.Where("video_pole = ?", pole)
	}

	var items []model.VideoModel
	if err := q.Order("video_created_at DESC").Find(&items).Error; err != nil {
		log.WithError(err).Error("list videos failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load videos")
	}

	out := make([]dto.VideoResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.FromModel(&items[i]))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// POST /api/admin/videos
func (ctl *VideoController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	v := req.ToModel(userID)
	if err := ctl.DB.WithContext(c.UserContext()).Omit("Uploader").Create(v).Error; err != nil {
		status, msg := helper.MapPGError(err)
		log.WithError(err).Error("create video failed")
		return helper.JsonError(c, status, msg)
	}

	log.WithField(constants.FldUser, userID).WithField("video", v.VideoID).Info("video added")
	return helper.JsonCreated(c, "video added", dto.FromModel(v))
}
