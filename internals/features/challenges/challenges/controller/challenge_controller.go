package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/configs"
	"africrea_backend/internals/constants"
	"africrea_backend/internals/features/challenges/challenges/dto"
	"africrea_backend/internals/features/challenges/challenges/model"
	helper "africrea_backend/internals/helpers"
)

type ChallengeController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewChallengeController(db *gorm.DB) *ChallengeController {
	return &ChallengeController{DB: db, validate: helper.NewValidator()}
}

func loadCounts(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]dto.Counts, error) {
	out := make(map[uuid.UUID]dto.Counts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []dto.Counts
	err := db.Raw(`
		SELECT submission_challenge_id AS challenge_id,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE submission_status = 'PENDING')  AS pending,
		       COUNT(*) FILTER (WHERE submission_status = 'APPROVED') AS approved
		FROM submissions
		WHERE submission_challenge_id IN ?
		GROUP BY submission_challenge_id`, ids).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ChallengeID] = r
	}
	return out, nil
}

// GET /api/challenges?pole=&open=true
func (ctl *ChallengeController) List(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	q := db.Preload("Creator")
	if pole := strings.ToUpper(strings.TrimSpace(c.Query("pole"))); pole != "" {
		if !constants.IsValidPole(pole) {
			return helper.JsonError(c, fiber.StatusBadRequest, "unknown pole filter")
		}
		q = q.Where("challenge_pole = ?", pole)
	}
	if c.QueryBool("open") {
		q = q.Where("challenge_deadline IS NULL OR challenge_deadline >= NOW()")
	}

	var items []model.ChallengeModel
	if err := q.Order("challenge_deadline ASC NULLS LAST").Find(&items).Error; err != nil {
		log.WithError(err).Error("list challenges failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load challenges")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ChallengeID)
	}
	counts, err := loadCounts(db, ids)
	if err != nil {
		log.WithError(err).Error("count submissions failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load challenges")
	}

	out := make([]dto.ChallengeResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.FromModel(&items[i], counts[items[i].ChallengeID]))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// POST /api/admin/challenges
func (ctl *ChallengeController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	ch, fieldErrs := req.ToModel(userID, time.Now().UTC(), configs.AppConfig.ChallengeDefaultDays)
	if fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	if err := ctl.DB.WithContext(c.UserContext()).Omit("Creator").Create(ch).Error; err != nil {
		status, msg := helper.MapPGError(err)
		log.WithError(err).Error("create challenge failed")
		return helper.JsonError(c, status, msg)
	}

	log.WithFields(log.Fields{
		constants.FldChallenge: ch.ChallengeID,
		constants.FldUser:      userID,
	}).Info("challenge created")
	return helper.JsonCreated(c, "challenge created", dto.FromModel(ch, dto.Counts{}))
}
