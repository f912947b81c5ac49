package controller

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/constants"
	portfolio "africrea_backend/internals/features/challenges/portfolio/service"
	"africrea_backend/internals/features/challenges/submissions/repository"
	submissions "africrea_backend/internals/features/challenges/submissions/service"
	helper "africrea_backend/internals/helpers"
)

type PortfolioController struct {
	submissions *submissions.Service
}

func NewPortfolioController(db *gorm.DB) *PortfolioController {
	return &PortfolioController{submissions: submissions.NewService(repository.New(db))}
}

// GET /api/portfolio
func (ctl *PortfolioController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	rows, err := ctl.submissions.ListApproved(c.UserContext(), userID)
	if err != nil {
		log.WithError(err).WithField(constants.FldUser, userID).Error("load portfolio failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load portfolio")
	}
	return helper.JsonOK(c, "ok", portfolio.Build(rows))
}
