package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"africrea_backend/internals/features/challenges/portfolio/controller"
	authMiddleware "africrea_backend/internals/middlewares/auth"
	"africrea_backend/internals/policy"
)

func PortfolioRoutes(portfolio fiber.Router, db *gorm.DB) {
	ctl := controller.NewPortfolioController(db)
	portfolio.Get("/", authMiddleware.RequireCapability(policy.PortfolioRead), ctl.Mine)
}
