package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"africrea_backend/internals/features/challenges/challenges/controller"
	authMiddleware "africrea_backend/internals/middlewares/auth"
	"africrea_backend/internals/policy"
)

func ChallengeUserRoutes(challenges fiber.Router, db *gorm.DB) {
	ctl := controller.NewChallengeController(db)
	challenges.Get("/", ctl.List)
}

func ChallengeAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewChallengeController(db)

	g := admin.Group("/challenges", authMiddleware.RequireCapability(policy.ChallengeCreate))
	g.Post("/", ctl.Create)
}
