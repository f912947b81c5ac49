package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"africrea_backend/internals/features/admin/stats/controller"
	authMiddleware "africrea_backend/internals/middlewares/auth"
	"africrea_backend/internals/policy"
)

func StatsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewStatsController(db)
	admin.Get("/stats", authMiddleware.RequireCapability(policy.StatsRead), ctl.Get)
}
