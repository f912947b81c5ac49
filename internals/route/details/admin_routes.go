package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	statsRoute "africrea_backend/internals/features/admin/stats/route"
)

// /api/admin/stats
func StatsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	statsRoute.StatsAdminRoutes(admin, db)
}
