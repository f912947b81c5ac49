package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	eventRoute "africrea_backend/internals/features/events/events/route"
	registrationRoute "africrea_backend/internals/features/events/registrations/route"
	authMiddleware "africrea_backend/internals/middlewares/auth"
	"africrea_backend/internals/policy"
)

// /api/events, /api/events/registrations
func EventUserRoutes(events fiber.Router, db *gorm.DB) {
	registrationRoute.RegistrationUserRoutes(events, db)
	eventRoute.EventUserRoutes(events, db)
}

// /api/admin/events
func EventAdminRoutes(admin fiber.Router, db *gorm.DB) {
	adminEvents := admin.Group("/events", authMiddleware.RequireCapability(policy.EventManage))
	eventRoute.EventAdminRoutes(adminEvents, db)
	registrationRoute.RegistrationAdminRoutes(adminEvents, db)
}
