package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"africrea_backend/internals/features/events/events/controller"
)

// EventUserRoutes mounts under the authenticated /api/events group.
func EventUserRoutes(events fiber.Router, db *gorm.DB) {
	ctl := controller.NewEventController(db)
	events.Get("/", ctl.List)
	events.Get("/:id", ctl.Get)
}

// EventAdminRoutes mounts under /api/admin/events, gated by event:manage.
func EventAdminRoutes(adminEvents fiber.Router, db *gorm.DB) {
	ctl := controller.NewEventController(db)
	adminEvents.Post("/", ctl.Create)
}
