package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"africrea_backend/internals/features/events/registrations/controller"
	"africrea_backend/internals/middlewares"
	authMiddleware "africrea_backend/internals/middlewares/auth"
	"africrea_backend/internals/policy"
)

// RegistrationUserRoutes mounts under the authenticated /api/events group.
func RegistrationUserRoutes(events fiber.Router, db *gorm.DB) {
	ctl := controller.NewRegistrationController(db)

	r := events.Group("/registrations")
	r.Post("/",
		authMiddleware.RequireCapability(policy.EventRegister),
		middlewares.AdmissionRateLimiter(),
		ctl.Register,
	)
	r.Delete("/", authMiddleware.RequireCapability(policy.EventRegister), ctl.Unregister)
	r.Get("/mine", ctl.Mine)
}

// RegistrationAdminRoutes mounts under /api/admin/events, already gated by event:manage.
func RegistrationAdminRoutes(adminEvents fiber.Router, db *gorm.DB) {
	ctl := controller.NewRegistrationController(db)

	adminEvents.Get("/:id/registrations", ctl.ByEvent)
	adminEvents.Post("/:id/waitlist/promote", ctl.PromoteWaitlist)
}
