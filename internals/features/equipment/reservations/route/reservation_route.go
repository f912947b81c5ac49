package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"africrea_backend/internals/features/equipment/reservations/controller"
	"africrea_backend/internals/middlewares"
	authMiddleware "africrea_backend/internals/middlewares/auth"
	"africrea_backend/internals/policy"
)

// ReservationUserRoutes mounts under the authenticated /api/equipment group.
func ReservationUserRoutes(equipment fiber.Router, db *gorm.DB) {
	ctl := controller.NewReservationController(db)

	r := equipment.Group("/reservations")
	r.Post("/",
		authMiddleware.RequireCapability(policy.ReservationRequest),
		middlewares.AdmissionRateLimiter(),
		ctl.Create,
	)
	r.Get("/mine", ctl.Mine)
	r.Delete("/:id", authMiddleware.RequireCapability(policy.ReservationCancel), ctl.CancelOwn)
}

// ReservationAdminRoutes mounts under /api/admin.
func ReservationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewReservationController(db)

	r := admin.Group("/reservations")
	r.Get("/", authMiddleware.RequireCapability(policy.ReservationReadAll), ctl.List)
	r.Patch("/:id/decision", authMiddleware.RequireCapability(policy.ReservationDecide), ctl.Decide)
	r.Patch("/:id/status", authMiddleware.RequireCapability(policy.ReservationTransition), ctl.Transition)
}
