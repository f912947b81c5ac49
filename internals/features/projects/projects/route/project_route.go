package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"africrea_backend/internals/features/projects/projects/controller"
	"africrea_backend/internals/middlewares"
	authMiddleware "africrea_backend/internals/middlewares/auth"
	"africrea_backend/internals/policy"
)

func ProjectUserRoutes(projects fiber.Router, db *gorm.DB) {
	ctl := controller.NewProjectController(db)

	projects.Get("/", ctl.List)
	projects.Post("/applications",
		authMiddleware.RequireCapability(policy.ProjectApply),
		middlewares.AdmissionRateLimiter(),
		ctl.Apply,
	)
}

func ProjectAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewProjectController(db)

	g := admin.Group("/projects", authMiddleware.RequireCapability(policy.ProjectCreate))
	g.Post("/", ctl.Create)
	g.Patch("/:id/participants/:userId", ctl.Decide)
}
