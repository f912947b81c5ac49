package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"africrea_backend/internals/features/challenges/submissions/controller"
	"africrea_backend/internals/middlewares"
	authMiddleware "africrea_backend/internals/middlewares/auth"
	"africrea_backend/internals/policy"
)

func SubmissionUserRoutes(challenges fiber.Router, db *gorm.DB) {
	ctl := controller.NewSubmissionController(db)

	g := challenges.Group("/submissions")
	g.Post("/", authMiddleware.RequireCapability(policy.SubmissionCreate), middlewares.AdmissionRateLimiter(), ctl.Submit)
	g.Get("/mine", ctl.Mine)
}

func SubmissionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewSubmissionController(db)

	g := admin.Group("/submissions", authMiddleware.RequireCapability(policy.SubmissionReview))
	g.Get("/", ctl.List)
	g.Patch("/:id/review", ctl.Review)
}
