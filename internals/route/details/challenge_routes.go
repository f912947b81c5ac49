package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	challengeRoute "africrea_backend/internals/features/challenges/challenges/route"
	portfolioRoute "africrea_backend/internals/features/challenges/portfolio/route"
	submissionRoute "africrea_backend/internals/features/challenges/submissions/route"
)

// /api/challenges, /api/challenges/submissions
func ChallengeUserRoutes(challenges fiber.Router, db *gorm.DB) {
	submissionRoute.SubmissionUserRoutes(challenges, db)
	challengeRoute.ChallengeUserRoutes(challenges, db)
}

// /api/portfolio
func PortfolioRoutes(portfolio fiber.Router, db *gorm.DB) {
	portfolioRoute.PortfolioRoutes(portfolio, db)
}

// /api/admin/challenges, /api/admin/submissions
func ChallengeAdminRoutes(admin fiber.Router, db *gorm.DB) {
	challengeRoute.ChallengeAdminRoutes(admin, db)
	submissionRoute.SubmissionAdminRoutes(admin, db)
}
