package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	projectRoute "africrea_backend/internals/features/projects/projects/route"
	videoRoute "africrea_backend/internals/features/videos/videos/route"
)

// /api/projects
func ProjectUserRoutes(projects fiber.Router, db *gorm.DB) {
	projectRoute.ProjectUserRoutes(projects, db)
}

func ProjectAdminRoutes(admin fiber.Router, db *gorm.DB) {
	projectRoute.ProjectAdminRoutes(admin, db)
}

// /api/videos
func VideoUserRoutes(videos fiber.Router, db *gorm.DB) {
	videoRoute.VideoUserRoutes(videos, db)
}

func VideoAdminRoutes(admin fiber.Router, db *gorm.DB) {
	videoRoute.VideoAdminRoutes(admin, db)
}
