package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"africrea_backend/internals/features/videos/videos/controller"
	authMiddleware "africrea_backend/internals/middlewares/auth"
	"africrea_backend/internals/policy"
)

func VideoUserRoutes(videos fiber.Router, db *gorm.DB) {
	ctl := controller.NewVideoController(db)
	videos.Get("/", ctl.List)
}

func VideoAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewVideoController(db)

	g := admin.Group("/videos", authMiddleware.RequireCapability(policy.VideoCreate))
	g.Post("/", ctl.Create)
}
