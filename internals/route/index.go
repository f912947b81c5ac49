package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	authMiddleware "africrea_backend/internals/middlewares/auth"
	routeDetails "africrea_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app)

	api := app.Group("/api")

	// ===================== AUTH =====================
	log.Info("setting up auth routes")
	routeDetails.AuthRoutes(api, db)

	authMW := authMiddleware.AuthMiddleware(db)

	// ===================== USER (JWT) =====================
	log.Info("setting up user routes")
	routeDetails.EquipmentUserRoutes(api.Group("/equipment", authMW), db)
	routeDetails.EventUserRoutes(api.Group("/events", authMW), db)
	routeDetails.ChallengeUserRoutes(api.Group("/challenges", authMW), db)
	routeDetails.PortfolioRoutes(api.Group("/portfolio", authMW), db)
	routeDetails.ProjectUserRoutes(api.Group("/projects", authMW), db)
	routeDetails.VideoUserRoutes(api.Group("/videos", authMW), db)
	routeDetails.UserSelfRoutes(api.Group("/users", authMW), db)

	// ===================== ADMIN (JWT + capability per group) =====================
	log.Info("setting up admin routes")
	admin := api.Group("/admin", authMW)
	routeDetails.EquipmentAdminRoutes(admin, db)
	routeDetails.EventAdminRoutes(admin, db)
	routeDetails.ChallengeAdminRoutes(admin, db)
	routeDetails.ProjectAdminRoutes(admin, db)
	routeDetails.VideoAdminRoutes(admin, db)
	routeDetails.UserAdminRoutes(admin, db)
	routeDetails.StatsAdminRoutes(admin, db)

	log.Info("all routes registered")
}
