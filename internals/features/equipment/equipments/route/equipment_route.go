package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"africrea_backend/internals/features/equipment/equipments/controller"
	authMiddleware "africrea_backend/internals/middlewares/auth"
	"africrea_backend/internals/policy"
)

func EquipmentUserRoutes(equipment fiber.Router, db *gorm.DB) {
	ctl := controller.NewEquipmentController(db)
	equipment.Get("/", ctl.List)
}

func EquipmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewEquipmentController(db)

	g := admin.Group("/equipment", authMiddleware.RequireCapability(policy.EquipmentManage))
	g.Post("/", ctl.Create)
	g.Patch("/:id/status", ctl.UpdateStatus)
}
