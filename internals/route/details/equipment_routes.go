package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	equipmentRoute "africrea_backend/internals/features/equipment/equipments/route"
	reservationRoute "africrea_backend/internals/features/equipment/reservations/route"
)

// /api/equipment, /api/equipment/reservations
func EquipmentUserRoutes(equipment fiber.Router, db *gorm.DB) {
	equipmentRoute.EquipmentUserRoutes(equipment, db)
	reservationRoute.ReservationUserRoutes(equipment, db)
}

// /api/admin/equipment, /api/admin/reservations
func EquipmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	equipmentRoute.EquipmentAdminRoutes(admin, db)
	reservationRoute.ReservationAdminRoutes(admin, db)
}
