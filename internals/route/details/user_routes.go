package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "africrea_backend/internals/features/users/user/route"
)

// /api/users/me
func UserSelfRoutes(users fiber.Router, db *gorm.DB) {
	userRoute.UserSelfRoutes(users, db)
}

// /api/admin/users
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userRoute.UserAdminRoutes(admin, db)
}
