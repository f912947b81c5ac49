package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"africrea_backend/internals/features/users/user/controller"
	authMiddleware "africrea_backend/internals/middlewares/auth"
	"africrea_backend/internals/policy"
)

// UserSelfRoutes mounts under /api/users (authenticated).
func UserSelfRoutes(users fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserController(db)
	users.Patch("/me", ctl.UpdateMe)
}

func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserController(db)

	g := admin.Group("/users", authMiddleware.RequireCapability(policy.UserManage))
	g.Get("/", ctl.GetUsers)
	g.Patch("/:id", ctl.UpdateUser)
}
