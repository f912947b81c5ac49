// file: internals/features/users/auth/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "africrea_backend/internals/features/users/auth/controller"
	rateLimiter "africrea_backend/internals/middlewares"
	authMiddleware "africrea_backend/internals/middlewares/auth"
)

// AuthRoutes: /api/auth. Tokens come from the identity provider; only
// registration is public here.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)
	protected := authMiddleware.AuthMiddleware(db)

	baseAuth := api.Group("/auth")
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)

	baseAuth.Get("/me", protected, authController.Me)
	baseAuth.Post("/logout", protected, authController.Logout)
	baseAuth.Post("/change-password", protected, authController.ChangePassword)
}
