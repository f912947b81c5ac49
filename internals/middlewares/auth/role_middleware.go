package auth

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"africrea_backend/internals/constants"
	helper "africrea_backend/internals/helpers"
	"africrea_backend/internals/policy"
)

// RequireCapability gates a route on the central role policy.
// Missing role → 401, role without the capability → 403.
func RequireCapability(capability policy.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetRoleFromToken(c)
		if role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		if !policy.Can(role, capability) {
			log.WithFields(log.Fields{
				constants.FldRole: role,
				constants.FldUser: c.Locals(helper.LocUserID),
				"capability":      capability,
			}).Info("capability denied")
			return fiber.NewError(fiber.StatusForbidden, policy.DenyMessage(capability))
		}
		return c.Next()
	}
}
