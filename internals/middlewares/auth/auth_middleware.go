// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/configs"
	"africrea_backend/internals/constants"
	authRepo "africrea_backend/internals/features/users/auth/repository"
	helper "africrea_backend/internals/helpers"
)

const expirySkew = 30 * time.Second

// SessionChecker is consulted on every authenticated request.
type SessionChecker interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	UserIsActive(ctx context.Context, userID uuid.UUID) (bool, error)
}

func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return Authenticate(configs.JWTSecret, authRepo.NewSessionRepository(db))
}

// Authenticate verifies the HS256 bearer token issued by the identity provider
// and stores user_id / userRole / user_name in Locals.
func Authenticate(secret string, sessions SessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		if secret == "" {
			log.Error("JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "missing JWT secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}); err != nil {
			log.WithError(err).Debug("token parse failed")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token parse error")
		}

		if err := validateTokenExpiry(claims, expirySkew); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid or missing user ID")
		}

		ctx := c.UserContext()
		blacklisted, err := sessions.IsTokenBlacklisted(ctx, tokenString)
		if err != nil {
			log.WithError(err).Error("blacklist check failed")
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if blacklisted {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token is blacklisted")
		}

		active, err := sessions.UserIsActive(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user not found")
			}
			log.WithError(err).WithField(constants.FldUser, userID).Error("user lookup failed")
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !active {
			return fiber.NewError(fiber.StatusForbidden, "account is deactivated")
		}

		c.Locals(helper.LocUserID, userID.String())
		c.Locals(helper.LocToken, tokenString)
		if exp, err := tokenExpiry(claims); err == nil {
			c.Locals("token_exp", exp)
		}
		storeBasicClaimsToLocals(c, claims)
		return c.Next()
	}
}
