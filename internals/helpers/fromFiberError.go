package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// FromFiberError renders errors returned by handlers and middleware in the
// standard error shape. Non-fiber errors become 500 without leaking details.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
	return JsonError(c, fiber.StatusInternalServerError, "internal server error")
}
