package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"africrea_backend/internals/configs"
	"africrea_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App, cfg configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(time.Duration(cfg.DBStatementTimeout) * time.Millisecond))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.AllowedOrigins()))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(GlobalRateLimiter())
}
