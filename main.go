package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"africrea_backend/internals/configs"
	database "africrea_backend/internals/databases"
	challengeModel "africrea_backend/internals/features/challenges/challenges/model"
	submissionModel "africrea_backend/internals/features/challenges/submissions/model"
	equipmentModel "africrea_backend/internals/features/equipment/equipments/model"
	reservationModel "africrea_backend/internals/features/equipment/reservations/model"
	eventModel "africrea_backend/internals/features/events/events/model"
	registrationModel "africrea_backend/internals/features/events/registrations/model"
	projectModel "africrea_backend/internals/features/projects/projects/model"
	authModel "africrea_backend/internals/features/users/auth/model"
	scheduler "africrea_backend/internals/features/users/auth/scheduler"
	userModel "africrea_backend/internals/features/users/user/model"
	videoModel "africrea_backend/internals/features/videos/videos/model"
	helper "africrea_backend/internals/helpers"
	"africrea_backend/internals/middlewares"
	routes "africrea_backend/internals/route"
	"africrea_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	cfg := configs.AppConfig

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.FromFiberError,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	middlewares.SetupMiddlewares(app, cfg)

	// DB connect + pool + schema
	database.ConnectDB(cfg)
	database.TunePool()
	if err := database.Migrate(database.DB,
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&equipmentModel.EquipmentModel{},
		&reservationModel.ReservationModel{},
		&eventModel.EventModel{},
		&registrationModel.EventRegistrationModel{},
		&challengeModel.ChallengeModel{},
		&submissionModel.SubmissionModel{},
		&submissionModel.FeedbackModel{},
		&projectModel.ProjectModel{},
		&projectModel.ParticipantModel{},
		&videoModel.VideoModel{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if cfg.SeedDemoData {
		if err := seeds.RunAllSeeds(database.DB, cfg.SeedDir); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
	}
	database.WarmUpQueries()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	scheduler.StartBlacklistCleanupScheduler(ctx, database.DB, cfg.TokenBlacklistTTLDays, 24*time.Hour)

	routes.SetupRoutes(app, database.DB)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Warn("shutdown incomplete")
	}
	database.Close()
}
