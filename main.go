package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"recycle-rewards-system/handlers"
	"recycle-rewards-system/middleware"
	"recycle-rewards-system/models"
	"recycle-rewards-system/services"
	"recycle-rewards-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	accountService := services.NewAccountService(db)

	if _, err := services.SeedChallenges(ctx, db); err != nil {
		logger.Fatal("failed to seed challenges", zap.Error(err))
	}
	if err := services.SeedRider(ctx, accountService, services.RegisterInput{
		Name:     cfg.SeedRider.Name,
		Email:    cfg.SeedRider.Email,
		Password: cfg.SeedRider.Password,
		Phone:    cfg.SeedRider.Phone,
	}); err != nil {
		logger.Fatal("failed to seed rider", zap.Error(err))
	}

	var photos services.PhotoStore
	if cfg.R2.Enabled() {
		store, err := utils.NewR2Store(ctx, cfg.R2)
		if err != nil {
			logger.Fatal("failed to initialize R2 client", zap.Error(err))
		}
		photos = store
	} else {
		logger.Warn("R2 not configured, proof photos will be ignored")
	}

	pickupService := services.NewPickupService(db, photos)
	challengeService := services.NewChallengeService(db)
	progressionService := services.NewProgressionService(db)
	reconcileService := services.NewReconcileService(db)

	if cfg.ReconcileInterval > 0 {
		scheduler, err := reconcileService.StartReconcileScheduler(ctx, cfg.ReconcileInterval)
		if err != nil {
			logger.Fatal("failed to start reconciliation scheduler", zap.Error(err))
		}
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				logger.Warn("scheduler shutdown", zap.Error(err))
			}
		}()
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 2 * utils.MaxPhotoBytes,
	})

	app.Use(recover.New())
	app.Use(requestid.New())

	// Every request must come from the gateway.
	app.Use(middleware.GatewayAuthMiddleware(cfg.GatewayToken))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,OPTIONS,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-Actor-ID, X-Actor-Role",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	handlers.SetupAuthRoutes(app, accountService)
	handlers.SetupPickupRoutes(app, pickupService)
	handlers.SetupChallengeRoutes(app, challengeService)
	handlers.SetupProgressionRoutes(app, progressionService, reconcileService)
	handlers.SetupMetricsRoutes(app)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	logger.Info("server running",
		zap.String("port", cfg.Port),
		zap.Strings("allowed_origins", cfg.AllowedOrigins),
		zap.Duration("reconcile_interval", cfg.ReconcileInterval),
	)

	<-ctx.Done()
	logger.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
}
