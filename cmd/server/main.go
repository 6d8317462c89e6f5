package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"github.com/srinibas-vastra/backend/internal/config"
	"github.com/srinibas-vastra/backend/internal/database"
	"github.com/srinibas-vastra/backend/internal/handlers"
	"github.com/srinibas-vastra/backend/internal/integrations/cloudinary"
	"github.com/srinibas-vastra/backend/internal/logging"
	"github.com/srinibas-vastra/backend/internal/middleware"
	"github.com/srinibas-vastra/backend/internal/routes"
	"github.com/srinibas-vastra/backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.SupabaseJWTSecret == "" && cfg.SupabaseJWKSURL == "" {
		slog.Error("SUPABASE_JWT_SECRET or SUPABASE_JWKS_URL is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewFanoutHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cleanupDone)

	// Redis (optional; listing cache is disabled when absent)
	rdb, err := database.ConnectRedis(cfg)
	if err != nil {
		slog.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if rdb != nil {
		slog.Info("listing cache enabled", "ttl", cfg.ListingCacheTTL)
	}

	// Media host
	media := cloudinary.NewClient(cfg)
	sweepDone := make(chan struct{})
	if media.Configured() {
		cloudinary.StartSweep(media, cfg.StagingMaxAge, sweepDone)
	}

	// Services
	listingCache := services.NewListingCache(rdb, cfg.ListingCacheTTL)
	userService := services.NewUserService(db)
	profileService := services.NewProfileService(db)
	addressService := services.NewAddressService(db)
	productService := services.NewProductService(db, listingCache)
	cartService := services.NewCartService(db)

	var docCommitter services.DocCommitter
	if media.Configured() {
		docCommitter = media
	}
	sellerService := services.NewSellerService(db, docCommitter, listingCache)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	productHandler := handlers.NewProductHandler(productService)
	userHandler := handlers.NewUserHandler(userService, profileService)
	addressHandler := handlers.NewAddressHandler(addressService)
	cartHandler := handlers.NewCartHandler(cartService)
	sellerHandler := handlers.NewSellerHandler(sellerService, productService)
	uploadHandler := handlers.NewUploadHandler(media)
	adminHandler := handlers.NewAdminHandler(sellerService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	authMiddleware, err := middleware.AuthRequired(cfg)
	if err != nil {
		slog.Error("auth middleware setup failed", "error", err)
		os.Exit(1)
	}

	routes.Setup(app, cfg, db,
		authMiddleware,
		healthHandler,
		productHandler,
		userHandler,
		addressHandler,
		cartHandler,
		sellerHandler,
		uploadHandler,
		adminHandler,
	)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	close(sweepDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal Server Error"
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}
