package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/redis/go-redis/v9"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/jobs"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/realtime"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.AttachDatabase(database.DB)

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Realtime notifications, relayed through Redis when configured
	hub := realtime.NewHub()
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := cache.Connect(rootCtx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis unavailable, notifications stay local to this instance", "error", err)
		} else {
			redisClient = client
			hub.UseRelay(realtime.NewRedisRelay(client, realtime.DefaultChannel))
			go func() {
				if err := hub.RunRelay(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
					slog.Error("notification relay stopped", "error", err)
				}
			}()
		}
	}

	// Profile images go to Cloudinary when configured, otherwise inline
	var uploader storage.ImageUploader
	cld, err := storage.NewCloudinaryUploader(cfg)
	if err != nil {
		slog.Error("cloudinary init failed, storing images inline", "error", err)
	} else if cld != nil {
		uploader = cld
	}

	// Services
	notificationService := services.NewNotificationService(database.DB, hub, cfg.DefaultAdminEmail)
	otpService := services.NewOTPService(database.DB, services.NewEmailService(mail.New(cfg)), cfg.OTPExpiry)
	tokenIssuer := services.NewTokenIssuer(database.DB, cfg)
	authService := services.NewAuthService(database.DB, tokenIssuer, otpService, notificationService)
	adminService := services.NewAdminService(database.DB, tokenIssuer)
	bookingService := services.NewBookingService(database.DB, notificationService)
	ratingService := services.NewRatingService(database.DB, notificationService, services.NewContentFilter())
	customerService := services.NewCustomerService(database.DB, uploader)
	providerService := services.NewProviderService(database.DB, uploader)
	listingService := services.NewListingService(database.DB)

	if cfg.DefaultAdminPassword != "" {
		if _, created, err := adminService.EnsureDefaultAdmin(rootCtx, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword); err != nil {
			slog.Error("default admin setup failed", "error", err)
		} else if created {
			slog.Info("default admin created", "email", cfg.DefaultAdminEmail)
		}
	}

	// Background jobs
	scheduler := jobs.NewScheduler(database.DB, otpService, notificationService, cfg)
	if err := scheduler.Start(); err != nil {
		slog.Error("job scheduler failed to start", "error", err)
		os.Exit(1)
	}

	// Handlers
	h := &routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Admin:        handlers.NewAdminHandler(adminService, customerService, providerService, listingService, cfg),
		Booking:      handlers.NewBookingHandler(bookingService),
		Rating:       handlers.NewRatingHandler(ratingService),
		Notification: handlers.NewNotificationHandler(notificationService),
		WebSocket:    handlers.NewWebSocketHandler(hub),
		Customer:     handlers.NewCustomerHandler(customerService),
		Provider:     handlers.NewProviderHandler(providerService),
		Listing:      handlers.NewListingHandler(listingService),
		Category:     handlers.NewCategoryHandler(services.NewCategoryService(database.DB)),
		Contact:      handlers.NewContactHandler(services.NewContactService(database.DB, notificationService)),
		FAQ:          handlers.NewFAQHandler(services.NewFAQService(database.DB)),
		Article:      handlers.NewArticleHandler(services.NewArticleService(database.DB)),
		Legal:        handlers.NewLegalHandler(cfg.SupportEmail),
		Health:       handlers.NewHealthHandler(database.DB, redisClient, hub),
		DataInit:     handlers.NewDataInitHandler(services.NewDemoDataService(database.DB), listingService),
	}

	// Sentry error tracking
	sentryEnabled := false
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			sentryEnabled = true
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	if sentryEnabled {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.Metrics())
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, h)

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

	hub.Close()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second)
	scheduler.Stop(stopCtx)
	cancelStop()

	stopBackground()
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
