// Package main provides the main entry point for the Maison salon booking API
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/solangehq/maison-api/app/handlers"
	"github.com/solangehq/maison-api/app/middleware"
	"github.com/solangehq/maison-api/app/router"
	"github.com/solangehq/maison-api/app/services"
	businessflow "github.com/solangehq/maison-api/business_flow"
	"github.com/solangehq/maison-api/config"
	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/repository"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting Maison API...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger to a rotating file when configured.
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output == "stdout" {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "file":
		log.SetOutput(rotator)
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// migrateDatabase keeps the schema in sync with the model definitions.
func migrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.MediaAsset{},
		&models.StyleCategory{},
		&models.ServiceSize{},
		&models.Addon{},
		&models.Booking{},
		&models.SiteSettings{},
		&models.Admin{},
	)
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeNotificationService picks an email provider from configuration
func initializeNotificationService(cfg config.EmailConfig) services.NotificationService {
	var emailProvider services.EmailProvider
	if cfg.Host != "" {
		emailProvider = services.NewSMTPEmailProvider(cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.FromEmail)
	} else {
		emailProvider = services.NewMockEmailProvider()
	}
	return services.NewNotificationService(emailProvider)
}

// initializeCheckoutClient picks a checkout provider from configuration
func initializeCheckoutClient(cfg config.CheckoutConfig) services.CheckoutClient {
	if cfg.SecretKey == "" {
		return services.NewMockCheckoutClient()
	}
	return services.NewStripeCheckoutClient("", cfg.SecretKey, cfg.SuccessURL, cfg.CancelURL, 30*time.Second)
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := migrateDatabase(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, 30*time.Second)
		stopFuncs = append(stopFuncs, cancel)
	}

	// Initialize repositories
	mediaRepo := repository.NewMediaAssetRepository(db)
	categoryRepo := repository.NewStyleCategoryRepository(db)
	addonRepo := repository.NewAddonRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	settingsRepo := repository.NewSiteSettingsRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Initialize services
	notificationService := initializeNotificationService(cfg.Email)
	checkoutClient := initializeCheckoutClient(cfg.Checkout)

	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	// Initialize flows
	mediaFlow := businessflow.NewMediaFlow(mediaRepo, cfg.Upload.MaxBytes)
	catalogFlow := businessflow.NewCatalogFlow(categoryRepo, addonRepo, db)
	settingsFlow := businessflow.NewSettingsFlow(settingsRepo, mediaRepo, rc, cfg.Cache.RedisPrefix, cfg.Cache.DefaultTTL)
	bookingFlow := businessflow.NewBookingFlow(bookingRepo, categoryRepo, addonRepo, checkoutClient, notificationService, nil)
	adminAuthFlow := businessflow.NewAdminAuthFlow(adminRepo, tokenService)

	// Seed the initial back-office account if configured
	if err := adminAuthFlow.EnsureSeedAdmin(context.Background(), cfg.Admin.SeedEmail, cfg.Admin.SeedPassword, cfg.Admin.SeedDisplayName); err != nil {
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	// Initialize handlers
	routeHandlers := router.Handlers{
		Media:    handlers.NewMediaHandler(mediaFlow),
		Catalog:  handlers.NewCatalogHandler(catalogFlow),
		Booking:  handlers.NewBookingHandler(bookingFlow),
		Settings: handlers.NewSettingsHandler(settingsFlow),
		Auth:     handlers.NewAdminAuthHandler(adminAuthFlow, cfg.Security.SessionCookieSecure),
		Payment:  handlers.NewPaymentHandler(bookingFlow),
	}

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Initialize router
	appRouter := router.NewFiberRouter(router.Config{
		AppName:       "Maison API",
		BodyLimit:     cfg.Server.BodyLimit,
		AllowOrigins:  cfg.Security.AllowedOrigins,
		MetricsPath:   cfg.Metrics.Path,
		EnableMetrics: cfg.Metrics.Enabled && cfg.Server.EnableMetrics,
	}, routeHandlers, authMiddleware)

	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
