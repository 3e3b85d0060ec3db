// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cache"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/solangehq/maison-api/app/dto"
	"github.com/solangehq/maison-api/app/handlers"
	"github.com/solangehq/maison-api/app/middleware"
	"github.com/solangehq/maison-api/utils"
)

// Config carries the router's environment-dependent settings.
type Config struct {
	AppName       string
	BodyLimit     int
	AllowOrigins  []string
	MetricsPath   string
	EnableMetrics bool
}

// Handlers groups the handler interfaces wired into the route table.
type Handlers struct {
	Media    handlers.MediaHandlerInterface
	Catalog  handlers.CatalogHandlerInterface
	Booking  handlers.BookingHandlerInterface
	Settings handlers.SettingsHandlerInterface
	Auth     handlers.AdminAuthHandlerInterface
	Payment  handlers.PaymentHandlerInterface
}

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app      *fiber.App
	cfg      Config
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(cfg Config, h Handlers, auth *middleware.AuthMiddleware) Router {
	if cfg.AppName == "" {
		cfg.AppName = "Maison API"
	}
	if cfg.BodyLimit <= 0 {
		// Uploads arrive as base64 data URLs, which inflate payloads by
		// roughly a third over the decoded size.
		cfg.BodyLimit = 140 * 1024 * 1024
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: "Maison",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:      app,
		cfg:      cfg,
		handlers: h,
		auth:     auth,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	if r.cfg.EnableMetrics {
		r.app.Get(r.cfg.MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	// General rate limiting for all API routes
	api.Use(limiter.New(limiter.Config{
		Max:        2000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	// Public storefront endpoints
	api.Get("/catalog", r.handlers.Catalog.GetCatalog)
	api.Get("/settings", r.handlers.Settings.Get)
	api.Get("/uploads/:uuid", r.handlers.Media.Serve)

	// Booking submission gets a tighter per-IP budget
	bookings := api.Group("/bookings")
	bookings.Use(limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
	}))
	bookings.Post("/", r.handlers.Booking.Submit)
	bookings.Get("/:number", r.handlers.Booking.GetByConfirmation)

	api.Post("/payments/checkout/callback", r.handlers.Payment.CheckoutCallback)

	// Admin endpoints
	admin := api.Group("/admin")

	authGroup := admin.Group("/auth")
	authGroup.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
	}))
	authGroup.Post("/login", r.handlers.Auth.Login)
	authGroup.Post("/logout", r.handlers.Auth.Logout)
	authGroup.Post("/refresh", r.handlers.Auth.Refresh)
	authGroup.Get("/me", r.auth.AdminAuthenticate(), r.handlers.Auth.Me)

	protected := admin.Group("", r.auth.AdminAuthenticate())

	protected.Post("/uploads", r.handlers.Media.Upload)
	protected.Get("/uploads", r.handlers.Media.List)
	protected.Get("/uploads/:uuid/preview", r.handlers.Media.Preview)
	protected.Delete("/uploads/:uuid", r.handlers.Media.Delete)

	protected.Get("/bookings", r.handlers.Booking.List)
	protected.Get("/bookings/export", r.handlers.Booking.Export)
	protected.Get("/bookings/calendar", r.handlers.Booking.Calendar)
	protected.Patch("/bookings/:uuid/status", r.handlers.Booking.UpdateStatus)

	protected.Put("/settings", r.handlers.Settings.Update)

	protected.Post("/catalog/categories", r.handlers.Catalog.CreateCategory)
	protected.Patch("/catalog/categories/:uuid", r.handlers.Catalog.UpdateCategory)
	protected.Patch("/catalog/sizes/:uuid", r.handlers.Catalog.UpdateSize)
	protected.Post("/catalog/addons", r.handlers.Catalog.CreateAddon)
	protected.Patch("/catalog/addons/:uuid", r.handlers.Catalog.UpdateAddon)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		HSTSMaxAge:                31536000,
		HSTSExcludeSubdomains:     false,
		ContentSecurityPolicy:     "default-src 'self'; img-src 'self' data: https:; media-src 'self' https:; style-src 'self' 'unsafe-inline'; frame-ancestors 'none';",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		OriginAgentCluster:        "?1",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	// CORS middleware
	allowOrigins := r.cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"Content-Disposition",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	// Compression middleware for performance
	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c fiber.Ctx) bool {
			contentType := c.Get("Content-Type")
			return strings.Contains(contentType, "image/") ||
				strings.Contains(contentType, "video/")
		},
	}))

	// Cache middleware for the public catalog and settings reads
	r.app.Use(cache.New(cache.Config{
		Next: func(c fiber.Ctx) bool {
			if c.Method() != "GET" {
				return true
			}
			return c.Path() != "/api/v1/catalog" && c.Path() != "/api/v1/settings"
		},
		Expiration:          time.Minute,
		DisableCacheControl: false,
	}))

	// Structured request logging
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	// Prometheus request metrics
	r.app.Use(middleware.Metrics())

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"version":   "1.0.0",
			"service":   "maison-api",
		},
	})
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

func rateLimitReached(c fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
		Success: false,
		Message: "Too many requests. Please try again later.",
		Error: dto.ErrorDetail{
			Code: "RATE_LIMIT_EXCEEDED",
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An internal server error occurred"
	errorCode := "INTERNAL_ERROR"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		if code == fiber.StatusRequestEntityTooLarge {
			message = "Request body too large"
			errorCode = "BODY_TOO_LARGE"
		}
	}

	log.Printf("Error %d: %v", code, err)

	requestID := c.Locals("requestid")

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: errorCode,
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestID,
			},
		},
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
