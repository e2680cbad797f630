package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hostelhq/hostel-api/docs" // Swagger docs
	"github.com/hostelhq/hostel-api/internal/config"
	"github.com/hostelhq/hostel-api/internal/database"
	"github.com/hostelhq/hostel-api/internal/gateway"
	"github.com/hostelhq/hostel-api/internal/handlers"
	"github.com/hostelhq/hostel-api/internal/jobs"
	"github.com/hostelhq/hostel-api/internal/middleware"
	"github.com/hostelhq/hostel-api/internal/repository"
	"github.com/hostelhq/hostel-api/internal/services"
	"github.com/hostelhq/hostel-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Hostel API
// @version 1.0
// @description REST API for hostel charge billing and payment reconciliation

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		logger.Warn("Resend email disabled: RESEND_API_KEY or FROM_EMAIL not set")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	paystack := gateway.NewPaystackClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey)

	svcs := services.NewServices(repos, worker, paystack, cfg)

	scheduleJobs(worker, svcs)

	h := handlers.NewHandlers(svcs, cfg)

	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		})

		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		v1.POST("/auth/login", h.Auth.Login)

		// Gateway webhook (public, HMAC-verified in the handler)
		v1.POST("/payments/webhook", h.Payment.Webhook)

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Landlord/agent routes
			manager := protected.Group("")
			manager.Use(middleware.RequireManager())
			{
				manager.POST("/users", h.Auth.Register)

				manager.POST("/buildings", h.Building.Create)
				manager.GET("/buildings", h.Building.Index)
				manager.POST("/buildings/:building_id/rooms", h.Building.CreateRoom)
				manager.POST("/buildings/:building_id/charges", h.Charge.Create)
				manager.GET("/buildings/:building_id/arrears", h.Building.Arrears)
				manager.GET("/buildings/:building_id/arrears.xlsx", h.Building.ArrearsXLSX)

				manager.POST("/tenancies", h.Building.CreateTenancy)
				manager.POST("/tenancies/:tenancy_id/end", h.Building.EndTenancy)
			}

			// Building and charge viewing (any authenticated user)
			protected.GET("/buildings/:building_id", h.Building.Show)
			protected.GET("/buildings/:building_id/charges", h.Charge.IndexByBuilding)

			// Charge status and payments
			protected.GET("/charges/:charge_id/status", h.Charge.Status)
			protected.POST("/charges/:charge_id/payments", h.Payment.Create)
			protected.GET("/payments/verify/:reference", h.Payment.Verify)
			protected.GET("/payments/:payment_id", h.Payment.Show)
			protected.GET("/payments/:payment_id/receipt", h.Payment.Receipt)

			// Personal data access
			userData := protected.Group("/users/:user_id")
			userData.Use(middleware.RequireManagerOrOwner())
			{
				userData.GET("/payments", h.Payment.UserPayments)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.Index)
				notifications.POST("/mark_all_as_read", h.Notification.MarkAllAsRead)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Expire stale pending payments every hour, sweeping once at startup
	worker.ScheduleEveryImmediate(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Expiring stale pending payments...")
		return svcs.Payment.ExpireStalePending(ctx)
	})

	// Daily arrears reminder emails for tenants with outstanding periods
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Sending arrears reminder emails...")
		return svcs.Report.SendArrearsReminders(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
