package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/mindpage/app-journal/internal/config"
	"github.com/mindpage/app-journal/internal/handlers"
	"github.com/mindpage/app-journal/internal/i18n"
	"github.com/mindpage/app-journal/internal/logging"
	"github.com/mindpage/app-journal/internal/middleware"
	"github.com/mindpage/app-journal/internal/observability"
	"github.com/mindpage/app-journal/internal/services"
	"github.com/mindpage/app-journal/internal/utils"

	_ "github.com/mindpage/app-journal/docs"
)

// @title           Mindpage Journal API
// @version         1.0
// @description     API for the Mindpage journaling app. Serves the onboarding completion flow, daily reminder settings, localized legal documents and consent records.

// @contact.name   API Support
// @contact.email  support@mindpage.app

// @license.name  MIT

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

// @tag.name onboarding
// @tag.description Onboarding state and completion

// @tag.name legal
// @tag.description Localized legal documents

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize database connections
	config.InitMongoDB()
	config.InitRedis()

	// Start the async audit pipeline
	utils.InitAuditWorker(config.AppConfig.AuditWorkerCount, config.AppConfig.AuditBufferSize)

	// Load the embedded locale catalog
	catalog, err := i18n.NewCatalog(config.AppConfig.DefaultLocale)
	if err != nil {
		logging.Logger.Fatal("failed to load locale catalog", zap.Error(err))
	}

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire services and handlers
	userConfigs := services.NewUserConfigService(logging.Logger)
	reminders := services.NewReminderSettingsService(userConfigs, logging.Logger)
	legalDocs := services.NewLegalDocumentService(catalog, logging.Logger)
	consents := services.NewConsentService(catalog, logging.Logger)

	onboardingHandlers := handlers.NewOnboardingHandlers(userConfigs, reminders, logging.Logger)
	reminderHandlers := handlers.NewReminderHandlers(reminders, logging.Logger)
	legalHandlers := handlers.NewLegalHandlers(legalDocs, logging.Logger)
	consentHandlers := handlers.NewConsentHandlers(consents, logging.Logger)

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Health check endpoint
		v1.GET("/health", handlers.HealthCheck)

		// Legal documents are public, locale comes from the query string or
		// the Accept-Language header
		v1.GET("/legal/privacy-policy", legalHandlers.GetPrivacyPolicy)
		v1.GET("/legal/terms-of-service", legalHandlers.GetTermsOfService)
		v1.GET("/legal/locales", legalHandlers.GetLocales)

		// Per-user routes require the caller to be the user in the path
		users := v1.Group("/users/:id", middleware.AuthMiddleware(), middleware.RequireOwnUser())
		{
			users.GET("/onboarding", onboardingHandlers.GetOnboardingState)
			users.POST("/onboarding/complete", onboardingHandlers.CompleteOnboarding)
			users.GET("/reminder", reminderHandlers.GetReminderSettings)
			users.PUT("/reminder", reminderHandlers.UpdateReminderSettings)
			users.POST("/consent", consentHandlers.RecordConsent)
			users.GET("/consent", consentHandlers.GetConsentStatus)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	// Flush pending audit events before exit
	if worker := utils.GetAuditWorker(); worker != nil {
		worker.Stop()
	}

	logging.Logger.Info("server exited gracefully")
}
