package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"provisioning-service/app/port"
	"provisioning-service/app/rest/handlers"
	custommw "provisioning-service/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger         *slog.Logger
	Registration   port.RegistrationUsecase
	Repair         port.RepairUsecase
	Inspection     port.InspectionUsecase
	HealthChecks   map[string]handlers.HealthChecker
	AllowedOrigins []string
	EnableDebug    bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug

	provisioningHandler := handlers.NewProvisioningHandler(
		config.Registration,
		config.Repair,
		config.Inspection,
		config.Logger,
	)
	healthHandler := handlers.NewHealthHandler(config.Logger, config.HealthChecks)

	rateLimiter := custommw.NewRateLimiter()

	// Global middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.CORSWithOrigins(config.AllowedOrigins))
	e.Use(rateLimiter.RateLimit())

	// API versioning
	v1 := e.Group("/v1")

	// Health endpoints
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	// Provisioning endpoints
	provisioning := v1.Group("/provisioning")
	provisioning.POST("/register", provisioningHandler.Register)
	provisioning.POST("/recover", provisioningHandler.Recover)
	provisioning.POST("/fix-user", provisioningHandler.FixUser)
	provisioning.POST("/cleanup-duplicates", provisioningHandler.CleanupDuplicates)
	provisioning.GET("/debug", provisioningHandler.Debug)

	return e
}
