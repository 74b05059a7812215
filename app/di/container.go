package di

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"provisioning-service/app/config"
	"provisioning-service/app/driver/kratos"
	"provisioning-service/app/driver/postgres"
	"provisioning-service/app/gateway"
	"provisioning-service/app/port"
	"provisioning-service/app/rest"
	"provisioning-service/app/rest/handlers"
	"provisioning-service/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB           *postgres.DB
	KratosClient *kratos.Client

	// Usecases
	RegistrationUsecase port.RegistrationUsecase
	RepairUsecase       port.RepairUsecase
	InspectionUsecase   port.InspectionUsecase
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error

	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.KratosClient, err = kratos.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kratos client: %w", err)
	}

	// Repositories
	tenantRepository := postgres.NewTenantRepository(container.DB.Pool(), logger)
	userRepository := postgres.NewUserRepository(container.DB.Pool(), logger)

	// Identity provider: the Kratos adapter wrapped by the gateway, which
	// owns email normalization.
	identityAdapter := kratos.NewIdentityAdapter(container.KratosClient, cfg.KratosIdentitySchema, logger)
	identityGateway := gateway.NewIdentityGateway(identityAdapter, logger)

	// Usecases
	provisioner := usecase.NewIdentityProvisioner(identityGateway, logger)
	allocator := usecase.NewSubdomainAllocator(tenantRepository, logger)
	linker := usecase.NewUserLinker(userRepository, logger)

	container.RegistrationUsecase = usecase.NewRegistrationUseCase(
		provisioner, allocator, linker, tenantRepository, logger)
	container.RepairUsecase = usecase.NewRepairUseCase(identityGateway, userRepository, logger)
	container.InspectionUsecase = usecase.NewInspectionUseCase(identityGateway, userRepository, logger)

	logger.Info("Container initialized with full dependency stack")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:       c.Logger,
		Registration: c.RegistrationUsecase,
		Repair:       c.RepairUsecase,
		Inspection:   c.InspectionUsecase,
		HealthChecks: map[string]handlers.HealthChecker{
			"database": c.DB,
			"kratos":   c.KratosClient,
		},
		AllowedOrigins: c.Config.AllowedOrigins,
		EnableDebug:    c.Config.LogLevel == "debug",
	}

	router := rest.NewRouter(routerConfig)

	c.Logger.Info("Full API router created")
	return router
}

// Close closes all resources
func (c *Container) Close() error {
	if c.DB != nil {
		c.DB.Close()
	}

	// The Kratos client holds no connections that need explicit cleanup.

	c.Logger.Info("Container closed successfully")
	return nil
}
