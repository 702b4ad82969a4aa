package bootstrap

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mnogodumalon/kurs40/internal/app/controllers"
	appRoutes "github.com/mnogodumalon/kurs40/internal/app/routes"
	"github.com/mnogodumalon/kurs40/internal/app/schema"
	appServices "github.com/mnogodumalon/kurs40/internal/app/services"
	"github.com/mnogodumalon/kurs40/internal/config"
	"github.com/mnogodumalon/kurs40/internal/livingapps"
	appMiddleware "github.com/mnogodumalon/kurs40/internal/middleware"
	"github.com/mnogodumalon/kurs40/internal/pkg/logger"
	"github.com/mnogodumalon/kurs40/internal/web"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Catalog             *schema.Catalog
	Store               *livingapps.Client
	ResourceService     appServices.ResourceService
	DashboardService    appServices.DashboardService
	ResourceController  *appControllers.ResourceController
	DashboardController *appControllers.DashboardController
	WebHandler          *web.Handler
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies initializes the record store client, services,
// controllers and the web handler.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Catalog = schema.NewCatalog()
	deps.Store = livingapps.NewClient(cfg.LivingApps.BaseURL, cfg.RequestTimeoutDuration(), lgr)
	lgr.Info().Str("baseUrl", cfg.LivingApps.BaseURL).Msg("Record store client configured")

	appIDs := cfg.AppIDs()
	deps.ResourceService = appServices.NewResourceService(deps.Store, deps.Catalog, appIDs, lgr)
	deps.DashboardService = appServices.NewDashboardService(deps.Store, deps.Catalog, appIDs)

	deps.ResourceController = appControllers.NewResourceController(deps.ResourceService, deps.Catalog)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)

	deps.WebHandler = web.NewHandler(deps.ResourceService, deps.DashboardService, deps.Catalog, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	// JSON API for the five resource kinds plus dashboard counts
	appRoutes.SetupRouter(router, deps.Catalog, deps.ResourceController, deps.DashboardController)

	// Server-rendered dashboard
	deps.WebHandler.Register(router)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
