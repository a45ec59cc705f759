package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/uniadmin/internal/app/controllers"
	appMigrations "github.com/yigit/uniadmin/internal/app/migrations"
	appRepos "github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/app/repositories/memory"
	appRoutes "github.com/yigit/uniadmin/internal/app/routes"
	appServices "github.com/yigit/uniadmin/internal/app/services"
	"github.com/yigit/uniadmin/internal/config"
	"github.com/yigit/uniadmin/internal/db"
	appMiddleware "github.com/yigit/uniadmin/internal/middleware"
	"github.com/yigit/uniadmin/internal/pkg/logger"
	"github.com/yigit/uniadmin/internal/pkg/validation"
	"github.com/yigit/uniadmin/internal/seed"
	"github.com/yigit/uniadmin/internal/web"
)

const startupTimeout = 30 * time.Second

// DefaultConfigPath is where the configuration file is looked up when none is given
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store       appRepos.Store
	Services    *appServices.Services
	Controllers appRoutes.Controllers
	Logger      zerolog.Logger
}

// Storage is the configured store plus the resources behind it
type Storage struct {
	Store    appRepos.Store
	Postgres *db.PostgresDB // nil for the memory driver
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.Postgres != nil {
		s.Postgres.Close()
	}
}

// Migrate applies pending schema migrations. The memory driver has no schema.
func (s *Storage) Migrate(ctx context.Context, lgr zerolog.Logger) (int, error) {
	if s.Postgres == nil {
		lgr.Info().Msg("Memory store selected, skipping migrations")
		return 0, nil
	}
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(s.Postgres.Pool, appMigrations.Files(), lgr)
	applied, err := migrator.Migrate(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return applied, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return applied, nil
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err // Return zero logger and the error
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Format: logger.Format(strings.ToLower(cfg.Logging.Format)),
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	for _, name := range config.EnvOverrides(cfg) {
		lgr.Debug().Str("variable", name).Msg("Configuration overridden from environment")
	}
	return cfg, lgr, nil
}

// SetupStore opens the configured store. For PostgreSQL the connection is
// verified before returning.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using the in-memory store; data is lost on restart")
		return &Storage{Store: memory.NewStore()}, nil
	case config.DriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		ctx, cancel := context.WithTimeout(ctx, startupTimeout)
		defer cancel()
		database, err := db.NewPostgresDB(ctx, cfg, lgr)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")
		return &Storage{Store: appRepos.NewPostgresStore(database), Postgres: database}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// SetupDatabase opens the store, applies migrations and seeds sample data
// when enabled. Seeding failures are logged and never stop startup.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	storage, err := SetupStore(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	migrateCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	if _, err := storage.Migrate(migrateCtx, lgr); err != nil {
		storage.Close()
		return nil, err
	}

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(migrateCtx, storage.Store, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}
	return storage, nil
}

// BuildDependencies initializes services and controllers over store.
func BuildDependencies(store appRepos.Store, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Store: store, Logger: lgr}

	deps.Services = appServices.NewServices(store, validation.New(), lgr)

	deps.Controllers = appRoutes.Controllers{
		Home:        appControllers.NewHomeController(deps.Services.Students),
		Students:    appControllers.NewStudentController(deps.Services.Students),
		Courses:     appControllers.NewCourseController(deps.Services.Courses),
		Departments: appControllers.NewDepartmentController(deps.Services.Departments),
		Enrollments: appControllers.NewEnrollmentController(deps.Services.Enrollments),
		Instructors: appControllers.NewInstructorController(deps.Services.Instructors),
		Health:      appControllers.NewHealthController(store),
	}
	return deps
}

// SetupRouter configures the Gin engine with middleware, templates and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.Recovery())
	router.Use(appMiddleware.Sessions(appMiddleware.SessionOptions{
		Name:   cfg.Session.Name,
		Secret: cfg.Session.Secret,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	}))
	router.Use(appMiddleware.CSRF())

	tmpl, err := web.ParseTemplates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	appRoutes.SetupRouter(router, deps.Controllers)
	return router, nil
}
