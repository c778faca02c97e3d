package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nonso/acadport/internal/app/controllers"
	"github.com/nonso/acadport/internal/app/migrations"
	"github.com/nonso/acadport/internal/app/repositories"
	"github.com/nonso/acadport/internal/app/routes"
	"github.com/nonso/acadport/internal/app/services"
	"github.com/nonso/acadport/internal/config"
	"github.com/nonso/acadport/internal/db"
	"github.com/nonso/acadport/internal/middleware"
	"github.com/nonso/acadport/internal/pkg/auth"
	"github.com/nonso/acadport/internal/pkg/filestorage"
	"github.com/nonso/acadport/internal/pkg/logger"
	"github.com/nonso/acadport/internal/pkg/pdfexport"
	"github.com/nonso/acadport/internal/seed"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Controllers    routes.Controllers
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *middleware.Metrics
	Repos          *repositories.Repositories
	FileStorage    *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and configures the global
// logger from it.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	logger.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase connects to PostgreSQL, applies migrations, and seeds the
// default catalog.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	logger.Info().Msg("Establishing database connection")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info().Msg("Running database migrations")
	if err := migrations.NewMigrator(dbPool).Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(ctx, dbPool); err != nil {
		logger.Warn().Err(err).Msg("Seeding default data reported errors")
	}

	return dbPool, nil
}

// BuildDependencies wires repositories, services, controllers, and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	repos := repositories.NewRepositories(dbPool)

	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.BaseURL+"/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey: cfg.JWT.Secret,
		TokenExp:  cfg.JWTTokenExpiration(),
		Issuer:    cfg.JWT.Issuer,
	})

	metrics := middleware.NewMetrics()
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	studentService := services.NewStudentService(repos.Identities, repos.Profiles, repos.Documents, storage)
	authService := services.NewAuthService(repos.Identities, jwtService, cfg.Admin.Email, cfg.Admin.PasswordHash)
	courseService := services.NewCourseService(repos.Courses)
	pinService := services.NewPinService(repos.Pins, repos.Courses)
	enrollmentService := services.NewEnrollmentService(repos.Enrollments, repos.Courses)
	paymentService := services.NewPaymentService(repos.Payments)
	resultService := services.NewResultService(repos.Results, repos.Courses, repos.Profiles)

	renderer := pdfexport.NewRenderer(cfg.ExportImageFetchTimeout())
	exportService := services.NewExportService(studentService, renderer)

	deps := &Dependencies{
		Controllers: routes.Controllers{
			Auth:       controllers.NewAuthController(authService),
			Student:    controllers.NewStudentController(studentService, metrics),
			Course:     controllers.NewCourseController(courseService),
			Pin:        controllers.NewPinController(pinService),
			Enrollment: controllers.NewEnrollmentController(enrollmentService, metrics),
			Payment:    controllers.NewPaymentController(paymentService),
			Result:     controllers.NewResultController(resultService, metrics),
			Export:     controllers.NewExportController(exportService),
		},
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
		Repos:          repos,
		FileStorage:    storage,
	}
	return deps, nil
}

// SetupRouter builds the gin engine and mounts all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())
	router.Use(deps.Metrics.Instrument())

	routes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.Metrics)

	// Stored passports and documents are served from the upload root.
	router.Static("/uploads", deps.FileStorage.BasePath())

	return router
}

// requestLogger logs each request with zerolog instead of gin's default
// stdlib logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("clientIP", c.ClientIP()).
			Msg("Request handled")
	}
}
