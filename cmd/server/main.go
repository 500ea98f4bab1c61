package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/mars-colony-api/internal/config"
	"github.com/yukikurage/mars-colony-api/internal/constants"
	"github.com/yukikurage/mars-colony-api/internal/credentials"
	"github.com/yukikurage/mars-colony-api/internal/database"
	"github.com/yukikurage/mars-colony-api/internal/handlers"
	"github.com/yukikurage/mars-colony-api/internal/logging"
	"github.com/yukikurage/mars-colony-api/internal/middleware"
	"github.com/yukikurage/mars-colony-api/internal/repository"
	"github.com/yukikurage/mars-colony-api/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.GinMode)
	slog.SetDefault(logger)

	// Connect to database
	storage := database.NewStorage(logger)
	if err := storage.Initialize(location(cfg)); err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	db, err := storage.OpenSession()
	if err != nil {
		logger.Error("failed to open session", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(db, logger); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := sessionStore(cfg)
	if err != nil {
		logger.Error("failed to create session store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize services
	colonists := repository.NewColonistRepository(db)
	categories := repository.NewCategoryRepository(db)
	app := application{
		privileges:  services.NewPrivileges(cfg.PrivilegedIDs),
		auth:        services.NewAuthService(colonists, credentials.NewBcryptHasher(bcrypt.DefaultCost)),
		jobs:        services.NewJobService(repository.NewJobRepository(db), colonists, categories),
		departments: services.NewDepartmentService(repository.NewDepartmentRepository(db), colonists),
		categories:  services.NewCategoryService(categories),
		reports:     services.NewReportService(storage, logger),
	}

	r := app.router(cfg, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:    cfg.AppAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server starting", slog.String("addr", cfg.AppAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", slog.String("error", err.Error()))
	}
}

type application struct {
	privileges  *services.Privileges
	auth        *services.AuthService
	jobs        *services.JobService
	departments *services.DepartmentService
	categories  *services.CategoryService
	reports     *services.ReportService
}

func (app application) router(cfg *config.Config, store sessions.Store, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(app.auth)
	jobHandler := handlers.NewJobHandler(app.jobs)
	departmentHandler := handlers.NewDepartmentHandler(app.departments)
	categoryHandler := handlers.NewCategoryHandler(app.categories)
	reportHandler := handlers.NewReportHandler(app.reports)

	requireAuth := middleware.RequireAuth(app.privileges)
	requireJob := middleware.RequireJob(app.jobs)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Mars Colony API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentColonist)
		}

		colonists := api.Group("/colonists")
		colonists.Use(requireAuth)
		{
			colonists.GET("/:id", authHandler.GetColonist)
			colonists.PATCH("/:id", authHandler.UpdateColonist)
		}

		jobs := api.Group("/jobs")
		jobs.Use(requireAuth)
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.POST("", jobHandler.CreateJob)
			jobs.GET("/:id", requireJob, jobHandler.GetJob)
			jobs.PUT("/:id", requireJob, jobHandler.UpdateJob)
			jobs.DELETE("/:id", requireJob, jobHandler.DeleteJob)
		}

		departments := api.Group("/departments")
		departments.Use(requireAuth)
		{
			departments.GET("", departmentHandler.ListDepartments)
			departments.POST("", departmentHandler.CreateDepartment)
			departments.GET("/:id", departmentHandler.GetDepartment)
			departments.PUT("/:id", departmentHandler.UpdateDepartment)
			departments.DELETE("/:id", departmentHandler.DeleteDepartment)
		}

		categories := api.Group("/categories")
		categories.Use(requireAuth)
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		reports := api.Group("/reports")
		reports.Use(requireAuth)
		{
			reports.POST("/relocate", reportHandler.Relocate)
			reports.GET("/:task", reportHandler.RunReport)
		}
	}

	return r
}

func location(cfg *config.Config) database.Location {
	loc := database.Location{
		Driver:   cfg.DBDriver,
		DSN:      cfg.DBDSN,
		LogLevel: database.ParseLogLevel(cfg.DBLogLevel),
	}
	if cfg.DBDriver == database.DriverSQLite {
		loc.DSN = cfg.DBPath
	}
	return loc
}

// sessionStore builds the session backend selected by SESSION_STORE.
func sessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		s, err := redisStore.NewStore(
			10,                        // Redis pool size
			"tcp",                     // network type
			redisAddr,                 // Redis address from config
			"",                        // username (empty for default user)
			"",                        // password (empty = no password)
			[]byte(cfg.SessionSecret), // authentication key
		)
		if err != nil {
			return nil, err
		}
		store = s
	default:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	// Configure session options based on environment
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
