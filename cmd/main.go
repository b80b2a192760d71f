package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/loyaltypoints/backend/docs"
	"github.com/loyaltypoints/backend/internal/auth"
	"github.com/loyaltypoints/backend/internal/config"
	"github.com/loyaltypoints/backend/internal/handlers"
	"github.com/loyaltypoints/backend/internal/logger"
	"github.com/loyaltypoints/backend/internal/middleware"
	"github.com/loyaltypoints/backend/internal/repositories"
	"github.com/loyaltypoints/backend/internal/services"
	"github.com/loyaltypoints/backend/internal/storage"
	"github.com/robfig/cron/v3"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Loyalty Points API
// @version 1.0
// @description API for loyalty point accounts, promo codes and reward redemption

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Loyalty Points Service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize image storage
	images := storage.NewLocalStorage(cfg.ImagePath)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	historyRepo := repositories.NewHistoryRepository(db, logger.Logger)
	rewardRepo := repositories.NewRewardRepository(db, logger.Logger)
	codeRepo := repositories.NewCodeRepository(db, logger.Logger)
	redemptionRepo := repositories.NewRedemptionRepository(db, logger.Logger)
	userTokenRepo := repositories.NewUserTokenRepository(db, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, userTokenRepo, tokenGenerator, logger.Logger)
	profileService := services.NewProfileService(userRepo, historyRepo, logger.Logger)
	codeService := services.NewCodeService(codeRepo, logger.Logger)
	rewardService := services.NewRewardService(rewardRepo, redemptionRepo, logger.Logger)
	adminService := services.NewAdminService(userRepo, rewardRepo, images, logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	profileHandler := handlers.NewProfileHandler(profileService, codeService, logger.Logger)
	rewardHandler := handlers.NewRewardHandler(rewardService, images, logger.Logger)
	adminHandler := handlers.NewAdminHandler(adminService, logger.Logger)

	// Initialize auth middleware. The admin guard re-reads the caller's
	// stored role on every request.
	authMiddleware := middleware.Auth(tokenGenerator)
	adminMiddleware := middleware.RequireAdmin(userRepo, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger.Logger))
	r.Use(middleware.Recovery(logger.Logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimit(10 * 1024 * 1024)) // 10MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api
	r.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		profileHandler.RegisterRoutes(r, authMiddleware)
		rewardHandler.RegisterRoutes(r, authMiddleware)
		// Admin routes behind auth + stored-role guard
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			adminHandler.RegisterRoutes(r)
		})
	})

	// Schedule expired refresh token cleanup twice daily
	c := cron.New()
	if _, err := c.AddFunc("30 3,15 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		deleted, err := userTokenRepo.DeleteExpired(ctx, cfg.JWT.RefreshTokenExpiry)
		if err != nil {
			logger.Logger.Error("token cleanup failed", zap.Error(err))
			return
		}
		logger.Logger.Info("expired tokens cleaned", zap.Int64("deleted", deleted))
	}); err != nil {
		logger.Logger.Fatal("Failed to schedule token cleanup", zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
