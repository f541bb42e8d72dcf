package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opportunityhub-backend/config"
	"opportunityhub-backend/db"
	_ "opportunityhub-backend/docs" // Important for Swagger
	"opportunityhub-backend/internal/delivery/http/middleware"
	v1 "opportunityhub-backend/internal/delivery/http/v1"
	"opportunityhub-backend/internal/repository/postgres"
	"opportunityhub-backend/internal/usecase"
	"opportunityhub-backend/pkg/auth"
	"opportunityhub-backend/pkg/database"
	"opportunityhub-backend/pkg/email"
	"opportunityhub-backend/pkg/logger"
	"opportunityhub-backend/pkg/redis"
	"opportunityhub-backend/pkg/security"
	"opportunityhub-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// @title           OpportunityHub API
// @version         1.0
// @description     Youth job-matching backend: accounts, profiles, opportunities and applications.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	logger.Log.Info("Starting opportunityhub backend", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 3. Setup Database
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	dbPool, err := database.NewPostgresConnection(startCtx, cfg.DBUrl)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	if cfg.RunMigrations {
		if err := database.Migrate(startCtx, dbPool, db.Migrations, db.MigrationsDir); err != nil {
			logger.Log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// 4. Redis is optional; without it rate limits are per process and
	// failed logins are not tracked
	if cfg.RedisURL != "" {
		if err := redis.Initialize(startCtx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, falling back to in-memory rate limiting", zap.Error(err))
		}
	}
	defer redis.Close()
	cancelStart()

	// 5. Security logging
	secLogger := security.NewLogger(logger.Log, "opportunityhub-api", cfg.Environment)
	if cfg.SecurityLogToDB {
		secLogger.SetPersistFunc(security.NewEventRepository(dbPool).PersistEvent)
	}
	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
	}, redis.Client, secLogger)

	globalStore, err := middleware.NewRateLimitStore(redis.Client(), "rl:ip")
	if err != nil {
		logger.Log.Fatal("Failed to create rate limit store", zap.Error(err))
	}
	authStore, err := middleware.NewRateLimitStore(redis.Client(), "rl:auth")
	if err != nil {
		logger.Log.Fatal("Failed to create rate limit store", zap.Error(err))
	}

	// 6. Setup Email Service
	var sender email.Sender
	switch cfg.EmailProvider {
	case "resend":
		if cfg.ResendAPIKey == "" {
			logger.Log.Warn("RESEND_API_KEY not set - emails will not be delivered")
			sender = email.NopSender{}
		} else {
			sender = email.NewResendSender(cfg.ResendAPIKey, cfg.DefaultFromEmail)
		}
	case "smtp":
		sender = email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.DefaultFromEmail)
	default:
		sender = email.NopSender{}
	}
	emailService := email.NewService(sender, cfg.EmailTimeout)
	notifier := usecase.NewEmailNotifier(emailService, cfg.FrontendURL)

	// 7. Setup Repositories
	tx := database.NewTransactor(dbPool)
	accountRepo := postgres.NewAccountRepository(dbPool)
	userProfileRepo := postgres.NewUserProfileRepository(dbPool)
	refreshRepo := postgres.NewRefreshTokenRepository(dbPool)
	employerRepo := postgres.NewEmployerProfileRepository(dbPool)
	youthRepo := postgres.NewYouthProfileRepository(dbPool)
	skillRepo := postgres.NewSkillRepository(dbPool)
	youthSkillRepo := postgres.NewYouthSkillRepository(dbPool)
	experienceRepo := postgres.NewExperienceRepository(dbPool)
	opportunityRepo := postgres.NewOpportunityRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 8. Setup UseCases
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authUC := usecase.NewAuthUsecase(tx, accountRepo, userProfileRepo, refreshRepo, tokens, notifier)
	employerUC := usecase.NewEmployerUsecase(employerRepo, accountRepo)
	youthUC := usecase.NewYouthUsecase(youthRepo, skillRepo, youthSkillRepo, experienceRepo, accountRepo)
	opportunityUC := usecase.NewOpportunityUsecase(tx, opportunityRepo, employerRepo, skillRepo, youthRepo, notifier, cfg.MatchMinScore)
	applicationUC := usecase.NewApplicationUsecase(tx, applicationRepo, opportunityRepo, employerRepo, notifier)

	checks := map[string]usecase.HealthCheck{"database": dbPool.Ping}
	if redis.Client() != nil {
		checks["redis"] = redis.HealthCheck
	}
	healthUC := usecase.NewHealthUsecase(checks)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:           authUC,
		EmployerUC:       employerUC,
		YouthUC:          youthUC,
		OpportunityUC:    opportunityUC,
		ApplicationUC:    applicationUC,
		Health:           healthUC,
		LoginTracker:     loginTracker,
		SecurityLogger:   secLogger,
		GlobalLimitStore: globalStore,
		AuthLimitStore:   authStore,
		Config:           cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()
	logger.Log.Info("Server listening", zap.String("addr", srv.Addr))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
