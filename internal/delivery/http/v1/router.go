package v1

import (
	"time"

	"opportunityhub-backend/config"
	"opportunityhub-backend/internal/delivery/http/middleware"
	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/logger"
	"opportunityhub-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	EmployerUC    domain.EmployerUsecase
	YouthUC       domain.YouthUsecase
	OpportunityUC domain.OpportunityUsecase
	ApplicationUC domain.ApplicationUsecase
	Health        HealthChecker

	LoginTracker   *security.LoginTracker
	SecurityLogger *security.Logger
	// Rate limit counters; separate stores keep the two limits independent
	GlobalLimitStore limiter.Store
	AuthLimitStore   limiter.Store

	Config *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(logger.GinLogger())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(deps.GlobalLimitStore,
		middleware.DefaultRateLimitConfig(int64(cfg.RateLimitGlobalThreshold), window), deps.SecurityLogger))

	authLimit := middleware.RateLimitMiddleware(deps.AuthLimitStore,
		middleware.AuthRateLimitConfig(int64(cfg.RateLimitAuthThreshold), window), deps.SecurityLogger)

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.Health)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))
	{
		NewAuthHandler(v1, protected, deps.AuthUC, deps.LoginTracker, deps.SecurityLogger, authLimit)
		NewEmployerHandler(protected, deps.EmployerUC)
		NewYouthHandler(protected, deps.YouthUC)
		NewOpportunityHandler(v1, protected, deps.OpportunityUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
	}

	return r
}
