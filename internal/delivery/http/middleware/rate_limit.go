package middleware

import (
	"net/http"
	"strconv"
	"time"

	"opportunityhub-backend/internal/delivery/http/response"
	"opportunityhub-backend/pkg/logger"
	"opportunityhub-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int64
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Whether to reject requests when the store is unavailable
	FailClosed bool
}

// DefaultRateLimitConfig returns the general API limit.
func DefaultRateLimitConfig(limit int64, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		FailClosed: false, // Fail open by default for availability
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// AuthRateLimitConfig returns the strict limit for login and registration.
func AuthRateLimitConfig(limit int64, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		FailClosed: true,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP() + ":" + c.FullPath()
		},
	}
}

// NewRateLimitStore uses redis when a client is given and memory otherwise.
func NewRateLimitStore(client *goredis.Client, prefix string) (limiter.Store, error) {
	if client == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          prefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		}), nil
	}
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   prefix,
		MaxRetry: limiter.DefaultMaxRetry,
	})
}

// RateLimitMiddleware limits requests per key over the configured window.
func RateLimitMiddleware(store limiter.Store, config RateLimitConfig, secLogger *security.Logger) gin.HandlerFunc {
	rate := limiter.Rate{Period: config.Window, Limit: config.Limit}
	instance := limiter.New(store, rate)

	return func(c *gin.Context) {
		key := config.KeyFunc(c)

		limit, err := instance.Get(c.Request.Context(), key)
		if err != nil {
			logger.Log.Warn("rate limit store unavailable", zap.Error(err), zap.Bool("fail_closed", config.FailClosed))
			if config.FailClosed {
				response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again later.", nil)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(limit.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(limit.Reset, 10))

		if limit.Reached {
			if secLogger != nil {
				secLogger.LogRateLimitTriggered(c.Request.Context(), RequestMeta(c), c.FullPath())
			}
			retryAfter := limit.Reset - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, http.StatusTooManyRequests, "Request was throttled. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequestMeta extracts the request fields recorded with security events.
func RequestMeta(c *gin.Context) security.RequestMeta {
	return security.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString("RequestID"),
	}
}
