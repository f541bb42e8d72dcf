package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	DBUrl       string `yaml:"database_url"`
	// Apply embedded migrations at startup
	RunMigrations bool `yaml:"run_migrations"`

	// Token signing
	JWTSecret       string        `yaml:"jwt_secret"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`

	FrontendURL    string   `yaml:"frontend_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Email: "resend", "smtp" or "none"
	EmailProvider    string        `yaml:"email_provider"`
	ResendAPIKey     string        `yaml:"resend_api_key"`
	DefaultFromEmail string        `yaml:"default_from_email"`
	EmailTimeout     time.Duration `yaml:"email_timeout"`
	SMTPHost         string        `yaml:"smtp_host"`
	SMTPPort         string        `yaml:"smtp_port"`
	SMTPUsername     string        `yaml:"smtp_username"`
	SMTPPassword     string        `yaml:"smtp_password"`

	// Redis backs rate limiting and login tracking when configured
	RedisURL      string `yaml:"redis_url"`
	RedisPassword string `yaml:"redis_password"`

	RateLimitWindowSeconds   int `yaml:"rate_limit_window_seconds"`
	RateLimitAuthThreshold   int `yaml:"rate_limit_auth_threshold"`
	RateLimitGlobalThreshold int `yaml:"rate_limit_global_threshold"`
	FailedLoginBlockMinutes  int `yaml:"failed_login_block_minutes"`
	FailedLoginMaxAttempts   int `yaml:"failed_login_max_attempts"`

	// Minimum skill overlap (0-100) for opportunity match emails
	MatchMinScore int `yaml:"match_min_score"`

	SecurityLogToDB bool `yaml:"security_log_to_db"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:                     "8080",
		Environment:              "development",
		LogLevel:                 "info",
		RunMigrations:            true,
		AccessTokenTTL:           time.Hour,
		RefreshTokenTTL:          7 * 24 * time.Hour,
		FrontendURL:              "http://localhost:3000",
		AllowedOrigins:           []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		EmailProvider:            "resend",
		DefaultFromEmail:         "OpportunityHub <noreply@opportunityhub.co.ke>",
		EmailTimeout:             10 * time.Second,
		SMTPHost:                 "localhost",
		SMTPPort:                 "587",
		RateLimitWindowSeconds:   60,
		RateLimitAuthThreshold:   10,
		RateLimitGlobalThreshold: 100,
		FailedLoginBlockMinutes:  15,
		FailedLoginMaxAttempts:   5,
		MatchMinScore:            50,
		SecurityLogToDB:          false,
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// named by CONFIG_FILE, and environment variables, in increasing precedence.
func LoadConfig() (*Config, error) {
	// .env is optional; production sets real environment variables
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory store.")
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("APP_ENV", c.Environment)
	if os.Getenv("GIN_MODE") == "release" {
		c.Environment = "production"
	}
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.DBUrl = getEnv("DATABASE_URL", c.DBUrl)
	c.RunMigrations = getEnvBool("RUN_MIGRATIONS", c.RunMigrations)

	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.AccessTokenTTL = getEnvDuration("ACCESS_TOKEN_TTL", c.AccessTokenTTL)
	c.RefreshTokenTTL = getEnvDuration("REFRESH_TOKEN_TTL", c.RefreshTokenTTL)

	// Trailing slash would produce double slashes in email links
	c.FrontendURL = strings.TrimRight(getEnv("FRONTEND_URL", c.FrontendURL), "/")
	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}

	c.EmailProvider = strings.ToLower(getEnv("EMAIL_PROVIDER", c.EmailProvider))
	c.ResendAPIKey = getEnv("RESEND_API_KEY", c.ResendAPIKey)
	c.DefaultFromEmail = getEnv("DEFAULT_FROM_EMAIL", c.DefaultFromEmail)
	c.EmailTimeout = getEnvDuration("EMAIL_TIMEOUT", c.EmailTimeout)
	c.SMTPHost = getEnv("SMTP_HOST", c.SMTPHost)
	c.SMTPPort = getEnv("SMTP_PORT", c.SMTPPort)
	c.SMTPUsername = getEnv("SMTP_USERNAME", c.SMTPUsername)
	c.SMTPPassword = getEnv("SMTP_PASSWORD", c.SMTPPassword)

	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)

	c.RateLimitWindowSeconds = getEnvInt("RATE_LIMIT_WINDOW_SECONDS", c.RateLimitWindowSeconds)
	c.RateLimitAuthThreshold = getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", c.RateLimitAuthThreshold)
	c.RateLimitGlobalThreshold = getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", c.RateLimitGlobalThreshold)
	c.FailedLoginBlockMinutes = getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", c.FailedLoginBlockMinutes)
	c.FailedLoginMaxAttempts = getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", c.FailedLoginMaxAttempts)

	c.MatchMinScore = getEnvInt("MATCH_MIN_SCORE", c.MatchMinScore)
	c.SecurityLogToDB = getEnvBool("SECURITY_LOG_TO_DB", c.SecurityLogToDB)
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	switch c.EmailProvider {
	case "resend", "smtp", "none":
	default:
		return fmt.Errorf("config: unknown EMAIL_PROVIDER %q", c.EmailProvider)
	}
	if c.MatchMinScore < 0 || c.MatchMinScore > 100 {
		return fmt.Errorf("config: MATCH_MIN_SCORE must be between 0 and 100")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("config: token lifetimes must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
