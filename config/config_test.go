package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("FRONTEND_URL", "https://app.example/")
	t.Setenv("MATCH_MIN_SCORE", "75")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "https://app.example", cfg.FrontendURL)
	assert.Equal(t, 75, cfg.MatchMinScore)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
port: "7000"
jwt_secret: from-file
email_provider: smtp
email_timeout: 3s
match_min_score: 60
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MATCH_MIN_SCORE", "80")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "smtp", cfg.EmailProvider)
	assert.Equal(t, 3*time.Second, cfg.EmailTimeout)
	// env wins over file
	assert.Equal(t, 80, cfg.MatchMinScore)
}

func TestValidate(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		cfg := Default()
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown email provider", func(t *testing.T) {
		cfg := Default()
		cfg.JWTSecret = "x"
		cfg.EmailProvider = "carrier-pigeon"
		assert.Error(t, cfg.Validate())
	})

	t.Run("score out of range", func(t *testing.T) {
		cfg := Default()
		cfg.JWTSecret = "x"
		cfg.MatchMinScore = 101
		assert.Error(t, cfg.Validate())
	})

	t.Run("valid", func(t *testing.T) {
		cfg := Default()
		cfg.JWTSecret = "x"
		assert.NoError(t, cfg.Validate())
	})
}
