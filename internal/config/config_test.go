package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductionConfig() *Config {
	return &Config{
		Port:       "8080",
		JWTSecret:  strings.Repeat("s", 32),
		DBPassword: "a-real-password",
		DBSSLMode:  "require",
		Env:        "production",
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	cfg := &Config{JWTSecret: "secret"}
	assert.ErrorContains(t, cfg.Validate(), "PORT")

	cfg = &Config{Port: "8080"}
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg = &Config{Port: "8080", JWTSecret: "secret", Env: "development"}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Production(t *testing.T) {
	cfg := validProductionConfig()
	require.NoError(t, cfg.Validate())

	cfg = validProductionConfig()
	cfg.JWTSecret = "your-secret-key-change-in-production"
	assert.ErrorContains(t, cfg.Validate(), "default value")

	cfg = validProductionConfig()
	cfg.JWTSecret = "short"
	assert.ErrorContains(t, cfg.Validate(), "32 characters")

	cfg = validProductionConfig()
	cfg.DBPassword = "password"
	assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")

	// "prod" gets the same treatment as "production"
	cfg = validProductionConfig()
	cfg.Env = "prod"
	cfg.DBPassword = ""
	assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")
}

func TestValidate_DevelopmentAllowsDefaults(t *testing.T) {
	cfg := &Config{
		Port:      "8080",
		JWTSecret: "your-secret-key-change-in-production",
		Env:       "development",
	}
	assert.NoError(t, cfg.Validate())
}
