package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{
		Environment: "development",
	}
	assert.True(t, cfg.IsDevelopment())

	cfg = &Config{
		Environment: "production",
	}
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())

	cfg = &Config{
		Environment: "staging",
	}
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadWithOptions(t *testing.T) {
	// Set environment variables for the test
	os.Setenv("SERVER_PORT", "9000")
	os.Setenv("SERVER_HOST", "127.0.0.1")
	os.Setenv("ENVIRONMENT", "development")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SMTP_HOST", "smtp.test.local")
	os.Setenv("SMTP_USERNAME", "testuser")
	os.Setenv("SMTP_FROM_EMAIL", "hello@test.local")

	// Clean up after the test
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("SERVER_HOST")
		os.Unsetenv("ENVIRONMENT")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SMTP_HOST")
		os.Unsetenv("SMTP_USERNAME")
		os.Unsetenv("SMTP_FROM_EMAIL")
	}()

	// Load config with env vars
	cfg, err := LoadWithOptions(LoadOptions{
		// Don't specify EnvFile to force it to use environment variables
	})
	require.NoError(t, err)

	// Verify loaded config values
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "smtp.test.local", cfg.SMTP.Host)
	assert.Equal(t, "testuser", cfg.SMTP.Username)
	assert.Equal(t, "hello@test.local", cfg.SMTP.FromEmail)
}

func TestLoadWithOptions_Defaults(t *testing.T) {
	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "Draftmail", cfg.SMTP.FromName)
	assert.Equal(t, VERSION, cfg.Version)
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}
