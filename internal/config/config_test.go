package config_test

import (
	"testing"

	"fixtrack/backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.New()

	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 5, cfg.AssignmentCap, "assignment cap should default to 5")
	assert.Empty(t, cfg.TelegramBotToken)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("ASSIGNMENT_CAP", "10")

	cfg, err := config.New()

	assert.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, 10, cfg.AssignmentCap)
}

func TestNew_NegativeCapRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ASSIGNMENT_CAP", "-1")

	_, err := config.New()

	assert.Error(t, err)
}
