package config

import (
	"fmt"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Configuration holds everything the service reads from the environment.
type Configuration struct {
	Address     string `env:"ADDRESS" envDefault:":8080"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"host=localhost user=user password=password dbname=fixtrackdb port=5432 sslmode=disable"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	JWTSecret   string `env:"JWT_SECRET,required"`

	// AssignmentCap is the maximum number of in-progress complaints a
	// single worker may hold.
	AssignmentCap int `env:"ASSIGNMENT_CAP" envDefault:"5"`

	// TelegramBotToken enables the Telegram notification relay when set.
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
}

// New loads .env if present and parses the configuration from the
// environment.
func New() (*Configuration, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file loaded")
	}

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.AssignmentCap < 0 {
		return nil, fmt.Errorf("ASSIGNMENT_CAP must be >= 0, got %d", cfg.AssignmentCap)
	}
	return cfg, nil
}
