package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DBPath      string `env:"DB_PATH"`
	Environment string `env:"ENV" envDefault:"development"`
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables win either way
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DBPath == "" {
		return nil, fmt.Errorf("DB_PATH is required but not set")
	}

	return cfg, nil
}
