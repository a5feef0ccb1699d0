package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Parse loads a .env file (if one exists) and reads the environment into
// a Config. Missing required values are reported as an error rather than
// surfacing later as a half-configured server.
func Parse() (Config, error) {
	godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse cfg: %w", err)
	}

	return cfg, nil
}
