package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"care-circle/internal/platform/logger"
)

// Config reúne todo lo que el binario necesita del entorno.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	BcryptCost int

	LogLevel  logger.Level
	LogFormat logger.Format
}

// Load lee variables de entorno, cargando antes un .env si existe
// (en contenedores no hay .env y no pasa nada).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET_KEY")),
		TokenTTL:    24 * time.Hour,
		LogLevel:    logger.ParseLevel(os.Getenv("LOG_LEVEL")),
		LogFormat:   logger.ParseFormat(os.Getenv("LOG_FORMAT")),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET_KEY is required")
	}

	if v := strings.TrimSpace(os.Getenv("TOKEN_TTL")); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return Config{}, errors.New("TOKEN_TTL must be a positive duration (e.g. 24h)")
		}
		cfg.TokenTTL = ttl
	}

	if v := strings.TrimSpace(os.Getenv("BCRYPT_COST")); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, errors.New("BCRYPT_COST must be an integer")
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
