package main

import (
	"net/http"
	"os"
	"time"

	"care-circle/internal/adapters/auth/tokenjwt"
	pg "care-circle/internal/adapters/storage/postgres"
	"care-circle/internal/config"
	"care-circle/internal/platform/logger"
	"care-circle/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{App: "care-circle"}).Error("invalid config", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		App:    "care-circle",
	})

	codec := tokenjwt.New(cfg.JWTSecret, cfg.TokenTTL)

	opts := router.Options{
		AuthVerifier: codec,
		TokenIssuer:  codec,
		BcryptCost:   cfg.BcryptCost,
	}

	storage := "memory"
	if cfg.DatabaseURL != "" {
		db, err := pg.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres unavailable", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
		storage = "postgres"
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr, "storage": storage})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
