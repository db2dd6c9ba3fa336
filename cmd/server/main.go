package main

import (
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Storefront/internal/app"
	"Storefront/internal/auth"
	"Storefront/internal/config"
	"Storefront/internal/store"
	"Storefront/pkg/kit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := kit.NewLogger("storefront", cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	st := store.New(cfg.Currency.Code, cfg.Currency.Multiplier)
	if cfg.Seed {
		if err := st.Seed(); err != nil {
			logger.Fatal("seed failed", zap.Error(err))
		}
		logger.Info("demo data seeded")
	}

	tm := auth.NewTokenMaker(cfg.JWT.Secret, cfg.JWT.TTL)

	h := app.NewHandler(app.Deps{
		Store:    st,
		JWT:      tm,
		Cfg:      cfg,
		Log:      logger,
		Registry: prometheus.NewRegistry(),
	})

	if err := kit.RunHTTPServer(fmt.Sprintf(":%d", cfg.Port), h, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
