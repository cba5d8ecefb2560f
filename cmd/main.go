// Command sss runs the jewelry pricing calculator: a terminal form UI over
// daily metal prices, making charges and a history of computed sale prices,
// with an optional local web dashboard.
//
// Usage:
//
//	sss --config config.yaml
//	sss (uses built-in defaults, data in ./data)
package main

import (
	"context"
	"errors"
	"log"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LegitNotT/SSS/config"
	"github.com/LegitNotT/SSS/internal/services/history"
	"github.com/LegitNotT/SSS/internal/services/journal"
	"github.com/LegitNotT/SSS/internal/services/pricer"
	"github.com/LegitNotT/SSS/internal/services/wages"
	"github.com/LegitNotT/SSS/internal/session"
	"github.com/LegitNotT/SSS/internal/setup"
	"github.com/LegitNotT/SSS/internal/storage"
	"github.com/LegitNotT/SSS/internal/web"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store, err := storage.NewStore(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal("failed to open document store", zap.Error(err))
	}

	jrnl, err := journal.New(filepath.Join(cfg.DataDir, "journal"))
	if err != nil {
		logger.Fatal("failed to open journal", zap.Error(err))
	}
	defer jrnl.Close()

	registry := pricer.NewRegistry(store, cfg.GateCutoffHour, logger)
	catalog := wages.NewCatalog(store, cfg.DefaultWageLabel, cfg.DefaultWageRate, logger)
	ledger := history.NewLedger(store, logger)
	controller := session.NewController(registry, catalog, ledger, jrnl, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.WebEnabled {
		server := web.NewServer(cfg.ListenAddr, controller, jrnl, logger)
		g.Go(func() error {
			return server.Start(ctx)
		})
		logger.Info("dashboard started", zap.String("addr", cfg.ListenAddr))
	}

	g.Go(func() error {
		defer cancel()
		return setup.NewUI(controller, cfg.CurrencySymbol).Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("calculator stopped", zap.Error(err))
	}
}
