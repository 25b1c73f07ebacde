// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-mod-config/internal/adapter"
	"github.com/MKhiriev/go-mod-config/internal/config"
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/metrics"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/mods"
	"github.com/MKhiriev/go-mod-config/internal/service"
	"github.com/MKhiriev/go-mod-config/internal/store"
	"github.com/MKhiriev/go-mod-config/internal/workers"
)

const leaveTimeout = 5 * time.Second

type App struct {
	services *service.ClientServices
	workers  *workers.Workers
	storages *store.Storages

	gameplay *mods.Gameplay

	logger *logger.Logger
}

// NewApp wires storage, the example mod configs, the server adapter and
// the background reloader.
func NewApp(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	storages, err := store.NewStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	app, err := newApp(ctx, cfg, storages, logger)
	if err != nil {
		return nil, errors.Join(err, storages.Close())
	}

	return app, nil
}

func newApp(ctx context.Context, cfg *config.ClientConfig, storages *store.Storages, logger *logger.Logger) (*App, error) {
	registry := modconfig.NewRegistry(logger)

	gameplay, err := mods.RegisterGameplay(ctx, registry, storages.Backend, logger)
	if err != nil {
		return nil, err
	}
	if _, err = mods.RegisterHUD(ctx, registry, storages.Backend, logger); err != nil {
		return nil, err
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	m := metrics.NewMetrics()
	services := service.NewClientServices(registry, serverAdapter, clientName(), cfg.App, m, logger)

	return &App{
		services: services,
		workers:  workers.NewWorkers(workers.NewReloader(registry, cfg.Workers.ReloadInterval, m, logger)),
		storages: storages,
		gameplay: gameplay,
		logger:   logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.storages.Close(); err != nil {
			a.logger.Err(err).Msg("error closing storages")
		}
	}()

	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	result, err := a.services.SessionService.Join(ctx)
	if err != nil {
		return fmt.Errorf("join session: %w", err)
	}

	a.logger.Info().
		Str("peer_id", result.PeerID).
		Int("applied", result.Applied).
		Int("discarded", result.Discarded).
		Int("max_players", a.gameplay.MaxPlayers.Get()).
		Str("difficulty", string(a.gameplay.Difficulty.Get())).
		Msg("joined session")

	a.workers.Run(ctx)
	<-ctx.Done()

	leaveCtx, cancel := context.WithTimeout(context.Background(), leaveTimeout)
	defer cancel()

	if err = a.services.SessionService.Leave(leaveCtx); err != nil {
		return fmt.Errorf("leave session: %w", err)
	}

	a.logger.Info().Msg("left session")
	return nil
}

func clientName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "config-client"
	}
	return host
}
