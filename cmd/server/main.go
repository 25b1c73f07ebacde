// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-mod-config/internal/config"
	"github.com/MKhiriev/go-mod-config/internal/handler"
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/metrics"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/mods"
	"github.com/MKhiriev/go-mod-config/internal/server"
	"github.com/MKhiriev/go-mod-config/internal/service"
	"github.com/MKhiriev/go-mod-config/internal/store"
	"github.com/MKhiriev/go-mod-config/internal/workers"
	"github.com/MKhiriev/go-mod-config/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetServerConfig()
	if err != nil {
		logger.NewLogger("config-server").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLeveledLogger("config-server", cfg.App.LogLevel)
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	registry := modconfig.NewRegistry(log)
	if _, err = mods.RegisterGameplay(ctx, registry, storages.Backend, log); err != nil {
		log.Fatal().Err(err).Msg("error declaring configs")
	}
	if err = registry.OnLoadGame(ctx); err != nil {
		log.Warn().Err(err).Msg("some configs fell back to defaults")
	}

	m := metrics.NewMetrics()

	services, err := service.NewServices(registry, cfg.App, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workersDone := make(chan struct{})
	go func() {
		workers.NewWorkers(workers.NewReloader(registry, cfg.Workers.ReloadInterval, m, log)).Run(ctx)
		close(workersDone)
	}()

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	stop()
	<-workersDone
}
