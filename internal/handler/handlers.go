// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-mod-config/internal/config"
	"github.com/MKhiriev/go-mod-config/internal/handler/http"
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/metrics"
	"github.com/MKhiriev/go-mod-config/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, metrics *metrics.Metrics, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, metrics, logger)}, nil
}
