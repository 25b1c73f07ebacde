// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-mod-config/internal/config"
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/metrics"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/utils"
)

// Services groups the server-side services.
type Services struct {
	AppInfoService AppInfoService
	SessionService SessionService
	SchemaService  SchemaService
}

func NewServices(registry *modconfig.Registry, cfg config.App, metrics *metrics.Metrics, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	protocol := NewServerProtocol(registry, metrics, logger)

	return &Services{
		AppInfoService: appInfo,
		SessionService: NewSessionValidationService(NewSessionService(registry, protocol, utils.NewUUIDGenerator(), cfg, logger)),
		SchemaService:  NewSchemaService(registry),
	}, nil
}
