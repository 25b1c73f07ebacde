// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-mod-config/internal/adapter"
	"github.com/MKhiriev/go-mod-config/internal/config"
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/metrics"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/syncproto"
)

// ClientServices groups the client-side services.
type ClientServices struct {
	SessionService ClientSessionService
	SchemaService  SchemaService
}

func NewClientServices(registry *modconfig.Registry, serverAdapter adapter.ServerAdapter, clientName string, cfg config.ClientApp, metrics *metrics.Metrics, logger *logger.Logger) *ClientServices {
	// the client only receives
	protocol := syncproto.NewProtocol(registry, nil, logger, metrics)

	return &ClientServices{
		SessionService: NewClientSessionService(registry, protocol, serverAdapter, clientName, cfg.HashKey, logger),
		SchemaService:  NewSchemaService(registry),
	}
}
