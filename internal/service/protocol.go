// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/metrics"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/syncproto"
)

// ServerProtocol is a sync protocol whose messages are collected for the
// handshake response instead of being pushed over a connection.
type ServerProtocol struct {
	*syncproto.Protocol
	outbox *outbox
}

func NewServerProtocol(registry *modconfig.Registry, metrics *metrics.Metrics, logger *logger.Logger) *ServerProtocol {
	box := newOutbox()
	return &ServerProtocol{
		Protocol: syncproto.NewProtocol(registry, box, logger, metrics),
		outbox:   box,
	}
}
