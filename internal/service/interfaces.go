// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-mod-config/models"
)

// SessionService runs the server side of the handshake.
type SessionService interface {
	// Connect registers a new peer, syncs every syncable config to it and
	// returns the messages together with the peer's bearer token.
	Connect(ctx context.Context, req models.HandshakeRequest) (models.HandshakeResponse, models.PeerToken, error)
	// Disconnect ends the session of peerID.
	Disconnect(ctx context.Context, peerID string) error
	// ParseToken validates a peer bearer token.
	ParseToken(ctx context.Context, tokenString string) (models.PeerToken, error)
}

// SchemaService describes the registered configs.
type SchemaService interface {
	Describe(ctx context.Context) []models.ModuleSchema
	DescribeModule(ctx context.Context, id string) (models.ModuleSchema, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// ClientSessionService runs the client side of a session.
type ClientSessionService interface {
	// Join connects to the server and applies the received configs.
	// Messages that cannot be applied are logged and counted, never fatal.
	Join(ctx context.Context) (models.JoinResult, error)
	// Leave disconnects and drops every synced value, even when the server
	// cannot be reached.
	Leave(ctx context.Context) error
	// Joined reports whether a session is active.
	Joined() bool
}

// IDGenerator produces peer identifiers.
type IDGenerator interface {
	Generate() string
}
