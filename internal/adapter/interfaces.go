// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-mod-config/models"
)

// ServerAdapter is the client's view of the config server.
type ServerAdapter interface {
	// SetToken stores the peer token sent with authenticated requests.
	SetToken(token string)

	// Token returns the stored peer token, or "".
	Token() string

	// Connect performs the handshake. On success the peer token from the
	// Authorization response header is stored.
	Connect(ctx context.Context, req models.HandshakeRequest) (models.HandshakeResponse, error)

	// Disconnect ends the session of the stored token and forgets it.
	Disconnect(ctx context.Context) error

	// Schema fetches the description of every config the server registered.
	Schema(ctx context.Context) ([]models.ModuleSchema, error)

	// Version fetches the server version string.
	Version(ctx context.Context) (string, error)
}
