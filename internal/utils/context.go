// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds helpers shared by the config server and client:
// context keys, payload hashing, peer tokens, JSON responses, the HTTP
// client wrapper and id generation.
package utils

import (
	"context"
)

// contextKey keeps this package's context keys apart from string keys set
// elsewhere.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// PeerIDCtxKey stores the authenticated peer identifier.
var PeerIDCtxKey = contextKey("peerID")

// WithPeerID returns a copy of ctx carrying peerID.
func WithPeerID(ctx context.Context, peerID string) context.Context {
	return context.WithValue(ctx, PeerIDCtxKey, peerID)
}

// GetPeerIDFromContext returns the peer identifier stored by the auth
// middleware. ok is false when it is missing, empty or of another type.
func GetPeerIDFromContext(ctx context.Context) (string, bool) {
	peerID, ok := ctx.Value(PeerIDCtxKey).(string)
	return peerID, ok && peerID != ""
}
