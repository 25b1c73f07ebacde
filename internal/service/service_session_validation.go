// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mod-config/internal/validators"
	"github.com/MKhiriev/go-mod-config/models"
)

// SessionValidationService rejects malformed handshakes before they reach
// the wrapped session service.
type SessionValidationService struct {
	inner     SessionService
	validator validators.Validator
}

func NewSessionValidationService(inner SessionService) SessionService {
	return &SessionValidationService{
		inner:     inner,
		validator: validators.NewHandshakeValidator(),
	}
}

func (v *SessionValidationService) Connect(ctx context.Context, req models.HandshakeRequest) (models.HandshakeResponse, models.PeerToken, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.HandshakeResponse{}, models.PeerToken{}, fmt.Errorf("%w: %w", ErrInvalidHandshake, err)
	}

	return v.inner.Connect(ctx, req)
}

func (v *SessionValidationService) Disconnect(ctx context.Context, peerID string) error {
	if peerID == "" {
		return ErrUnknownPeer
	}

	return v.inner.Disconnect(ctx, peerID)
}

func (v *SessionValidationService) ParseToken(ctx context.Context, tokenString string) (models.PeerToken, error) {
	return v.inner.ParseToken(ctx, tokenString)
}
