// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-mod-config/internal/adapter"
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/syncproto"
	"github.com/MKhiriev/go-mod-config/internal/utils"
	"github.com/MKhiriev/go-mod-config/models"
)

type clientSessionService struct {
	registry *modconfig.Registry
	protocol *syncproto.Protocol
	adapter  adapter.ServerAdapter
	hasher   *utils.Hasher
	name     string

	mu     sync.Mutex
	peerID string

	logger *logger.Logger
}

// NewClientSessionService creates the client session service. Received
// messages are applied through protocol; hashKey, when set, must match the
// server's.
func NewClientSessionService(registry *modconfig.Registry, protocol *syncproto.Protocol, serverAdapter adapter.ServerAdapter, clientName, hashKey string, logger *logger.Logger) ClientSessionService {
	return &clientSessionService{
		registry: registry,
		protocol: protocol,
		adapter:  serverAdapter,
		hasher:   utils.NewHasher(hashKey),
		name:     clientName,
		logger:   logger,
	}
}

func (s *clientSessionService) Join(ctx context.Context) (models.JoinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.peerID != "" {
		return models.JoinResult{}, ErrAlreadyJoined
	}

	if err := s.registry.OnLoadGame(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("some local config values could not be loaded")
	}

	resp, err := s.adapter.Connect(ctx, models.HandshakeRequest{
		Client:       s.name,
		Fingerprints: syncproto.Fingerprints(s.registry),
	})
	if err != nil {
		return models.JoinResult{}, fmt.Errorf("%w: %w", ErrConnectServer, err)
	}

	log := s.logger.WithPeer(resp.PeerID)

	if !s.hasher.Verify(resp.Hash, resp.Messages...) {
		log.Error().Str("hash", resp.Hash).Msg("handshake hash mismatch, discarding messages")
		s.disconnectQuietly(ctx)
		return models.JoinResult{}, ErrHashMismatch
	}

	if len(resp.Mismatched) > 0 {
		log.Warn().Strs("configs", resp.Mismatched).Msg("server schema differs")
	}

	result := models.JoinResult{PeerID: resp.PeerID}
	for _, msg := range resp.Messages {
		if err = s.protocol.HandleMessage(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				s.disconnectQuietly(ctx)
				s.registry.OnLeaveGame()
				return models.JoinResult{}, err
			}
			result.Discarded++
			continue
		}
		result.Applied++
	}

	s.peerID = resp.PeerID
	log.Info().
		Int("applied", result.Applied).
		Int("discarded", result.Discarded).
		Msg("joined config session")

	return result, nil
}

func (s *clientSessionService) disconnectQuietly(ctx context.Context) {
	if err := s.adapter.Disconnect(context.WithoutCancel(ctx)); err != nil {
		s.logger.Debug().Err(err).Msg("disconnect after failed join")
	}
}

func (s *clientSessionService) Leave(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.peerID == "" {
		return ErrNotJoined
	}

	err := s.adapter.Disconnect(ctx)
	s.registry.OnLeaveGame()

	s.logger.WithPeer(s.peerID).Info().Err(err).Msg("left config session")
	s.peerID = ""

	if err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}

	return nil
}

func (s *clientSessionService) Joined() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.peerID != ""
}
