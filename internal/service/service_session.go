// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-mod-config/internal/config"
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/syncproto"
	"github.com/MKhiriev/go-mod-config/internal/utils"
	"github.com/MKhiriev/go-mod-config/models"
	"github.com/golang-jwt/jwt/v5"
)

type sessionService struct {
	registry *modconfig.Registry
	protocol *syncproto.Protocol
	outbox   *outbox
	ids      IDGenerator
	hasher   *utils.Hasher

	tokenIssuer   string
	tokenSignKey  string
	tokenDuration time.Duration

	// Peer token expiries. A peer whose token has expired can no longer
	// disconnect, so it is dropped by the next Connect.
	mu       sync.Mutex
	expiries map[syncproto.PeerID]time.Time

	logger *logger.Logger
}

// NewSessionService creates the server session service over the protocol
// returned by [NewServerProtocol].
func NewSessionService(registry *modconfig.Registry, protocol *ServerProtocol, ids IDGenerator, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		registry:      registry,
		protocol:      protocol.Protocol,
		outbox:        protocol.outbox,
		ids:           ids,
		hasher:        utils.NewHasher(cfg.HashKey),
		tokenIssuer:   cfg.TokenIssuer,
		tokenSignKey:  cfg.TokenSignKey,
		tokenDuration: cfg.TokenDuration,
		expiries:      make(map[syncproto.PeerID]time.Time),
		logger:        logger,
	}
}

func (s *sessionService) Connect(ctx context.Context, req models.HandshakeRequest) (models.HandshakeResponse, models.PeerToken, error) {
	s.evictExpired(ctx, time.Now())

	peerID := s.ids.Generate()
	log := s.logger.WithPeer(peerID)

	mismatched := s.compareFingerprints(req.Fingerprints)
	if len(mismatched) > 0 {
		log.Warn().
			Str("client", req.Client).
			Strs("configs", mismatched).
			Msg("client schema differs, values may be skipped")
	}

	token, err := utils.GeneratePeerToken(s.tokenIssuer, peerID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		return models.HandshakeResponse{}, models.PeerToken{}, fmt.Errorf("generate peer token: %w", err)
	}

	peer := syncproto.PeerID(peerID)
	if err = s.protocol.OnPeerConnected(ctx, peer); err != nil {
		s.outbox.take(peer)
		return models.HandshakeResponse{}, models.PeerToken{}, fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}

	s.trackExpiry(peer, token)

	messages := s.outbox.take(peer)
	if messages == nil {
		messages = [][]byte{}
	}

	log.Info().
		Str("client", req.Client).
		Int("messages", len(messages)).
		Msg("peer connected")

	return models.HandshakeResponse{
		PeerID:     peerID,
		Messages:   messages,
		Hash:       s.hasher.SumHex(messages...),
		Mismatched: mismatched,
	}, token, nil
}

// compareFingerprints returns the sorted identifiers of syncable configs the
// client is missing or declares differently.
func (s *sessionService) compareFingerprints(client map[string]string) []string {
	if client == nil {
		return nil
	}

	var mismatched []string
	for id, fp := range syncproto.Fingerprints(s.registry) {
		if client[id] != fp {
			mismatched = append(mismatched, id)
		}
	}
	sort.Strings(mismatched)

	return mismatched
}

func (s *sessionService) Disconnect(ctx context.Context, peerID string) error {
	peer := syncproto.PeerID(peerID)
	if s.protocol.State(peer) == syncproto.PeerUnsynced {
		return fmt.Errorf("%w: %s", ErrUnknownPeer, peerID)
	}

	s.mu.Lock()
	delete(s.expiries, peer)
	s.mu.Unlock()

	s.protocol.OnPeerDisconnected(ctx, peer)
	return nil
}

func (s *sessionService) trackExpiry(peer syncproto.PeerID, token models.PeerToken) {
	expiresAt := time.Now().Add(s.tokenDuration)
	if token.Token != nil {
		if exp, err := token.Token.Claims.GetExpirationTime(); err == nil && exp != nil {
			expiresAt = exp.Time
		}
	}

	s.mu.Lock()
	s.expiries[peer] = expiresAt
	s.mu.Unlock()
}

// evictExpired disconnects every peer whose token expired at or before now.
func (s *sessionService) evictExpired(ctx context.Context, now time.Time) {
	var expired []syncproto.PeerID

	s.mu.Lock()
	for peer, exp := range s.expiries {
		if !now.Before(exp) {
			expired = append(expired, peer)
			delete(s.expiries, peer)
		}
	}
	s.mu.Unlock()

	for _, peer := range expired {
		s.logger.WithPeer(string(peer)).Info().Msg("peer token expired, dropping peer")
		s.protocol.OnPeerDisconnected(ctx, peer)
	}
}

func (s *sessionService) ParseToken(_ context.Context, tokenString string) (models.PeerToken, error) {
	token, err := utils.ValidatePeerToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.PeerToken{}, ErrTokenIsExpired
		}
		return models.PeerToken{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return token, nil
}
