// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncproto

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/metrics"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
)

// Protocol pushes the syncable config of every registered module to peers
// when they connect, and applies the messages it receives on the client.
// It is safe for concurrent use.
type Protocol struct {
	registry *modconfig.Registry
	sender   Sender
	metrics  *metrics.Metrics
	logger   *logger.Logger

	mu    sync.Mutex
	peers map[PeerID]PeerState
}

// NewProtocol creates a protocol over registry. sender may be nil on a
// receive-only side; metrics may be nil.
func NewProtocol(registry *modconfig.Registry, sender Sender, logger *logger.Logger, metrics *metrics.Metrics) *Protocol {
	return &Protocol{
		registry: registry,
		sender:   sender,
		metrics:  metrics,
		logger:   logger,
		peers:    make(map[PeerID]PeerState),
	}
}

// State returns the sync state of peer.
func (p *Protocol) State(peer PeerID) PeerState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.peers[peer]
}

// OnPeerConnected sends one message per syncable module to peer, in
// registration order. It runs once per peer: calling it again for a peer
// that is synced, or is being synced, does nothing.
//
// Encode failures are returned wrapped in [ErrEncodeFailure]. On any error
// the peer stays unsynced and may be synced again by a later call.
func (p *Protocol) OnPeerConnected(ctx context.Context, peer PeerID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	if p.peers[peer] != PeerUnsynced {
		p.mu.Unlock()
		return nil
	}
	p.peers[peer] = PeerSyncing
	p.mu.Unlock()

	log := p.logger.WithPeer(string(peer))

	sent, err := p.sendAll(ctx, log, peer)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.peers[peer] != PeerSyncing {
		// Disconnected while its messages were going out.
		log.Info().Int("sent", sent).Msg("peer left during sync")
		if err == nil {
			err = ErrPeerDisconnected
		}
		return err
	}

	if err != nil {
		delete(p.peers, peer)
		log.Err(err).Int("sent", sent).Msg("peer sync failed")
		return err
	}

	p.peers[peer] = PeerSynced
	p.metrics.PeerSynced()
	log.Info().Int("messages", sent).Msg("peer synced")

	return nil
}

func (p *Protocol) sendAll(ctx context.Context, log *logger.Logger, peer PeerID) (int, error) {
	if p.sender == nil {
		return 0, fmt.Errorf("%w: no sender configured", ErrEncodeFailure)
	}

	sent := 0
	err := p.registry.ForEachSyncableModule(func(m *modconfig.Module) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.State(peer) != PeerSyncing {
			return ErrPeerDisconnected
		}

		payload, err := Encode(m)
		if err != nil {
			p.metrics.EncodeFailed(m.ID())
			return fmt.Errorf("%w: config %q: %w", ErrEncodeFailure, m.ID(), err)
		}

		if err = p.sender.Send(ctx, peer, payload); err != nil {
			return fmt.Errorf("send config %q: %w", m.ID(), err)
		}

		sent++
		p.metrics.MessageSent(m.ID())
		log.Debug().Str("module_id", m.ID()).Int("bytes", len(payload)).Msg("config sent")

		return nil
	})

	return sent, err
}

// OnPeerDisconnected marks peer unsynced and drops every synced override in
// the registry. Peers are not re-synced mid-session.
func (p *Protocol) OnPeerDisconnected(ctx context.Context, peer PeerID) {
	p.mu.Lock()
	prev, known := p.peers[peer]
	delete(p.peers, peer)
	p.mu.Unlock()

	if prev == PeerSynced {
		p.metrics.PeerUnsynced()
	}

	p.registry.ClearSyncedValues()

	p.logger.WithPeer(string(peer)).Info().
		Bool("known", known).
		Str("previous_state", prev.String()).
		Msg("peer disconnected")
}

// HandleMessage decodes a message received from the server and applies its
// values to the module it names.
//
// A message naming an unknown module is discarded with [ErrUnknownModule];
// an unreadable header yields [ErrMalformedMessage]. Values that fail
// validation are logged and skipped, leaving the effective value unchanged.
// A truncated message is applied up to the truncation point. All accepted
// values become visible together.
func (p *Protocol) HandleMessage(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r := bytes.NewReader(payload)

	id, err := readModuleID(r)
	if err != nil {
		p.metrics.DecodeFailed("malformed")
		p.logger.Err(err).Int("bytes", len(payload)).Msg("discarding sync message")
		return err
	}

	m, ok := p.registry.SyncableModule(id)
	if !ok {
		p.metrics.DecodeFailed("unknown_module")
		p.logger.Warn().Str("module_id", id).Msg("sync message for unknown config discarded")
		return fmt.Errorf("%w: %q", ErrUnknownModule, id)
	}

	log := p.logger.WithModule(id)

	values, errs := decodeValues(r, m.SyncableEntries())
	for _, err = range errs {
		reason := "invalid_value"
		if errors.Is(err, io.ErrUnexpectedEOF) {
			reason = "truncated"
		}
		p.metrics.DecodeFailed(reason)
		log.Warn().Err(err).Msg("skipping synced value")
	}
	if r.Len() > 0 {
		log.Warn().Int("trailing", r.Len()).Msg("sync message has trailing bytes")
	}

	if err = m.ApplySyncValues(values); err != nil {
		p.metrics.DecodeFailed("invalid_value")
		log.Warn().Err(err).Msg("synced values rejected")
	}

	p.metrics.MessageReceived(id)
	log.Debug().Int("values", len(values)).Msg("synced config applied")

	return nil
}
