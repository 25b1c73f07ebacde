// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-mod-config/internal/syncproto"
)

// outbox is the [syncproto.Sender] of the HTTP server. Messages produced for
// a peer are queued and handed back in the handshake response.
type outbox struct {
	mu      sync.Mutex
	pending map[syncproto.PeerID][][]byte
}

func newOutbox() *outbox {
	return &outbox{pending: make(map[syncproto.PeerID][][]byte)}
}

func (o *outbox) Send(ctx context.Context, peer syncproto.PeerID, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.pending[peer] = append(o.pending[peer], payload)
	return nil
}

// take removes and returns everything queued for peer.
func (o *outbox) take(peer syncproto.PeerID) [][]byte {
	o.mu.Lock()
	defer o.mu.Unlock()

	msgs := o.pending[peer]
	delete(o.pending, peer)
	return msgs
}
