// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncproto

//go:generate mockgen -source=interfaces.go -destination=../mock/sender_mock.go -package=mock

import "context"

// PeerID identifies a connected client for the lifetime of its connection.
type PeerID string

// Sender delivers an encoded sync message to one peer. Delivery is
// fire-and-forget: the protocol never waits for an acknowledgement.
type Sender interface {
	Send(ctx context.Context, peer PeerID, payload []byte) error
}

// PeerState is the sync state of one peer.
type PeerState uint8

const (
	// PeerUnsynced peers have not received the config yet, or have left.
	PeerUnsynced PeerState = iota
	// PeerSyncing peers are being sent their messages.
	PeerSyncing
	// PeerSynced peers have received one message per syncable module.
	PeerSynced
)

func (s PeerState) String() string {
	switch s {
	case PeerUnsynced:
		return "unsynced"
	case PeerSyncing:
		return "syncing"
	case PeerSynced:
		return "synced"
	default:
		return "unknown"
	}
}
