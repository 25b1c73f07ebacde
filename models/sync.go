// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// HandshakeRequest is sent by a client when it joins a session.
type HandshakeRequest struct {
	// Client is a free-form client name used in server logs.
	Client string `json:"client"`

	// Fingerprints holds the schema fingerprint of every syncable config the
	// client has registered, keyed by config identifier.
	Fingerprints map[string]string `json:"fingerprints,omitempty"`
}

// HandshakeResponse carries the sync messages produced for the peer, one
// per syncable config in registration order.
type HandshakeResponse struct {
	PeerID string `json:"peer_id"`

	// Messages are binary sync messages; encoding/json renders them base64.
	Messages [][]byte `json:"messages"`

	// Hash is the hex HMAC-SHA256 of the concatenated messages. Empty when
	// the server runs without a hash key.
	Hash string `json:"hash,omitempty"`

	// Mismatched lists the configs whose fingerprint differs from the
	// client's, so the client can expect skipped values for them.
	Mismatched []string `json:"mismatched,omitempty"`
}

// JoinResult summarises what a client applied when joining.
type JoinResult struct {
	PeerID    string
	Applied   int
	Discarded int
}
