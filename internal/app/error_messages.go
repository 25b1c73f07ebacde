// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the human-readable messages the config server writes
// into HTTP response bodies, so handlers and middleware word outcomes the
// same way.
package app

const (
	// MsgInvalidDataProvided answers a body that cannot be decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError answers failures the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpired answers a well-formed peer token past its expiry.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid answers a peer token that fails
	// verification.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoPeerID answers an authenticated route reached without a peer.
	MsgNoPeerID = "no peer ID was given"

	// MsgUnknownPeer answers a disconnect for a peer that is not connected.
	MsgUnknownPeer = "unknown peer"

	// MsgUnknownConfig answers a schema lookup for an unregistered config.
	MsgUnknownConfig = "unknown config"

	// MsgSyncFailed answers a handshake whose sync messages could not be
	// produced.
	MsgSyncFailed = "config sync failed"
)
