// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncproto

import "errors"

var (
	// ErrEncodeFailure is returned when a sync message cannot be built. It is
	// fatal for the connection attempt that produced it.
	ErrEncodeFailure = errors.New("sync message encode failed")
	// ErrUnknownModule is returned when a message names a module that is not
	// registered as syncable on the receiving side. The whole message is
	// discarded.
	ErrUnknownModule = errors.New("unknown config module")
	// ErrMalformedMessage is returned when the message header cannot be read.
	ErrMalformedMessage = errors.New("malformed sync message")
	// ErrPeerDisconnected is returned when a peer goes away while it is being
	// synced.
	ErrPeerDisconnected = errors.New("peer disconnected")
)
