// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrUnknownPeer             = errors.New("unknown peer")
	ErrUnknownConfig           = errors.New("unknown config")
	ErrSyncFailed              = errors.New("config sync failed")
	ErrInvalidHandshake        = errors.New("invalid handshake request")

	ErrHashMismatch  = errors.New("handshake hash mismatch")
	ErrNotJoined     = errors.New("not joined to a session")
	ErrAlreadyJoined = errors.New("already joined to a session")
	ErrConnectServer = errors.New("error connecting to config server")
)
