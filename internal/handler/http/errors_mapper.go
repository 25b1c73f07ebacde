// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-mod-config/internal/service"
	"github.com/MKhiriev/go-mod-config/internal/syncproto"
)

var errorStatusMap = []struct {
	target error
	status int
}{
	{service.ErrInvalidHandshake, http.StatusBadRequest},
	{service.ErrTokenIsExpired, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrUnknownPeer, http.StatusNotFound},
	{service.ErrUnknownConfig, http.StatusNotFound},
	{syncproto.ErrPeerDisconnected, http.StatusConflict},
	{syncproto.ErrEncodeFailure, http.StatusInternalServerError},
	{service.ErrSyncFailed, http.StatusBadGateway},
}

// statusFromError maps service errors to HTTP statuses; the first match in
// table order wins.
func statusFromError(err error) int {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.status
		}
	}

	return http.StatusInternalServerError
}
