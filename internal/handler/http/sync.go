// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-mod-config/internal/app"
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/service"
	"github.com/MKhiriev/go-mod-config/internal/syncproto"
	"github.com/MKhiriev/go-mod-config/internal/utils"
	"github.com/MKhiriev/go-mod-config/models"
)

// connect answers the handshake: the sync messages of every syncable config
// in the body and the peer's bearer token in the Authorization header.
func (h *Handler) connect(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.HandshakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid handshake request")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	resp, token, err := h.services.SessionService.Connect(r.Context(), req)
	if err != nil {
		log.Err(err).Str("client", req.Client).Msg("handshake failed")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	log.Info().
		Str("peer_id", resp.PeerID).
		Str("client", req.Client).
		Int("messages", len(resp.Messages)).
		Int("mismatched", len(resp.Mismatched)).
		Msg("peer connected")

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	if _, err = utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing handshake response")
	}
}

func (h *Handler) disconnect(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	peerID, ok := utils.GetPeerIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no peer ID in request context")
		http.Error(w, app.MsgNoPeerID, http.StatusUnauthorized)
		return
	}

	if err := h.services.SessionService.Disconnect(r.Context(), peerID); err != nil {
		log.Err(err).Str("peer_id", peerID).Msg("disconnect failed")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	log.Info().Str("peer_id", peerID).Msg("peer disconnected")
	w.WriteHeader(http.StatusNoContent)
}

// messageFromError words err for a response body without leaking internals.
func messageFromError(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidHandshake):
		return app.MsgInvalidDataProvided
	case errors.Is(err, service.ErrTokenIsExpired):
		return app.MsgTokenIsExpired
	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return app.MsgTokenIsExpiredOrInvalid
	case errors.Is(err, service.ErrUnknownPeer), errors.Is(err, syncproto.ErrPeerDisconnected):
		return app.MsgUnknownPeer
	case errors.Is(err, service.ErrUnknownConfig):
		return app.MsgUnknownConfig
	case errors.Is(err, syncproto.ErrEncodeFailure):
		return app.MsgInternalServerError
	case errors.Is(err, service.ErrSyncFailed):
		return app.MsgSyncFailed
	default:
		return app.MsgInternalServerError
	}
}
