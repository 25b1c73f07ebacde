// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-mod-config/internal/config"
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/utils"
	"github.com/MKhiriev/go-mod-config/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter returns a REST implementation of [ServerAdapter]
// rooted at cfg.HTTPAddress. A bare host:port is treated as http.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.token
}

func (h *httpServerAdapter) Connect(ctx context.Context, req models.HandshakeRequest) (models.HandshakeResponse, error) {
	var handshake models.HandshakeResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&handshake).
		Post("/api/sync/connect")
	if err != nil {
		return models.HandshakeResponse{}, fmt.Errorf("connect request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HandshakeResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.HandshakeResponse{}, fmt.Errorf("connect parse bearer token: %w", err)
	}
	h.SetToken(token)

	h.logger.Debug().
		Str("peer_id", handshake.PeerID).
		Int("messages", len(handshake.Messages)).
		Msg("handshake completed")

	return handshake, nil
}

func (h *httpServerAdapter) Disconnect(ctx context.Context) error {
	if h.Token() == "" {
		return ErrNoToken
	}

	resp, err := h.authedRequest(ctx).Post("/api/sync/disconnect")
	if err != nil {
		return fmt.Errorf("disconnect request: %w", err)
	}

	h.SetToken("")
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Schema(ctx context.Context) ([]models.ModuleSchema, error) {
	var schemas []models.ModuleSchema

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&schemas).
		Get("/api/sync/schema")
	if err != nil {
		return nil, fmt.Errorf("schema request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return schemas, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	return req
}
