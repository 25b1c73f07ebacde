// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/metrics"
)

// Reloadable is a set of configs that can be updated live from storage.
type Reloadable interface {
	Reload(ctx context.Context) error
}

// Reloader periodically performs a live reload, so hand edits of stored
// values reach running code. Restart-required entries are left alone by
// the reload itself.
type Reloader struct {
	target   Reloadable
	interval time.Duration

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewReloader returns nil when interval is not positive; [NewWorkers] skips
// nil workers.
func NewReloader(target Reloadable, interval time.Duration, metrics *metrics.Metrics, logger *logger.Logger) Worker {
	if interval <= 0 {
		logger.Info().Msg("live reload disabled")
		return nil
	}

	return &Reloader{
		target:   target,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
	}
}

func (r *Reloader) Run(ctx context.Context) {
	r.logger.Info().Dur("interval", r.interval).Msg("reloader started")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("reloader stopped")
			return
		case <-ticker.C:
			r.reload(ctx)
		}
	}
}

func (r *Reloader) reload(ctx context.Context) {
	if err := r.target.Reload(ctx); err != nil {
		r.logger.Warn().Err(err).Msg("config reload failed")
		r.metrics.Reloaded(false)
		return
	}

	r.logger.Debug().Msg("configs reloaded")
	r.metrics.Reloaded(true)
}
