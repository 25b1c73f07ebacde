// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/api/version/", h.getServerVersion)
		r.Get("/api/sync/schema", h.getSchema)
		r.Get("/api/sync/schema/{id}", h.getModuleSchema)
		r.Post("/api/sync/connect", h.connect)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/api/sync/disconnect", h.disconnect)
		})
	})

	// promhttp negotiates its own compression
	if h.metrics != nil {
		router.Method("GET", "/metrics", h.metrics.Handler())
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
