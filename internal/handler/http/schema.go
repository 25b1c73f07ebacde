// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/utils"
)

func (h *Handler) getSchema(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	schemas := h.services.SchemaService.Describe(r.Context())
	if _, err := utils.WriteJSON(w, schemas, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing schema response")
	}
}

func (h *Handler) getModuleSchema(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	schema, err := h.services.SchemaService.DescribeModule(r.Context(), id)
	if err != nil {
		log.Err(err).Str("module_id", id).Msg("schema lookup failed")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	if _, err = utils.WriteJSON(w, schema, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing schema response")
	}
}
