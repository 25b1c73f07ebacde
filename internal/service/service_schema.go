// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/syncproto"
	"github.com/MKhiriev/go-mod-config/models"
)

type schemaService struct {
	registry *modconfig.Registry
}

func NewSchemaService(registry *modconfig.Registry) SchemaService {
	return &schemaService{registry: registry}
}

func (s *schemaService) Describe(_ context.Context) []models.ModuleSchema {
	modules := s.registry.Modules()

	out := make([]models.ModuleSchema, 0, len(modules))
	for _, m := range modules {
		out = append(out, describeModule(m))
	}

	return out
}

func (s *schemaService) DescribeModule(_ context.Context, id string) (models.ModuleSchema, error) {
	m, ok := s.registry.Module(id)
	if !ok {
		return models.ModuleSchema{}, fmt.Errorf("%w: %q", ErrUnknownConfig, id)
	}

	return describeModule(m), nil
}

func describeModule(m *modconfig.Module) models.ModuleSchema {
	schema := models.ModuleSchema{
		ID:         m.ID(),
		Type:       string(m.Type()),
		Syncable:   m.HasSyncableEntries(),
		Categories: m.CategoryComments(),
	}
	if schema.Syncable {
		schema.Fingerprint = syncproto.Fingerprint(m)
	}

	for _, e := range m.Entries() {
		d := e.Declaration()
		entry := models.EntrySchema{
			Path:            d.Path,
			Kind:            d.Kind.String(),
			Comment:         d.Comment,
			Default:         d.Format(d.Default),
			Current:         d.Format(e.Get()),
			Domain:          d.Domain,
			RequiresRestart: d.RequiresRestart,
			Syncable:        d.Syncable,
		}
		if d.Kind == modconfig.KindInt || d.Kind == modconfig.KindFloat {
			entry.Min = d.Format(d.Min)
			entry.Max = d.Format(d.Max)
		}
		schema.Entries = append(schema.Entries, entry)
	}

	return schema
}
