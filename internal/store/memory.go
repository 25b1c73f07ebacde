// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-mod-config/internal/modconfig"
)

// MemoryBackend keeps stored values in process memory. It is used by tests
// and by the "memory" storage kind, where values live as long as the
// process.
type MemoryBackend struct {
	mu      sync.RWMutex
	values  map[string]map[string]modconfig.Value
	schemas map[string]modconfig.Schema
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		values:  make(map[string]map[string]modconfig.Value),
		schemas: make(map[string]modconfig.Schema),
	}
}

func (b *MemoryBackend) PersistSchema(ctx context.Context, schema modconfig.Schema) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	values, ok := b.values[schema.ModuleID]
	if !ok {
		values = make(map[string]modconfig.Value, len(schema.Declarations))
		b.values[schema.ModuleID] = values
	}
	for _, decl := range schema.Declarations {
		if _, ok = values[decl.Path]; !ok {
			values[decl.Path] = decl.Default
		}
	}
	b.schemas[schema.ModuleID] = schema

	return nil
}

func (b *MemoryBackend) Load(ctx context.Context, moduleID string, decl modconfig.Declaration) (modconfig.Value, error) {
	if err := ctx.Err(); err != nil {
		return modconfig.Value{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[moduleID][decl.Path]
	if !ok {
		return modconfig.Value{}, fmt.Errorf("%w: %s/%s", ErrValueNotStored, moduleID, decl.Path)
	}

	return v, nil
}

func (b *MemoryBackend) Store(ctx context.Context, moduleID string, decl modconfig.Declaration, value modconfig.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	values, ok := b.values[moduleID]
	if !ok {
		values = make(map[string]modconfig.Value)
		b.values[moduleID] = values
	}
	values[decl.Path] = value

	return nil
}

// Schema returns the schema last persisted for moduleID.
func (b *MemoryBackend) Schema(moduleID string) (modconfig.Schema, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, ok := b.schemas[moduleID]
	return s, ok
}
