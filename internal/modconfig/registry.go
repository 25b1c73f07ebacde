// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modconfig

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-mod-config/internal/logger"
)

// Registry maps module identifiers to modules for the lifetime of the
// process. Modules are only ever added. It is safe for concurrent use.
type Registry struct {
	mu           sync.RWMutex
	modules      []*Module
	byID         map[string]*Module
	syncable     []*Module
	syncableByID map[string]*Module

	logger *logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *logger.Logger) *Registry {
	return &Registry{
		byID:         make(map[string]*Module),
		syncableByID: make(map[string]*Module),
		logger:       logger,
	}
}

// AddConfig registers m. Registering an identifier twice is always an error,
// even for the same module, and leaves the first registration untouched.
func (r *Registry) AddConfig(m *Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.id]; ok {
		r.logger.Error().Str("module_id", m.id).Msg("config identifier already registered")
		return fmt.Errorf("%w: %q", ErrRegistrationConflict, m.id)
	}

	r.modules = append(r.modules, m)
	r.byID[m.id] = m
	if m.HasSyncableEntries() {
		r.syncable = append(r.syncable, m)
		r.syncableByID[m.id] = m
	}

	r.logger.Debug().
		Str("module_id", m.id).
		Bool("syncable", m.HasSyncableEntries()).
		Msg("config registered")

	return nil
}

// Module returns the registered module with the given identifier.
func (r *Registry) Module(id string) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	return m, ok
}

// SyncableModule returns the registered module with the given identifier if
// it has syncable entries.
func (r *Registry) SyncableModule(id string) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.syncableByID[id]
	return m, ok
}

// Modules returns every registered module in registration order.
func (r *Registry) Modules() []*Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Module(nil), r.modules...)
}

func (r *Registry) syncableModules() []*Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Module(nil), r.syncable...)
}

// ForEachSyncableModule calls fn for every module with syncable entries in
// registration order and stops at the first error.
func (r *Registry) ForEachSyncableModule(fn func(*Module) error) error {
	for _, m := range r.syncableModules() {
		if err := fn(m); err != nil {
			return err
		}
	}

	return nil
}

// OnLoadGame performs an initial update of every module at session start.
func (r *Registry) OnLoadGame(ctx context.Context) error {
	r.logger.Info().Msg("session started, reloading all configs")

	var errs []error
	for _, m := range r.Modules() {
		if err := m.UpdateValues(ctx, true); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// OnLeaveGame drops every synced override at session end, so values fall
// back to the local ones.
func (r *Registry) OnLeaveGame() {
	r.logger.Info().Msg("session ended")
	r.ClearSyncedValues()
}

// Reload performs a live update of every module: restart-required entries
// are left alone.
func (r *Registry) Reload(ctx context.Context) error {
	var errs []error
	for _, m := range r.Modules() {
		if err := m.UpdateValues(ctx, false); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ClearSyncedValues drops the synced overrides of every syncable module.
func (r *Registry) ClearSyncedValues() {
	for _, m := range r.syncableModules() {
		m.ClearSyncedValues()
	}
}
