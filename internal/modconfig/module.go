// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modconfig

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-mod-config/internal/logger"
)

// moduleState is an immutable snapshot of every entry's stored value and
// override. Writers build a new snapshot under the module lock and publish it
// with a single atomic store, so a reader never sees a half-applied update.
type moduleState struct {
	stored     []Value
	overrides  []Value
	overridden []bool
}

func newModuleState(entries []*Entry) *moduleState {
	st := &moduleState{
		stored:     make([]Value, len(entries)),
		overrides:  make([]Value, len(entries)),
		overridden: make([]bool, len(entries)),
	}
	for i, e := range entries {
		st.stored[i] = e.decl.Default
	}

	return st
}

func (s *moduleState) clone() *moduleState {
	return &moduleState{
		stored:     append([]Value(nil), s.stored...),
		overrides:  append([]Value(nil), s.overrides...),
		overridden: append([]bool(nil), s.overridden...),
	}
}

func (s *moduleState) effective(i int) Value {
	if s.overridden[i] {
		return s.overrides[i]
	}

	return s.stored[i]
}

// SyncValue is one override addressed by path, as produced by decoding a
// sync message.
type SyncValue struct {
	Path  string
	Value Value
}

// Module is the assembled set of entries of one mod for one [Type]. It owns
// the entries and their synced overrides. Writers are serialised by a
// per-module mutex; readers go through the atomically published state.
type Module struct {
	id      string
	typ     Type
	backend Backend
	logger  *logger.Logger

	entries          []*Entry
	byPath           map[string]*Entry
	updatable        []*Entry
	syncable         []*Entry
	categoryComments map[string]string

	mu     sync.Mutex
	state  atomic.Pointer[moduleState]
	toSync atomic.Pointer[[]Value]
}

// install freezes the entry list. It is called by [Builder.Build].
func (m *Module) install(entries []*Entry, categoryComments map[string]string) {
	m.entries = entries
	m.byPath = make(map[string]*Entry, len(entries))
	m.updatable, m.syncable = nil, nil
	m.categoryComments = categoryComments

	for _, e := range entries {
		if !e.decl.RequiresRestart {
			m.updatable = append(m.updatable, e)
		}
		if e.decl.Syncable {
			m.syncable = append(m.syncable, e)
		}
		m.byPath[e.decl.Path] = e
	}
}

// ID returns the globally unique module identifier.
func (m *Module) ID() string { return m.id }

// Type returns the module classification.
func (m *Module) Type() Type { return m.typ }

// HasSyncableEntries reports whether the module takes part in sync.
func (m *Module) HasSyncableEntries() bool { return len(m.syncable) > 0 }

// Entries returns all entries in declaration order.
func (m *Module) Entries() []*Entry { return append([]*Entry(nil), m.entries...) }

// UpdatableEntries returns the entries that are refreshed by live updates.
func (m *Module) UpdatableEntries() []*Entry { return append([]*Entry(nil), m.updatable...) }

// SyncableEntries returns the synced entries in wire order.
func (m *Module) SyncableEntries() []*Entry { return append([]*Entry(nil), m.syncable...) }

// Entry looks an entry up by its path.
func (m *Module) Entry(path string) (*Entry, bool) {
	e, ok := m.byPath[path]
	return e, ok
}

// CategoryComments returns a copy of the category → comment map.
func (m *Module) CategoryComments() map[string]string {
	return maps.Clone(m.categoryComments)
}

// Schema describes the module for persistence backends.
func (m *Module) Schema() Schema {
	decls := make([]Declaration, len(m.entries))
	for i, e := range m.entries {
		decls[i] = e.decl
	}

	return Schema{
		ModuleID:         m.id,
		Type:             m.typ,
		Declarations:     decls,
		CategoryComments: m.CategoryComments(),
	}
}

// current returns the published state, materialising defaults on first use.
// Callers must hold m.mu.
func (m *Module) current() *moduleState {
	if st := m.state.Load(); st != nil {
		return st
	}

	return newModuleState(m.entries)
}

// UpdateValues re-reads stored values from the backend. An initial update
// refreshes every entry; a live update only refreshes entries that do not
// require a restart. The syncable snapshot is recomputed afterwards.
//
// Entries whose backend read failed keep their previous value; the failures
// are returned joined.
func (m *Module) UpdateValues(ctx context.Context, initial bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.current().clone()

	targets := m.updatable
	if initial {
		targets = m.entries
	}

	var errs []error
	for _, e := range targets {
		if err := e.updateValue(ctx, next, initial); err != nil {
			errs = append(errs, err)
		}
	}

	toSync := make([]Value, len(m.syncable))
	for i, e := range m.syncable {
		toSync[i] = next.effective(e.index)
	}

	m.state.Store(next)
	m.toSync.Store(&toSync)

	m.logger.Debug().
		Str("module_id", m.id).
		Bool("initial", initial).
		Int("updated", len(targets)-len(errs)).
		Msg("config values updated")

	if len(errs) > 0 {
		return fmt.Errorf("update config %q: %w", m.id, errors.Join(errs...))
	}

	return nil
}

// SyncValues returns the snapshot of syncable values taken by the last
// [Module.UpdateValues], in wire order.
func (m *Module) SyncValues() []Value {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p := m.toSync.Load(); p != nil {
		return append([]Value(nil), (*p)...)
	}

	st := m.current()
	values := make([]Value, len(m.syncable))
	for i, e := range m.syncable {
		values[i] = st.effective(e.index)
	}

	return values
}

// ValuesToSync returns the same snapshot as [Module.SyncValues], keyed by
// path.
func (m *Module) ValuesToSync() map[string]Value {
	values := m.SyncValues()

	out := make(map[string]Value, len(values))
	for i, e := range m.syncable {
		out[e.decl.Path] = values[i]
	}

	return out
}

// SetSyncValue records a synced override for the entry at path. Unknown
// paths, and paths of entries that are not synced, are ignored, since peers
// may briefly run different schemas.
func (m *Module) SetSyncValue(path string, raw Value) error {
	return m.ApplySyncValues([]SyncValue{{Path: path, Value: raw}})
}

// ApplySyncValues records a batch of synced overrides and publishes them in
// one step. Unknown paths are ignored. Invalid values are skipped, keep
// the entry's previous effective value and are returned joined; the valid
// rest of the batch is still applied.
func (m *Module) ApplySyncValues(values []SyncValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.current().clone()

	var errs []error
	applied := 0
	for _, sv := range values {
		e, ok := m.byPath[sv.Path]
		if !ok || !e.decl.Syncable {
			m.logger.Debug().Str("module_id", m.id).Str("path", sv.Path).Msg("ignoring synced value for unknown path")
			continue
		}

		if err := e.setSyncedValue(next, sv.Value); err != nil {
			errs = append(errs, err)
			continue
		}
		applied++
	}

	if applied > 0 {
		m.state.Store(next)
	}

	return errors.Join(errs...)
}

// ClearSyncedValues drops every synced override so that entries return to
// their stored values. Calling it repeatedly is harmless.
func (m *Module) ClearSyncedValues() {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state.Load()
	if st == nil {
		return
	}

	next := st.clone()
	cleared := 0
	for _, e := range m.syncable {
		if next.overridden[e.index] {
			e.clearSyncedValue(next)
			cleared++
		}
	}

	if cleared > 0 {
		m.state.Store(next)
		m.logger.Debug().Str("module_id", m.id).Int("cleared", cleared).Msg("synced config values cleared")
	}
}
