// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modconfig

import (
	"context"
	"errors"
	"fmt"
)

// Entry is a single typed, validated, optionally synced setting. Its
// declaration never changes; its stored value and synced override live in
// the owning module's published state so that [Entry.Get] stays lock-free.
type Entry struct {
	decl   Declaration
	index  int
	module *Module
}

// Get returns the effective value: the synced override when one is present,
// the stored value otherwise. Before the module is built, and for entries
// whose declaration was rejected by the builder, it returns the default.
// Get never blocks and is safe to call from any goroutine.
func (e *Entry) Get() Value {
	if e.module == nil {
		return e.decl.Default
	}

	st := e.module.state.Load()
	if st == nil {
		return e.decl.Default
	}

	return st.effective(e.index)
}

// Stored returns the value last read from the persistence backend, ignoring
// any synced override.
func (e *Entry) Stored() Value {
	if e.module == nil {
		return e.decl.Default
	}

	st := e.module.state.Load()
	if st == nil {
		return e.decl.Default
	}

	return st.stored[e.index]
}

// Synced returns the synced override and whether one is present.
func (e *Entry) Synced() (Value, bool) {
	if e.module == nil {
		return Value{}, false
	}

	st := e.module.state.Load()
	if st == nil || !st.overridden[e.index] {
		return Value{}, false
	}

	return st.overrides[e.index], true
}

// Path returns the dot-separated location of the entry in its module.
func (e *Entry) Path() string { return e.decl.Path }

// Comment returns the entry description, or "".
func (e *Entry) Comment() string { return e.decl.Comment }

// Declaration returns the immutable declaration of the entry.
func (e *Entry) Declaration() Declaration { return e.decl }

// IsGameRestartRequired reports whether live updates skip the entry.
func (e *Entry) IsGameRestartRequired() bool { return e.decl.RequiresRestart }

// ShouldBeSynced reports whether the server pushes the entry to clients.
func (e *Entry) ShouldBeSynced() bool { return e.decl.Syncable }

// updateValue re-reads the stored value into next. Live updates
// (initial == false) leave restart-required entries alone.
//
// A missing stored value falls back to the default. An out-of-range stored
// value is clamped and the clamped value is written back. A stored value
// that cannot be parsed or coerced is replaced by the default and written
// back.
// Only backend failures are returned.
func (e *Entry) updateValue(ctx context.Context, next *moduleState, initial bool) error {
	if !initial && e.decl.RequiresRestart {
		return nil
	}

	m := e.module
	log := m.logger.With().Str("module_id", m.id).Str("path", e.decl.Path).Logger()

	raw, err := m.backend.Load(ctx, m.id, e.decl)
	switch {
	case err == nil:
	case errors.Is(err, ErrValueNotStored):
		raw = e.decl.Default
	case errors.Is(err, ErrInvalidValue):
		raw = Value{}
	default:
		return fmt.Errorf("load %s: %w", e.decl.Path, err)
	}

	value, clamped, err := e.decl.Coerce(raw)
	if err != nil {
		log.Warn().Err(err).Msg("stored config value is invalid, falling back to default")
		value, clamped = e.decl.Default, true
	}

	if clamped {
		log.Info().
			Str("stored", e.decl.Format(raw)).
			Str("corrected", e.decl.Format(value)).
			Msg("stored config value corrected")
		if err = m.backend.Store(ctx, m.id, e.decl, value); err != nil {
			log.Err(err).Msg("failed to write corrected config value back")
		}
	}

	next.stored[e.index] = value
	return nil
}

// setSyncedValue validates raw and records it as the override in next.
// Numeric values are clamped; anything else invalid is rejected and the
// previous effective value is kept.
func (e *Entry) setSyncedValue(next *moduleState, raw Value) error {
	value, _, err := e.decl.Coerce(raw)
	if err != nil {
		return err
	}

	next.overrides[e.index] = value
	next.overridden[e.index] = true
	return nil
}

// clearSyncedValue discards the override in next.
func (e *Entry) clearSyncedValue(next *moduleState) {
	next.overrides[e.index] = Value{}
	next.overridden[e.index] = false
}
