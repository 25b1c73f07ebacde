// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modconfig

import "errors"

// Sentinel errors of the config model. Callers match them with [errors.Is];
// the concrete error always carries the offending path or identifier.
var (
	// ErrSchema is returned for builder misuse: empty category, name or
	// comment, popping with nothing pushed, a second comment for a category
	// or a declaration, invalid bounds or duplicate paths. The schema that
	// produced it cannot be built.
	ErrSchema = errors.New("invalid config schema")

	// ErrRegistrationConflict is returned when a module identifier is
	// registered twice. The module registered first stays untouched.
	ErrRegistrationConflict = errors.New("config identifier already registered")

	// ErrInvalidValue is returned when a raw value does not fit the
	// declaration it is assigned to (wrong kind, NaN, enum ordinal out of
	// range).
	ErrInvalidValue = errors.New("invalid config value")

	// ErrValueNotStored is returned by backends when an entry has no stored
	// value yet. The entry then falls back to its default.
	ErrValueNotStored = errors.New("config value is not stored")

	// ErrAlreadyBuilt is returned by a second call to [Builder.Build].
	ErrAlreadyBuilt = errors.New("config builder already built")
)
