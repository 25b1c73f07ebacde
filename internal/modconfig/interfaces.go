// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modconfig

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/backend_mock.go -package=mock

// Backend is the persistence side of a module. The core never knows which
// format values are stored in; it only asks the backend to declare the schema
// and to read or write single entries.
type Backend interface {
	// PersistSchema declares every entry and category comment of a module.
	// Entries that have no stored value yet get their default written.
	// Returning an error aborts [Builder.Build].
	PersistSchema(ctx context.Context, schema Schema) error

	// Load returns the stored value of one entry. It returns
	// [ErrValueNotStored] (possibly wrapped) when nothing is stored, and
	// [ErrInvalidValue] when the stored text cannot be parsed. Either way
	// the entry falls back to its default.
	Load(ctx context.Context, moduleID string, decl Declaration) (Value, error)

	// Store writes the stored value of one entry.
	Store(ctx context.Context, moduleID string, decl Declaration, value Value) error
}

// Supplier is the read-only capability handed out by the builder for every
// declared entry.
type Supplier[T any] interface {
	Get() T
}

// Type classifies a module for the persistence backend. The core logic does
// not branch on it.
type Type string

const (
	TypeClient Type = "client"
	TypeServer Type = "server"
	TypeCommon Type = "common"
)

// Valid reports whether t is one of the three known module types.
func (t Type) Valid() bool {
	return t == TypeClient || t == TypeServer || t == TypeCommon
}
