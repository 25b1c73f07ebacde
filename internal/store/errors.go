// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/MKhiriev/go-mod-config/internal/modconfig"
)

// ErrValueNotStored is returned by every backend's Load when the entry has no
// stored value. It is the same sentinel the core checks for.
var ErrValueNotStored = modconfig.ErrValueNotStored

// ErrUnknownBackend is returned by [NewStorages] for an unsupported storage
// kind.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Low-level database operation errors. These are returned (or wrapped) by the
// SQL backend when a statement fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT or UPDATE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when a result row cannot be scanned.
	ErrScanningRow = errors.New("failed to scan config value row")
)
