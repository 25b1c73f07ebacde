// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
)

const (
	maxAttempts  = 3
	retryBackoff = 50 * time.Millisecond
)

// SQLBackend stores values in the config_values table of a SQLite or
// PostgreSQL database. Values are kept as text in the same format the TOML
// backend writes, with their kind alongside.
type SQLBackend struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLBackend constructs a backend over an open, migrated database.
func NewSQLBackend(db *DB, logger *logger.Logger) *SQLBackend {
	logger.Debug().Str("dialect", db.dialect).Msg("creating sql config backend")
	return &SQLBackend{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// PersistSchema records the module, its category comments and the defaults
// of every entry that has no stored value, in one transaction.
func (b *SQLBackend) PersistSchema(ctx context.Context, schema modconfig.Schema) error {
	return b.withRetry(ctx, "PersistSchema", func() error {
		return b.persistSchema(ctx, schema)
	})
}

func (b *SQLBackend) persistSchema(ctx context.Context, schema modconfig.Schema) error {
	log := logger.FromContext(ctx)
	now := b.now()

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*SQLBackend.PersistSchema").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	exec := func(query string, args []any, err error) error {
		if err != nil {
			return wrapBuildErr(query, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "*SQLBackend.PersistSchema").
				Str("module_id", schema.ModuleID).
				Str("pg_code", postgresError(err)).
				Msg("failed to execute schema statement")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	}

	if err = exec(b.db.upsertModuleQuery(schema, now)); err != nil {
		return err
	}

	for _, category := range slices.Sorted(maps.Keys(schema.CategoryComments)) {
		if err = exec(b.db.upsertCategoryQuery(schema.ModuleID, category, schema.CategoryComments[category])); err != nil {
			return err
		}
	}

	for _, decl := range schema.Declarations {
		if err = exec(b.db.declareValueQuery(schema.ModuleID, decl, now)); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*SQLBackend.PersistSchema").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// Load reads one stored value. A row of another kind, or text that does not
// parse, is reported with [modconfig.ErrInvalidValue].
func (b *SQLBackend) Load(ctx context.Context, moduleID string, decl modconfig.Declaration) (modconfig.Value, error) {
	log := logger.FromContext(ctx)

	query, args, err := b.db.loadValueQuery(moduleID, decl.Path)
	if err != nil {
		return modconfig.Value{}, wrapBuildErr(query, err)
	}

	var kind, text string
	err = b.withRetry(ctx, "Load", func() error {
		return b.db.QueryRowContext(ctx, query, args...).Scan(&kind, &text)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return modconfig.Value{}, fmt.Errorf("%w: %s/%s", ErrValueNotStored, moduleID, decl.Path)
	}
	if err != nil {
		log.Err(err).
			Str("func", "*SQLBackend.Load").
			Str("module_id", moduleID).
			Str("path", decl.Path).
			Msg("failed to load config value")
		return modconfig.Value{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if kind != decl.Kind.String() {
		return modconfig.Value{}, fmt.Errorf("%w: %s stored as %s, declared %s", modconfig.ErrInvalidValue, decl.Path, kind, decl.Kind)
	}

	return decl.Parse(text)
}

// Store writes one stored value.
func (b *SQLBackend) Store(ctx context.Context, moduleID string, decl modconfig.Declaration, value modconfig.Value) error {
	log := logger.FromContext(ctx)

	query, args, err := b.db.storeValueQuery(moduleID, decl, value, b.now())
	if err != nil {
		return wrapBuildErr(query, err)
	}

	err = b.withRetry(ctx, "Store", func() error {
		_, err := b.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "*SQLBackend.Store").
			Str("module_id", moduleID).
			Str("path", decl.Path).
			Str("pg_code", postgresError(err)).
			Msg("failed to store config value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// withRetry runs op until it succeeds, fails with an error the engine's
// classifier does not consider transient, or runs out of attempts.
func (b *SQLBackend) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if b.db.errorClassificator == nil || b.db.errorClassificator.Classify(err) != Retryable || attempt == maxAttempts {
			return err
		}

		b.logger.Warn().Err(err).Str("op", op).Int("attempt", attempt).Msg("retrying transient database error")

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}

	return err
}
