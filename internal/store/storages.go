// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mod-config/internal/config"
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
)

// Storages holds the config backend selected by configuration and owns the
// database connection behind it, if any.
type Storages struct {
	// Backend is handed to every config builder.
	Backend modconfig.Backend

	db *DB
}

// NewStorages initialises the backend named by cfg.Kind:
//   - "memory": values live as long as the process;
//   - "toml": one file per module in cfg.Files.ConfigDir;
//   - "sqlite", "postgres": the config tables of cfg.DB.DSN, migrated on
//     open.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("kind", cfg.Kind).Msg("creating config storage...")

	switch cfg.Kind {
	case config.StorageMemory, "":
		return &Storages{Backend: NewMemoryBackend()}, nil
	case config.StorageTOML:
		return &Storages{Backend: NewTOMLFileBackend(cfg.Files.ConfigDir, logger)}, nil
	case config.StorageSQLite, config.StoragePostgres:
		connect := NewConnectSQLite
		if cfg.Kind == config.StoragePostgres {
			connect = NewConnectPostgres
		}

		db, err := connect(ctx, cfg.DB, logger)
		if err != nil {
			return nil, fmt.Errorf("%s connection error: %w", cfg.Kind, err)
		}

		if err = db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		return &Storages{Backend: NewSQLBackend(db, logger), db: db}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Kind)
	}
}

// Close releases the database connection, if the backend has one.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
