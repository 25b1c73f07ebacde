// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"time"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-mod-config",
			TokenDuration: time.Hour,
			Version:       "dev",
			LogLevel:      "info",
		},
		Storage: Storage{
			Kind:  StorageMemory,
			Files: Files{ConfigDir: "config"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
	}
}

// validate checks the merged [StructuredConfig] shared by both binaries.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if err := cfg.Storage.validate(); err != nil {
		errs = append(errs, err)
	}

	if cfg.Workers.ReloadInterval < 0 {
		errs = append(errs, fmt.Errorf("%w: negative reload interval", ErrInvalidWorkerConfigs))
	}

	return errors.Join(errs...)
}

func (s Storage) validate() error {
	switch s.Kind {
	case StorageMemory:
		return nil
	case StorageTOML:
		if s.Files.ConfigDir == "" {
			return fmt.Errorf("%w: toml storage needs a config dir", ErrInvalidStorageConfigs)
		}
		return nil
	case StorageSQLite, StoragePostgres:
		if s.DB.DSN == "" {
			return fmt.Errorf("%w: %s storage needs a DSN", ErrInvalidStorageConfigs, s.Kind)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidStorageConfigs, s.Kind)
	}
}

// validateServer checks the settings only the server needs.
func (cfg *StructuredConfig) validateServer() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return cfg.Storage.validate()
}
