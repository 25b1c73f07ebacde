// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	sq "github.com/Masterminds/squirrel"
)

const (
	tableModules    = "config_modules"
	tableValues     = "config_values"
	tableCategories = "config_categories"
)

// upsertModuleQuery records the module and its type.
func (db *DB) upsertModuleQuery(schema modconfig.Schema, now time.Time) (string, []any, error) {
	return db.builder().
		Insert(tableModules).
		Columns("module_id", "type", "updated_at").
		Values(schema.ModuleID, string(schema.Type), now).
		Suffix("ON CONFLICT (module_id) DO UPDATE SET type = excluded.type, updated_at = excluded.updated_at").
		ToSql()
}

// declareValueQuery inserts the default of decl unless a value is already
// stored; an existing row only gets its kind and comment refreshed.
func (db *DB) declareValueQuery(moduleID string, decl modconfig.Declaration, now time.Time) (string, []any, error) {
	return db.builder().
		Insert(tableValues).
		Columns("module_id", "path", "kind", "value", "comment", "updated_at").
		Values(moduleID, decl.Path, decl.Kind.String(), decl.Format(decl.Default), decl.Comment, now).
		Suffix("ON CONFLICT (module_id, path) DO UPDATE SET comment = excluded.comment").
		ToSql()
}

// upsertCategoryQuery writes one category comment.
func (db *DB) upsertCategoryQuery(moduleID, category, comment string) (string, []any, error) {
	return db.builder().
		Insert(tableCategories).
		Columns("module_id", "category", "comment").
		Values(moduleID, category, comment).
		Suffix("ON CONFLICT (module_id, category) DO UPDATE SET comment = excluded.comment").
		ToSql()
}

// loadValueQuery selects the stored kind and text of one entry.
func (db *DB) loadValueQuery(moduleID, path string) (string, []any, error) {
	return db.builder().
		Select("kind", "value").
		From(tableValues).
		Where(sq.Eq{"module_id": moduleID, "path": path}).
		ToSql()
}

// storeValueQuery writes the stored value of one entry.
func (db *DB) storeValueQuery(moduleID string, decl modconfig.Declaration, value modconfig.Value, now time.Time) (string, []any, error) {
	return db.builder().
		Insert(tableValues).
		Columns("module_id", "path", "kind", "value", "comment", "updated_at").
		Values(moduleID, decl.Path, decl.Kind.String(), decl.Format(value), decl.Comment, now).
		Suffix("ON CONFLICT (module_id, path) DO UPDATE SET kind = excluded.kind, value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func wrapBuildErr(query string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrBuildingSQLQuery, query, err)
}
