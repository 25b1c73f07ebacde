// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/pelletier/go-toml/v2"
)

// TOMLFileBackend stores every module in its own <dir>/<moduleID>.toml file.
// Categories become nested tables. Files are re-read when their modification
// time changes, so hand edits are picked up by the next live update.
type TOMLFileBackend struct {
	dir    string
	logger *logger.Logger

	mu      sync.Mutex
	docs    map[string]*tomlDoc
	schemas map[string]modconfig.Schema
}

type tomlDoc struct {
	values  map[string]any
	modTime time.Time
}

// NewTOMLFileBackend creates a backend rooted at dir. The directory is
// created on the first schema write.
func NewTOMLFileBackend(dir string, logger *logger.Logger) *TOMLFileBackend {
	return &TOMLFileBackend{
		dir:     dir,
		logger:  logger,
		docs:    make(map[string]*tomlDoc),
		schemas: make(map[string]modconfig.Schema),
	}
}

func (b *TOMLFileBackend) path(moduleID string) (string, error) {
	if moduleID == "" || moduleID != filepath.Base(moduleID) || strings.HasPrefix(moduleID, ".") {
		return "", fmt.Errorf("module identifier %q cannot be used as a file name", moduleID)
	}

	return filepath.Join(b.dir, moduleID+".toml"), nil
}

func (b *TOMLFileBackend) PersistSchema(ctx context.Context, schema modconfig.Schema) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.readDoc(schema.ModuleID)
	if err != nil {
		return err
	}

	for _, decl := range schema.Declarations {
		if _, ok := lookup(doc, decl.Path); ok {
			continue
		}
		if err = set(doc, decl.Path, decl.Native(decl.Default)); err != nil {
			return fmt.Errorf("declare %s/%s: %w", schema.ModuleID, decl.Path, err)
		}
	}

	b.schemas[schema.ModuleID] = schema

	return b.writeDoc(schema.ModuleID, doc)
}

func (b *TOMLFileBackend) Load(ctx context.Context, moduleID string, decl modconfig.Declaration) (modconfig.Value, error) {
	if err := ctx.Err(); err != nil {
		return modconfig.Value{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.readDoc(moduleID)
	if err != nil {
		return modconfig.Value{}, err
	}

	raw, ok := lookup(doc, decl.Path)
	if !ok {
		return modconfig.Value{}, fmt.Errorf("%w: %s/%s", ErrValueNotStored, moduleID, decl.Path)
	}

	return decl.FromNative(raw)
}

func (b *TOMLFileBackend) Store(ctx context.Context, moduleID string, decl modconfig.Declaration, value modconfig.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.readDoc(moduleID)
	if err != nil {
		return err
	}

	if err = set(doc, decl.Path, decl.Native(value)); err != nil {
		return fmt.Errorf("store %s/%s: %w", moduleID, decl.Path, err)
	}

	return b.writeDoc(moduleID, doc)
}

// readDoc returns the parsed file of moduleID, re-reading it when it changed
// on disk. A missing file is an empty document. Callers must hold b.mu.
func (b *TOMLFileBackend) readDoc(moduleID string) (map[string]any, error) {
	p, err := b.path(moduleID)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		delete(b.docs, moduleID)
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}

	if cached, ok := b.docs[moduleID]; ok && cached.modTime.Equal(info.ModTime()) {
		return cached.values, nil
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}

	values := make(map[string]any)
	if err = toml.Unmarshal(data, &values); err != nil {
		b.logger.Err(err).Str("file", p).Msg("config file is not valid TOML, starting from defaults")
		values = make(map[string]any)
	}

	b.docs[moduleID] = &tomlDoc{values: values, modTime: info.ModTime()}
	return values, nil
}

// writeDoc renders doc with a commented header and replaces the file
// atomically. Callers must hold b.mu.
func (b *TOMLFileBackend) writeDoc(moduleID string, doc map[string]any) error {
	p, err := b.path(moduleID)
	if err != nil {
		return err
	}

	body, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p, err)
	}

	var buf bytes.Buffer
	writeHeader(&buf, moduleID, b.schemas[moduleID])
	buf.Write(body)

	if err = os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, moduleID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err = tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", p, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", p, err)
	}
	if err = os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", p, err)
	}

	info, err := os.Stat(p)
	if err != nil {
		delete(b.docs, moduleID)
		return nil
	}
	b.docs[moduleID] = &tomlDoc{values: doc, modTime: info.ModTime()}

	return nil
}

func writeHeader(buf *bytes.Buffer, moduleID string, schema modconfig.Schema) {
	fmt.Fprintf(buf, "# %s", moduleID)
	if schema.Type != "" {
		fmt.Fprintf(buf, " (%s)", schema.Type)
	}
	buf.WriteString("\n")

	categories := make([]string, 0, len(schema.CategoryComments))
	for c := range schema.CategoryComments {
		categories = append(categories, c)
	}
	slices.Sort(categories)
	for _, c := range categories {
		fmt.Fprintf(buf, "# [%s] %s\n", c, schema.CategoryComments[c])
	}

	for _, d := range schema.Declarations {
		fmt.Fprintf(buf, "# %s", d.Path)
		if d.Comment != "" {
			fmt.Fprintf(buf, ": %s", d.Comment)
		}
		switch d.Kind {
		case modconfig.KindInt, modconfig.KindFloat:
			fmt.Fprintf(buf, " [%s, %s]", d.Min, d.Max)
		case modconfig.KindEnum:
			fmt.Fprintf(buf, " {%s}", strings.Join(d.Domain, ", "))
		}
		fmt.Fprintf(buf, " (default %s)", d.Format(d.Default))
		if d.RequiresRestart {
			buf.WriteString(" (requires restart)")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}

func lookup(doc map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")

	cur := doc
	for _, seg := range segments[:len(segments)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}

	v, ok := cur[segments[len(segments)-1]]
	if _, isTable := v.(map[string]any); isTable {
		return nil, false
	}

	return v, ok
}

func set(doc map[string]any, path string, v any) error {
	segments := strings.Split(path, ".")

	cur := doc
	for _, seg := range segments[:len(segments)-1] {
		switch next := cur[seg].(type) {
		case map[string]any:
			cur = next
		case nil:
			table := make(map[string]any)
			cur[seg] = table
			cur = table
		default:
			return fmt.Errorf("%q is a value, not a table", seg)
		}
	}

	last := segments[len(segments)-1]
	if _, isTable := cur[last].(map[string]any); isTable {
		return fmt.Errorf("%q is a table, not a value", last)
	}
	cur[last] = v

	return nil
}
