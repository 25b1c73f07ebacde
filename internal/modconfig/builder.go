// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modconfig

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/MKhiriev/go-mod-config/internal/logger"
)

// Option modifies exactly one declaration. Options replace the sticky
// "pending modifier" state of older config DSLs: whatever is passed to a
// Define call applies to that call only.
type Option func(*declOptions)

type declOptions struct {
	comment      string
	comments     int
	emptyComment bool
	restart      bool
	dontSync     bool
}

// WithComment attaches a human-readable comment to the declaration.
func WithComment(comment string) Option {
	return func(o *declOptions) {
		o.comments++
		if comment == "" {
			o.emptyComment = true
		}
		o.comment = comment
	}
}

// GameRestart marks the declaration as restart-required: live updates skip it.
func GameRestart() Option {
	return func(o *declOptions) { o.restart = true }
}

// DontSync keeps the declaration out of server→client sync.
func DontSync() Option {
	return func(o *declOptions) { o.dontSync = true }
}

// Builder accumulates the declarations of one module. It is single-use:
// after a successful [Builder.Build] it refuses to build again.
//
// Misuse is recorded where it happens and is visible right away through
// [Builder.Err]; [Builder.Build] refuses to build a schema that recorded any
// error.
type Builder struct {
	registry *Registry
	backend  Backend
	logger   *logger.Logger

	module           *Module
	entries          []*Entry
	paths            map[string]struct{}
	categoryComments map[string]string
	category         string

	built bool
	err   error
}

// NewBuilder starts the schema of module id of the given type.
func NewBuilder(registry *Registry, backend Backend, id string, typ Type, logger *logger.Logger) *Builder {
	b := &Builder{
		registry:         registry,
		backend:          backend,
		logger:           logger,
		module:           &Module{id: id, typ: typ, backend: backend, logger: logger},
		paths:            make(map[string]struct{}),
		categoryComments: make(map[string]string),
	}

	if id == "" {
		b.fail("module identifier must not be empty")
	}
	if !typ.Valid() {
		b.fail("unknown module type %q", typ)
	}

	return b
}

// NewCommonBuilder starts the schema of a [TypeCommon] module.
func NewCommonBuilder(registry *Registry, backend Backend, id string, logger *logger.Logger) *Builder {
	return NewBuilder(registry, backend, id, TypeCommon, logger)
}

// Err returns every misuse recorded so far, joined, or nil.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(format string, args ...any) {
	b.err = errors.Join(b.err, fmt.Errorf("%w: %s", ErrSchema, fmt.Sprintf(format, args...)))
}

// Push opens a category. Categories are a single level deep: while one is
// open, further pushes are ignored.
func (b *Builder) Push(category string) {
	if category == "" {
		b.fail("category must not be empty")
		return
	}

	if b.category == "" {
		b.category = category
	}
}

// Pop removes the last dot-separated segment of the open category.
func (b *Builder) Pop() {
	if b.category == "" {
		b.fail("no more categories to pop")
		return
	}

	if i := strings.LastIndex(b.category, "."); i >= 0 {
		b.category = b.category[:i]
	} else {
		b.category = ""
	}
}

// CategoryComment attaches a comment to the open category. A category takes
// at most one comment.
func (b *Builder) CategoryComment(comment string) {
	switch {
	case comment == "":
		b.fail("comment must not be empty")
	case b.category == "":
		b.fail("no category pushed")
	default:
		if _, ok := b.categoryComments[b.category]; ok {
			b.fail("category %s already has a comment", b.category)
			return
		}
		b.categoryComments[b.category] = comment
	}
}

// DefineBool declares a boolean entry.
func (b *Builder) DefineBool(name string, def bool, opts ...Option) Supplier[bool] {
	return boolSupplier{b.define(name, Declaration{
		Kind:    KindBool,
		Default: BoolValue(def),
	}, opts)}
}

// DefineInt declares an integer entry bounded by [minValue, maxValue].
func (b *Builder) DefineInt(name string, def, minValue, maxValue int, opts ...Option) Supplier[int] {
	return intSupplier{b.define(name, Declaration{
		Kind:    KindInt,
		Default: IntValue(int64(def)),
		Min:     IntValue(int64(minValue)),
		Max:     IntValue(int64(maxValue)),
	}, opts)}
}

// DefineFloat declares a floating-point entry bounded by [minValue, maxValue].
func (b *Builder) DefineFloat(name string, def, minValue, maxValue float64, opts ...Option) Supplier[float64] {
	return floatSupplier{b.define(name, Declaration{
		Kind:    KindFloat,
		Default: FloatValue(def),
		Min:     FloatValue(minValue),
		Max:     FloatValue(maxValue),
	}, opts)}
}

// DefineEnum declares an entry restricted to the ordered domain. Constants
// are stored under their fmt representation and synced by their position in
// domain.
func DefineEnum[E comparable](b *Builder, name string, def E, domain []E, opts ...Option) Supplier[E] {
	names := make([]string, len(domain))
	ordinal := -1
	for i, c := range domain {
		names[i] = fmt.Sprint(c)
		if c == def && ordinal < 0 {
			ordinal = i
		}
	}

	decl := Declaration{
		Kind:    KindEnum,
		Default: EnumValue(ordinal),
		Domain:  names,
	}

	// a rejected declaration must still hand out a usable supplier
	if ordinal < 0 {
		domain = append(append([]E(nil), domain...), def)
		decl.Default = EnumValue(len(domain) - 1)
	}

	return enumSupplier[E]{entry: b.define(name, decl, opts), domain: domain}
}

// define validates decl, applies the per-declaration options and appends the
// entry. A rejected declaration yields a detached entry that always reports
// its default, so the caller still gets a usable supplier.
func (b *Builder) define(name string, decl Declaration, opts []Option) *Entry {
	var o declOptions
	for _, opt := range opts {
		opt(&o)
	}

	decl.Path = b.path(name)
	decl.Comment = o.comment
	decl.RequiresRestart = o.restart
	decl.Syncable = !o.dontSync

	detached := &Entry{decl: decl}

	if name == "" {
		b.fail("name must not be empty")
		return detached
	}
	if o.emptyComment {
		b.fail("%s: comment must not be empty", decl.Path)
		return detached
	}
	if o.comments > 1 {
		b.fail("%s: a comment is already specified", decl.Path)
		return detached
	}
	if b.built {
		b.fail("%s: declared after build", decl.Path)
		return detached
	}
	if err := validateDeclaration(decl); err != nil {
		b.err = errors.Join(b.err, err)
		return detached
	}
	if _, dup := b.paths[decl.Path]; dup {
		b.fail("duplicate config path %s", decl.Path)
		return detached
	}

	e := &Entry{decl: decl, index: len(b.entries), module: b.module}
	b.entries = append(b.entries, e)
	b.paths[decl.Path] = struct{}{}

	return e
}

func (b *Builder) path(name string) string {
	if b.category == "" {
		return name
	}

	return b.category + "." + name
}

func validateDeclaration(d Declaration) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrSchema, d.Path, fmt.Sprintf(format, args...))
	}

	switch d.Kind {
	case KindBool:
		return nil
	case KindInt:
		if d.Min.Int > d.Max.Int {
			return fail("min %d is greater than max %d", d.Min.Int, d.Max.Int)
		}
		if d.Default.Int < d.Min.Int || d.Default.Int > d.Max.Int {
			return fail("default %d outside [%d,%d]", d.Default.Int, d.Min.Int, d.Max.Int)
		}
	case KindFloat:
		if math.IsNaN(d.Min.Float) || math.IsNaN(d.Max.Float) || math.IsNaN(d.Default.Float) {
			return fail("NaN is not a valid default or bound")
		}
		if d.Min.Float > d.Max.Float {
			return fail("min %g is greater than max %g", d.Min.Float, d.Max.Float)
		}
		if d.Default.Float < d.Min.Float || d.Default.Float > d.Max.Float {
			return fail("default %g outside [%g,%g]", d.Default.Float, d.Min.Float, d.Max.Float)
		}
	case KindEnum:
		if len(d.Domain) == 0 {
			return fail("enum domain must not be empty")
		}
		seen := make(map[string]struct{}, len(d.Domain))
		for _, n := range d.Domain {
			key := strings.ToLower(n)
			if _, dup := seen[key]; dup {
				return fail("duplicate enum constant %q", n)
			}
			seen[key] = struct{}{}
		}
		if d.Default.Ordinal < 0 || d.Default.Ordinal >= len(d.Domain) {
			return fail("default is not part of the enum domain")
		}
	default:
		return fail("unknown kind %s", d.Kind)
	}

	return nil
}

// Build persists the schema through the backend, performs the initial update
// of every entry and registers the module. It fails on any recorded misuse,
// on backend rejection and on a registration conflict.
func (b *Builder) Build(ctx context.Context) (*Module, error) {
	if b.built {
		return nil, fmt.Errorf("config %q: %w", b.module.id, ErrAlreadyBuilt)
	}
	if b.err != nil {
		return nil, fmt.Errorf("config %q: %w", b.module.id, b.err)
	}

	m := b.module
	m.install(b.entries, b.categoryComments)

	if err := b.backend.PersistSchema(ctx, m.Schema()); err != nil {
		return nil, fmt.Errorf("persist schema of config %q: %w", m.id, err)
	}

	if err := m.UpdateValues(ctx, true); err != nil {
		return nil, err
	}

	if err := b.registry.AddConfig(m); err != nil {
		return nil, err
	}

	b.built = true
	b.logger.Info().
		Str("module_id", m.id).
		Str("type", string(m.typ)).
		Int("entries", len(m.entries)).
		Int("syncable", len(m.syncable)).
		Msg("config built")

	return m, nil
}
