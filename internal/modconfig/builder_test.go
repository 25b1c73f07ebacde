// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modconfig_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/mock"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type difficulty string

const (
	easy   difficulty = "EASY"
	normal difficulty = "NORMAL"
	hard   difficulty = "HARD"
)

var difficulties = []difficulty{easy, normal, hard}

func newBuilder(t *testing.T, id string) (*modconfig.Builder, *modconfig.Registry, *store.MemoryBackend) {
	t.Helper()
	registry := modconfig.NewRegistry(logger.Nop())
	backend := store.NewMemoryBackend()
	return modconfig.NewCommonBuilder(registry, backend, id, logger.Nop()), registry, backend
}

// ── categories ────────────────────────────────────────────────────────────────

func TestBuilder_PathsFollowCategory(t *testing.T) {
	b, _, _ := newBuilder(t, "example")

	b.DefineBool("root", true)
	b.Push("world")
	b.DefineInt("maxPlayers", 10, 1, 50)
	b.Pop()
	b.DefineFloat("ratio", 0.5, 0, 1)

	m, err := b.Build(context.Background())
	require.NoError(t, err)

	var paths []string
	for _, e := range m.Entries() {
		paths = append(paths, e.Path())
	}
	assert.Equal(t, []string{"root", "world.maxPlayers", "ratio"}, paths)
}

func TestBuilder_NestedPushIsIgnored(t *testing.T) {
	b, _, _ := newBuilder(t, "example")

	b.Push("a")
	b.Push("b")
	b.DefineBool("flag", false)

	m, err := b.Build(context.Background())
	require.NoError(t, err)

	_, ok := m.Entry("a.flag")
	assert.True(t, ok, "only the first push takes effect")
	assert.NoError(t, b.Err())
}

func TestBuilder_PopWithNothingPushed(t *testing.T) {
	b, _, _ := newBuilder(t, "example")

	b.Pop()
	assert.ErrorIs(t, b.Err(), modconfig.ErrSchema)

	_, err := b.Build(context.Background())
	assert.ErrorIs(t, err, modconfig.ErrSchema)
}

func TestBuilder_EmptyCategory(t *testing.T) {
	b, _, _ := newBuilder(t, "example")

	b.Push("")
	assert.ErrorIs(t, b.Err(), modconfig.ErrSchema)
}

func TestBuilder_CategoryComment(t *testing.T) {
	b, _, backend := newBuilder(t, "example")

	b.Push("world")
	b.CategoryComment("world settings")
	b.DefineInt("maxPlayers", 10, 1, 50)
	b.Pop()

	m, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"world": "world settings"}, m.CategoryComments())

	schema, ok := backend.Schema("example")
	require.True(t, ok)
	assert.Equal(t, "world settings", schema.CategoryComments["world"])
}

func TestBuilder_CategoryCommentErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func(b *modconfig.Builder)
	}{
		{name: "no category", run: func(b *modconfig.Builder) { b.CategoryComment("c") }},
		{name: "empty comment", run: func(b *modconfig.Builder) { b.Push("x"); b.CategoryComment("") }},
		{name: "second comment", run: func(b *modconfig.Builder) {
			b.Push("x")
			b.CategoryComment("one")
			b.CategoryComment("two")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, _ := newBuilder(t, "example")
			tt.run(b)
			assert.ErrorIs(t, b.Err(), modconfig.ErrSchema)
		})
	}
}

// ── declarations ──────────────────────────────────────────────────────────────

func TestBuilder_OptionsApplyToOneDeclaration(t *testing.T) {
	b, _, _ := newBuilder(t, "example")

	b.DefineBool("debugMode", false, modconfig.GameRestart(), modconfig.DontSync(), modconfig.WithComment("debug"))
	b.DefineInt("maxPlayers", 10, 1, 50)

	m, err := b.Build(context.Background())
	require.NoError(t, err)

	debug, _ := m.Entry("debugMode")
	assert.True(t, debug.IsGameRestartRequired())
	assert.False(t, debug.ShouldBeSynced())
	assert.Equal(t, "debug", debug.Comment())

	players, _ := m.Entry("maxPlayers")
	assert.False(t, players.IsGameRestartRequired(), "modifiers never leak into the next declaration")
	assert.True(t, players.ShouldBeSynced())
	assert.Empty(t, players.Comment())

	assert.Len(t, m.SyncableEntries(), 1)
	assert.Len(t, m.UpdatableEntries(), 1)
}

func TestBuilder_DeclarationErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func(b *modconfig.Builder)
	}{
		{name: "empty name", run: func(b *modconfig.Builder) { b.DefineBool("", true) }},
		{name: "empty comment", run: func(b *modconfig.Builder) { b.DefineBool("x", true, modconfig.WithComment("")) }},
		{name: "two comments", run: func(b *modconfig.Builder) {
			b.DefineBool("x", true, modconfig.WithComment("a"), modconfig.WithComment("b"))
		}},
		{name: "int min above max", run: func(b *modconfig.Builder) { b.DefineInt("x", 5, 10, 1) }},
		{name: "int default outside", run: func(b *modconfig.Builder) { b.DefineInt("x", 0, 1, 10) }},
		{name: "float NaN bound", run: func(b *modconfig.Builder) { b.DefineFloat("x", 0, math.NaN(), 1) }},
		{name: "float default outside", run: func(b *modconfig.Builder) { b.DefineFloat("x", 2, 0, 1) }},
		{name: "enum empty domain", run: func(b *modconfig.Builder) {
			modconfig.DefineEnum(b, "x", easy, nil)
		}},
		{name: "enum default missing", run: func(b *modconfig.Builder) {
			modconfig.DefineEnum(b, "x", hard, []difficulty{easy, normal})
		}},
		{name: "enum duplicate names", run: func(b *modconfig.Builder) {
			modconfig.DefineEnum(b, "x", easy, []difficulty{easy, "easy"})
		}},
		{name: "duplicate path", run: func(b *modconfig.Builder) {
			b.DefineBool("x", true)
			b.DefineInt("x", 1, 0, 2)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, registry, _ := newBuilder(t, "example")
			tt.run(b)

			assert.ErrorIs(t, b.Err(), modconfig.ErrSchema)

			_, err := b.Build(context.Background())
			assert.ErrorIs(t, err, modconfig.ErrSchema)
			_, ok := registry.Module("example")
			assert.False(t, ok)
		})
	}
}

func TestBuilder_RejectedDeclarationStillSupplies(t *testing.T) {
	b, _, _ := newBuilder(t, "example")

	players := b.DefineInt("x", 0, 1, 10)
	level := modconfig.DefineEnum(b, "level", hard, []difficulty{easy, normal})

	assert.Equal(t, 0, players.Get())
	assert.Equal(t, hard, level.Get())
}

func TestBuilder_SuppliersReadDefaultsBeforeBuild(t *testing.T) {
	b, _, _ := newBuilder(t, "example")

	players := b.DefineInt("maxPlayers", 10, 1, 50)
	level := modconfig.DefineEnum(b, "difficulty", normal, difficulties)

	assert.Equal(t, 10, players.Get())
	assert.Equal(t, normal, level.Get())
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuilder_BuildLoadsStoredValues(t *testing.T) {
	ctx := context.Background()
	b, registry, backend := newBuilder(t, "example")

	decl := modconfig.Declaration{Path: "difficulty", Kind: modconfig.KindEnum}
	require.NoError(t, backend.Store(ctx, "example", decl, modconfig.EnumValue(2)))

	level := modconfig.DefineEnum(b, "difficulty", easy, difficulties)

	m, err := b.Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, hard, level.Get())

	registered, ok := registry.Module("example")
	require.True(t, ok)
	assert.Same(t, m, registered)
	assert.Equal(t, modconfig.TypeCommon, m.Type())
}

func TestBuilder_BuildTwice(t *testing.T) {
	b, _, _ := newBuilder(t, "example")
	b.DefineBool("x", true)

	_, err := b.Build(context.Background())
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	assert.ErrorIs(t, err, modconfig.ErrAlreadyBuilt)

	b.DefineBool("late", true)
	assert.ErrorIs(t, b.Err(), modconfig.ErrSchema)
}

func TestBuilder_InvalidIdentity(t *testing.T) {
	registry := modconfig.NewRegistry(logger.Nop())

	b := modconfig.NewCommonBuilder(registry, store.NewMemoryBackend(), "", logger.Nop())
	assert.ErrorIs(t, b.Err(), modconfig.ErrSchema)

	b = modconfig.NewBuilder(registry, store.NewMemoryBackend(), "x", modconfig.Type("weird"), logger.Nop())
	assert.ErrorIs(t, b.Err(), modconfig.ErrSchema)
}

func TestBuilder_BackendRejectsSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockBackend(ctrl)
	registry := modconfig.NewRegistry(logger.Nop())

	errDisk := errors.New("disk full")
	backend.EXPECT().PersistSchema(gomock.Any(), gomock.Any()).Return(errDisk)

	b := modconfig.NewCommonBuilder(registry, backend, "example", logger.Nop())
	b.DefineBool("x", true)

	_, err := b.Build(context.Background())
	assert.ErrorIs(t, err, errDisk)
	assert.Empty(t, registry.Modules())
}

func TestBuilder_PersistedSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockBackend(ctrl)
	registry := modconfig.NewRegistry(logger.Nop())

	backend.EXPECT().PersistSchema(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s modconfig.Schema) error {
			assert.Equal(t, "example", s.ModuleID)
			assert.Equal(t, modconfig.TypeServer, s.Type)
			require.Len(t, s.Declarations, 2)
			assert.Equal(t, "world.maxPlayers", s.Declarations[0].Path)
			assert.Equal(t, []string{"EASY", "NORMAL", "HARD"}, s.Declarations[1].Domain)
			return nil
		})
	backend.EXPECT().Load(gomock.Any(), "example", gomock.Any()).
		Return(modconfig.Value{}, modconfig.ErrValueNotStored).Times(2)

	b := modconfig.NewBuilder(registry, backend, "example", modconfig.TypeServer, logger.Nop())
	b.Push("world")
	b.DefineInt("maxPlayers", 10, 1, 50)
	modconfig.DefineEnum(b, "difficulty", normal, difficulties)
	b.Pop()

	_, err := b.Build(context.Background())
	require.NoError(t, err)
}

func TestBuilder_RegistrationConflict(t *testing.T) {
	ctx := context.Background()
	registry := modconfig.NewRegistry(logger.Nop())
	backend := store.NewMemoryBackend()

	first := modconfig.NewCommonBuilder(registry, backend, "example", logger.Nop())
	firstValue := first.DefineInt("maxPlayers", 10, 1, 50)
	m1, err := first.Build(ctx)
	require.NoError(t, err)

	second := modconfig.NewCommonBuilder(registry, backend, "example", logger.Nop())
	second.DefineBool("other", true)
	_, err = second.Build(ctx)
	assert.ErrorIs(t, err, modconfig.ErrRegistrationConflict)

	registered, _ := registry.Module("example")
	assert.Same(t, m1, registered)
	assert.Equal(t, 10, firstValue.Get())
	assert.Len(t, registry.Modules(), 1)
}
