// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-mod-config/internal/config"
	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"github.com/MKhiriev/go-mod-config/internal/store"
	"github.com/stretchr/testify/require"
)

var testAppConfig = config.App{
	TokenSignKey:  "sign-key",
	TokenIssuer:   "go-mod-config",
	TokenDuration: time.Hour,
	HashKey:       "hash-key",
	Version:       "1.0.0",
}

type difficulty string

// exampleSide is one process (server or client) with the "example" config
// declared.
type exampleSide struct {
	registry   *modconfig.Registry
	backend    *store.MemoryBackend
	module     *modconfig.Module
	maxPlayers modconfig.Supplier[int]
	debugMode  modconfig.Supplier[bool]
	level      modconfig.Supplier[difficulty]
	ratio      modconfig.Supplier[float64]
}

func newExampleSide(t *testing.T, maxRatio float64) *exampleSide {
	t.Helper()

	s := &exampleSide{
		registry: modconfig.NewRegistry(logger.Nop()),
		backend:  store.NewMemoryBackend(),
	}

	b := modconfig.NewCommonBuilder(s.registry, s.backend, "example", logger.Nop())
	b.Push("world")
	b.CategoryComment("world settings")
	s.maxPlayers = b.DefineInt("maxPlayers", 10, 1, 50, modconfig.WithComment("player cap"))
	s.level = modconfig.DefineEnum(b, "difficulty", "NORMAL", []difficulty{"EASY", "NORMAL", "HARD"})
	b.Pop()
	s.debugMode = b.DefineBool("debugMode", false, modconfig.GameRestart(), modconfig.DontSync())
	s.ratio = b.DefineFloat("ratio", 0.5, 0, maxRatio)

	m, err := b.Build(context.Background())
	require.NoError(t, err)
	s.module = m

	return s
}

func (s *exampleSide) set(t *testing.T, path string, v modconfig.Value) {
	t.Helper()
	e, ok := s.module.Entry(path)
	require.True(t, ok)
	require.NoError(t, s.backend.Store(context.Background(), "example", e.Declaration(), v))
	require.NoError(t, s.module.UpdateValues(context.Background(), true))
}
