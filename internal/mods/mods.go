// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mods declares the configs of the bundled example mod. The server
// and the client declare the same common config so that synced values line
// up positionally; the client additionally owns a local-only HUD config.
package mods

import (
	"context"

	"github.com/MKhiriev/go-mod-config/internal/logger"
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
)

const (
	GameplayID = "example"
	HUDID      = "example-hud"
)

// Difficulty is the enum domain of the gameplay difficulty entry.
type Difficulty string

const (
	Peaceful Difficulty = "PEACEFUL"
	Easy     Difficulty = "EASY"
	Normal   Difficulty = "NORMAL"
	Hard     Difficulty = "HARD"
)

var difficulties = []Difficulty{Peaceful, Easy, Normal, Hard}

// Gameplay holds the suppliers of the common gameplay config.
type Gameplay struct {
	MaxPlayers     modconfig.Supplier[int]
	Difficulty     modconfig.Supplier[Difficulty]
	FriendlyFire   modconfig.Supplier[bool]
	LootMultiplier modconfig.Supplier[float64]
	SpawnRadius    modconfig.Supplier[int]
	DebugMode      modconfig.Supplier[bool]

	Module *modconfig.Module
}

// RegisterGameplay declares and registers the common gameplay config.
func RegisterGameplay(ctx context.Context, registry *modconfig.Registry, backend modconfig.Backend, logger *logger.Logger) (*Gameplay, error) {
	b := modconfig.NewCommonBuilder(registry, backend, GameplayID, logger)
	g := &Gameplay{}

	b.Push("world")
	b.CategoryComment("World rules shared by every player")
	g.MaxPlayers = b.DefineInt("maxPlayers", 10, 1, 64,
		modconfig.WithComment("Maximum number of players"), modconfig.GameRestart())
	g.Difficulty = modconfig.DefineEnum(b, "difficulty", Normal, difficulties)
	g.FriendlyFire = b.DefineBool("friendlyFire", false)
	g.SpawnRadius = b.DefineInt("spawnRadius", 16, 0, 256, modconfig.WithComment("Spawn protection radius in blocks"))
	b.Pop()

	b.Push("loot")
	g.LootMultiplier = b.DefineFloat("multiplier", 1, 0, 10)
	b.Pop()

	g.DebugMode = b.DefineBool("debugMode", false,
		modconfig.WithComment("Verbose mod logging"), modconfig.GameRestart(), modconfig.DontSync())

	m, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	g.Module = m

	return g, nil
}

// HUD holds the suppliers of the client-only HUD config.
type HUD struct {
	ShowCoordinates modconfig.Supplier[bool]
	Scale           modconfig.Supplier[float64]

	Module *modconfig.Module
}

// RegisterHUD declares and registers the client HUD config. None of its
// entries are synced.
func RegisterHUD(ctx context.Context, registry *modconfig.Registry, backend modconfig.Backend, logger *logger.Logger) (*HUD, error) {
	b := modconfig.NewBuilder(registry, backend, HUDID, modconfig.TypeClient, logger)
	h := &HUD{}

	b.Push("hud")
	h.ShowCoordinates = b.DefineBool("showCoordinates", true, modconfig.DontSync())
	h.Scale = b.DefineFloat("scale", 1, 0.5, 3, modconfig.WithComment("HUD scale factor"), modconfig.DontSync())
	b.Pop()

	m, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	h.Module = m

	return h, nil
}
