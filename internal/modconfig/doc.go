// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package modconfig is the configuration-value model shared by the server and
// the client.
//
// A mod declares its settings once through a [Builder]:
//
//	b := modconfig.NewCommonBuilder(registry, backend, "example", log)
//	b.Push("world")
//	maxPlayers := b.DefineInt("maxPlayers", 10, 1, 50, modconfig.WithComment("player cap"))
//	debug := b.DefineBool("debugMode", false, modconfig.GameRestart(), modconfig.DontSync())
//	b.Pop()
//	if _, err := b.Build(ctx); err != nil { ... }
//
// [Builder.Build] persists the schema through a [Backend], loads the stored
// values and registers the resulting [Module] with the [Registry]. The
// returned suppliers read the effective value: a value synced from the server
// when one is present, the locally stored value otherwise.
//
// Numeric values are clamped into their bounds wherever they are assigned,
// both when loaded from storage and when received from the network. Values
// that cannot be repaired by clamping (wrong kind, NaN, enum ordinal out of
// range) are rejected with [ErrInvalidValue].
package modconfig
