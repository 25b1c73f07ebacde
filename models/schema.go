// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ModuleSchema describes one registered config for introspection.
type ModuleSchema struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Syncable    bool              `json:"syncable"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	Categories  map[string]string `json:"categories,omitempty"`
	Entries     []EntrySchema     `json:"entries"`
}

// EntrySchema describes one config value. Values are rendered as text in
// the form the value would be written to a config file.
type EntrySchema struct {
	Path            string   `json:"path"`
	Kind            string   `json:"kind"`
	Comment         string   `json:"comment,omitempty"`
	Default         string   `json:"default"`
	Current         string   `json:"current"`
	Min             string   `json:"min,omitempty"`
	Max             string   `json:"max,omitempty"`
	Domain          []string `json:"domain,omitempty"`
	RequiresRestart bool     `json:"requires_restart"`
	Syncable        bool     `json:"syncable"`
}
