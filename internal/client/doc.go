// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the config client runtime.
//
// The client declares its configs, joins the server session so that the
// server's values override the local ones, keeps reloading local values in
// the background and leaves the session on shutdown, which restores the
// local values.
package client
