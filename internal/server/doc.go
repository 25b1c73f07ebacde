// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the config server's HTTP transport.
//
// It owns startup, signal handling and graceful shutdown: the server keeps
// serving until SIGTERM, SIGINT or SIGQUIT arrives or the context passed to
// [Server.RunServer] is cancelled.
package server
