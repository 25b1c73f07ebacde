// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of transport servers managed by
// this package.
type Server interface {
	// RunServer starts serving requests and blocks until ctx is done or a
	// stop signal arrives, then shuts down.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown(ctx context.Context) error
}
