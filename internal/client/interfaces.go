// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle contract of runnable client applications.
type Client interface {
	// Run joins the session and blocks until ctx is done or a stop signal
	// arrives, then leaves.
	Run(ctx context.Context) error
}
