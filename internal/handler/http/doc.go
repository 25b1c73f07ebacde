// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http is the HTTP transport of the config server.
//
// A client joins a session with POST /api/sync/connect and receives one
// binary sync message per syncable config together with a bearer peer
// token, which it presents to POST /api/sync/disconnect when it leaves.
// GET /api/sync/schema describes every registered config. Requests pass
// through trace-id, access-log and gzip middleware before reaching the
// service layer.
package http
