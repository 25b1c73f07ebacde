// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package syncproto pushes the syncable config values of every registered
// module from the server to each client.
//
// When a peer connects the server sends one message per syncable module.
// A message carries the module identifier followed by the module's syncable
// values in declaration order, with no names or type tags: the client
// decodes it positionally against its own schema. [Fingerprint] lets both
// sides check that their schemas agree before any value is decoded.
//
// The client applies every message to the matching module as synced
// overrides. When the peer leaves, all overrides are dropped.
package syncproto
