// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks requests arriving at the config server before
// the service layer acts on them.
//
// Validators are injected into validating service wrappers, which call
// Validate with the request and, optionally, the names of the fields to
// check. Without field names every field is checked.
package validators

import "context"

// Validator validates an input value, optionally restricted to the named
// fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
