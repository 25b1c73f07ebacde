// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidClientName  = errors.New("invalid client name")
	ErrInvalidConfigID    = errors.New("invalid config identifier")
	ErrInvalidFingerprint = errors.New("invalid schema fingerprint")
	ErrTooManyConfigs     = errors.New("too many config fingerprints")
)
