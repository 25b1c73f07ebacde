// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/go-mod-config/models"
)

const (
	FieldClient       = "client"
	FieldFingerprints = "fingerprints"
)

const (
	maxClientNameLength = 128
	maxConfigIDLength   = 32767
	maxFingerprints     = 1024
	fingerprintSize     = 32
)

type HandshakeValidator struct{}

func NewHandshakeValidator() Validator {
	return &HandshakeValidator{}
}

func (v *HandshakeValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.HandshakeRequest:
		return v.validateHandshakeRequest(ctx, value, fields...)
	case *models.HandshakeRequest:
		return v.validateHandshakeRequest(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *HandshakeValidator) validateHandshakeRequest(_ context.Context, req models.HandshakeRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldClient, FieldFingerprints}
	}

	for _, f := range fields {
		switch f {
		case FieldClient:
			if req.Client == "" || len(req.Client) > maxClientNameLength || !utf8.ValidString(req.Client) {
				return ErrInvalidClientName
			}
		case FieldFingerprints:
			if err := validateFingerprints(req.Fingerprints); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateFingerprints accepts an empty map: a client without syncable
// configs still joins.
func validateFingerprints(fingerprints map[string]string) error {
	if len(fingerprints) > maxFingerprints {
		return ErrTooManyConfigs
	}

	for id, fp := range fingerprints {
		if id == "" || len(id) > maxConfigIDLength || !utf8.ValidString(id) {
			return fmt.Errorf("%w: %q", ErrInvalidConfigID, id)
		}

		raw, err := hex.DecodeString(fp)
		if err != nil || len(raw) != fingerprintSize {
			return fmt.Errorf("%w: config %q", ErrInvalidFingerprint, id)
		}
	}

	return nil
}
