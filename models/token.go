// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// PeerToken is the bearer token a config server hands to a peer on connect.
// Its subject is the peer identifier; the peer presents it again to
// disconnect.
type PeerToken struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form sent in the Authorization header.
	SignedString string `json:"-"`

	// PeerID is the parsed subject claim.
	PeerID string `json:"-"`
}

// GetPeerID returns the peer identifier held in the subject claim.
func (t *PeerToken) GetPeerID() (string, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("empty subject in peer token")
	}

	return sub, nil
}

func (t *PeerToken) String() string {
	return t.SignedString
}
