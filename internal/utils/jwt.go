// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-mod-config/models"
	"github.com/golang-jwt/jwt/v5"
)

// GeneratePeerToken signs an HMAC-SHA256 JWT whose subject is peerID.
//
// The token carries iss, sub, iat and exp claims. All parameters are
// required.
//
// Example usage:
//
//	token, err := utils.GeneratePeerToken("go-mod-config", peerID, time.Hour, "secret")
func GeneratePeerToken(issuer, peerID string, tokenDuration time.Duration, signKey string) (models.PeerToken, error) {
	if issuer == "" || peerID == "" || tokenDuration <= 0 || signKey == "" {
		return models.PeerToken{}, errors.New("invalid params for generating peer token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   peerID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.PeerToken{}, fmt.Errorf("error occurred during signing peer token: %w", err)
	}

	return models.PeerToken{Token: token, SignedString: signed, PeerID: peerID}, nil
}

// ValidatePeerToken verifies the signature, issuer and expiry of
// tokenString and extracts the peer identifier.
func ValidatePeerToken(tokenString, signKey, issuer string) (models.PeerToken, error) {
	parsed := &models.PeerToken{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.PeerToken{}, fmt.Errorf("error occurred validating and parsing peer token: %w", err)
	}

	peerID, err := parsed.GetPeerID()
	if err != nil {
		return models.PeerToken{}, fmt.Errorf("error occurred getting peer id from token: %w", err)
	}

	return models.PeerToken{Token: token, SignedString: tokenString, PeerID: peerID}, nil
}

// ParseBearerToken returns the token part of an "Authorization: Bearer x"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}

	return parts[1], nil
}
