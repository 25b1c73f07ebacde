// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"sync"
)

// Hasher computes keyed HMAC-SHA256 digests over sync payloads. Hash
// instances are pooled; a Hasher is safe for concurrent use.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher keyed with hashKey. An empty key yields a nil
// *Hasher, on which every method reports "no integrity check".
func NewHasher(hashKey string) *Hasher {
	if hashKey == "" {
		return nil
	}

	key := []byte(hashKey)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Sum returns the digest of parts. Each part is prefixed with its uvarint
// length, so moving bytes between parts changes the digest.
func (h *Hasher) Sum(parts ...[]byte) []byte {
	if h == nil {
		return nil
	}

	mac := h.pool.Get().(hash.Hash)
	mac.Reset()
	var prefix [binary.MaxVarintLen64]byte
	for _, p := range parts {
		n := binary.PutUvarint(prefix[:], uint64(len(p)))
		mac.Write(prefix[:n])
		mac.Write(p)
	}
	sum := mac.Sum(nil)

	mac.Reset()
	h.pool.Put(mac)

	return sum
}

// SumHex is Sum rendered as lowercase hex. It returns "" on a nil Hasher.
func (h *Hasher) SumHex(parts ...[]byte) string {
	if h == nil {
		return ""
	}

	return hex.EncodeToString(h.Sum(parts...))
}

// Verify reports whether want is the hex digest of parts. A nil Hasher
// accepts everything.
func (h *Hasher) Verify(want string, parts ...[]byte) bool {
	if h == nil {
		return true
	}

	decoded, err := hex.DecodeString(want)
	if err != nil {
		return false
	}

	return hmac.Equal(decoded, h.Sum(parts...))
}
