// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncproto

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/MKhiriev/go-mod-config/internal/modconfig"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint digests everything positional decoding depends on: the module
// identifier and, for each syncable entry in wire order, its path, kind,
// bounds and enum domain. Two sides with equal fingerprints decode each
// other's messages identically.
func Fingerprint(m *modconfig.Module) string {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)

	buf := appendString(nil, m.ID())
	for _, e := range m.SyncableEntries() {
		d := e.Declaration()
		buf = appendString(buf, d.Path)
		buf = append(buf, byte(d.Kind))

		switch d.Kind {
		case modconfig.KindInt:
			buf = binary.BigEndian.AppendUint64(buf, uint64(d.Min.Int))
			buf = binary.BigEndian.AppendUint64(buf, uint64(d.Max.Int))
		case modconfig.KindFloat:
			buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(d.Min.Float))
			buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(d.Max.Float))
		case modconfig.KindEnum:
			buf = binary.AppendUvarint(buf, uint64(len(d.Domain)))
			for _, name := range d.Domain {
				buf = appendString(buf, name)
			}
		}
	}
	h.Write(buf)

	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprints returns the fingerprint of every syncable module keyed by
// module identifier.
func Fingerprints(registry *modconfig.Registry) map[string]string {
	out := make(map[string]string)
	_ = registry.ForEachSyncableModule(func(m *modconfig.Module) error {
		out[m.ID()] = Fingerprint(m)
		return nil
	})

	return out
}
