// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncproto

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/MKhiriev/go-mod-config/internal/modconfig"
)

// maxModuleIDLength bounds the identifier length read from the wire so that a
// corrupt length prefix cannot make the decoder allocate unbounded memory.
const maxModuleIDLength = 32767

// Encode builds the sync message of m from its current syncable snapshot:
// the length-prefixed module identifier followed by every syncable value in
// declaration order. No paths or type tags are written; the receiver decodes
// positionally against its own copy of the schema.
func Encode(m *modconfig.Module) ([]byte, error) {
	entries := m.SyncableEntries()
	values := m.SyncValues()
	if len(entries) != len(values) {
		return nil, fmt.Errorf("syncable snapshot has %d values for %d entries", len(values), len(entries))
	}

	buf := appendString(make([]byte, 0, 64+9*len(values)), m.ID())

	var err error
	for i, e := range entries {
		if buf, err = appendValue(buf, e.Declaration(), values[i]); err != nil {
			return nil, err
		}
	}

	return buf, nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func appendValue(buf []byte, decl modconfig.Declaration, v modconfig.Value) ([]byte, error) {
	if v.Kind != decl.Kind {
		return nil, fmt.Errorf("%s: value of kind %s for %s entry", decl.Path, v.Kind, decl.Kind)
	}

	switch v.Kind {
	case modconfig.KindBool:
		var b byte
		if v.Bool {
			b = 1
		}
		return append(buf, b), nil
	case modconfig.KindInt:
		return binary.BigEndian.AppendUint64(buf, uint64(v.Int)), nil
	case modconfig.KindFloat:
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(v.Float)), nil
	case modconfig.KindEnum:
		if v.Ordinal < 0 {
			return nil, fmt.Errorf("%s: negative enum ordinal %d", decl.Path, v.Ordinal)
		}
		return binary.AppendUvarint(buf, uint64(v.Ordinal)), nil
	default:
		return nil, fmt.Errorf("%s: cannot encode kind %s", decl.Path, v.Kind)
	}
}

// readModuleID reads the length-prefixed identifier at the head of a message.
func readModuleID(r *bytes.Reader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", fmt.Errorf("%w: module identifier length: %w", ErrMalformedMessage, unexpectedEOF(err))
	}
	if n > maxModuleIDLength {
		return "", fmt.Errorf("%w: module identifier length %d exceeds %d", ErrMalformedMessage, n, maxModuleIDLength)
	}

	id := make([]byte, n)
	if _, err = io.ReadFull(r, id); err != nil {
		return "", fmt.Errorf("%w: module identifier: %w", ErrMalformedMessage, unexpectedEOF(err))
	}
	if !utf8.Valid(id) {
		return "", fmt.Errorf("%w: module identifier is not valid UTF-8", ErrMalformedMessage)
	}

	return string(id), nil
}

// readValue decodes one value of decl's static kind. Bytes that do not form a
// valid value of that kind are consumed and reported with
// [modconfig.ErrInvalidValue], so decoding can carry on with the next value.
// A short read is reported with [io.ErrUnexpectedEOF] and ends the message.
func readValue(r *bytes.Reader, decl modconfig.Declaration) (modconfig.Value, error) {
	switch decl.Kind {
	case modconfig.KindBool:
		b, err := r.ReadByte()
		if err != nil {
			return modconfig.Value{}, unexpectedEOF(err)
		}
		if b > 1 {
			return modconfig.Value{}, fmt.Errorf("%w: %s: boolean byte %#x", modconfig.ErrInvalidValue, decl.Path, b)
		}
		return modconfig.BoolValue(b == 1), nil
	case modconfig.KindInt:
		u, err := readUint64(r)
		if err != nil {
			return modconfig.Value{}, err
		}
		return modconfig.IntValue(int64(u)), nil
	case modconfig.KindFloat:
		u, err := readUint64(r)
		if err != nil {
			return modconfig.Value{}, err
		}
		return modconfig.FloatValue(math.Float64frombits(u)), nil
	case modconfig.KindEnum:
		u, err := binary.ReadUvarint(r)
		if err != nil {
			return modconfig.Value{}, unexpectedEOF(err)
		}
		if u > math.MaxInt32 {
			return modconfig.Value{}, fmt.Errorf("%w: %s: enum ordinal %d", modconfig.ErrInvalidValue, decl.Path, u)
		}
		return modconfig.EnumValue(int(u)), nil
	default:
		return modconfig.Value{}, fmt.Errorf("%w: %s: cannot decode kind %s", modconfig.ErrInvalidValue, decl.Path, decl.Kind)
	}
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, unexpectedEOF(err)
	}

	return binary.BigEndian.Uint64(b[:]), nil
}

// unexpectedEOF turns a clean EOF in the middle of a message into
// io.ErrUnexpectedEOF.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}

	return err
}

// decodeValues reads one value per syncable entry. A value that fails
// validation is skipped and decoding continues; a truncated message stops at
// the truncation point. The values decoded so far are always returned.
func decodeValues(r *bytes.Reader, entries []*modconfig.Entry) ([]modconfig.SyncValue, []error) {
	var errs []error
	values := make([]modconfig.SyncValue, 0, len(entries))

	for _, e := range entries {
		v, err := readValue(r, e.Declaration())
		if err != nil {
			if errors.Is(err, modconfig.ErrInvalidValue) {
				errs = append(errs, err)
				continue
			}
			errs = append(errs, fmt.Errorf("%s: %w", e.Path(), err))
			break
		}
		values = append(values, modconfig.SyncValue{Path: e.Path(), Value: v})
	}

	return values, errs
}

// Decode reads a whole message against the syncable entries of the module
// it names, without applying it. Values that fail to decode are reported in
// the returned error and left out of the result.
func Decode(registry *modconfig.Registry, payload []byte) (string, []modconfig.SyncValue, error) {
	r := bytes.NewReader(payload)

	id, err := readModuleID(r)
	if err != nil {
		return "", nil, err
	}

	m, ok := registry.SyncableModule(id)
	if !ok {
		return id, nil, fmt.Errorf("%w: %q", ErrUnknownModule, id)
	}

	values, errs := decodeValues(r, m.SyncableEntries())
	return id, values, errors.Join(errs...)
}
