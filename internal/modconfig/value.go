// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modconfig

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies which variant of [Value] is populated.
type Kind uint8

const (
	// KindBool is a plain boolean switch.
	KindBool Kind = iota + 1
	// KindInt is a bounded 64-bit signed integer.
	KindInt
	// KindFloat is a bounded IEEE754 binary64 number.
	KindFloat
	// KindEnum is an ordinal into a fixed, ordered domain of names.
	KindEnum
)

// String returns the lowercase kind name used in schemas and storage.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind is the inverse of [Kind.String].
func ParseKind(s string) (Kind, error) {
	switch s {
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "enum":
		return KindEnum, nil
	default:
		return 0, fmt.Errorf("unknown value kind %q", s)
	}
}

// MarshalText renders the kind by name. The zero kind renders empty.
func (k Kind) MarshalText() ([]byte, error) {
	if k == 0 {
		return []byte{}, nil
	}
	if k > KindEnum {
		return nil, fmt.Errorf("unknown value kind %d", k)
	}

	return []byte(k.String()), nil
}

// UnmarshalText is the inverse of [Kind.MarshalText].
func (k *Kind) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = 0
		return nil
	}

	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed
	return nil
}

// Value is a closed tagged union over the four supported setting types.
// Exactly one payload field is meaningful, selected by Kind. The zero Value
// has no kind and is never produced by this package.
type Value struct {
	Kind Kind

	Bool    bool
	Int     int64
	Float   float64
	Ordinal int
}

// BoolValue wraps b as a [KindBool] value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IntValue wraps i as a [KindInt] value.
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }

// FloatValue wraps f as a [KindFloat] value.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// EnumValue wraps an enum ordinal as a [KindEnum] value.
func EnumValue(ordinal int) Value { return Value{Kind: KindEnum, Ordinal: ordinal} }

// Equal reports whether two values have the same kind and payload.
// Floats compare by bit pattern so that NaN equals itself.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return math.Float64bits(v.Float) == math.Float64bits(o.Float)
	case KindEnum:
		return v.Ordinal == o.Ordinal
	default:
		return true
	}
}

// String renders the payload without any domain knowledge; enum values print
// their ordinal.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindEnum:
		return "#" + strconv.Itoa(v.Ordinal)
	default:
		return "<invalid>"
	}
}
