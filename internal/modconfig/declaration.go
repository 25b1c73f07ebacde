// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modconfig

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Declaration is the immutable description of a single config entry. It is
// what persistence backends see: they never touch the entry itself.
type Declaration struct {
	// Path is the dot-separated location of the entry inside its module.
	Path string `json:"path"`

	// Comment is an optional human-readable description.
	Comment string `json:"comment,omitempty"`

	Kind    Kind  `json:"kind"`
	Default Value `json:"default"`

	// Min and Max bound numeric kinds and are zero for the others.
	Min Value `json:"min"`
	Max Value `json:"max"`

	// Domain holds the ordered enum names. An enum ordinal indexes into it.
	Domain []string `json:"domain,omitempty"`

	// RequiresRestart excludes the entry from live updates.
	RequiresRestart bool `json:"requires_restart"`

	// Syncable makes the entry part of every server→client sync message.
	Syncable bool `json:"syncable"`
}

// Coerce checks v against the declaration and brings numeric values into
// range. It returns the accepted value and whether clamping changed it.
//
// A kind mismatch, a NaN float and an enum ordinal outside the domain are
// rejected with [ErrInvalidValue]; they are never silently repaired.
func (d Declaration) Coerce(v Value) (Value, bool, error) {
	if v.Kind != d.Kind {
		return Value{}, false, fmt.Errorf("%w: %s expects %s, got %s", ErrInvalidValue, d.Path, d.Kind, v.Kind)
	}

	switch d.Kind {
	case KindBool:
		return v, false, nil
	case KindInt:
		clamped := min(max(v.Int, d.Min.Int), d.Max.Int)
		return IntValue(clamped), clamped != v.Int, nil
	case KindFloat:
		if math.IsNaN(v.Float) {
			return Value{}, false, fmt.Errorf("%w: %s is NaN", ErrInvalidValue, d.Path)
		}
		clamped := math.Min(math.Max(v.Float, d.Min.Float), d.Max.Float)
		return FloatValue(clamped), clamped != v.Float, nil
	case KindEnum:
		if v.Ordinal < 0 || v.Ordinal >= len(d.Domain) {
			return Value{}, false, fmt.Errorf("%w: %s ordinal %d outside [0,%d)", ErrInvalidValue, d.Path, v.Ordinal, len(d.Domain))
		}
		return v, false, nil
	default:
		return Value{}, false, fmt.Errorf("%w: %s has unknown kind %s", ErrInvalidValue, d.Path, d.Kind)
	}
}

// Format renders v the way it is written to text-based storage. Enums are
// written by name so that reordering a domain does not corrupt stored files.
func (d Declaration) Format(v Value) string {
	switch v.Kind {
	case KindEnum:
		if v.Ordinal >= 0 && v.Ordinal < len(d.Domain) {
			return d.Domain[v.Ordinal]
		}
		return strconv.Itoa(v.Ordinal)
	default:
		return v.String()
	}
}

// Parse is the inverse of [Declaration.Format]. Enum names are matched
// case-insensitively.
func (d Declaration) Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)

	switch d.Kind {
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s: %w", ErrInvalidValue, d.Path, err)
		}
		return BoolValue(b), nil
	case KindInt:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("%w: %s: %w", ErrInvalidValue, d.Path, err)
		}
		// Out of int64 range: ParseInt saturates, Coerce clamps.
		return IntValue(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s: %w", ErrInvalidValue, d.Path, err)
		}
		return FloatValue(f), nil
	case KindEnum:
		return d.enumByName(s)
	default:
		return Value{}, fmt.Errorf("%w: %s has unknown kind %s", ErrInvalidValue, d.Path, d.Kind)
	}
}

// Native converts v into a plain Go value (bool, int64, float64 or the enum
// name) for encoders that work on interface values.
func (d Declaration) Native(v Value) any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindEnum:
		return d.Format(v)
	default:
		return nil
	}
}

// FromNative is the inverse of [Declaration.Native]. Integers are accepted
// for float entries and whole floats for int entries, since decoders are not
// consistent about number types.
func (d Declaration) FromNative(raw any) (Value, error) {
	switch d.Kind {
	case KindBool:
		if b, ok := raw.(bool); ok {
			return BoolValue(b), nil
		}
	case KindInt:
		switch n := raw.(type) {
		case int64:
			return IntValue(n), nil
		case int:
			return IntValue(int64(n)), nil
		case float64:
			switch {
			case n >= math.MaxInt64:
				return IntValue(math.MaxInt64), nil
			case n <= math.MinInt64:
				return IntValue(math.MinInt64), nil
			case n == math.Trunc(n):
				return IntValue(int64(n)), nil
			}
		}
	case KindFloat:
		switch n := raw.(type) {
		case float64:
			return FloatValue(n), nil
		case int64:
			return FloatValue(float64(n)), nil
		case int:
			return FloatValue(float64(n)), nil
		}
	case KindEnum:
		if s, ok := raw.(string); ok {
			return d.enumByName(s)
		}
	}

	return Value{}, fmt.Errorf("%w: %s expects %s, got %T", ErrInvalidValue, d.Path, d.Kind, raw)
}

func (d Declaration) enumByName(name string) (Value, error) {
	for i, n := range d.Domain {
		if strings.EqualFold(n, name) {
			return EnumValue(i), nil
		}
	}

	return Value{}, fmt.Errorf("%w: %s has no enum constant %q", ErrInvalidValue, d.Path, name)
}

// Schema is everything a persistence backend needs to lay out one module.
type Schema struct {
	ModuleID         string            `json:"module_id"`
	Type             Type              `json:"type"`
	Declarations     []Declaration     `json:"declarations"`
	CategoryComments map[string]string `json:"category_comments,omitempty"`
}
