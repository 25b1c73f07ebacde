// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modconfig

type boolSupplier struct{ entry *Entry }

func (s boolSupplier) Get() bool { return s.entry.Get().Bool }

type intSupplier struct{ entry *Entry }

func (s intSupplier) Get() int { return int(s.entry.Get().Int) }

type floatSupplier struct{ entry *Entry }

func (s floatSupplier) Get() float64 { return s.entry.Get().Float }

type enumSupplier[E comparable] struct {
	entry  *Entry
	domain []E
}

// Get maps the ordinal back onto the caller's constant. The ordinal is
// always inside the domain: both stored values and overrides are validated
// before they are published.
func (s enumSupplier[E]) Get() E {
	return s.domain[s.entry.Get().Ordinal]
}
