// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchresult

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// A Metric is the normalized measurement of one benchmark. Value and
// both bounds are in nanoseconds.
//
// Lower and Upper are only Valid if the tool reported some bound on
// the measurement (a confidence interval, a standard deviation, and so
// on). Adapters never make up bounds.
type Metric struct {
	Value decimal.Decimal
	Lower decimal.NullDecimal
	Upper decimal.NullDecimal
}

// NewMetric returns a Metric with the given value and no bounds.
func NewMetric(value decimal.Decimal) Metric {
	return Metric{Value: value}
}

// WithBounds returns a copy of m with the given lower and upper bounds.
func (m Metric) WithBounds(lower, upper decimal.Decimal) Metric {
	m.Lower = decimal.NewNullDecimal(lower)
	m.Upper = decimal.NewNullDecimal(upper)
	return m
}

// Equal reports whether m and o have equal values and bounds.
// Decimals are compared numerically, so 1.50 equals 1.5.
func (m Metric) Equal(o Metric) bool {
	return m.Value.Equal(o.Value) && nullEqual(m.Lower, o.Lower) && nullEqual(m.Upper, o.Upper)
}

func nullEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

// A BoundsError reports a Metric whose value lies outside its bounds.
type BoundsError struct {
	Metric Metric
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("metric %s out of bounds", e.Metric)
}

// Validate checks that the value lies within whichever bounds are
// present: Lower <= Value <= Upper.
func (m Metric) Validate() error {
	if m.Lower.Valid && m.Lower.Decimal.GreaterThan(m.Value) {
		return &BoundsError{m}
	}
	if m.Upper.Valid && m.Upper.Decimal.LessThan(m.Value) {
		return &BoundsError{m}
	}
	return nil
}

// String formats m as "value [lower, upper] ns", omitting absent
// bounds.
func (m Metric) String() string {
	if !m.Lower.Valid && !m.Upper.Valid {
		return m.Value.String() + " ns"
	}
	return fmt.Sprintf("%s [%s, %s] ns", m.Value, nullString(m.Lower), nullString(m.Upper))
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.String()
}
