// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"github.com/shopspring/decimal"
)

// A Scaler represents a scaling factor for a duration in nanoseconds
// and the way to print it.
type Scaler struct {
	Prec   int32  // Digits after the decimal point, or -1 for all of them
	Exp    int32  // Nanoseconds in one Suffix, as a power of ten
	Suffix string // Unit symbol ("ns", "µs", "ms", "s")
}

// Format formats a duration in nanoseconds according to the scale.
// For example, a Scaler for milliseconds formats 123456789 as
// "123.5 ms".
func (s Scaler) Format(ns decimal.Decimal) string {
	v := ns.Shift(-s.Exp)
	if s.Prec < 0 {
		return v.String() + " " + s.Suffix
	}
	return v.StringFixed(s.Prec) + " " + s.Suffix
}

// NoOpScaler formats nanosecond values exactly, with no rescaling.
// This is intended for output that will be consumed by another
// program.
var NoOpScaler = Scaler{-1, 0, "ns"}

type factor struct {
	exp    int32
	suffix string
	// Thresholds for 100.0, 10.00, 1.000.
	t100, t10, t1 decimal.Decimal
}

var nsFactors = mkFactors()
var sigfigs, sigfigsBase = mkSigfigs()

func mkFactors() []factor {
	// The thresholds are the smallest values that round up to 100.0,
	// 10.00 and 1.000 in the given factor, so that the printed value
	// never shows a rounded-up 1000.
	var factors []factor
	for _, f := range []struct {
		exp    int32
		suffix string
	}{{9, "s"}, {6, "ms"}, {3, "µs"}, {0, "ns"}} {
		factors = append(factors, factor{
			exp:    f.exp,
			suffix: f.suffix,
			t100:   decimal.New(99995, f.exp-3),
			t10:    decimal.New(99995, f.exp-4),
			t1:     decimal.New(99995, f.exp-5),
		})
	}
	return factors
}

func mkSigfigs() ([]decimal.Decimal, int32) {
	var sigfigs []decimal.Decimal
	// Print up to 10 digits after the decimal place.
	for exp := int32(-1); exp > -9; exp-- {
		sigfigs = append(sigfigs, decimal.New(99995, exp-4))
	}
	// sigfigs[0] is the threshold for 3 digits after the decimal.
	return sigfigs, 3
}

// Scale formats a duration in nanoseconds using at least three
// significant digits and the largest unit that keeps the integer part
// non-zero.
func Scale(ns decimal.Decimal) string {
	return CommonScale([]decimal.Decimal{ns}).Format(ns)
}

// CommonScale returns a common Scaler to apply to all values in vals.
// This scale will show at least three significant digits for every
// value.
func CommonScale(vals []decimal.Decimal) Scaler {
	// The common scale is determined by the non-zero value
	// closest to zero.
	var min decimal.Decimal
	for _, v := range vals {
		v = v.Abs()
		if !v.IsZero() && (min.IsZero() || v.LessThan(min)) {
			min = v
		}
	}
	if min.IsZero() {
		return Scaler{3, 0, "ns"}
	}

	for _, f := range nsFactors {
		switch {
		case min.GreaterThanOrEqual(f.t100):
			return Scaler{1, f.exp, f.suffix}
		case min.GreaterThanOrEqual(f.t10):
			return Scaler{2, f.exp, f.suffix}
		case min.GreaterThanOrEqual(f.t1):
			return Scaler{3, f.exp, f.suffix}
		}
	}

	// The value is less than a nanosecond. Print it in nanoseconds
	// with more precision to achieve the desired sigfigs.
	f := nsFactors[len(nsFactors)-1]
	for i, thresh := range sigfigs {
		if min.GreaterThanOrEqual(thresh) || i == len(sigfigs)-1 {
			return Scaler{int32(i) + sigfigsBase, f.exp, f.suffix}
		}
	}

	panic("not reachable")
}
