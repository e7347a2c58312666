// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"strings"

	"github.com/perfdata/benchnorm/benchunit"
	"github.com/shopspring/decimal"
)

// splitLines splits input into lines, dropping line terminators.
func splitLines(input string) []string {
	lines := strings.Split(input, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// parseNumber parses a decimal number as printed by a benchmarking
// tool, which may group digits with commas.
func parseNumber(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

// parseDuration parses a number and a time unit, such as "22.873" and
// "µs", and returns the duration in nanoseconds. The returned error is
// a *benchunit.UnitError if the unit is unknown.
func parseDuration(num, unit string) (decimal.Decimal, error) {
	u, err := benchunit.ParseTimeUnit(unit)
	if err != nil {
		return decimal.Decimal{}, err
	}
	v, err := parseNumber(num)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return benchunit.ToNanos(v, u), nil
}

// durationError returns the *Error for a failed parseDuration.
func durationError(f Format, index int, name string, err error) *Error {
	kind := Deserialization
	if _, ok := err.(*benchunit.UnitError); ok {
		kind = Unit
	}
	return &Error{Format: f, Kind: kind, Index: index, Name: name, Err: err}
}
