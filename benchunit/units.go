// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit manipulates benchmark units and converts
// durations between them.
//
// Values are decimals rather than binary floats, and every time unit
// is a power-of-ten multiple of a nanosecond, so converting between
// units never rounds. This matters when the converted values are
// compared against a long history of earlier runs.
package benchunit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// A TimeUnit is a unit of duration reported by a benchmarking tool.
type TimeUnit int

const (
	Picoseconds TimeUnit = iota
	Nanoseconds
	Microseconds
	Milliseconds
	Seconds
)

// timeUnits is indexed by TimeUnit. Supporting a new unit means adding
// a constant above and its entry here.
//
// exp is the power of ten that converts one of the unit into
// nanoseconds.
var timeUnits = [...]struct {
	symbol   string
	spelling []string
	exp      int32
}{
	Picoseconds:  {"ps", []string{"picosecond", "picoseconds"}, -3},
	Nanoseconds:  {"ns", []string{"nanosecond", "nanoseconds"}, 0},
	Microseconds: {"us", []string{"µs", "μs", "microsecond", "microseconds"}, 3},
	Milliseconds: {"ms", []string{"millisecond", "milliseconds"}, 6},
	Seconds:      {"s", []string{"sec", "secs", "second", "seconds"}, 9},
}

// byName maps every accepted spelling to its unit.
var byName = func() map[string]TimeUnit {
	m := make(map[string]TimeUnit)
	for u, info := range timeUnits {
		m[info.symbol] = TimeUnit(u)
		for _, s := range info.spelling {
			m[s] = TimeUnit(u)
		}
	}
	return m
}()

func (u TimeUnit) valid() bool {
	return u >= 0 && int(u) < len(timeUnits)
}

func (u TimeUnit) String() string {
	if !u.valid() {
		return fmt.Sprintf("TimeUnit(%d)", int(u))
	}
	return timeUnits[u].symbol
}

// Factor returns the exact multiplier that converts a value in u to
// nanoseconds.
func (u TimeUnit) Factor() decimal.Decimal {
	if !u.valid() {
		panic(fmt.Sprintf("bad TimeUnit %d", int(u)))
	}
	return decimal.New(1, timeUnits[u].exp)
}

// ToNanos converts v, measured in u, to nanoseconds.
func ToNanos(v decimal.Decimal, u TimeUnit) decimal.Decimal {
	return v.Mul(u.Factor())
}

// A UnitError reports a unit string that is not a known time unit.
type UnitError struct {
	Unit string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unknown time unit %q", e.Unit)
}

// ParseTimeUnit returns the TimeUnit spelled s. It accepts the symbols
// used by common benchmarking tools ("ps", "ns", "us", "µs", "ms", "s",
// "sec") and the long English names of each unit.
func ParseTimeUnit(s string) (TimeUnit, error) {
	if u, ok := byName[s]; ok {
		return u, nil
	}
	return 0, &UnitError{s}
}
