// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"sync"

	"github.com/shopspring/decimal"
)

type tidyEntry struct {
	tidied string
	exp    int32
}

var tidyCache sync.Map // unit string -> *tidyEntry

// Tidy normalizes a value with a (possibly compound) unit so that every
// time unit in the numerator is nanoseconds. For example, 2.5 "us/op"
// becomes 2500 "ns/op" and 1 "sec/op" becomes 1000000000 "ns/op".
// Units with no time component in the numerator, such as "B/op" or
// "ops/s", are returned unchanged.
func Tidy(value decimal.Decimal, unit string) (tidiedValue decimal.Decimal, tidiedUnit string) {
	newUnit, exp := tidyUnit(unit)
	if exp == 0 {
		return value, newUnit
	}
	return value.Shift(exp), newUnit
}

// tidyUnit returns the tidied version of unit and the power of ten that
// converts a value in unit to a value in the tidied unit.
func tidyUnit(unit string) (tidied string, exp int32) {
	// Fast path for units from the testing package.
	switch unit {
	case "ns/op", "B/op", "allocs/op", "MB/s":
		return unit, 0
	}

	if tc, ok := tidyCache.Load(unit); ok {
		tc := tc.(*tidyEntry)
		return tc.tidied, tc.exp
	}

	tidied, exp = tidyUnitUncached(unit)
	tidyCache.Store(unit, &tidyEntry{tidied, exp})
	return
}

func tidyUnitUncached(unit string) (tidied string, exp int32) {
	type edit struct {
		pos, len int
	}

	p := newParser(unit)
	edits := make([]edit, 0, 2)
	for p.next() {
		if p.denom {
			// Don't edit in the denominator.
			continue
		}
		u, ok := byName[p.tok]
		if !ok {
			continue
		}
		edits = append(edits, edit{p.pos, len(p.tok)})
		exp += timeUnits[u].exp
	}
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		unit = unit[:e.pos] + "ns" + unit[e.pos+e.len:]
	}
	return unit, exp
}
