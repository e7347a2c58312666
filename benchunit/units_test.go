// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToNanos(t *testing.T) {
	test := func(val string, unit TimeUnit, want string) {
		t.Helper()
		got := ToNanos(decimal.RequireFromString(val), unit)
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("ToNanos(%s, %s) = %s, want %s", val, unit, got, want)
		}
	}

	test("214.98980114547953", Nanoseconds, "214.98980114547953")
	test("27.455600415007055", Microseconds, "27455.600415007055")
	test("166.11", Picoseconds, "0.16611")
	test("7.1968", Milliseconds, "7196800")
	test("0.1", Seconds, "100000000")
	test("1.5e-7", Seconds, "150")
	test("0", Seconds, "0")
	test("-3.25", Microseconds, "-3250")
	// Far more digits than a float64 can hold.
	test("1.000000000000000000000000001", Seconds, "1000000000.000000000000000000001")
}

func TestToNanosIdentity(t *testing.T) {
	for _, s := range []string{"0", "1", "-1", "0.000000001", "123456789012345678901234567890.5"} {
		v := decimal.RequireFromString(s)
		if got := ToNanos(v, Nanoseconds); !got.Equal(v) {
			t.Errorf("ToNanos(%s, ns) = %s, want identity", s, got)
		}
	}
}

func TestFactor(t *testing.T) {
	want := map[TimeUnit]string{
		Picoseconds:  "0.001",
		Nanoseconds:  "1",
		Microseconds: "1000",
		Milliseconds: "1000000",
		Seconds:      "1000000000",
	}
	for u := range timeUnits {
		unit := TimeUnit(u)
		w, ok := want[unit]
		if !ok {
			t.Errorf("no expected factor for %s", unit)
			continue
		}
		if got := unit.Factor(); !got.Equal(decimal.RequireFromString(w)) {
			t.Errorf("%s.Factor() = %s, want %s", unit, got, w)
		}
	}
}

func TestParseTimeUnit(t *testing.T) {
	for _, test := range []struct {
		in   string
		want TimeUnit
	}{
		{"ps", Picoseconds},
		{"ns", Nanoseconds},
		{"nanoseconds", Nanoseconds},
		{"us", Microseconds},
		{"µs", Microseconds}, // U+00B5 MICRO SIGN
		{"μs", Microseconds}, // U+03BC GREEK SMALL LETTER MU
		{"ms", Milliseconds},
		{"s", Seconds},
		{"sec", Seconds},
		{"seconds", Seconds},
	} {
		got, err := ParseTimeUnit(test.in)
		if err != nil {
			t.Errorf("ParseTimeUnit(%q): %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseTimeUnit(%q) = %s, want %s", test.in, got, test.want)
		}
	}

	for _, bad := range []string{"", "NS", "min", "ops/s", "ns/op"} {
		_, err := ParseTimeUnit(bad)
		var uerr *UnitError
		if !errors.As(err, &uerr) {
			t.Errorf("ParseTimeUnit(%q) error = %v, want *UnitError", bad, err)
		} else if uerr.Unit != bad {
			t.Errorf("ParseTimeUnit(%q) error unit = %q", bad, uerr.Unit)
		}
	}
}

func TestTimeUnitString(t *testing.T) {
	if got := Microseconds.String(); got != "us" {
		t.Errorf("Microseconds.String() = %q, want %q", got, "us")
	}
	if got := TimeUnit(42).String(); got != "TimeUnit(42)" {
		t.Errorf("TimeUnit(42).String() = %q", got)
	}
}
