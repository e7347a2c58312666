// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchresult

import (
	"errors"
	"testing"
)

func TestParseName(t *testing.T) {
	for _, test := range []struct {
		raw, want string
	}{
		{"fib_10", "fib_10"},
		{"  fib_10  ", "fib_10"},
		{"\tBenchmarkFib10-8\n", "BenchmarkFib10-8"},
		{"Fibonacci 10", "Fibonacci 10"},
		{"µ bench", "µ bench"},
	} {
		got, err := ParseName(test.raw)
		if err != nil {
			t.Errorf("ParseName(%q): %v", test.raw, err)
			continue
		}
		if string(got) != test.want {
			t.Errorf("ParseName(%q) = %q, want %q", test.raw, got, test.want)
		}
	}
}

func TestParseNameEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n", " "} {
		_, err := ParseName(raw)
		if !errors.Is(err, ErrEmptyName) {
			t.Errorf("ParseName(%q) error = %v, want ErrEmptyName", raw, err)
		}
		var nerr *NameError
		if !errors.As(err, &nerr) || nerr.Raw != raw {
			t.Errorf("ParseName(%q) error = %#v, want *NameError with Raw %q", raw, err, raw)
		}
	}
}

func TestNameOrdering(t *testing.T) {
	a, _ := ParseName(" a ")
	b, _ := ParseName("b")
	a2, _ := ParseName("a")
	if a != a2 {
		t.Errorf("%q != %q", a, a2)
	}
	if !(a < b) {
		t.Errorf("want %q < %q", a, b)
	}
}
