// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import "testing"

func TestDiff(t *testing.T) {
	if d := Diff("a\nb\n", "a\nb\n"); d != "" {
		t.Errorf("equal strings: got diff %q", d)
	}
	for _, test := range [][2]string{
		{"a\nb\n", "a\nc\n"},
		{"a\n", "a"},
		{"", "x"},
	} {
		if d := Diff(test[0], test[1]); d == "" {
			t.Errorf("Diff(%q, %q) is empty", test[0], test[1])
		}
	}
}
