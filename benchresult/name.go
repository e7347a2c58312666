// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchresult defines the canonical form of a parsed
// benchmark run: a collection of uniquely named metrics, every value
// expressed in nanoseconds as an exact decimal.
//
// Every benchmark output adapter produces a Results, so code that
// stores or compares results never needs to know which tool produced
// them.
package benchresult

import (
	"errors"
	"fmt"
	"strings"
)

// A Name is the canonical name of a benchmark. A Name is never empty
// and never has leading or trailing white space. Construct one with
// ParseName.
type Name string

// ErrEmptyName is reported (wrapped in a *NameError) for benchmark
// names that are empty or entirely white space.
var ErrEmptyName = errors.New("benchmark name must be non-empty")

// A NameError reports a benchmark name that failed validation.
type NameError struct {
	Raw string // the name as reported by the tool
}

func (e *NameError) Error() string {
	return fmt.Sprintf("invalid benchmark name %q: %v", e.Raw, ErrEmptyName)
}

func (e *NameError) Unwrap() error {
	return ErrEmptyName
}

// ParseName trims surrounding white space from raw and returns it as
// a Name. It returns a *NameError if nothing is left.
func ParseName(raw string) (Name, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &NameError{raw}
	}
	return Name(s), nil
}

func (n Name) String() string {
	return string(n)
}
