// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"errors"
	"fmt"

	"github.com/perfdata/benchnorm/benchresult"
)

// A Kind classifies an adapter error.
type Kind int

const (
	// Deserialization means the input did not match the tool's
	// output format: malformed JSON, a missing required field, a
	// number that could not be parsed, and so on.
	Deserialization Kind = iota
	// Validation means a benchmark name was empty after trimming.
	Validation
	// DuplicateName means two benchmarks had the same name.
	DuplicateName
	// Encoding means the input was not valid UTF-8.
	Encoding
	// Unit means the tool reported a unit that is not a duration.
	Unit
	// Bounds means a bound lay on the wrong side of its value.
	Bounds
)

var kindNames = [...]string{
	Deserialization: "deserialization",
	Validation:      "validation",
	DuplicateName:   "duplicate name",
	Encoding:        "encoding",
	Unit:            "unit",
	Bounds:          "bounds",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// An Error is a failure to parse the output of a benchmarking tool.
type Error struct {
	Format Format
	Kind   Kind

	// Index is the 0-based index of the offending benchmark in the
	// tool's output, or -1 if the error is not specific to one
	// benchmark. Name is the benchmark's raw name, if known.
	Index int
	Name  string

	Err error
}

func (e *Error) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s error: %v", e.Format, e.Kind, e.Err)
	}
	if e.Name == "" {
		return fmt.Sprintf("%s: benchmark %d: %s error: %v", e.Format, e.Index, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: benchmark %d (%q): %s error: %v", e.Format, e.Index, e.Name, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var errInvalidUTF8 = errors.New("input is not valid UTF-8")

// deserializeError returns a Deserialization error for the whole input.
func deserializeError(f Format, err error) *Error {
	return &Error{Format: f, Kind: Deserialization, Index: -1, Err: err}
}

func errMissing(field string) error {
	return fmt.Errorf("missing field %q", field)
}

// missingField returns a Deserialization error for a benchmark that
// lacks a required field.
func missingField(f Format, index int, name, field string) *Error {
	return &Error{Format: f, Kind: Deserialization, Index: index, Name: name, Err: errMissing(field)}
}

// fromPairs builds the Results for pairs, translating a construction
// failure into an *Error.
func fromPairs(f Format, pairs []benchresult.Pair) (*benchresult.Results, error) {
	rs, err := benchresult.FromPairs(pairs)
	if err == nil {
		return rs, nil
	}
	var ee *benchresult.EntryError
	if !errors.As(err, &ee) {
		return nil, deserializeError(f, err)
	}
	kind := Deserialization
	var (
		nameErr   *benchresult.NameError
		dupErr    *benchresult.DuplicateNameError
		boundsErr *benchresult.BoundsError
	)
	switch {
	case errors.As(ee.Err, &nameErr):
		kind = Validation
	case errors.As(ee.Err, &dupErr):
		kind = DuplicateName
	case errors.As(ee.Err, &boundsErr):
		kind = Bounds
	}
	return nil, &Error{Format: f, Kind: kind, Index: ee.Index, Name: ee.Raw, Err: ee.Err}
}
