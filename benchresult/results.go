// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchresult

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Results is an ordered collection of metrics keyed by benchmark name.
// Names are unique. Iteration follows insertion order, which adapters
// set to the order benchmarks appear in the tool's output.
//
// The zero Results is empty and ready to use. A Results is built by a
// single adapter call and should be treated as read-only once it has
// been returned.
type Results struct {
	entries []Entry
	index   map[Name]int
}

// An Entry is a single named metric in a Results.
type Entry struct {
	Name   Name
	Metric Metric
}

// A DuplicateNameError reports an attempt to insert a name that is
// already present in a Results.
type DuplicateNameError struct {
	Name Name
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate benchmark name %q", string(e.Name))
}

// New returns an empty Results.
func New() *Results {
	return &Results{}
}

// Insert adds metric m under name. It returns a *DuplicateNameError if
// name is already present, whether or not the existing metric equals
// m, and a *BoundsError if m is not within its own bounds. Nothing is
// inserted on error.
func (r *Results) Insert(name Name, m Metric) error {
	if _, ok := r.index[name]; ok {
		return &DuplicateNameError{name}
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if r.index == nil {
		r.index = make(map[Name]int)
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, Entry{name, m})
	return nil
}

// Get returns the metric for the benchmark called name. Surrounding
// white space in name is ignored, matching ParseName.
func (r *Results) Get(name string) (Metric, bool) {
	i, ok := r.index[Name(strings.TrimSpace(name))]
	if !ok {
		return Metric{}, false
	}
	return r.entries[i].Metric, true
}

// Len returns the number of benchmarks in r.
func (r *Results) Len() int {
	return len(r.entries)
}

// Names returns the benchmark names in r in insertion order.
func (r *Results) Names() []Name {
	names := make([]Name, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the entries of r in insertion order.
func (r *Results) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// A Pair is a raw benchmark name, as reported by a tool, and its
// normalized metric.
type Pair struct {
	Name   string
	Metric Metric
}

// An EntryError reports which entry of a FromPairs call was rejected.
type EntryError struct {
	Index int    // 0-based index into the pairs
	Raw   string // the raw name of the entry
	Err   error  // *NameError, *DuplicateNameError or *BoundsError
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d (%q): %v", e.Index, e.Raw, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// FromPairs builds a Results from pairs, in order. Each name is
// validated with ParseName and inserted with Insert. The first failure
// stops construction and is returned as an *EntryError; no partial
// Results is returned.
func FromPairs(pairs []Pair) (*Results, error) {
	r := &Results{
		entries: make([]Entry, 0, len(pairs)),
		index:   make(map[Name]int, len(pairs)),
	}
	for i, p := range pairs {
		name, err := ParseName(p.Name)
		if err == nil {
			err = r.Insert(name, p.Metric)
		}
		if err != nil {
			return nil, &EntryError{i, p.Name, err}
		}
	}
	return r, nil
}

// MarshalJSON encodes r as a JSON object mapping each name to its
// metric, in insertion order:
//
//	{"fib_10":{"value":214.98980114547953},"fib_20":{...}}
//
// Decimals are written as unquoted numbers with every digit preserved.
// Absent bounds are omitted.
func (r *Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(e.Name))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, `:{"value":%s`, e.Metric.Value.String())
		if e.Metric.Lower.Valid {
			fmt.Fprintf(&buf, `,"lower_value":%s`, e.Metric.Lower.Decimal.String())
		}
		if e.Metric.Upper.Valid {
			fmt.Fprintf(&buf, `,"upper_value":%s`, e.Metric.Upper.Decimal.String())
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
