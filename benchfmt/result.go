// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads and writes the Go benchmark format.
//
// This implements the format documented at
// https://golang.org/design/14313-benchmark-format, as printed by
// "go test -bench". Measurements are read directly into decimals so
// that no precision is lost before unit conversion.
//
// The Reader is a streaming line scanner in the style of
// bufio.Scanner. The Writer renders a benchresult.Results in the same
// format, so normalized results can be fed to any tool that consumes
// Go benchmark output.
package benchfmt

import "github.com/shopspring/decimal"

// A Result is a single benchmark result and all of its measurements.
//
// Results are designed to be mutated in place and reused to reduce
// allocation.
type Result struct {
	// Config is the set of key/value configuration pairs for this result,
	// including file and internal configuration.
	//
	// Result internally maintains an index of the keys of this slice,
	// so callers must use SetConfig to add or delete keys,
	// but may modify values in place. New Results can be initialized
	// directly, e.g., using a struct literal.
	//
	// SetConfig appends new keys to this slice and updates existing ones
	// in place. To delete a key, it swaps the deleted key with
	// the final slice element. This way, the order of these keys is
	// deterministic.
	Config []Config

	// Name is the full name of this benchmark without the "Benchmark"
	// prefix, including all sub-benchmark configuration and any
	// GOMAXPROCS suffix.
	Name Name

	// Iters is the number of iterations this benchmark's results
	// were averaged over.
	Iters int

	// Values is this benchmark's measurements and their units.
	Values []Value

	// configPos maps from Config.Key to index in Config. This
	// may be nil, which indicates the index needs to be
	// constructed.
	configPos map[string]int

	// fileName and line record where this Record was read from.
	fileName string
	line     int
}

// A Config is a single key/value configuration pair.
// This can be a file configuration, which was read directly from
// a benchmark results file; or an "internal" configuration that was
// supplied by tooling.
type Config struct {
	Key   string
	Value []byte
	File  bool // Set if this is a file configuration key, otherwise internal
}

// A Value is a single value/unit measurement from a benchmark result.
//
// Reader tidies values so that durations are in nanoseconds (see
// benchunit.Tidy).
type Value struct {
	Value decimal.Decimal
	Unit  string

	// OrigValue and OrigUnit give the untidied value and unit as read
	// from the input. OrigUnit is "" if the value wasn't transformed.
	OrigValue decimal.Decimal
	OrigUnit  string
}

// Pos returns the file name and line number of a Result that was read
// by a Reader. For Results that were not read from a file, it returns
// "", 0.
func (r *Result) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Clone makes a copy of Result that shares no state with r.
func (r *Result) Clone() *Result {
	r2 := &Result{
		Config:   make([]Config, len(r.Config)),
		Name:     append([]byte(nil), r.Name...),
		Iters:    r.Iters,
		Values:   append([]Value(nil), r.Values...),
		fileName: r.fileName,
		line:     r.line,
	}
	for i, cfg := range r.Config {
		r2.Config[i].Key = cfg.Key
		r2.Config[i].Value = append([]byte(nil), cfg.Value...)
		r2.Config[i].File = cfg.File
	}
	return r2
}

// SetConfig sets configuration key to value, overriding or
// adding the configuration as necessary, and marks it internal.
// If value is "", SetConfig deletes key.
func (r *Result) SetConfig(key, value string) {
	if value == "" {
		r.deleteConfig(key)
	} else {
		cfg := r.ensureConfig(key, false)
		cfg.Value = append(cfg.Value[:0], value...)
	}
}

// SetFileConfig is like SetConfig, but marks key as file
// configuration, which Writer prints.
func (r *Result) SetFileConfig(key, value string) {
	if value == "" {
		r.deleteConfig(key)
	} else {
		cfg := r.ensureConfig(key, true)
		cfg.Value = append(cfg.Value[:0], value...)
	}
}

// ensureConfig returns the Config for key, creating it if necessary.
//
// This sets Key and File of the returned Config, but it's up to the caller to
// set Value.
func (r *Result) ensureConfig(key string, file bool) *Config {
	pos, ok := r.ConfigIndex(key)
	if ok {
		cfg := &r.Config[pos]
		cfg.File = file
		return cfg
	}
	// Add key. Reuse old space if possible.
	r.configPos[key] = len(r.Config)
	if len(r.Config) < cap(r.Config) {
		r.Config = r.Config[:len(r.Config)+1]
		cfg := &r.Config[len(r.Config)-1]
		cfg.Key = key
		cfg.File = file
		return cfg
	}
	r.Config = append(r.Config, Config{key, nil, file})
	return &r.Config[len(r.Config)-1]
}

func (r *Result) deleteConfig(key string) {
	pos, ok := r.ConfigIndex(key)
	if !ok {
		return
	}
	// Delete key.
	cfg := &r.Config[pos]
	cfg2 := &r.Config[len(r.Config)-1]
	*cfg, *cfg2 = *cfg2, *cfg
	r.configPos[cfg.Key] = pos
	r.Config = r.Config[:len(r.Config)-1]
	delete(r.configPos, key)
}

// GetConfig returns the value of a configuration key,
// or "" if not present.
func (r *Result) GetConfig(key string) string {
	pos, ok := r.ConfigIndex(key)
	if !ok {
		return ""
	}
	return string(r.Config[pos].Value)
}

// ConfigIndex returns the index in r.Config of key.
func (r *Result) ConfigIndex(key string) (pos int, ok bool) {
	if r.configPos == nil {
		// This is a fresh Result. Construct the index.
		r.configPos = make(map[string]int)
		for i, cfg := range r.Config {
			r.configPos[cfg.Key] = i
		}
	}

	pos, ok = r.configPos[key]
	return
}

// Value returns the measurement for the given (tidied) unit.
func (r *Result) Value(unit string) (decimal.Decimal, bool) {
	for _, v := range r.Values {
		if v.Unit == unit {
			return v.Value, true
		}
	}
	return decimal.Decimal{}, false
}

// A Name is a full benchmark name, including all sub-benchmark
// configuration.
type Name []byte

// String returns the full benchmark name as a string.
func (n Name) String() string {
	return string(n)
}
