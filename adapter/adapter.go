// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package adapter parses the output of benchmarking tools into
// normalized results.
//
// Each supported tool output format has an Adapter that deserializes
// the tool's report, converts every measurement to nanoseconds and
// returns a *benchresult.Results in the order the tool reported its
// benchmarks. Adapters hold no state, so they may be used from any
// number of goroutines.
//
// Callers that don't know the format of an input can use Probe, which
// tries each format in turn.
package adapter

import (
	"fmt"
	"unicode/utf8"

	"github.com/perfdata/benchnorm/benchresult"
)

// An Adapter parses the complete output of one benchmarking tool.
type Adapter interface {
	// Parse parses input and returns its normalized results.
	// Errors are of type *Error, except that the Magic adapter
	// returns a *ProbeError.
	Parse(input string) (*benchresult.Results, error)
}

// A Format identifies a tool output format.
type Format int

const (
	// Magic is not a format of its own. Its Adapter detects the
	// format of its input using Probe.
	Magic Format = iota

	JSON           // normalized results, as written by Results.MarshalJSON
	CppGoogle      // Google Benchmark --benchmark_format=json
	CppCatch2      // Catch2 console reporter
	GoBench        // go test -bench
	RustBench      // libtest #[bench]
	RustCriterion  // Criterion.rs
	JavaJMH        // JMH -rf json
	PythonPytest   // pytest-benchmark --benchmark-json
	ShellHyperfine // hyperfine --export-json
	CSharpDotNet   // BenchmarkDotNet JSON exporter (full)

	numFormats
)

var formatNames = [numFormats]string{
	Magic:          "magic",
	JSON:           "json",
	CppGoogle:      "cpp_google",
	CppCatch2:      "cpp_catch2",
	GoBench:        "go_bench",
	RustBench:      "rust_bench",
	RustCriterion:  "rust_criterion",
	JavaJMH:        "java_jmh",
	PythonPytest:   "python_pytest",
	ShellHyperfine: "shell_hyperfine",
	CSharpDotNet:   "c_sharp_dot_net",
}

func (f Format) String() string {
	if f < 0 || f >= numFormats {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Formats returns every Format, including Magic, in declaration order.
func Formats() []Format {
	fs := make([]Format, numFormats)
	for i := range fs {
		fs[i] = Format(i)
	}
	return fs
}

// ParseFormat returns the Format with the given name, such as
// "cpp_google" or "magic".
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if n == name {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("unknown adapter %q", name)
}

// Adapter returns the Adapter for f. It panics if f is not one of the
// declared Formats.
func (f Format) Adapter() Adapter {
	switch f {
	case Magic:
		return magicAdapter{}
	case JSON:
		return jsonAdapter{}
	case CppGoogle:
		return cppGoogleAdapter{}
	case CppCatch2:
		return cppCatch2Adapter{}
	case GoBench:
		return goBenchAdapter{}
	case RustBench:
		return rustBenchAdapter{}
	case RustCriterion:
		return rustCriterionAdapter{}
	case JavaJMH:
		return javaJMHAdapter{}
	case PythonPytest:
		return pythonPytestAdapter{}
	case ShellHyperfine:
		return shellHyperfineAdapter{}
	case CSharpDotNet:
		return cSharpDotNetAdapter{}
	}
	panic(fmt.Sprintf("bad Format %d", int(f)))
}

// Parse parses input in format f.
func Parse(f Format, input string) (*benchresult.Results, error) {
	return f.Adapter().Parse(input)
}

// ParseBytes is like Parse, but takes raw bytes. It returns an
// Encoding error if b is not valid UTF-8.
func ParseBytes(f Format, b []byte) (*benchresult.Results, error) {
	if !utf8.Valid(b) {
		return nil, &Error{Format: f, Kind: Encoding, Index: -1, Err: errInvalidUTF8}
	}
	return Parse(f, string(b))
}

type magicAdapter struct{}

func (magicAdapter) Parse(input string) (*benchresult.Results, error) {
	_, rs, err := Probe(input)
	return rs, err
}
