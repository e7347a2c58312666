// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/perfdata/benchnorm/benchresult"
)

// rustBenchAdapter parses the output of the Rust libtest bench
// harness:
//
//	test tests::bench_fib_20 ... bench:      27,455 ns/iter (+/- 1,234)
//
// The bounds are the value plus or minus the reported deviation.
// Ignored and failed tests are skipped.
type rustBenchAdapter struct{}

var rustBenchLine = regexp.MustCompile(`^test (\S+)\s+\.\.\. bench:\s+([0-9][0-9,]*(?:\.[0-9]+)?) (\S+)/iter \(\+/- ([0-9][0-9,]*(?:\.[0-9]+)?)\)\s*$`)

func (rustBenchAdapter) Parse(input string) (*benchresult.Results, error) {
	var pairs []benchresult.Pair
	for lineno, line := range splitLines(input) {
		if !strings.HasPrefix(line, "test ") || !strings.Contains(line, " ... bench:") {
			continue
		}
		index := len(pairs)
		m := rustBenchLine.FindStringSubmatch(line)
		if m == nil {
			return nil, &Error{Format: RustBench, Kind: Deserialization, Index: index,
				Err: fmt.Errorf("line %d: malformed bench result %q", lineno+1, line)}
		}
		name, value, unit, dev := m[1], m[2], m[3], m[4]
		v, err := parseDuration(value, unit)
		if err != nil {
			return nil, durationError(RustBench, index, name, err)
		}
		d, err := parseDuration(dev, unit)
		if err != nil {
			return nil, durationError(RustBench, index, name, err)
		}
		metric := benchresult.NewMetric(v).WithBounds(v.Sub(d), v.Add(d))
		pairs = append(pairs, benchresult.Pair{Name: name, Metric: metric})
	}
	return fromPairs(RustBench, pairs)
}
