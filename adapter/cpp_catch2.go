// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/perfdata/benchnorm/benchresult"
	"github.com/shopspring/decimal"
)

// cppCatch2Adapter parses the benchmark tables of the Catch2 console
// reporter. Each benchmark is a block of three lines under a
// "benchmark name" header:
//
//	benchmark name                       samples       iterations    estimated
//	                                     mean          low mean      high mean
//	                                     std dev       low std dev   high std dev
//	-------------------------------------------------------------------------------
//	Fibonacci 10                                   100           208     7.1968 ms
//	                                        344.096 ns    341.937 ns     347.6 ns
//	                                         13.3332 ns    9.79196 ns    20.4014 ns
//
// The mean is the value and the low and high means are the bounds.
// Text before the first header is ignored.
type cppCatch2Adapter struct{}

var (
	catch2Header    = regexp.MustCompile(`^benchmark name\s`)
	catch2NameLine  = regexp.MustCompile(`^(\S.*?)\s+(\d+)\s+(\d+)\s+(\S+)\s+(\S+)\s*$`)
	catch2MeansLine = regexp.MustCompile(`^\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s*$`)
)

func (cppCatch2Adapter) Parse(input string) (*benchresult.Results, error) {
	var pairs []benchresult.Pair
	lines := splitLines(input)
	inTable := false
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if catch2Header.MatchString(line) {
			inTable = true
			continue
		}
		if !inTable {
			continue
		}
		m := catch2NameLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		index := len(pairs)
		if i+1 >= len(lines) {
			return nil, &Error{Format: CppCatch2, Kind: Deserialization, Index: index, Name: name,
				Err: fmt.Errorf("line %d: missing mean line", i+1)}
		}
		means := catch2MeansLine.FindStringSubmatch(lines[i+1])
		if means == nil {
			return nil, &Error{Format: CppCatch2, Kind: Deserialization, Index: index, Name: name,
				Err: fmt.Errorf("line %d: malformed mean line %q", i+2, lines[i+1])}
		}
		var v [3]decimal.Decimal
		for j := range v {
			d, err := parseDuration(means[1+2*j], means[2+2*j])
			if err != nil {
				return nil, durationError(CppCatch2, index, name, err)
			}
			v[j] = d
		}
		metric := benchresult.NewMetric(v[0]).WithBounds(v[1], v[2])
		pairs = append(pairs, benchresult.Pair{Name: name, Metric: metric})
		// Skip the mean line. The standard deviation line that
		// follows doesn't match catch2NameLine.
		i++
	}
	return fromPairs(CppCatch2, pairs)
}
