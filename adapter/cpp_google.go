// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"encoding/json"

	"github.com/perfdata/benchnorm/benchresult"
	"github.com/perfdata/benchnorm/benchunit"
	"github.com/shopspring/decimal"
)

// cppGoogleAdapter parses the JSON report of Google Benchmark. Each
// benchmark's real_time is its value; Google Benchmark reports no
// bounds.
type cppGoogleAdapter struct{}

type googleReport struct {
	Context    *json.RawMessage   `json:"context"`
	Benchmarks *[]googleBenchmark `json:"benchmarks"`
}

type googleBenchmark struct {
	Name     *string          `json:"name"`
	RealTime *decimal.Decimal `json:"real_time"`
	TimeUnit string           `json:"time_unit"`
}

func (cppGoogleAdapter) Parse(input string) (*benchresult.Results, error) {
	var report googleReport
	if err := json.Unmarshal([]byte(input), &report); err != nil {
		return nil, deserializeError(CppGoogle, err)
	}
	if report.Context == nil {
		return nil, deserializeError(CppGoogle, errMissing("context"))
	}
	if report.Benchmarks == nil {
		return nil, deserializeError(CppGoogle, errMissing("benchmarks"))
	}

	pairs := make([]benchresult.Pair, 0, len(*report.Benchmarks))
	for i, b := range *report.Benchmarks {
		if b.Name == nil {
			return nil, missingField(CppGoogle, i, "", "name")
		}
		if b.RealTime == nil {
			return nil, missingField(CppGoogle, i, *b.Name, "real_time")
		}
		unit := benchunit.Nanoseconds
		if b.TimeUnit != "" {
			var err error
			if unit, err = benchunit.ParseTimeUnit(b.TimeUnit); err != nil {
				return nil, &Error{Format: CppGoogle, Kind: Unit, Index: i, Name: *b.Name, Err: err}
			}
		}
		m := benchresult.NewMetric(benchunit.ToNanos(*b.RealTime, unit))
		pairs = append(pairs, benchresult.Pair{Name: *b.Name, Metric: m})
	}
	return fromPairs(CppGoogle, pairs)
}
