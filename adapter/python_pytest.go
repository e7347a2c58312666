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

// pythonPytestAdapter parses the JSON written by pytest-benchmark's
// --benchmark-json option. Statistics are in seconds. The bounds are
// one standard deviation either side of the mean.
type pythonPytestAdapter struct{}

type pytestReport struct {
	Benchmarks *[]pytestBenchmark `json:"benchmarks"`
}

type pytestBenchmark struct {
	Name  *string      `json:"name"`
	Stats *pytestStats `json:"stats"`
}

type pytestStats struct {
	Mean   *decimal.Decimal `json:"mean"`
	Stddev *decimal.Decimal `json:"stddev"`
}

func (pythonPytestAdapter) Parse(input string) (*benchresult.Results, error) {
	var report pytestReport
	if err := json.Unmarshal([]byte(input), &report); err != nil {
		return nil, deserializeError(PythonPytest, err)
	}
	if report.Benchmarks == nil {
		return nil, deserializeError(PythonPytest, errMissing("benchmarks"))
	}

	pairs := make([]benchresult.Pair, 0, len(*report.Benchmarks))
	for i, b := range *report.Benchmarks {
		if b.Name == nil {
			return nil, missingField(PythonPytest, i, "", "name")
		}
		if b.Stats == nil {
			return nil, missingField(PythonPytest, i, *b.Name, "stats")
		}
		if b.Stats.Mean == nil {
			return nil, missingField(PythonPytest, i, *b.Name, "stats.mean")
		}
		m := meanMetric(*b.Stats.Mean, b.Stats.Stddev, benchunit.Seconds)
		pairs = append(pairs, benchresult.Pair{Name: *b.Name, Metric: m})
	}
	return fromPairs(PythonPytest, pairs)
}

// meanMetric returns a Metric for a mean measured in unit, bounded by
// one standard deviation if stddev is non-nil.
func meanMetric(mean decimal.Decimal, stddev *decimal.Decimal, unit benchunit.TimeUnit) benchresult.Metric {
	m := benchresult.NewMetric(benchunit.ToNanos(mean, unit))
	if stddev != nil {
		sd := benchunit.ToNanos(*stddev, unit)
		m = m.WithBounds(m.Value.Sub(sd), m.Value.Add(sd))
	}
	return m
}
