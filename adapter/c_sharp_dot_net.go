// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"encoding/json"
	"strings"

	"github.com/perfdata/benchnorm/benchresult"
	"github.com/perfdata/benchnorm/benchunit"
	"github.com/shopspring/decimal"
)

// cSharpDotNetAdapter parses the full JSON export of BenchmarkDotNet.
// Statistics are in nanoseconds. The bounds are one standard deviation
// either side of the mean.
type cSharpDotNetAdapter struct{}

type dotNetReport struct {
	Benchmarks *[]dotNetBenchmark `json:"Benchmarks"`
}

type dotNetBenchmark struct {
	FullName   string            `json:"FullName"`
	Namespace  string            `json:"Namespace"`
	Type       string            `json:"Type"`
	Method     string            `json:"Method"`
	Statistics *dotNetStatistics `json:"Statistics"`
}

type dotNetStatistics struct {
	Mean              *decimal.Decimal `json:"Mean"`
	StandardDeviation *decimal.Decimal `json:"StandardDeviation"`
}

// name returns FullName, or the method's qualified name if the
// exporter didn't write one.
func (b *dotNetBenchmark) name() string {
	if b.FullName != "" {
		return b.FullName
	}
	var parts []string
	for _, p := range []string{b.Namespace, b.Type, b.Method} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}

func (cSharpDotNetAdapter) Parse(input string) (*benchresult.Results, error) {
	var report dotNetReport
	if err := json.Unmarshal([]byte(input), &report); err != nil {
		return nil, deserializeError(CSharpDotNet, err)
	}
	if report.Benchmarks == nil {
		return nil, deserializeError(CSharpDotNet, errMissing("Benchmarks"))
	}

	pairs := make([]benchresult.Pair, 0, len(*report.Benchmarks))
	for i := range *report.Benchmarks {
		b := &(*report.Benchmarks)[i]
		name := b.name()
		// A benchmark that failed to run has null Statistics.
		if b.Statistics == nil {
			return nil, missingField(CSharpDotNet, i, name, "Statistics")
		}
		if b.Statistics.Mean == nil {
			return nil, missingField(CSharpDotNet, i, name, "Statistics.Mean")
		}
		m := meanMetric(*b.Statistics.Mean, b.Statistics.StandardDeviation, benchunit.Nanoseconds)
		pairs = append(pairs, benchresult.Pair{Name: name, Metric: m})
	}
	return fromPairs(CSharpDotNet, pairs)
}
