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

// shellHyperfineAdapter parses the JSON written by hyperfine's
// --export-json option. Each command is a benchmark, measured in
// seconds. hyperfine reports a null standard deviation for a single
// run, in which case there are no bounds.
type shellHyperfineAdapter struct{}

type hyperfineReport struct {
	Results *[]hyperfineResult `json:"results"`
}

type hyperfineResult struct {
	Command *string          `json:"command"`
	Mean    *decimal.Decimal `json:"mean"`
	Stddev  *decimal.Decimal `json:"stddev"`
}

func (shellHyperfineAdapter) Parse(input string) (*benchresult.Results, error) {
	var report hyperfineReport
	if err := json.Unmarshal([]byte(input), &report); err != nil {
		return nil, deserializeError(ShellHyperfine, err)
	}
	if report.Results == nil {
		return nil, deserializeError(ShellHyperfine, errMissing("results"))
	}

	pairs := make([]benchresult.Pair, 0, len(*report.Results))
	for i, r := range *report.Results {
		if r.Command == nil {
			return nil, missingField(ShellHyperfine, i, "", "command")
		}
		if r.Mean == nil {
			return nil, missingField(ShellHyperfine, i, *r.Command, "mean")
		}
		m := meanMetric(*r.Mean, r.Stddev, benchunit.Seconds)
		pairs = append(pairs, benchresult.Pair{Name: *r.Command, Metric: m})
	}
	return fromPairs(ShellHyperfine, pairs)
}
