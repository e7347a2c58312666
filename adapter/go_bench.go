// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"strings"

	"github.com/perfdata/benchnorm/benchfmt"
	"github.com/perfdata/benchnorm/benchresult"
	"github.com/shopspring/decimal"
)

// goBenchAdapter parses the output of "go test -bench". Names are
// reported as printed, including the "Benchmark" prefix and any
// GOMAXPROCS suffix. Results without an ns/op value, such as those
// reporting only custom metrics, are skipped. If a line also
// carries lower-ns/op and upper-ns/op values, as written by
// benchfmt.FromResults, they are the bounds.
type goBenchAdapter struct{}

func (goBenchAdapter) Parse(input string) (*benchresult.Results, error) {
	var pairs []benchresult.Pair
	r := benchfmt.NewReader(strings.NewReader(input), "input")
	for r.Scan() {
		var res *benchfmt.Result
		switch rec := r.Result().(type) {
		case *benchfmt.SyntaxError:
			return nil, deserializeError(GoBench, rec)
		case *benchfmt.Result:
			res = rec
		default:
			continue
		}
		value, ok := res.Value("ns/op")
		if !ok {
			continue
		}
		name := "Benchmark" + res.Name.String()
		m := benchresult.NewMetric(value)
		if lo, ok := res.Value("lower-ns/op"); ok {
			m.Lower = decimal.NewNullDecimal(lo)
		}
		if hi, ok := res.Value("upper-ns/op"); ok {
			m.Upper = decimal.NewNullDecimal(hi)
		}
		pairs = append(pairs, benchresult.Pair{Name: name, Metric: m})
	}
	if err := r.Err(); err != nil {
		return nil, deserializeError(GoBench, err)
	}
	return fromPairs(GoBench, pairs)
}
