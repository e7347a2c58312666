// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/perfdata/benchnorm/benchresult"
	"github.com/perfdata/benchnorm/benchunit"
	"github.com/shopspring/decimal"
)

// javaJMHAdapter parses the JSON result file of the Java Microbenchmark
// Harness. A benchmark's name is its method name followed by its
// parameters, if any:
//
//	org.example.Sort.quick:size=100,sorted=false
//
// The score must be a time per operation; throughput scores are
// rejected with a Unit error.
type javaJMHAdapter struct{}

type jmhBenchmark struct {
	Benchmark     *string           `json:"benchmark"`
	Params        map[string]string `json:"params"`
	PrimaryMetric *jmhMetric        `json:"primaryMetric"`
}

type jmhMetric struct {
	Score           *decimal.Decimal `json:"score"`
	ScoreConfidence []jmhNumber      `json:"scoreConfidence"`
	ScoreUnit       *string          `json:"scoreUnit"`
}

// A jmhNumber is a JSON number that may also be one of the strings JMH
// writes for non-finite doubles, such as "NaN".
type jmhNumber struct {
	decimal.NullDecimal
}

func (n *jmhNumber) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"NaN"`, `"Infinity"`, `"-Infinity"`, "null":
		n.Valid = false
		return nil
	}
	if err := n.Decimal.UnmarshalJSON(b); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (b *jmhBenchmark) name() string {
	if len(b.Params) == 0 {
		return *b.Benchmark
	}
	keys := make([]string, 0, len(b.Params))
	for k := range b.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(*b.Benchmark)
	for i, k := range keys {
		if i == 0 {
			sb.WriteByte(':')
		} else {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s=%s", k, b.Params[k])
	}
	return sb.String()
}

// jmhTimeUnit returns the time unit of a JMH score unit such as
// "us/op".
func jmhTimeUnit(scoreUnit string) (benchunit.TimeUnit, error) {
	num, denom := benchunit.SplitUnit(scoreUnit)
	if denom != "op" {
		return 0, &benchunit.UnitError{Unit: scoreUnit}
	}
	unit, err := benchunit.ParseTimeUnit(num)
	if err != nil {
		return 0, &benchunit.UnitError{Unit: scoreUnit}
	}
	return unit, nil
}

func (javaJMHAdapter) Parse(input string) (*benchresult.Results, error) {
	var report []jmhBenchmark
	if err := json.Unmarshal([]byte(input), &report); err != nil {
		return nil, deserializeError(JavaJMH, err)
	}
	if report == nil {
		return nil, deserializeError(JavaJMH, errors.New("expected an array of benchmarks"))
	}

	pairs := make([]benchresult.Pair, 0, len(report))
	for i := range report {
		b := &report[i]
		if b.Benchmark == nil {
			return nil, missingField(JavaJMH, i, "", "benchmark")
		}
		name := b.name()
		pm := b.PrimaryMetric
		switch {
		case pm == nil:
			return nil, missingField(JavaJMH, i, name, "primaryMetric")
		case pm.Score == nil:
			return nil, missingField(JavaJMH, i, name, "primaryMetric.score")
		case pm.ScoreUnit == nil:
			return nil, missingField(JavaJMH, i, name, "primaryMetric.scoreUnit")
		}
		unit, err := jmhTimeUnit(*pm.ScoreUnit)
		if err != nil {
			return nil, &Error{Format: JavaJMH, Kind: Unit, Index: i, Name: name, Err: err}
		}

		m := benchresult.NewMetric(benchunit.ToNanos(*pm.Score, unit))
		if c := pm.ScoreConfidence; len(c) == 2 && c[0].Valid && c[1].Valid {
			m = m.WithBounds(benchunit.ToNanos(c[0].Decimal, unit), benchunit.ToNanos(c[1].Decimal, unit))
		} else if len(c) != 0 && len(c) != 2 {
			return nil, &Error{Format: JavaJMH, Kind: Deserialization, Index: i, Name: name,
				Err: fmt.Errorf("scoreConfidence has %d elements, want 2", len(c))}
		}
		pairs = append(pairs, benchresult.Pair{Name: name, Metric: m})
	}
	return fromPairs(JavaJMH, pairs)
}
