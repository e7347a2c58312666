// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"regexp"
	"strings"

	"github.com/perfdata/benchnorm/benchresult"
	"github.com/shopspring/decimal"
)

// rustCriterionAdapter parses the console output of Criterion.rs:
//
//	fib 20                  time:   [22.785 µs 22.873 µs 22.974 µs]
//
// The middle estimate is the value and the outer two are the bounds of
// its confidence interval. Criterion prints a name too long for its
// column on a line of its own, before the time line.
type rustCriterionAdapter struct{}

var criterionTimeLine = regexp.MustCompile(`^(.*?)\s*time:\s+\[(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\]\s*$`)

func (rustCriterionAdapter) Parse(input string) (*benchresult.Results, error) {
	var pairs []benchresult.Pair
	lines := splitLines(input)
	for i, line := range lines {
		m := criterionTimeLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" && i > 0 {
			name = strings.TrimSpace(lines[i-1])
		}
		index := len(pairs)
		var est [3]decimal.Decimal
		for j := range est {
			v, err := parseDuration(m[2+2*j], m[3+2*j])
			if err != nil {
				return nil, durationError(RustCriterion, index, name, err)
			}
			est[j] = v
		}
		metric := benchresult.NewMetric(est[1]).WithBounds(est[0], est[2])
		pairs = append(pairs, benchresult.Pair{Name: name, Metric: metric})
	}
	return fromPairs(RustCriterion, pairs)
}
