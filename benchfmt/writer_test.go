// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/perfdata/benchnorm/benchresult"
	"github.com/shopspring/decimal"
)

func TestWriter(t *testing.T) {
	const input = `BenchmarkOne 1 1 ns/op

key: val
key1: val1

BenchmarkOne 1 1 ns/op

key:

BenchmarkOne 1 1 ns/op

key: a

BenchmarkOne 1 1 ns/op

key1: val2
key: b

BenchmarkOne 1 2.5 us/op
BenchmarkTwo 1 1 no-tidy-B/op
`

	out := new(strings.Builder)
	w := NewWriter(out)
	r := NewReader(bytes.NewReader([]byte(input)), "test")
	for r.Scan() {
		if err := w.Write(r.Result()); err != nil {
			t.Fatal(err)
		}
	}

	if out.String() != input {
		t.Fatalf("want:\n%sgot:\n%s", input, out.String())
	}
}

func TestFromResults(t *testing.T) {
	rs := benchresult.New()
	add := func(name string, m benchresult.Metric) {
		t.Helper()
		n, err := benchresult.ParseName(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := rs.Insert(n, m); err != nil {
			t.Fatal(err)
		}
	}
	d := decimal.RequireFromString
	add("fib_10", benchresult.NewMetric(d("214.98980114547953")))
	add("BenchmarkSort-8", benchresult.NewMetric(d("27455.5")).WithBounds(d("27000"), d("28000")))
	add("sort 1000 items", benchresult.NewMetric(d("1")))

	out := new(strings.Builder)
	w := NewWriter(out)
	for _, res := range FromResults(rs, "adapter", "rust_criterion") {
		if err := w.Write(res); err != nil {
			t.Fatal(err)
		}
	}
	const want = `adapter: rust_criterion

Benchmarkfib_10 1 214.98980114547953 ns/op
BenchmarkSort-8 1 27455.5 ns/op 27000 lower-ns/op 28000 upper-ns/op
Benchmarksort_1000_items 1 1 ns/op
`
	if out.String() != want {
		t.Fatalf("want:\n%sgot:\n%s", want, out.String())
	}

	// The output must read back to the same values.
	got, _ := parseAll(t, out.String())
	compareRecords(t, got, []Record{
		r("fib_10", 1).config("adapter", "rust_criterion").v("214.98980114547953", "ns/op").res,
		r("Sort-8", 1).config("adapter", "rust_criterion").
			v("27455.5", "ns/op").v("27000", "lower-ns/op").v("28000", "upper-ns/op").res,
		r("sort_1000_items", 1).config("adapter", "rust_criterion").v("1", "ns/op").res,
	})
}
