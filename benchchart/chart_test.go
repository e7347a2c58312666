// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"bytes"
	"testing"

	"github.com/perfdata/benchnorm/benchresult"
	"github.com/shopspring/decimal"
)

func results(t *testing.T) *benchresult.Results {
	t.Helper()
	d := decimal.RequireFromString
	rs, err := benchresult.FromPairs([]benchresult.Pair{
		{Name: "fib_10", Metric: benchresult.NewMetric(d("2149.89"))},
		{Name: "fib_20", Metric: benchresult.NewMetric(d("27455.6")).WithBounds(d("27000"), d("28000"))},
	})
	if err != nil {
		t.Fatal(err)
	}
	return rs
}

func TestPlot(t *testing.T) {
	p, err := Plot(results(t), "fib")
	if err != nil {
		t.Fatal(err)
	}
	if p.Title.Text != "fib" {
		t.Errorf("title: got %q", p.Title.Text)
	}
	// The smallest value is over a microsecond.
	if want := "time/op (µs)"; p.Y.Label.Text != want {
		t.Errorf("Y label: got %q, want %q", p.Y.Label.Text, want)
	}
	if p.Y.Min != 0 {
		t.Errorf("Y axis starts at %v, want 0", p.Y.Min)
	}
}

func TestPlotEmpty(t *testing.T) {
	if _, err := Plot(benchresult.New(), ""); err != ErrEmpty {
		t.Errorf("want ErrEmpty, got %v", err)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, results(t), "fib"); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("output is not a PNG")
	}
}
