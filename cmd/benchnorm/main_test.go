// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/perfdata/benchnorm/internal/diff"
)

func TestBenchnorm(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			"json",
			[]string{"testdata/google.json", "testdata/criterion.txt"},
			"",
			`{"fib_10":{"value":214.98980114547953},"fib_20":{"value":27455.600415007055}}
{"fib 10":{"value":150,"lower_value":100,"upper_value":200},"fib 20":{"value":2500,"lower_value":1000,"upper_value":3000}}
`,
		},
		{
			"text",
			[]string{"-format", "text", "testdata/google.json", "testdata/criterion.txt"},
			"",
			`file: testdata/google.json
adapter: cpp_google

Benchmarkfib_10 1 214.98980114547953 ns/op
Benchmarkfib_20 1 27455.600415007055 ns/op

file: testdata/criterion.txt
adapter: rust_criterion

Benchmarkfib_10 1 150 ns/op 100 lower-ns/op 200 upper-ns/op
Benchmarkfib_20 1 2500 ns/op 1000 lower-ns/op 3000 upper-ns/op
`,
		},
		{
			"table",
			[]string{"-format", "table", "testdata/google.json", "testdata/criterion.txt"},
			"",
			`file: testdata/google.json
adapter: cpp_google

name    time/op     lower  upper
fib_10  215.0 ns    -      -
fib_20  27455.6 ns  -      -

file: testdata/criterion.txt
adapter: rust_criterion

name    time/op    lower      upper
fib 10  150.0 ns   100.0 ns   200.0 ns
fib 20  2500.0 ns  1000.0 ns  3000.0 ns
`,
		},
		{
			"stdin",
			[]string{"-adapter", "go_bench", "-format", "text"},
			"BenchmarkSort-8 100 27455.5 ns/op\n",
			`file: <stdin>
adapter: go_bench

BenchmarkSort-8 1 27455.5 ns/op
`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			if err := benchnorm(strings.NewReader(test.stdin), &out, &errOut, test.args); err != nil {
				t.Fatalf("benchnorm %s: %v\n%s", strings.Join(test.args, " "), err, errOut.String())
			}
			if d := diff.Diff(out.String(), test.want); d != "" {
				t.Errorf("output differs (-got +want):\n%s", d)
			}
			if errOut.Len() != 0 {
				t.Errorf("unexpected stderr:\n%s", errOut.String())
			}
		})
	}
}

func TestBenchnormParseError(t *testing.T) {
	var out, errOut bytes.Buffer
	err := benchnorm(strings.NewReader(""), &out, &errOut, []string{"-adapter", "cpp_google", "testdata/bad.json", "testdata/google.json"})
	if err != errFailed {
		t.Fatalf("benchnorm: err = %v, want errFailed", err)
	}
	wantErr := `testdata/bad.json: cpp_google: benchmark 0 ("fib_10"): deserialization error: missing field "real_time"` + "\n"
	if d := diff.Diff(errOut.String(), wantErr); d != "" {
		t.Errorf("stderr differs (-got +want):\n%s", d)
	}
	// Good inputs are still printed.
	if !strings.Contains(out.String(), `"fib_20"`) {
		t.Errorf("stdout is missing the results of the good input:\n%s", out.String())
	}
}

func TestBenchnormUsage(t *testing.T) {
	for _, args := range [][]string{
		{"-adapter", "cobol"},
		{"-format", "xml"},
		{"-chart", "out.png", "a", "b"},
		{"-nosuchflag"},
	} {
		var out, errOut bytes.Buffer
		if err := benchnorm(strings.NewReader(""), &out, &errOut, args); err != errUsage {
			t.Errorf("benchnorm %s: err = %v, want errUsage", strings.Join(args, " "), err)
		}
	}
}

func TestBenchnormChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	var out, errOut bytes.Buffer
	if err := benchnorm(strings.NewReader(""), &out, &errOut, []string{"-chart", path, "testdata/criterion.txt"}); err != nil {
		t.Fatalf("benchnorm: %v\n%s", err, errOut.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("%s is not a PNG image", path)
	}
}
