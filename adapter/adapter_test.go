// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/perfdata/benchnorm/benchresult"
	"github.com/shopspring/decimal"
)

// A wantMetric is an expected result. Empty bounds are absent.
type wantMetric struct {
	name, value, lower, upper string
}

func (w wantMetric) metric() benchresult.Metric {
	m := benchresult.NewMetric(decimal.RequireFromString(w.value))
	if w.lower != "" {
		m.Lower = decimal.NewNullDecimal(decimal.RequireFromString(w.lower))
	}
	if w.upper != "" {
		m.Upper = decimal.NewNullDecimal(decimal.RequireFromString(w.upper))
	}
	return m
}

func readTestdata(t *testing.T, f Format, file string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", f.String(), file))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func parseTestdata(t *testing.T, f Format, file string) *benchresult.Results {
	t.Helper()
	rs, err := Parse(f, readTestdata(t, f, file))
	if err != nil {
		t.Fatalf("parsing %s: %v", file, err)
	}
	return rs
}

func checkResults(t *testing.T, rs *benchresult.Results, want []wantMetric) {
	t.Helper()
	if rs.Len() != len(want) {
		t.Errorf("got %d results %v, want %d", rs.Len(), rs.Names(), len(want))
	}
	for i, e := range rs.Entries() {
		if i >= len(want) {
			break
		}
		w := want[i]
		if string(e.Name) != w.name {
			t.Errorf("result %d: got name %q, want %q", i, e.Name, w.name)
			continue
		}
		if wm := w.metric(); !e.Metric.Equal(wm) {
			t.Errorf("%s: got %s, want %s", w.name, e.Metric, wm)
		}
	}
}

// checkError checks that err is an *Error of the given kind.
func checkError(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("want %s error, got success", kind)
	}
	var aerr *Error
	if !errors.As(err, &aerr) {
		t.Fatalf("want *Error, got %T: %v", err, err)
	}
	if aerr.Kind != kind {
		t.Fatalf("want %s error, got %s: %v", kind, aerr.Kind, err)
	}
	return aerr
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(f.String())
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", f, err)
		} else if got != f {
			t.Errorf("ParseFormat(%q) = %v, want %v", f, got, f)
		}
		if f.Adapter() == nil {
			t.Errorf("%v has no adapter", f)
		}
	}
	if _, err := ParseFormat("cobol"); err == nil {
		t.Errorf("ParseFormat(cobol) succeeded")
	}
	if got := Format(99).String(); got != "Format(99)" {
		t.Errorf("Format(99).String() = %q", got)
	}
}

func TestProbeOrderComplete(t *testing.T) {
	seen := make(map[Format]bool)
	for _, f := range ProbeOrder {
		if f == Magic {
			t.Errorf("ProbeOrder contains Magic")
		}
		if seen[f] {
			t.Errorf("ProbeOrder contains %v twice", f)
		}
		seen[f] = true
	}
	if len(seen) != len(Formats())-1 {
		t.Errorf("ProbeOrder has %d formats, want %d", len(seen), len(Formats())-1)
	}
}

func TestEmptyInput(t *testing.T) {
	// Every JSON format rejects empty input. Text formats find no
	// benchmarks in it.
	for _, f := range ProbeOrder {
		rs, err := Parse(f, "")
		switch f {
		case GoBench, RustBench, RustCriterion, CppCatch2:
			if err != nil {
				t.Errorf("%v: %v", f, err)
			} else if rs.Len() != 0 {
				t.Errorf("%v: got %d results", f, rs.Len())
			}
		default:
			checkError(t, err, Deserialization)
		}
	}
}

func TestParseBytes(t *testing.T) {
	_, err := ParseBytes(JSON, []byte("{\"a\xff\": {\"value\": 1}}"))
	aerr := checkError(t, err, Encoding)
	if aerr.Format != JSON || aerr.Index != -1 {
		t.Errorf("got %+v", aerr)
	}

	rs, err := ParseBytes(JSON, []byte(`{"a": {"value": 1}}`))
	if err != nil {
		t.Fatal(err)
	}
	checkResults(t, rs, []wantMetric{{"a", "1", "", ""}})
}

func TestProbe(t *testing.T) {
	for _, test := range []struct {
		f    Format
		file string
	}{
		{JSON, "two.json"},
		{CppGoogle, "two.json"},
		{CppCatch2, "two.txt"},
		{GoBench, "two.txt"},
		{RustBench, "many.txt"},
		{RustCriterion, "many.txt"},
		{JavaJMH, "two.json"},
		{PythonPytest, "two.json"},
		{ShellHyperfine, "two.json"},
		{CSharpDotNet, "two.json"},
	} {
		t.Run(test.f.String(), func(t *testing.T) {
			input := readTestdata(t, test.f, test.file)
			f, rs, err := Probe(input)
			if err != nil {
				t.Fatal(err)
			}
			if f != test.f {
				t.Errorf("detected %v, want %v", f, test.f)
			}
			want, err := Parse(test.f, input)
			if err != nil {
				t.Fatal(err)
			}
			if rs.Len() != want.Len() {
				t.Errorf("got %d results, want %d", rs.Len(), want.Len())
			}

			// The magic adapter does the same thing.
			rs, err = Parse(Magic, input)
			if err != nil {
				t.Fatal(err)
			}
			if rs.Len() != want.Len() {
				t.Errorf("magic: got %d results, want %d", rs.Len(), want.Len())
			}
		})
	}
}

func TestProbeEmpty(t *testing.T) {
	// Nothing recognizes this, but the text formats parse it without
	// error, so the first of them wins.
	f, rs, err := Probe("hello, world\n")
	if err != nil {
		t.Fatal(err)
	}
	if f != GoBench || rs.Len() != 0 {
		t.Errorf("got %v with %d results, want %v with none", f, rs.Len(), GoBench)
	}
}

func TestProbeFail(t *testing.T) {
	// Each line is malformed for one of the text formats. None of it
	// is JSON.
	const input = "benchmark name  samples  iterations  estimated\n" +
		"BenchmarkFoo 1 xyz ns/op\n" +
		"test foo ... bench: lots\n" +
		"foo time: [1 ns 2 ns 3 parsecs]\n" +
		"Fib 100 2 7.1 ms\n"
	f, rs, err := Probe(input)
	if err == nil {
		t.Fatalf("got %v with %d results, want error", f, rs.Len())
	}
	var perr *ProbeError
	if !errors.As(err, &perr) {
		t.Fatalf("want *ProbeError, got %T: %v", err, err)
	}
	if len(perr.Errs) != len(ProbeOrder) {
		t.Fatalf("got %d errors, want %d: %v", len(perr.Errs), len(ProbeOrder), err)
	}
	for i, e := range perr.Errs {
		if e.Format != ProbeOrder[i] {
			t.Errorf("error %d is from %v, want %v", i, e.Format, ProbeOrder[i])
		}
	}
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Format != ProbeOrder[0] {
		t.Errorf("errors.As found %v, want the %v error", aerr, ProbeOrder[0])
	}
	if !strings.HasPrefix(err.Error(), "no adapter could parse input\n\t") {
		t.Errorf("unexpected message %q", err)
	}
}

func TestErrorString(t *testing.T) {
	for _, test := range []struct {
		err  *Error
		want string
	}{
		{&Error{Format: CppGoogle, Kind: Deserialization, Index: -1, Err: errMissing("benchmarks")},
			`cpp_google: deserialization error: missing field "benchmarks"`},
		{&Error{Format: JSON, Kind: DuplicateName, Index: 2, Name: "a", Err: &benchresult.DuplicateNameError{Name: "a"}},
			`json: benchmark 2 ("a"): duplicate name error: ` + (&benchresult.DuplicateNameError{Name: "a"}).Error()},
		{&Error{Format: PythonPytest, Kind: Deserialization, Index: 0, Err: errMissing("name")},
			`python_pytest: benchmark 0: deserialization error: missing field "name"`},
	} {
		if got := test.err.Error(); got != test.want {
			t.Errorf("got %q, want %q", got, test.want)
		}
	}
}

func TestConcurrentParse(t *testing.T) {
	inputs := map[Format]string{
		CppGoogle:     readTestdata(t, CppGoogle, "two.json"),
		RustCriterion: readTestdata(t, RustCriterion, "many.txt"),
		GoBench:       readTestdata(t, GoBench, "two.txt"),
		JavaJMH:       readTestdata(t, JavaJMH, "two.json"),
	}
	var wg sync.WaitGroup
	errc := make(chan error, 2*8*len(inputs))
	for i := 0; i < 8; i++ {
		for f, input := range inputs {
			wg.Add(1)
			go func(f Format, input string) {
				defer wg.Done()
				if _, err := Parse(f, input); err != nil {
					errc <- err
				}
				if _, _, err := Probe(input); err != nil {
					errc <- err
				}
			}(f, input)
		}
	}
	wg.Wait()
	close(errc)
	for err := range errc {
		t.Error(err)
	}
}
