// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"strings"
	"testing"
)

func TestCppCatch2(t *testing.T) {
	rs := parseTestdata(t, CppCatch2, "two.txt")
	checkResults(t, rs, []wantMetric{
		{"Fibonacci 10", "344.096", "341.937", "347.6"},
		{"Fibonacci 20", "41731", "41250", "42622"},
	})
}

func TestCppCatch2Errors(t *testing.T) {
	const header = "benchmark name                       samples       iterations    estimated\n" +
		"                                     mean          low mean      high mean\n" +
		"                                     std dev       low std dev   high std dev\n" +
		"-------------------------------------------------------------------------------\n"
	for _, test := range []struct {
		name  string
		input string
		kind  Kind
	}{
		{"missing mean line", header + "Fib 10     100     208     7.1968 ms", Deserialization},
		{"malformed mean line", header + "Fib 10     100     208     7.1968 ms\n    344.096 ns    341.937 ns\n", Deserialization},
		{"bad unit", header + "Fib 10     100     208     7.1968 ms\n    344.096 ns    341.937 ns    347.6 ks\n", Unit},
		{"bad number", header + "Fib 10     100     208     7.1968 ms\n    344.0.96 ns    341.937 ns    347.6 ns\n", Deserialization},
		{"bounds", header + "Fib 10     100     208     7.1968 ms\n    344.096 ns    345 ns    347.6 ns\n", Bounds},
		{"duplicate", header +
			"Fib 10     100     208     7.1968 ms\n    344.096 ns    341.937 ns    347.6 ns\n    1 ns    1 ns    1 ns\n" +
			"Fib 10     100     208     7.1968 ms\n    344.096 ns    341.937 ns    347.6 ns\n    1 ns    1 ns    1 ns\n",
			DuplicateName},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(CppCatch2, test.input)
			checkError(t, err, test.kind)
		})
	}
}

func TestCppCatch2NoHeader(t *testing.T) {
	// Without a header, a line that happens to look like a result
	// is not one.
	rs, err := Parse(CppCatch2, "Found 3 2 bugs today\n")
	if err != nil {
		t.Fatal(err)
	}
	if rs.Len() != 0 {
		t.Errorf("got %d results, want 0", rs.Len())
	}
}

func TestGoBench(t *testing.T) {
	rs := parseTestdata(t, GoBench, "two.txt")
	checkResults(t, rs, []wantMetric{
		{"BenchmarkFib10-8", "275.3", "", ""},
		{"BenchmarkFib20-8", "33624", "", ""},
	})
}

func TestGoBenchEdges(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		want  []wantMetric
	}{
		{"tidied", "BenchmarkA 1 2.5 us/op\nBenchmarkB 1 3 sec/op\n",
			[]wantMetric{{"BenchmarkA", "2500", "", ""}, {"BenchmarkB", "3000000000", "", ""}}},
		{"bounds", "BenchmarkA 1 10 ns/op 9 lower-ns/op 11 upper-ns/op\n",
			[]wantMetric{{"BenchmarkA", "10", "9", "11"}}},
		{"no time", "BenchmarkA 1 20 MB/s\nBenchmarkB 1 5 ns/op\n",
			[]wantMetric{{"BenchmarkB", "5", "", ""}}},
		{"verbose", "=== RUN   BenchmarkA\nBenchmarkA\nBenchmarkA-4 100 7 ns/op\n--- BENCH: BenchmarkA-4\n",
			[]wantMetric{{"BenchmarkA-4", "7", "", ""}}},
		{"sub-benchmarks", "BenchmarkSort/size=10-8 100 1 ns/op\nBenchmarkSort/size=100-8 100 10 ns/op\n",
			[]wantMetric{{"BenchmarkSort/size=10-8", "1", "", ""}, {"BenchmarkSort/size=100-8", "10", "", ""}}},
	} {
		t.Run(test.name, func(t *testing.T) {
			rs, err := Parse(GoBench, test.input)
			if err != nil {
				t.Fatal(err)
			}
			checkResults(t, rs, test.want)
		})
	}
}

func TestGoBenchErrors(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		kind  Kind
	}{
		{"syntax", "BenchmarkA 1 fast ns/op\n", Deserialization},
		{"missing units", "BenchmarkA 1 1\n", Deserialization},
		{"duplicate", "BenchmarkA 1 1 ns/op\nBenchmarkA 1 2 ns/op\n", DuplicateName},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(GoBench, test.input)
			checkError(t, err, test.kind)
		})
	}

	_, err := Parse(GoBench, "goos: linux\nBenchmarkA 1 fast ns/op\n")
	if err == nil || !strings.Contains(err.Error(), "input:2: parsing measurement") {
		t.Errorf("want error at line 2, got %v", err)
	}
}

func TestRustBench(t *testing.T) {
	rs := parseTestdata(t, RustBench, "many.txt")
	checkResults(t, rs, []wantMetric{
		{"tests::bench_add_two", "0", "0", "0"},
		{"tests::bench_fib_10", "32", "30", "34"},
		{"tests::bench_fib_20", "3370", "3253", "3487"},
		{"tests::bench_fib_30", "414534", "402189", "426879"},
	})
}

func TestRustBenchEdges(t *testing.T) {
	rs, err := Parse(RustBench, "test a ... bench:        1.25 ns/iter (+/- 0.05)\ntest b ... FAILED\ntest c ... ok\n")
	if err != nil {
		t.Fatal(err)
	}
	checkResults(t, rs, []wantMetric{{"a", "1.25", "1.2", "1.3"}})
}

func TestRustBenchErrors(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		kind  Kind
	}{
		{"malformed", "test a ... bench: fast\n", Deserialization},
		{"bad unit", "test a ... bench: 1 ks/iter (+/- 0)\n", Unit},
		{"duplicate", "test a ... bench: 1 ns/iter (+/- 0)\ntest a ... bench: 1 ns/iter (+/- 0)\n", DuplicateName},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(RustBench, test.input)
			checkError(t, err, test.kind)
		})
	}
}

func TestRustCriterion(t *testing.T) {
	rs := parseTestdata(t, RustCriterion, "many.txt")
	checkResults(t, rs, []wantMetric{
		{"fib 10", "23.918", "23.880", "23.963"},
		{"fib 20", "22873", "22785", "22974"},
		{"a_very_long_benchmark_name_that_overflows_the_column", "1250000", "1000000", "1500000"},
		{"sleep", "1002000000", "1001000000", "1003000000"},
	})
}

func TestRustCriterionUnits(t *testing.T) {
	rs, err := Parse(RustCriterion, "a time: [500 ps 600 ps 700 ps]\nb time: [1.5 us 2 μs 2.5 µs]\n")
	if err != nil {
		t.Fatal(err)
	}
	checkResults(t, rs, []wantMetric{
		{"a", "0.6", "0.5", "0.7"},
		{"b", "2000", "1500", "2500"},
	})
}

func TestRustCriterionErrors(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		kind  Kind
	}{
		{"bad unit", "a time: [1 ns 2 ns 3 parsecs]\n", Unit},
		{"bad number", "a time: [1 ns two ns 3 ns]\n", Deserialization},
		{"no name", "             time: [1 ns 2 ns 3 ns]\n", Validation},
		{"bounds", "a time: [3 ns 2 ns 1 ns]\n", Bounds},
		{"duplicate", "a time: [1 ns 2 ns 3 ns]\na time: [1 ns 2 ns 3 ns]\n", DuplicateName},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(RustCriterion, test.input)
			checkError(t, err, test.kind)
		})
	}
}
