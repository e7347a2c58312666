// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchnorm reads the output of benchmarking tools and prints the
// normalized results: every benchmark's time in nanoseconds, with any
// bounds the tool reported.
//
// Usage:
//
//	benchnorm [-adapter name] [-format json|text|table] [-chart file.png] [file...]
//
// If no files are given, benchnorm reads from standard input.
//
// By default benchnorm detects the tool that produced each input. The
// -adapter flag names the tool instead; the accepted names are
// printed by -help.
//
// The -format flag selects the output:
//
//	json   one JSON object per input, mapping names to metrics
//	text   the Go benchmark format, readable by benchstat
//	table  an aligned table with a common time unit per input
//
// With -chart, benchnorm also draws a bar chart of its single input
// as a PNG image.
//
// Benchnorm exits with status 1 if any input fails to parse.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/perfdata/benchnorm/adapter"
	"github.com/perfdata/benchnorm/benchchart"
	"github.com/perfdata/benchnorm/benchfmt"
	"github.com/perfdata/benchnorm/benchresult"
	"github.com/perfdata/benchnorm/benchunit"
	"github.com/shopspring/decimal"
)

// errFailed reports that some input could not be parsed. The
// details have already been written to stderr.
var errFailed = errors.New("some inputs failed to parse")

// errUsage reports bad command-line arguments.
var errUsage = errors.New("usage")

func main() {
	log.SetPrefix("benchnorm: ")
	log.SetFlags(0)

	switch err := benchnorm(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err {
	case nil:
	case errUsage:
		os.Exit(2)
	case errFailed:
		os.Exit(1)
	default:
		log.Fatal(err)
	}
}

// An input is one file to normalize.
type input struct {
	name string
	data []byte
}

func benchnorm(stdin io.Reader, w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("benchnorm", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(wErr, "usage: benchnorm [flags] [file...]\n")
		flags.PrintDefaults()
		var names []string
		for _, f := range adapter.Formats() {
			names = append(names, f.String())
		}
		fmt.Fprintf(wErr, "\nadapters: %s\n", strings.Join(names, ", "))
	}
	flagAdapter := flags.String("adapter", "magic", "parse inputs with adapter `name`")
	flagFormat := flags.String("format", "json", "print results as `format`: json, text or table")
	flagChart := flags.String("chart", "", "draw a bar chart of the results to PNG `file`")
	if err := flags.Parse(args); err != nil {
		return errUsage
	}

	f, err := adapter.ParseFormat(*flagAdapter)
	if err != nil {
		fmt.Fprintln(wErr, err)
		flags.Usage()
		return errUsage
	}
	var printResults func(io.Writer, []parsed) error
	switch *flagFormat {
	case "json":
		printResults = printJSON
	case "text":
		printResults = printText
	case "table":
		printResults = printTable
	default:
		fmt.Fprintf(wErr, "unknown format %q\n", *flagFormat)
		flags.Usage()
		return errUsage
	}
	if *flagChart != "" && flags.NArg() > 1 {
		fmt.Fprintf(wErr, "-chart requires a single input\n")
		return errUsage
	}

	inputs, err := readInputs(stdin, flags.Args())
	if err != nil {
		return err
	}

	var out []parsed
	failed := false
	for _, in := range inputs {
		p, err := parse(f, in)
		if err != nil {
			fmt.Fprintf(wErr, "%s: %v\n", in.name, err)
			failed = true
			continue
		}
		out = append(out, p)
	}

	var buf bytes.Buffer
	if err := printResults(&buf, out); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	if failed {
		return errFailed
	}

	if *flagChart != "" {
		return writeChart(*flagChart, out[0])
	}
	return nil
}

func readInputs(stdin io.Reader, paths []string) ([]input, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return []input{{"<stdin>", data}}, nil
	}
	var inputs []input
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{path, data})
	}
	return inputs, nil
}

// parsed is the normalized form of one input.
type parsed struct {
	name    string
	format  adapter.Format // never Magic
	results *benchresult.Results
}

// parse parses in with f. If f is Magic, the detected format is
// recorded instead.
func parse(f adapter.Format, in input) (parsed, error) {
	p := parsed{name: in.name, format: f}
	var err error
	if f != adapter.Magic || !utf8.Valid(in.data) {
		p.results, err = adapter.ParseBytes(f, in.data)
	} else {
		p.format, p.results, err = adapter.Probe(string(in.data))
	}
	return p, err
}

func printJSON(w io.Writer, ps []parsed) error {
	for _, p := range ps {
		b, err := json.Marshal(p.results)
		if err != nil {
			return err
		}
		w.Write(b)
		fmt.Fprintln(w)
	}
	return nil
}

func printText(w io.Writer, ps []parsed) error {
	bw := benchfmt.NewWriter(w)
	for _, p := range ps {
		for _, res := range benchfmt.FromResults(p.results, "file", p.name, "adapter", p.format.String()) {
			if err := bw.Write(res); err != nil {
				return err
			}
		}
	}
	return nil
}

func printTable(w io.Writer, ps []parsed) error {
	for i, p := range ps {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "file: %s\nadapter: %s\n\n", p.name, p.format)

		entries := p.results.Entries()
		var vals []decimal.Decimal
		for _, e := range entries {
			vals = append(vals, e.Metric.Value)
		}
		scale := benchunit.CommonScale(vals)
		bound := func(d decimal.NullDecimal) string {
			if !d.Valid {
				return "-"
			}
			return scale.Format(d.Decimal)
		}

		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		fmt.Fprintf(tw, "name\ttime/op\tlower\tupper\n")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, scale.Format(e.Metric.Value), bound(e.Metric.Lower), bound(e.Metric.Upper))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func writeChart(path string, p parsed) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := benchchart.WritePNG(f, p.results, p.name); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
