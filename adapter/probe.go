// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"strings"

	"github.com/perfdata/benchnorm/benchresult"
)

// ProbeOrder is the order in which Probe tries formats. JSON formats
// come first, most specific schema first, followed by the text
// formats.
var ProbeOrder = []Format{
	CppGoogle,
	CSharpDotNet,
	PythonPytest,
	ShellHyperfine,
	JavaJMH,
	JSON,
	GoBench,
	RustBench,
	RustCriterion,
	CppCatch2,
}

// Probe parses input with each format in ProbeOrder and returns the
// first format that yields at least one result. Text formats accept
// almost anything and return no results for input that isn't theirs,
// so if no format yields a result, Probe returns the first format that
// parsed input without error. If every format fails, it returns a
// *ProbeError.
func Probe(input string) (Format, *benchresult.Results, error) {
	var (
		empty      *benchresult.Results
		emptyFmt   Format
		haveEmpty  bool
		probeError ProbeError
	)
	for _, f := range ProbeOrder {
		rs, err := Parse(f, input)
		if err != nil {
			probeError.Errs = append(probeError.Errs, err.(*Error))
			continue
		}
		if rs.Len() > 0 {
			return f, rs, nil
		}
		if !haveEmpty {
			empty, emptyFmt, haveEmpty = rs, f, true
		}
	}
	if haveEmpty {
		return emptyFmt, empty, nil
	}
	return Magic, nil, &probeError
}

// A ProbeError reports that no format could parse an input.
type ProbeError struct {
	// Errs has the error from each format, in ProbeOrder.
	Errs []*Error
}

func (e *ProbeError) Error() string {
	var b strings.Builder
	b.WriteString("no adapter could parse input")
	for _, err := range e.Errs {
		b.WriteString("\n\t")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *ProbeError) Unwrap() []error {
	errs := make([]error, len(e.Errs))
	for i, err := range e.Errs {
		errs[i] = err
	}
	return errs
}
