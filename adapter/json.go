// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/perfdata/benchnorm/benchresult"
	"github.com/shopspring/decimal"
)

// jsonAdapter parses normalized results:
//
//	{"fib_10": {"value": 214.9, "lower_value": 210, "upper_value": 220}}
//
// Values are in nanoseconds. The bounds are optional.
type jsonAdapter struct{}

type jsonMetric struct {
	Value      *decimal.Decimal `json:"value"`
	LowerValue *decimal.Decimal `json:"lower_value"`
	UpperValue *decimal.Decimal `json:"upper_value"`
}

func (jsonAdapter) Parse(input string) (*benchresult.Results, error) {
	// The object is read a token at a time, since the order of its
	// keys is the order of the results.
	dec := json.NewDecoder(strings.NewReader(input))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, deserializeError(JSON, err)
	}
	var pairs []benchresult.Pair
	for i := 0; dec.More(); i++ {
		tok, err := dec.Token()
		if err != nil {
			return nil, deserializeError(JSON, err)
		}
		name := tok.(string) // object keys are always strings
		var m jsonMetric
		if err := dec.Decode(&m); err != nil {
			return nil, &Error{Format: JSON, Kind: Deserialization, Index: i, Name: name, Err: err}
		}
		if m.Value == nil {
			return nil, missingField(JSON, i, name, "value")
		}
		metric := benchresult.NewMetric(*m.Value)
		if m.LowerValue != nil {
			metric.Lower = decimal.NewNullDecimal(*m.LowerValue)
		}
		if m.UpperValue != nil {
			metric.Upper = decimal.NewNullDecimal(*m.UpperValue)
		}
		pairs = append(pairs, benchresult.Pair{Name: name, Metric: metric})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, deserializeError(JSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("invalid character after top-level value")
		}
		return nil, deserializeError(JSON, err)
	}
	return fromPairs(JSON, pairs)
}

// expectDelim reads the next token from dec and checks that it is d.
func expectDelim(dec *json.Decoder, d json.Delim) error {
	tok, err := dec.Token()
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	if err != nil {
		return err
	}
	if tok != d {
		return fmt.Errorf("expected %q, found %v", rune(d), tok)
	}
	return nil
}
