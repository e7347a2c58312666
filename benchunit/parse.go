// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"strings"
	"unicode"
)

// SplitUnit splits a compound unit such as "ns/op" into its numerator
// and denominator. A unit with no "/" has an empty denominator. Only
// the first "/" is significant, so "B/op/s" splits into "B" and "op/s".
func SplitUnit(unit string) (num, denom string) {
	num, denom, _ = strings.Cut(unit, "/")
	return num, denom
}

type parser struct {
	rest string // unparsed unit
	rpos int    // byte consumed from original unit

	// Current token
	tok   string
	pos   int  // byte offset of tok in original unit
	denom bool // current token is in denominator
}

func newParser(unit string) *parser {
	return &parser{rest: unit}
}

// next advances to the next token of the unit. Tokens are separated by
// "-", "*", "/" or white space; a "/" moves the parser into the
// denominator and a "*" moves it back.
func (p *parser) next() bool {
	for i, r := range p.rest {
		if r == '*' {
			p.denom = false
		} else if r == '/' {
			p.denom = true
		} else if !(r == '-' || unicode.IsSpace(r)) {
			p.rpos += i
			p.rest = p.rest[i:]
			goto tok
		}
	}
	// End of string.
	p.rest = ""
	return false

tok:
	end := len(p.rest)
	for i, r := range p.rest {
		if r == '*' || r == '/' || r == '-' || unicode.IsSpace(r) {
			end = i
			break
		}
	}
	p.tok = p.rest[:end]
	p.pos = p.rpos
	p.rpos += end
	p.rest = p.rest[end:]
	return true
}
