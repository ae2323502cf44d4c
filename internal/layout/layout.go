// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout formats and parses the numeric layouts used for ISO dates
// and period identifiers.
//
// A layout is a string in which the following components are replaced by the
// corresponding field of a [Fields] value; everything else is a literal:
//
//	Year: "2006" (four digits, zero padded)
//	Month: "01" (two digits)
//	Day of the month: "02" (two digits)
//	Ordinal: "##" (zero padded to two digits), "#" (not padded)
//
// The ordinal is the number of a period within its year, such as the week,
// quarter or half year. Both ordinal components accept one or two digits when
// parsing.
//
// Layouts carry no calendar knowledge: Parse checks the syntax and the ranges
// any calendar allows (months in [1,13], days in [1,32]), and leaves it to
// the caller to validate the result against a calendar.
package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gonih.org/calendar/internal/cache"
)

// Layouts for dates.
const (
	ISODate  = "2006-01-02"
	ISOBasic = "20060102"
)

// maxDay is the longest month of any supported calendar, a Nepali month of
// 32 days.
const maxDay = 32

// Fields are the numeric components of a formatted value. After parsing,
// components that do not appear in the layout are -1, except for Year, which
// is 0.
type Fields struct {
	Year    int
	Month   int
	Day     int
	Ordinal int
}

// inst is a single component of a layout string, either a literal string, or a
// formatting operator.
type inst struct {
	op  fmtOp
	lit string
}

// String implements fmt.Stringer, for debugging
func (i inst) String() string {
	if i.op == opLiteral {
		return i.lit
	}
	return i.op.String()
}

// fmtOp is a formatting operator.
type fmtOp int

const (
	opLiteral fmtOp = iota

	// Sorted by parsing preference, do not re-order!
	opLongYear
	opZeroMonth
	opZeroDay
	opZeroOrdinal
	opOrdinal

	opInvalid
)

// String implements fmt.Stringer. Except for opLiteral, it returns the layout
// component of the operator.
func (op fmtOp) String() string {
	switch op {
	case opLiteral:
		return "<literal>"
	case opLongYear:
		return "2006"
	case opZeroMonth:
		return "01"
	case opZeroDay:
		return "02"
	case opZeroOrdinal:
		return "##"
	case opOrdinal:
		return "#"
	}
	panic("invalid fmtOp")
}

// memoize compiled layout strings.
var memo cache.Cache[string, []inst]

// parseLayout parses layout into a set of instructions to parse or format
// according to it.
func parseLayout(layout string) []inst {
	var prog []inst
	for len(layout) > 0 {
		prefix, op, suffix := nextOp(layout)
		if prefix != "" {
			prog = append(prog, inst{lit: prefix})
		}
		if op != opLiteral {
			prog = append(prog, inst{op: op})
		}
		layout = suffix
	}
	return prog
}

// nextOp decomposes layout into the next operator, a literal prefix and the
// rest of the layout.
func nextOp(layout string) (prefix string, op fmtOp, suffix string) {
	for i := 0; i < len(layout); i++ {
		for op := opLongYear; op < opInvalid; op++ {
			if suffix, ok := strings.CutPrefix(layout[i:], op.String()); ok {
				return layout[:i], op, suffix
			}
		}
	}
	return layout, opLiteral, ""
}

// Format returns a textual representation of f according to layout.
func Format(layout string, f Fields) string {
	const bufSize = 32
	var b []byte
	n := len(layout) + 10
	if n < bufSize {
		var buf [bufSize]byte
		b = buf[:0]
	} else {
		b = make([]byte, 0, n)
	}
	return string(AppendFormat(b, layout, f))
}

// AppendFormat is like Format but appends the textual representation to b and
// returns the extended buffer.
func AppendFormat(b []byte, layout string, f Fields) []byte {
	prog := memo.Get(layout, parseLayout)

	for _, i := range prog {
		switch i.op {
		case opLiteral:
			b = append(b, i.lit...)
		case opLongYear:
			y := f.Year
			if y < 0 {
				b = append(b, '-')
				y = -y
			}
			if y < 1000 {
				b = append(b, '0')
			}
			if y < 100 {
				b = append(b, '0')
			}
			if y < 10 {
				b = append(b, '0')
			}
			b = strconv.AppendInt(b, int64(y), 10)
		case opZeroMonth:
			b = appendZero(b, f.Month)
		case opZeroDay:
			b = appendZero(b, f.Day)
		case opZeroOrdinal:
			b = appendZero(b, f.Ordinal)
		case opOrdinal:
			b = strconv.AppendInt(b, int64(f.Ordinal), 10)
		default:
			panic(errors.New("invalid inst " + i.String()))
		}
	}
	return b
}

// appendZero appends v, zero padded to two digits.
func appendZero(b []byte, v int) []byte {
	if 0 <= v && v < 10 {
		b = append(b, '0')
	}
	return strconv.AppendInt(b, int64(v), 10)
}

// Parse parses a formatted string and returns the fields it represents. The
// value must match layout exactly; there is no normalization.
func Parse(layout, value string) (Fields, error) {
	p := newParser(value)
	var (
		// kept around for error reporting
		alayout, avalue = layout, value
		f               = Fields{Month: -1, Day: -1, Ordinal: -1}
	)

	prog := memo.Get(layout, parseLayout)

	// Execute the parsing instructions
	for _, i := range prog {
		p.setInst(i)
		switch i.op {
		case opLiteral:
			p.accept(i.lit)
		case opLongYear:
			p.peekDigit()
			f.Year = p.atoi(4)
		case opZeroMonth:
			f.Month = p.num(true)
			if !p.hasErr && (f.Month <= 0 || 13 < f.Month) {
				return Fields{}, p.err(alayout, avalue, "month out of range")
			}
		case opZeroDay:
			f.Day = p.num(true)
			if !p.hasErr && (f.Day <= 0 || maxDay < f.Day) {
				return Fields{}, p.err(alayout, avalue, "day out of range")
			}
		case opZeroOrdinal, opOrdinal:
			f.Ordinal = p.num(false)
			if !p.hasErr && f.Ordinal <= 0 {
				return Fields{}, p.err(alayout, avalue, "ordinal out of range")
			}
		default:
			panic(errors.New("invalid inst " + i.String()))
		}
		if p.hasErr {
			return Fields{}, p.err(alayout, avalue, "")
		}
	}
	if len(p.value) > 0 {
		return Fields{}, p.err(alayout, avalue, "extra text: "+strconv.Quote(p.value))
	}
	return f, nil
}

func isDigit(s string, i int) bool {
	if len(s) <= i {
		return false
	}
	return '0' <= s[i] && s[i] <= '9'
}

type parser struct {
	inst   inst
	hasErr bool
	value  string
	valEl  string
}

func newParser(value string) *parser {
	return &parser{
		value: value,
	}
}

// setInst sets the current instruction and input offset for error reporting.
func (p *parser) setInst(i inst) {
	p.inst = i
	p.valEl = p.value
}

// parseFailed signals that the parse has failed at the current instruction.
func (p *parser) parseFailed() {
	p.hasErr = true
}

func (p *parser) err(layout, value, msg string) error {
	// Inputs are cloned so that the happy path does not make the value
	// escape.
	v := strings.Clone(value)
	if msg == "" {
		return &ParseError{
			Layout:     layout,
			Value:      v,
			LayoutElem: strings.Clone(p.inst.String()),
			ValueElem:  strings.Clone(p.valEl),
		}
	}
	return &ParseError{
		Layout:  layout,
		Value:   v,
		Message: msg,
	}
}

// accept a literal string.
func (p *parser) accept(lit string) {
	if !strings.HasPrefix(p.value, lit) {
		p.parseFailed()
		return
	}
	p.value = p.value[len(lit):]
}

// atoi accepts the next i bytes of input as an integer.
func (p *parser) atoi(i int) int {
	if len(p.value) < i {
		p.parseFailed()
		return 0
	}
	v, err := strconv.Atoi(p.value[:i])
	if err != nil {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	return v
}

// num parses s[:1] or s[:2] (fixed forces s[:2]) as a decimal integer.
func (p *parser) num(fixed bool) int {
	var n, i int
	for i = 0; i < 2 && isDigit(p.value, i); i++ {
		n = n*10 + int(p.value[i]-'0')
	}
	if i == 0 || (fixed && i != 2) {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	return n
}

// peekDigit ensures that the current value starts with a digit, without
// advancing the input.
func (p *parser) peekDigit() {
	if !isDigit(p.value, 0) {
		p.parseFailed()
	}
}

// ParseError describes a problem parsing a formatted value.
type ParseError struct {
	Layout     string
	Value      string
	LayoutElem string
	ValueElem  string
	Message    string
}

// Error returns the string representation of a ParseError.
func (e *ParseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("parsing %q as %q: cannot parse %q as %q", e.Value, e.Layout, e.ValueElem, e.LayoutElem)
	}
	return fmt.Sprintf("parsing %q: %s", e.Value, e.Message)
}
