// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"errors"
	"strings"
	"testing"

	"gonih.org/set"
)

var layouts = []string{
	ISODate,
	ISOBasic,
	"200601",
	"2006W##",
	"2006WedW##",
	"2006BiW##",
	"2006##B",
	"2006Q#",
	"2006S#",
	"2006AprilS#",
	"2006",
	"2006April",
	"2006July",
	"2006Oct",
}

// FuzzParseLayout generates layouts to check that [parseLayout] does not
// panic and loses nothing of the layout.
func FuzzParseLayout(f *testing.F) {
	for _, l := range layouts {
		f.Add(l)
	}
	f.Fuzz(func(t *testing.T, s string) {
		var b strings.Builder
		for _, i := range parseLayout(s) {
			b.WriteString(i.String())
		}
		if got := b.String(); got != s {
			t.Errorf("parseLayout(%q) renders as %q", s, got)
		}
	})
}

// FuzzFormat generates layouts and fields to check that [Format] does not
// panic.
func FuzzFormat(f *testing.F) {
	for _, l := range layouts {
		f.Add(l, 2014, 4, 14, 16)
	}
	f.Fuzz(func(t *testing.T, layout string, year, month, day, ordinal int) {
		Format(layout, Fields{Year: year, Month: month, Day: day, Ordinal: ordinal})
	})
}

// FuzzParse generates layouts and values to check that Parse does not panic.
func FuzzParse(f *testing.F) {
	for _, l := range layouts {
		f.Add(l, l)
	}
	f.Fuzz(func(t *testing.T, layout, value string) {
		Parse(layout, value)
	})
}

// FuzzRoundTrip checks that values formatted with a generated layout parse
// back into the same fields.
func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{byte(opLongYear), byte(opLiteral), 1, 'W', byte(opZeroOrdinal)}, 2014, 4, 14, 7)
	f.Fuzz(func(t *testing.T, progBytes []byte, year, month, day, ordinal int) {
		layout, ok := decodeProg(progBytes)
		if !ok {
			return
		}
		if year < 0 || year > 9999 || month < 1 || month > 13 || day < 1 || day > maxDay || ordinal < 1 || ordinal > 99 {
			return
		}
		want := Fields{Year: year, Month: month, Day: day, Ordinal: ordinal}
		s := Format(layout, want)
		got, err := Parse(layout, s)
		if err != nil {
			t.Fatalf("Parse(%q, %q) = _, %v, want <nil>", layout, s, err)
		}
		for _, i := range parseLayout(layout) {
			switch i.op {
			case opLongYear:
				if got.Year != want.Year {
					t.Fatalf("Parse(%q, %q).Year = %d, want %d", layout, s, got.Year, want.Year)
				}
			case opZeroMonth:
				if got.Month != want.Month {
					t.Fatalf("Parse(%q, %q).Month = %d, want %d", layout, s, got.Month, want.Month)
				}
			case opZeroDay:
				if got.Day != want.Day {
					t.Fatalf("Parse(%q, %q).Day = %d, want %d", layout, s, got.Day, want.Day)
				}
			case opZeroOrdinal, opOrdinal:
				if got.Ordinal != want.Ordinal {
					t.Fatalf("Parse(%q, %q).Ordinal = %d, want %d", layout, s, got.Ordinal, want.Ordinal)
				}
			}
		}
	})
}

func TestFormat(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		layout string
		fields Fields
		want   string
	}{
		{ISODate, Fields{Year: 2014, Month: 4, Day: 14}, "2014-04-14"},
		{ISOBasic, Fields{Year: 2071, Month: 1, Day: 1}, "20710101"},
		{"200601", Fields{Year: 2007, Month: 13}, "200713"},
		{"2006W##", Fields{Year: 2014, Ordinal: 1}, "2014W01"},
		{"2006W##", Fields{Year: 2014, Ordinal: 52}, "2014W52"},
		{"2006##B", Fields{Year: 2010, Ordinal: 1}, "201001B"},
		{"2006Q#", Fields{Year: 1383, Ordinal: 4}, "1383Q4"},
		{"2006AprilS#", Fields{Year: 2014, Ordinal: 2}, "2014AprilS2"},
		{"2006July", Fields{Year: 2014}, "2014July"},
		{"2006", Fields{Year: 2}, "0002"},
		{"2006", Fields{Year: 420}, "0420"},
		{ISODate, Fields{Year: -23, Month: 10, Day: 25}, "-0023-10-25"},
	}
	for _, tc := range tcs {
		if got := Format(tc.layout, tc.fields); got != tc.want {
			t.Errorf("Format(%q, %+v) = %q, want %q", tc.layout, tc.fields, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		layout string
		value  string
		want   Fields
		ok     bool
	}{
		{ISODate, "2014-04-14", Fields{Year: 2014, Month: 4, Day: 14, Ordinal: -1}, true},
		{ISODate, "2007-13-05", Fields{Year: 2007, Month: 13, Day: 5, Ordinal: -1}, true},
		{ISODate, "2014-4-14", Fields{}, false},
		{ISODate, "2014-14-01", Fields{}, false},
		{ISODate, "2014-00-01", Fields{}, false},
		{ISODate, "2066-04-32", Fields{Year: 2066, Month: 4, Day: 32, Ordinal: -1}, true},
		{ISOBasic, "20660432", Fields{Year: 2066, Month: 4, Day: 32, Ordinal: -1}, true},
		{ISODate, "2014-01-33", Fields{}, false},
		{ISODate, "2014-01-00", Fields{}, false},
		{ISODate, "2014 01 01", Fields{}, false},
		{ISODate, "2014-01-01foo", Fields{}, false},
		{ISOBasic, "20140101", Fields{Year: 2014, Month: 1, Day: 1, Ordinal: -1}, true},
		{"200601", "201401", Fields{Year: 2014, Month: 1, Day: -1, Ordinal: -1}, true},
		{"200601", "20140101", Fields{}, false},
		{"200601", "20141", Fields{}, false},
		{"2006W##", "2014W1", Fields{Year: 2014, Month: -1, Day: -1, Ordinal: 1}, true},
		{"2006W##", "2014W01", Fields{Year: 2014, Month: -1, Day: -1, Ordinal: 1}, true},
		{"2006W##", "2014W53", Fields{Year: 2014, Month: -1, Day: -1, Ordinal: 53}, true},
		{"2006W##", "2014W0", Fields{}, false},
		{"2006W##", "2014W", Fields{}, false},
		{"2006W##", "2014W123", Fields{}, false},
		{"2006WedW##", "2014W1", Fields{}, false},
		{"2006##B", "201406B", Fields{Year: 2014, Month: -1, Day: -1, Ordinal: 6}, true},
		{"2006Q#", "2014Q3", Fields{Year: 2014, Month: -1, Day: -1, Ordinal: 3}, true},
		{"2006Q#", "2014S3", Fields{}, false},
		{"2006April", "2014April", Fields{Year: 2014, Month: -1, Day: -1, Ordinal: -1}, true},
		{"2006", "14", Fields{}, false},
		{"2006", "foobar", Fields{}, false},
		{"", "", Fields{Month: -1, Day: -1, Ordinal: -1}, true},
	}
	for _, tc := range tcs {
		got, err := Parse(tc.layout, tc.value)
		if tc.ok != (err == nil) {
			t.Errorf("Parse(%q, %q) = %+v, %v, want ok=%v", tc.layout, tc.value, got, err, tc.ok)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("Parse(%q, %q) = %+v, want %+v", tc.layout, tc.value, got, tc.want)
		}
	}
}

func TestParseError(t *testing.T) {
	_, err := Parse("2006Q#", "2014X1")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse returned %T, want *ParseError", err)
	}
	if pe.LayoutElem != "Q" || pe.ValueElem != "X1" {
		t.Errorf("ParseError = %+v, want element %q at %q", pe, "Q", "X1")
	}
	if got, want := err.Error(), `parsing "2014X1" as "2006Q#": cannot parse "X1" as "Q"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// TestParseAllocs checks that Parse does not allocate in the happy path.
func TestParseAllocs(t *testing.T) {
	parseHappy() // make sure the layout is memoized
	if got := testing.AllocsPerRun(1000, parseHappy); got != 0 {
		t.Fatalf("Parse allocates %v times, want 0", got)
	}
}

// BenchmarkParseHappy benchmarks (and counts allocations) of Parse in the
// happy path.
func BenchmarkParseHappy(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		parseHappy()
	}
}

func parseHappy() {
	_, _ = Parse("2006WedW##", "2023WedW45")
}

// decodeProg tries to parse b into a layout for use in fuzzing, with a simple
// format. It makes sure that literals can not be confused with operators.
//
// The format consists of a sequence of encoded inst. The first byte is the
// fmtOp value (and must be in range). If the fmtOp is opLiteral, it must be
// followed by the literal, prefixed with a one-byte length. Two operators must
// be separated by a literal.
func decodeProg(b []byte) (string, bool) {
	layout := new(strings.Builder)
	lastOp := false
	for len(b) > 0 {
		var (
			op  fmtOp
			n   int
			lit string
		)
		op, b = fmtOp(b[0]), b[1:]
		if op < 0 || op >= opInvalid {
			return "", false
		}
		if op != opLiteral {
			if lastOp {
				return "", false
			}
			layout.WriteString(op.String())
			lastOp = true
			continue
		}
		if len(b) == 0 {
			return "", false
		}
		n, b = int(b[0]), b[1:]
		if n == 0 || n > len(b) {
			return "", false
		}
		lit, b = string(b[:n]), b[n:]
		for s := range opChars {
			if strings.Contains(lit, s) {
				return "", false
			}
		}
		layout.WriteString(lit)
		lastOp = false
	}
	return layout.String(), true
}

// opChars are characters that operators consist of or that parse as part of
// a number.
var opChars = set.Make("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "#", "-", "+")
