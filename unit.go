// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"cmp"
	"fmt"

	"gonih.org/calendar/internal/layout"
)

// A DateTimeUnit is a date in either the ISO 8601 calendar or in the local
// calendar of whichever Calendar produced it.
//
// A DateTimeUnit is not validated on construction. Calendars validate units
// they are given and only return valid ones. Two units are equal if all their
// fields are equal, so they can be compared using ==.
type DateTimeUnit struct {
	Year  int
	Month int
	Day   int
	// ISO is set if the unit is an ISO 8601 date.
	ISO bool
}

// ISO returns the ISO 8601 date unit for the given date.
func ISO(year, month, day int) DateTimeUnit {
	return DateTimeUnit{Year: year, Month: month, Day: day, ISO: true}
}

// Local returns the local date unit for the given date.
func Local(year, month, day int) DateTimeUnit {
	return DateTimeUnit{Year: year, Month: month, Day: day}
}

// Compare compares the dates of u and v, ignoring which calendar they are in.
// It returns -1 if u is before v, +1 if u is after v and 0 if they are on the
// same year, month and day.
func (u DateTimeUnit) Compare(v DateTimeUnit) int {
	if c := cmp.Compare(u.Year, v.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(u.Month, v.Month); c != 0 {
		return c
	}
	return cmp.Compare(u.Day, v.Day)
}

// Before reports whether u is before v. Both should be in the same calendar.
func (u DateTimeUnit) Before(v DateTimeUnit) bool {
	return u.Compare(v) < 0
}

// After reports whether u is after v. Both should be in the same calendar.
func (u DateTimeUnit) After(v DateTimeUnit) bool {
	return u.Compare(v) > 0
}

func (u DateTimeUnit) fields() layout.Fields {
	return layout.Fields{Year: u.Year, Month: u.Month, Day: u.Day}
}

// String returns the unit formatted as YYYY-MM-DD.
func (u DateTimeUnit) String() string {
	return layout.Format(layout.ISODate, u.fields())
}

// GoString implements fmt.GoStringer and formats u to be printed in Go source
// code.
func (u DateTimeUnit) GoString() string {
	if u.ISO {
		return fmt.Sprintf("calendar.ISO(%d, %d, %d)", u.Year, u.Month, u.Day)
	}
	return fmt.Sprintf("calendar.Local(%d, %d, %d)", u.Year, u.Month, u.Day)
}

// MarshalText implements the encoding.TextMarshaler interface. The unit is
// formatted as YYYY-MM-DD.
func (u DateTimeUnit) MarshalText() ([]byte, error) {
	return layout.AppendFormat(nil, layout.ISODate, u.fields()), nil
}

// Parse parses an ISO 8601 date unit in the form YYYY-MM-DD.
//
// Only the syntax is checked. Months may be in [1,13] and days in [1,32], so
// the result still has to be validated by a Calendar.
func Parse(value string) (DateTimeUnit, error) {
	u, err := parseUnit(value)
	if err != nil {
		return DateTimeUnit{}, err
	}
	u.ISO = true
	return u, nil
}

// ParseLocal is like Parse, but returns a local date unit.
func ParseLocal(value string) (DateTimeUnit, error) {
	return parseUnit(value)
}

func parseUnit(value string) (DateTimeUnit, error) {
	f, err := layout.Parse(layout.ISODate, value)
	if err != nil {
		return DateTimeUnit{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return DateTimeUnit{Year: f.Year, Month: f.Month, Day: f.Day}, nil
}
