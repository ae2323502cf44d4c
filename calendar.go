// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calendar converts dates between calendar systems and does date
// arithmetic in them.
//
// Every calendar maps its dates onto a common day count, the number of days
// since 0001-01-01 in the proleptic Gregorian calendar. Conversion between
// calendars and arithmetic on dates both reduce to integer arithmetic on that
// count.
//
// Supported calendars are ISO 8601 (Gregorian), Ethiopian, Nepali (Bikram
// Sambat) and Persian (Solar Hijri). Each is a stateless value, safe for
// concurrent use, available as a package variable or by name from [ByName].
//
// Dates are passed around as [DateTimeUnit]s, which are either ISO dates or
// dates in the local calendar of a Calendar. A non-ISO calendar only accepts
// local units, except in FromIso, which only accepts ISO units. The ISO 8601
// calendar accepts either.
package calendar

import (
	"fmt"
	"slices"
	"time"
)

// A Calendar is a calendar system.
//
// Months and years of a Calendar are addressed by their local number.
// Operations taking a month return ErrInvalidMonth for months outside of
// [1, MonthsInYear()].
type Calendar interface {
	// Name returns the registry name of the calendar.
	Name() string
	// MonthsInYear returns the number of months that can be addressed.
	MonthsInYear() int
	// DaysInWeek returns the number of days in a week.
	DaysInWeek() int
	// DaysInMonth returns the number of days of month in year.
	DaysInMonth(year, month int) (int, error)
	// DaysInYear returns the number of days in all months of year.
	DaysInYear(year int) (int, error)
	// IsLeapYear reports whether year is a leap year.
	IsLeapYear(year int) bool

	// Validate checks that u is a valid unit of the calendar.
	Validate(u DateTimeUnit) error

	// IsoStartOfYear returns the ISO date of the first day of year.
	IsoStartOfYear(year int) (DateTimeUnit, error)
	// ToIso converts a local unit into an ISO unit.
	ToIso(u DateTimeUnit) (DateTimeUnit, error)
	// FromIso converts an ISO unit into a local unit.
	FromIso(u DateTimeUnit) (DateTimeUnit, error)

	PlusDays(u DateTimeUnit, n int) (DateTimeUnit, error)
	MinusDays(u DateTimeUnit, n int) (DateTimeUnit, error)
	PlusWeeks(u DateTimeUnit, n int) (DateTimeUnit, error)
	MinusWeeks(u DateTimeUnit, n int) (DateTimeUnit, error)
	// PlusMonths adds n months to u. If the day of u does not exist in the
	// resulting month, it is set to the last day of that month.
	PlusMonths(u DateTimeUnit, n int) (DateTimeUnit, error)
	MinusMonths(u DateTimeUnit, n int) (DateTimeUnit, error)
	// PlusYears adds n years to u. The day is clamped like for PlusMonths.
	PlusYears(u DateTimeUnit, n int) (DateTimeUnit, error)
	MinusYears(u DateTimeUnit, n int) (DateTimeUnit, error)

	// Weekday returns the day of the week of u as a number in
	// [1, DaysInWeek()], starting from the first day of the week of the
	// calendar.
	Weekday(u DateTimeUnit) (int, error)
	// IsoWeekday returns the ISO 8601 day of the week of u, from 1 for Monday
	// to 7 for Sunday.
	IsoWeekday(u DateTimeUnit) (int, error)

	// Today returns the current local date in loc. A nil loc is treated as
	// time.Local.
	Today(loc *time.Location) (DateTimeUnit, error)
}

// Supported calendars.
var (
	ISO8601   Calendar = newISO()
	Ethiopian Calendar = newEthiopian()
	Nepali    Calendar = newNepali()
	Persian   Calendar = newPersian()
)

var registry = map[string]Calendar{
	ISO8601.Name():   ISO8601,
	Ethiopian.Name(): Ethiopian,
	Nepali.Name():    Nepali,
	Persian.Name():   Persian,
}

// ByName returns the calendar with the given name.
func ByName(name string) (Calendar, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCalendar, name)
	}
	return c, nil
}

// Names returns the names of all supported calendars, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
