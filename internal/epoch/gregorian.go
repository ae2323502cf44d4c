// Copyright 2009 The Go Authors.
// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package epoch implements the linear day count that every calendar in this
// module converts through.
//
// A Day counts the days since 0001-01-01 of the proleptic Gregorian calendar.
// Calendars describe their month structure with [Rules] and obtain a
// [Converter], which maps their (year, month, day) triples onto Days and back.
// Converting between two calendars is then a matter of going through a Day,
// and adding n days to a date is a matter of adding n to its Day.
package epoch

import (
	"time"
)

// Computations on Gregorian dates are essentially copied from the standard
// library. See this comment for explanations:
// https://cs.opensource.google/go/go/+/refs/tags/go1.20.6:src/time/time.go;l=353

const (
	// The unsigned zero year for internal calculations.
	// Must be 1 mod 400, and times before it will not compute correctly, but
	// otherwise can be changed at will.
	absoluteZeroYear = -292277022399

	// The year of Day 0.
	internalYear = 1

	// Offsets to convert between internal or absolute days.
	absoluteToInternal = (absoluteZeroYear - internalYear) * 365.2425
	internalToAbsolute = -absoluteToInternal

	// Days in a given period of years.
	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461
)

// daysBefore[m] counts the number of days in a non-leap year before month m
// begins. There is an entry for m=12, counting the number of days before
// January of next year (365).
var daysBefore = [...]int{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30 + 31,
}

// GregorianDaysIn returns the number of days of month in the given Gregorian
// year. month must be in [1, 12].
func GregorianDaysIn(year, month int) int {
	if month == int(time.February) && IsGregorianLeap(year) {
		return 29
	}
	return daysBefore[month] - daysBefore[month-1]
}

// IsGregorianLeap reports whether year is a leap year of the Gregorian
// calendar.
func IsGregorianLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// absDate computes the year, day of year and when full=true, the month and day
// in which an absolute day occurs.
func absDate(abs uint64, full bool) (year, month, day, yday int) {
	d := abs

	// Account for 400 year cycles.
	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	// Cut off 100-year cycles.
	// The last cycle has one extra leap year, so on the last day
	// of that year, day / daysPer100Years will be 4 instead of 3.
	// Cut it back down to 3 by subtracting n>>2.
	n = d / daysPer100Years
	n -= n >> 2
	y += 100 * n
	d -= daysPer100Years * n

	// Cut off 4-year cycles.
	// The last cycle has a missing leap year, which does not
	// affect the computation.
	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	// Cut off years within a 4-year cycle.
	// The last year is a leap year, so on the last day of that year,
	// day / 365 will be 4 instead of 3. Cut it back down to 3
	// by subtracting n>>2.
	n = d / 365
	n -= n >> 2
	y += n
	d -= 365 * n

	year = int(int64(y) + absoluteZeroYear)
	yday = int(d)

	if !full {
		return
	}

	day = yday
	if IsGregorianLeap(year) {
		switch {
		case day > 31+29-1:
			// After leap day; pretend it wasn't there.
			day--
		case day == 31+29-1:
			// Leap day.
			return year, int(time.February), 29, yday
		}
	}

	// Estimate month on assumption that every month has 31 days.
	// The estimate may be too low by at most one month, so adjust.
	month = day / 31
	end := daysBefore[month+1]
	var begin int
	if day >= end {
		month++
		begin = end
	} else {
		begin = daysBefore[month]
	}

	month++ // because January is 1
	day = day - begin + 1
	return year, month, day, yday
}

// daysSinceEpoch takes a year and returns the number of days from the absolute
// epoch to the start of that year. This is basically (year - zeroYear) * 365,
// but accounting for leap days.
func daysSinceEpoch(year int) int {
	y := year - absoluteZeroYear

	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	d += 365 * y

	return d
}

// norm returns nhi, nlo such that
//
//	hi * base + lo == nhi * base + nlo
//	0 <= nlo < base
func norm(hi, lo, base int) (nhi, nlo int) {
	if lo < 0 {
		n := (-lo-1)/base + 1
		hi -= n
		lo += n * base
	}
	if lo >= base {
		n := lo / base
		hi += n
		lo -= n * base
	}
	return hi, lo
}

// A Day is an epoch day number: the number of days since 0001-01-01 of the
// proleptic Gregorian calendar. Days can be compared and subtracted using
// Go's arithmetic operators.
type Day int64

// Gregorian returns the Day of the given Gregorian date.
//
// The arguments may be outside their usual ranges and will be normalized
// during the conversion, just as for [time.Date]. For example, October 32
// converts to November 1.
func Gregorian(year, month, day int) Day {
	m := month - 1
	year, m = norm(year, m, 12)
	month = m + 1

	d := daysSinceEpoch(year)
	d += daysBefore[month-1]
	if IsGregorianLeap(year) && month >= int(time.March) {
		d++
	}

	d += day - 1

	return Day(int64(d) - internalToAbsolute)
}

// abs returns the absolute day of d.
func (d Day) abs() uint64 {
	return uint64(int64(d) + internalToAbsolute)
}

// Gregorian returns the Gregorian year, month and day of d.
func (d Day) Gregorian() (year, month, day int) {
	year, month, day, _ = absDate(d.abs(), true)
	return year, month, day
}

// Year returns the Gregorian year in which d occurs.
func (d Day) Year() int {
	year, _, _, _ := absDate(d.abs(), false)
	return year
}

// YearDay returns the day of the Gregorian year of d, in the range [1,365]
// for non-leap years, and [1,366] in leap years.
func (d Day) YearDay() int {
	_, _, _, yday := absDate(d.abs(), false)
	return yday + 1
}

// Weekday returns the day of the week of d.
func (d Day) Weekday() time.Weekday {
	return (time.Monday + time.Weekday(d.abs()%7)) % 7 // 0001-01-01 was a Monday
}

// ISOWeek returns the ISO 8601 year and week number in which d occurs. Week
// ranges from 1 to 53. Jan 01 to Jan 03 of year n might belong to week 52 or
// 53 of year n-1, and Dec 29 to Dec 31 might belong to week 1 of year n+1.
func (d Day) ISOWeek() (year, week int) {
	// See this comment for an explanation:
	// https://cs.opensource.google/go/go/+/refs/tags/go1.20.6:src/time/time.go;l=544

	offset := time.Thursday - d.Weekday()
	if offset == 4 {
		offset = -3
	}
	d += Day(offset)
	year, _, _, yday := absDate(d.abs(), false)
	return year, yday/7 + 1
}
