// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package epoch

import (
	"gonih.org/calendar/internal/cache"
)

// Rules describe the month structure of a calendar.
type Rules interface {
	// MonthsIn returns the number of months of year.
	MonthsIn(year int) int
	// DaysIn returns the number of days of month in year. It is only called
	// with months in [1, MonthsIn(year)].
	DaysIn(year, month int) int
}

// A Converter maps the dates of a calendar described by Rules onto Days:
//
//	ToDay(y, m, d) = YearStart(y) + DaysIn(y, 1) + … + DaysIn(y, m-1) + d - 1
//
// YearStart is either given in closed form, for calendars with a periodic
// leap rule, or found by walking whole years from a known origin, for
// calendars driven by a table of month lengths. In both cases
// YearStart(y+1) - YearStart(y) must equal the sum of DaysIn over the months
// of y.
//
// Converters never validate their arguments; ToDay and FromDay are total for
// dates the Rules know about. A Converter is safe for concurrent use.
type Converter struct {
	rules Rules
	base  int
	start func(year int) Day

	origin Day
	starts cache.Cache[int, Day]
}

// NewClosed returns a Converter whose year starts are given by start. base is
// a representative year of the calendar, used to estimate years when
// converting Days back into dates.
func NewClosed(rules Rules, base int, start func(year int) Day) *Converter {
	return &Converter{rules: rules, base: base, start: start}
}

// NewWalking returns a Converter for which the first day of base is origin.
// Other year starts are found by summing the lengths of the years in between,
// and memoized.
func NewWalking(rules Rules, base int, origin Day) *Converter {
	return &Converter{rules: rules, base: base, origin: origin}
}

// YearStart returns the Day on which year begins.
func (c *Converter) YearStart(year int) Day {
	if c.start != nil {
		return c.start(year)
	}
	return c.starts.Get(year, c.walk)
}

// walk sums year lengths between the origin and year.
func (c *Converter) walk(year int) Day {
	d := c.origin
	for y := c.base; y < year; y++ {
		d += Day(c.DaysInYear(y))
	}
	for y := year; y < c.base; y++ {
		d -= Day(c.DaysInYear(y))
	}
	return d
}

// MonthsIn returns the number of months of year.
func (c *Converter) MonthsIn(year int) int {
	return c.rules.MonthsIn(year)
}

// DaysIn returns the number of days of month in year.
func (c *Converter) DaysIn(year, month int) int {
	return c.rules.DaysIn(year, month)
}

// DaysInYear returns the number of days of year.
func (c *Converter) DaysInYear(year int) int {
	n := 0
	for m := 1; m <= c.rules.MonthsIn(year); m++ {
		n += c.rules.DaysIn(year, m)
	}
	return n
}

// ToDay returns the Day of the given date.
func (c *Converter) ToDay(year, month, day int) Day {
	d := c.YearStart(year)
	for m := 1; m < month; m++ {
		d += Day(c.rules.DaysIn(year, m))
	}
	return d + Day(day-1)
}

// FromDay returns the date of the given Day.
func (c *Converter) FromDay(d Day) (year, month, day int) {
	year = c.estimate(d)
	for c.YearStart(year) > d {
		year--
	}
	for c.YearStart(year+1) <= d {
		year++
	}

	rem := int(d - c.YearStart(year))
	months := c.rules.MonthsIn(year)
	month = 1
	for month < months {
		n := c.rules.DaysIn(year, month)
		if rem < n {
			break
		}
		rem -= n
		month++
	}
	return year, month, rem + 1
}

// estimate guesses the year of d, assuming every year is as long as the base
// year. The guess is corrected by FromDay.
func (c *Converter) estimate(d Day) int {
	n := Day(c.DaysInYear(c.base))
	if n <= 0 {
		return c.base
	}
	off := d - c.YearStart(c.base)
	q := off / n
	if off%n < 0 {
		q--
	}
	return c.base + int(q)
}

// FloorDiv returns a/b rounded towards negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// FloorMod returns a - b*FloorDiv(a, b), which has the sign of b.
func FloorMod(a, b int) int {
	return a - FloorDiv(a, b)*b
}
