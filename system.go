// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"time"

	"gonih.org/calendar/internal/epoch"
)

const (
	monthsInYear = 12
	daysInWeek   = 7
)

// now is the clock used by Today.
var now = time.Now

// system implements Calendar on top of epoch converters.
//
// conv maps local dates to the common Gregorian day count and is used for
// conversion and weekdays. arith is used for day arithmetic and usually is
// the same converter. Only the first monthsInYear months of arith are
// addressable.
type system struct {
	name string
	// iso is set for the ISO 8601 calendar, which accepts units of either
	// kind and returns ISO units.
	iso  bool
	week time.Weekday
	leap func(year int) bool

	conv  *epoch.Converter
	arith *epoch.Converter

	// fold maps a date of conv to a date of arith. nil means the identity.
	fold func(year, month, day int) (int, int, int)

	// If bounded is set, conv only has data for [minYear, maxYear].
	bounded          bool
	minYear, maxYear int
}

func (s *system) Name() string      { return s.name }
func (s *system) MonthsInYear() int { return monthsInYear }
func (s *system) DaysInWeek() int   { return daysInWeek }

func (s *system) IsLeapYear(year int) bool {
	return s.leap(year)
}

func (s *system) err(u DateTimeUnit, err error) error {
	return &DateError{Calendar: s.name, Unit: u, Err: err}
}

// unit returns a unit of the kind the calendar produces.
func (s *system) unit(year, month, day int) DateTimeUnit {
	return DateTimeUnit{Year: year, Month: month, Day: day, ISO: s.iso}
}

func (s *system) inRange(year int) bool {
	return !s.bounded || (s.minYear <= year && year <= s.maxYear)
}

// covers reports whether d lies in the years c has data for.
func (s *system) covers(c *epoch.Converter, d epoch.Day) bool {
	return !s.bounded || (c.YearStart(s.minYear) <= d && d < c.YearStart(s.maxYear+1))
}

// daysIn is DaysInMonth with unwrapped errors.
func (s *system) daysIn(year, month int) (int, error) {
	if !s.inRange(year) {
		return 0, ErrConversionOutOfRange
	}
	if month < 1 || month > monthsInYear {
		return 0, ErrInvalidMonth
	}
	return s.arith.DaysIn(year, month), nil
}

func (s *system) DaysInMonth(year, month int) (int, error) {
	n, err := s.daysIn(year, month)
	if err != nil {
		return 0, s.err(s.unit(year, month, 0), err)
	}
	return n, nil
}

func (s *system) DaysInYear(year int) (int, error) {
	if !s.inRange(year) {
		return 0, s.err(s.unit(year, 0, 0), ErrConversionOutOfRange)
	}
	return s.arith.DaysInYear(year), nil
}

func (s *system) Validate(u DateTimeUnit) error {
	if u.ISO && !s.iso {
		return s.err(u, ErrCalendarMismatch)
	}
	n, err := s.daysIn(u.Year, u.Month)
	if err != nil {
		return s.err(u, err)
	}
	if u.Day < 1 || u.Day > n {
		return s.err(u, ErrInvalidDay)
	}
	return nil
}

func (s *system) IsoStartOfYear(year int) (DateTimeUnit, error) {
	return s.ToIso(s.unit(year, 1, 1))
}

func (s *system) ToIso(u DateTimeUnit) (DateTimeUnit, error) {
	if err := s.Validate(u); err != nil {
		return DateTimeUnit{}, err
	}
	y, m, d := s.conv.ToDay(u.Year, u.Month, u.Day).Gregorian()
	return ISO(y, m, d), nil
}

func (s *system) FromIso(u DateTimeUnit) (DateTimeUnit, error) {
	if !u.ISO && !s.iso {
		return DateTimeUnit{}, s.err(u, ErrCalendarMismatch)
	}
	if u.Month < 1 || u.Month > monthsInYear {
		return DateTimeUnit{}, s.err(u, ErrInvalidMonth)
	}
	if u.Day < 1 || u.Day > epoch.GregorianDaysIn(u.Year, u.Month) {
		return DateTimeUnit{}, s.err(u, ErrInvalidDay)
	}
	d := epoch.Gregorian(u.Year, u.Month, u.Day)
	if !s.covers(s.conv, d) {
		return DateTimeUnit{}, s.err(u, ErrConversionOutOfRange)
	}
	y, m, dd := s.conv.FromDay(d)
	if s.fold != nil {
		y, m, dd = s.fold(y, m, dd)
	}
	return s.unit(y, m, dd), nil
}

func (s *system) PlusDays(u DateTimeUnit, n int) (DateTimeUnit, error) {
	if err := s.Validate(u); err != nil {
		return DateTimeUnit{}, err
	}
	d := s.arith.ToDay(u.Year, u.Month, u.Day) + epoch.Day(n)
	if !s.covers(s.arith, d) {
		return DateTimeUnit{}, s.err(u, ErrConversionOutOfRange)
	}
	y, m, dd := s.arith.FromDay(d)
	return s.unit(y, m, dd), nil
}

func (s *system) MinusDays(u DateTimeUnit, n int) (DateTimeUnit, error) {
	return s.PlusDays(u, -n)
}

func (s *system) PlusWeeks(u DateTimeUnit, n int) (DateTimeUnit, error) {
	return s.PlusDays(u, n*daysInWeek)
}

func (s *system) MinusWeeks(u DateTimeUnit, n int) (DateTimeUnit, error) {
	return s.PlusDays(u, -n*daysInWeek)
}

func (s *system) PlusMonths(u DateTimeUnit, n int) (DateTimeUnit, error) {
	if err := s.Validate(u); err != nil {
		return DateTimeUnit{}, err
	}
	i := u.Year*monthsInYear + u.Month - 1 + n
	return s.clamp(u, epoch.FloorDiv(i, monthsInYear), epoch.FloorMod(i, monthsInYear)+1)
}

func (s *system) MinusMonths(u DateTimeUnit, n int) (DateTimeUnit, error) {
	return s.PlusMonths(u, -n)
}

func (s *system) PlusYears(u DateTimeUnit, n int) (DateTimeUnit, error) {
	if err := s.Validate(u); err != nil {
		return DateTimeUnit{}, err
	}
	return s.clamp(u, u.Year+n, u.Month)
}

func (s *system) MinusYears(u DateTimeUnit, n int) (DateTimeUnit, error) {
	return s.PlusYears(u, -n)
}

// clamp moves u to the given month, keeping its day if that month has it and
// using the last day of the month otherwise. Errors name the unit u would
// have moved to.
func (s *system) clamp(u DateTimeUnit, year, month int) (DateTimeUnit, error) {
	n, err := s.daysIn(year, month)
	if err != nil {
		return DateTimeUnit{}, s.err(s.unit(year, month, u.Day), err)
	}
	return s.unit(year, month, min(u.Day, n)), nil
}

// weekday validates u and returns its day of the week.
func (s *system) weekday(u DateTimeUnit) (time.Weekday, error) {
	if err := s.Validate(u); err != nil {
		return 0, err
	}
	return s.conv.ToDay(u.Year, u.Month, u.Day).Weekday(), nil
}

func (s *system) Weekday(u DateTimeUnit) (int, error) {
	w, err := s.weekday(u)
	if err != nil {
		return 0, err
	}
	return (int(w)-int(s.week)+daysInWeek)%daysInWeek + 1, nil
}

func (s *system) IsoWeekday(u DateTimeUnit) (int, error) {
	w, err := s.weekday(u)
	if err != nil {
		return 0, err
	}
	return (int(w)+daysInWeek-1)%daysInWeek + 1, nil
}

func (s *system) Today(loc *time.Location) (DateTimeUnit, error) {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := now().In(loc).Date()
	return s.FromIso(ISO(y, int(m), d))
}
