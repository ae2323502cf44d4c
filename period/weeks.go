// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package period

import (
	"gonih.org/calendar"
	"gonih.org/calendar/internal/layout"
)

// weekStart returns the first day of the week containing the ISO unit u, for
// weeks starting on the ISO weekday first.
func weekStart(u calendar.DateTimeUnit, first int) (calendar.DateTimeUnit, error) {
	wd, err := calendar.ISO8601.IsoWeekday(u)
	if err != nil {
		return calendar.DateTimeUnit{}, err
	}
	return calendar.ISO8601.MinusDays(u, (wd-first+7)%7)
}

// weekNumber returns the year and number of the week starting on s. A week
// belongs to the year of its fourth day.
func weekNumber(s calendar.DateTimeUnit) (year, week int) {
	d := day(s) + 3
	return d.Year(), (d.YearDay()-1)/7 + 1
}

// firstWeek returns the first day of week 1 of year, which is the week
// containing January 4th.
func firstWeek(year, first int) (calendar.DateTimeUnit, error) {
	return weekStart(calendar.ISO(year, 1, 4), first)
}

func weekly(name string, first int, l string) *periodType {
	return &periodType{
		name:      name,
		frequency: 7,
		layout:    l,
		iso:       true,
		start: func(_ calendar.Calendar, u calendar.DateTimeUnit) (calendar.DateTimeUnit, error) {
			return weekStart(u, first)
		},
		step: func(c calendar.Calendar, s calendar.DateTimeUnit, n int) (calendar.DateTimeUnit, error) {
			return c.PlusWeeks(s, n)
		},
		fields: func(s calendar.DateTimeUnit) layout.Fields {
			y, w := weekNumber(s)
			return layout.Fields{Year: y, Ordinal: w}
		},
		unfields: func(c calendar.Calendar, f layout.Fields) (calendar.DateTimeUnit, error) {
			s, err := firstWeek(f.Year, first)
			if err != nil {
				return s, err
			}
			return c.PlusWeeks(s, f.Ordinal-1)
		},
	}
}

// biWeekly returns a type whose periods are pairs of ISO weeks 2n-1 and 2n.
// In years with 53 weeks, the last period is a single week.
func biWeekly(name, l string) *periodType {
	return &periodType{
		name:      name,
		frequency: 14,
		layout:    l,
		iso:       true,
		start: func(c calendar.Calendar, u calendar.DateTimeUnit) (calendar.DateTimeUnit, error) {
			s, err := weekStart(u, 1)
			if err != nil {
				return s, err
			}
			if _, w := weekNumber(s); w%2 == 0 {
				return c.MinusWeeks(s, 1)
			}
			return s, nil
		},
		step: func(c calendar.Calendar, s calendar.DateTimeUnit, n int) (calendar.DateTimeUnit, error) {
			var err error
			for ; n > 0 && err == nil; n-- {
				s, err = biWeekStep(c, s, 1)
			}
			for ; n < 0 && err == nil; n++ {
				s, err = biWeekStep(c, s, -1)
			}
			return s, err
		},
		fields: func(s calendar.DateTimeUnit) layout.Fields {
			y, w := weekNumber(s)
			return layout.Fields{Year: y, Ordinal: (w + 1) / 2}
		},
		unfields: func(c calendar.Calendar, f layout.Fields) (calendar.DateTimeUnit, error) {
			s, err := firstWeek(f.Year, 1)
			if err != nil {
				return s, err
			}
			return c.PlusWeeks(s, 2*(f.Ordinal-1))
		},
	}
}

// biWeekStep moves from the start of a bi-week to the start of the next
// (dir = 1) or previous (dir = -1) one. Bi-weeks start on odd weeks, so one
// week away is the answer only if that week is odd, which happens at the
// 53rd week and after it.
func biWeekStep(c calendar.Calendar, s calendar.DateTimeUnit, dir int) (calendar.DateTimeUnit, error) {
	t, err := c.PlusWeeks(s, dir)
	if err != nil {
		return t, err
	}
	if _, w := weekNumber(t); w%2 == 1 {
		return t, nil
	}
	return c.PlusWeeks(s, 2*dir)
}
