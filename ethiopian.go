// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"time"

	"gonih.org/calendar/internal/epoch"
)

// ethiopicRules are the rules of the Ethiopian calendar proper: twelve months
// of thirty days, followed by Pagume, which has six days in leap years and
// five otherwise.
type ethiopicRules struct{}

func (ethiopicRules) MonthsIn(int) int { return monthsInYear + 1 }

func (ethiopicRules) DaysIn(year, month int) int {
	switch {
	case month <= monthsInYear:
		return 30
	case isEthiopianLeap(year):
		return 6
	default:
		return 5
	}
}

// thirtyDayRules have twelve months of thirty days.
type thirtyDayRules struct{}

func (thirtyDayRules) MonthsIn(int) int    { return monthsInYear }
func (thirtyDayRules) DaysIn(int, int) int { return 30 }

// isEthiopianLeap reports whether year is followed by a Gregorian leap year,
// in which case Pagume has six days.
func isEthiopianLeap(year int) bool {
	return epoch.FloorMod(year, 4) == 3
}

// newEthiopian returns the Ethiopian calendar.
//
// Only the twelve thirty day months are addressable. Day arithmetic happens on
// a timeline of 360 day years, so adding days never lands on Pagume.
// Conversion uses the real calendar, and converting a day of Pagume from ISO
// yields the last day of the twelfth month.
func newEthiopian() *system {
	// 1 Meskerem 2007
	anchor := epoch.Gregorian(2014, 9, 11)
	return &system{
		name: "ethiopian",
		week: time.Monday,
		leap: isEthiopianLeap,
		conv: epoch.NewClosed(ethiopicRules{}, 2007, func(year int) epoch.Day {
			return anchor + epoch.Day(365*(year-2007)+epoch.FloorDiv(year, 4)-epoch.FloorDiv(2007, 4))
		}),
		arith: epoch.NewClosed(thirtyDayRules{}, 2007, func(year int) epoch.Day {
			return epoch.Day(360 * (year - 1))
		}),
		fold: func(year, month, day int) (int, int, int) {
			if month > monthsInYear {
				return year, monthsInYear, 30
			}
			return year, month, day
		},
	}
}
