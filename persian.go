// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"time"

	"gonih.org/calendar/internal/epoch"
)

// persianLeaps are the leap years of a 33 year cycle.
var persianLeaps = [...]int{1, 5, 9, 13, 17, 22, 26, 30}

func isPersianLeap(year int) bool {
	r := epoch.FloorMod(year, 33)
	for _, l := range persianLeaps {
		if l == r {
			return true
		}
	}
	return false
}

// persianLeapsBefore counts the leap years in [1, year).
func persianLeapsBefore(year int) int {
	q, r := epoch.FloorDiv(year-1, 33), epoch.FloorMod(year-1, 33)
	n := len(persianLeaps) * q
	for _, l := range persianLeaps {
		if l <= r {
			n++
		}
	}
	return n
}

// persianRules have six months of 31 days, five of 30 and Esfand, which has 30
// days in leap years and 29 otherwise.
type persianRules struct{}

func (persianRules) MonthsIn(int) int { return monthsInYear }

func (persianRules) DaysIn(year, month int) int {
	switch {
	case month <= 6:
		return 31
	case month <= 11:
		return 30
	case isPersianLeap(year):
		return 30
	default:
		return 29
	}
}

// newPersian returns the Solar Hijri calendar, using the arithmetic 33 year
// leap cycle. Weeks are numbered from Sunday.
func newPersian() *system {
	// 1 Farvardin 1372
	anchor := epoch.Gregorian(1993, 3, 21)
	c := epoch.NewClosed(persianRules{}, 1372, func(year int) epoch.Day {
		return anchor + epoch.Day(365*(year-1372)+persianLeapsBefore(year)-persianLeapsBefore(1372))
	})
	return &system{
		name:  "persian",
		week:  time.Sunday,
		leap:  isPersianLeap,
		conv:  c,
		arith: c,
	}
}
