// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"time"

	"gonih.org/calendar/internal/epoch"
)

type gregorianRules struct{}

func (gregorianRules) MonthsIn(int) int { return monthsInYear }

func (gregorianRules) DaysIn(year, month int) int {
	return epoch.GregorianDaysIn(year, month)
}

// newISO returns the ISO 8601 calendar, the proleptic Gregorian calendar with
// weeks starting on Monday.
func newISO() *system {
	c := epoch.NewClosed(gregorianRules{}, 2000, func(year int) epoch.Day {
		return epoch.Gregorian(year, 1, 1)
	})
	return &system{
		name:  "iso8601",
		iso:   true,
		week:  time.Monday,
		leap:  epoch.IsGregorianLeap,
		conv:  c,
		arith: c,
	}
}
