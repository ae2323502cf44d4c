// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package period enumerates reporting periods over date ranges in any
// calendar.
//
// A period [Type] such as [Monthly] cuts the timeline of a calendar into
// consecutive periods. Day and month based types follow the local calendar,
// so Monthly periods in the Ethiopian calendar are Ethiopian months. Week
// based types always follow the ISO 8601 week.
//
// Generated periods carry their bounds as ISO dates and an identifier, whose
// grammar is stable:
//
//	daily              20140414
//	weekly             2014W16
//	weekly_wednesday   2014WedW16 (likewise Thu, Sat and Sun)
//	bi_weekly          2014BiW08
//	monthly            201404
//	bi_monthly         201402B
//	quarterly          2014Q2
//	six_monthly        2014S1
//	six_monthly_april  2014AprilS1
//	yearly             2014
//	financial_april    2014April (likewise July and Oct)
//
// The year of an identifier is the local year in which the period (or, for
// financial years, its cycle) starts. For week based types it is the ISO
// week year: a week belongs to the year of its fourth day. Week numbers may
// be given without padding when parsing.
package period

import (
	"errors"
	"fmt"

	"gonih.org/calendar"
	"gonih.org/calendar/internal/epoch"
)

var (
	// ErrUnknownType is returned by ByName for unknown period types.
	ErrUnknownType = errors.New("unknown period type")
	// ErrInvalidIdentifier is returned when parsing malformed or
	// non-existent period identifiers.
	ErrInvalidIdentifier = errors.New("invalid period identifier")
	// ErrInvalidRange is returned when the end of a range is before its
	// start.
	ErrInvalidRange = errors.New("invalid range")
)

// A Period is a span of days of a given Type.
type Period struct {
	// Type is the name of the period type.
	Type string `json:"type"`
	// Start is the ISO date of the first day of the period.
	Start calendar.DateTimeUnit `json:"start"`
	// End is the ISO date of the last day of the period.
	End calendar.DateTimeUnit `json:"end"`
	// ID is the identifier of the period.
	ID string `json:"id"`
}

func day(u calendar.DateTimeUnit) epoch.Day {
	return epoch.Gregorian(u.Year, u.Month, u.Day)
}

// Contains reports whether the ISO date u lies in p.
func (p Period) Contains(u calendar.DateTimeUnit) bool {
	d := day(u)
	return day(p.Start) <= d && d <= day(p.End)
}

// Days returns the number of days in p.
func (p Period) Days() int {
	return int(day(p.End)-day(p.Start)) + 1
}

// String returns the identifier of p.
func (p Period) String() string {
	return p.ID
}

// A Type enumerates the periods of one cadence. All methods are safe for
// concurrent use and can be used with any calendar.
//
// Units passed to a Type may be ISO or local units of the given calendar.
type Type interface {
	// Name returns the registry name of the type.
	Name() string
	// Frequency returns the nominal length of a period in days.
	Frequency() int

	// Create returns the period containing u.
	Create(cal calendar.Calendar, u calendar.DateTimeUnit) (Period, error)
	// Next returns the period following p.
	Next(cal calendar.Calendar, p Period) (Period, error)
	// Previous returns the period preceding p.
	Previous(cal calendar.Calendar, p Period) (Period, error)

	// Generate returns the periods covering the half-open range
	// [start, end), in chronological order. The first period is the one
	// containing start, even if start equals end.
	Generate(cal calendar.Calendar, start, end calendar.DateTimeUnit) ([]Period, error)

	// Identifier returns the identifier of the period containing u.
	Identifier(cal calendar.Calendar, u calendar.DateTimeUnit) (string, error)
	// Parse returns the period with the given identifier.
	Parse(cal calendar.Calendar, id string) (Period, error)
}

// Period types, ordered by frequency.
var (
	Daily           Type = daily("daily")
	Weekly          Type = weekly("weekly", 1, "2006W##")
	WeeklyWednesday Type = weekly("weekly_wednesday", 3, "2006WedW##")
	WeeklyThursday  Type = weekly("weekly_thursday", 4, "2006ThuW##")
	WeeklySaturday  Type = weekly("weekly_saturday", 6, "2006SatW##")
	WeeklySunday    Type = weekly("weekly_sunday", 7, "2006SunW##")
	BiWeekly        Type = biWeekly("bi_weekly", "2006BiW##")
	Monthly         Type = months("monthly", 30, 1, 1, "200601")
	BiMonthly       Type = months("bi_monthly", 61, 2, 1, "2006##B")
	Quarterly       Type = months("quarterly", 91, 3, 1, "2006Q#")
	SixMonthly      Type = months("six_monthly", 182, 6, 1, "2006S#")
	SixMonthlyApril Type = months("six_monthly_april", 182, 6, 4, "2006AprilS#")
	Yearly          Type = months("yearly", 365, 12, 1, "2006")
	FinancialApril  Type = months("financial_april", 365, 12, 4, "2006April")
	FinancialJuly   Type = months("financial_july", 365, 12, 7, "2006July")
	FinancialOct    Type = months("financial_oct", 365, 12, 10, "2006Oct")
)

var all = []Type{
	Daily,
	Weekly, WeeklyWednesday, WeeklyThursday, WeeklySaturday, WeeklySunday,
	BiWeekly,
	Monthly, BiMonthly, Quarterly,
	SixMonthly, SixMonthlyApril,
	Yearly, FinancialApril, FinancialJuly, FinancialOct,
}

var byName = func() map[string]Type {
	m := make(map[string]Type, len(all))
	for _, t := range all {
		m[t.Name()] = t
	}
	return m
}()

// ByName returns the period type with the given name.
func ByName(name string) (Type, error) {
	t, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, name)
	}
	return t, nil
}

// Types returns all period types, ordered by frequency.
func Types() []Type {
	return append([]Type(nil), all...)
}

// ParseAny parses an identifier of any period type.
func ParseAny(cal calendar.Calendar, id string) (Period, error) {
	for _, t := range all {
		if p, err := t.Parse(cal, id); err == nil {
			return p, nil
		}
	}
	return Period{}, fmt.Errorf("%w %q", ErrInvalidIdentifier, id)
}
