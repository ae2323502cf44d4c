// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"errors"
	"fmt"
)

// Errors returned by calendars. They are wrapped in a [*DateError] and
// should be tested with errors.Is.
var (
	// ErrInvalidMonth is returned for a month outside of the months a
	// calendar supports for arithmetic.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidDay is returned for a day outside of [1, DaysInMonth].
	ErrInvalidDay = errors.New("invalid day")

	// ErrConversionOutOfRange is returned for dates outside the years a
	// calendar has conversion data for.
	ErrConversionOutOfRange = errors.New("date out of conversion range")

	// ErrCalendarMismatch is returned when an ISO unit is passed where a
	// local one is expected, or the other way around.
	ErrCalendarMismatch = errors.New("date unit in wrong calendar")

	// ErrUnknownCalendar is returned by ByName.
	ErrUnknownCalendar = errors.New("unknown calendar")

	// ErrSyntax is returned by Parse and ParseLocal for malformed dates.
	ErrSyntax = errors.New("invalid date syntax")
)

// DateError describes an operation on a date unit rejected by a calendar.
type DateError struct {
	Calendar string
	Unit     DateTimeUnit
	Err      error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Calendar, e.Unit, e.Err)
}

func (e *DateError) Unwrap() error {
	return e.Err
}
