// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package period

import (
	"fmt"

	"gonih.org/calendar"
	"gonih.org/calendar/internal/epoch"
	"gonih.org/calendar/internal/layout"
)

// periodType implements Type by stepping through the start days of its
// periods. Starts are units of the frame calendar, which is calendar.ISO8601
// if iso is set and the calendar the type is used with otherwise.
type periodType struct {
	name      string
	frequency int
	layout    string
	iso       bool

	// start returns the first day of the period containing u. It must
	// validate u.
	start func(c calendar.Calendar, u calendar.DateTimeUnit) (calendar.DateTimeUnit, error)
	// step returns the start of the period n periods after the one
	// starting at s.
	step func(c calendar.Calendar, s calendar.DateTimeUnit, n int) (calendar.DateTimeUnit, error)
	// fields returns the identifier fields of the period starting at s.
	fields func(s calendar.DateTimeUnit) layout.Fields
	// unfields returns the start of the period with the given identifier
	// fields. Callers check that the result is identified by f.
	unfields func(c calendar.Calendar, f layout.Fields) (calendar.DateTimeUnit, error)
}

func (t *periodType) Name() string   { return t.name }
func (t *periodType) Frequency() int { return t.frequency }

func (t *periodType) frame(cal calendar.Calendar) calendar.Calendar {
	if t.iso {
		return calendar.ISO8601
	}
	return cal
}

// in converts u, a unit of cal, into a unit of the frame calendar f.
func in(cal, f calendar.Calendar, u calendar.DateTimeUnit) (calendar.DateTimeUnit, error) {
	switch {
	case cal == f && f == calendar.ISO8601:
		return u, nil
	case f == calendar.ISO8601:
		if u.ISO {
			return u, nil
		}
		return cal.ToIso(u)
	case u.ISO:
		return f.FromIso(u)
	default:
		return u, nil
	}
}

// build returns the period starting at s and the start of the next one.
func (t *periodType) build(f calendar.Calendar, s calendar.DateTimeUnit) (Period, calendar.DateTimeUnit, error) {
	next, err := t.step(f, s, 1)
	if err != nil {
		return Period{}, next, fmt.Errorf("%s: end of period starting %v: %w", t.name, s, err)
	}
	start, err := f.ToIso(s)
	if err != nil {
		return Period{}, next, err
	}
	stop, err := f.ToIso(next)
	if err != nil {
		return Period{}, next, err
	}
	end, err := calendar.ISO8601.MinusDays(stop, 1)
	if err != nil {
		return Period{}, next, err
	}
	return Period{
		Type:  t.name,
		Start: start,
		End:   end,
		ID:    layout.Format(t.layout, t.fields(s)),
	}, next, nil
}

func (t *periodType) Create(cal calendar.Calendar, u calendar.DateTimeUnit) (Period, error) {
	f := t.frame(cal)
	u, err := in(cal, f, u)
	if err != nil {
		return Period{}, err
	}
	s, err := t.start(f, u)
	if err != nil {
		return Period{}, err
	}
	p, _, err := t.build(f, s)
	return p, err
}

func (t *periodType) Identifier(cal calendar.Calendar, u calendar.DateTimeUnit) (string, error) {
	p, err := t.Create(cal, u)
	return p.ID, err
}

// adjacent returns the period n periods away from p.
func (t *periodType) adjacent(cal calendar.Calendar, p Period, n int) (Period, error) {
	f := t.frame(cal)
	u, err := in(cal, f, p.Start)
	if err != nil {
		return Period{}, err
	}
	s, err := t.start(f, u)
	if err != nil {
		return Period{}, err
	}
	if s, err = t.step(f, s, n); err != nil {
		return Period{}, err
	}
	p, _, err = t.build(f, s)
	return p, err
}

func (t *periodType) Next(cal calendar.Calendar, p Period) (Period, error) {
	return t.adjacent(cal, p, 1)
}

func (t *periodType) Previous(cal calendar.Calendar, p Period) (Period, error) {
	return t.adjacent(cal, p, -1)
}

func (t *periodType) Generate(cal calendar.Calendar, start, end calendar.DateTimeUnit) ([]Period, error) {
	f := t.frame(cal)
	s, err := in(cal, f, start)
	if err != nil {
		return nil, err
	}
	e, err := in(cal, f, end)
	if err != nil {
		return nil, err
	}
	from, err := f.ToIso(s)
	if err != nil {
		return nil, err
	}
	to, err := f.ToIso(e)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: %v is before %v", ErrInvalidRange, end, start)
	}
	if s, err = t.start(f, s); err != nil {
		return nil, err
	}

	last := day(to)
	var ps []Period
	for {
		p, next, err := t.build(f, s)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
		if day(p.End)+1 >= last {
			return ps, nil
		}
		s = next
	}
}

func (t *periodType) Parse(cal calendar.Calendar, id string) (Period, error) {
	f := t.frame(cal)
	fs, err := layout.Parse(t.layout, id)
	if err != nil {
		return Period{}, fmt.Errorf("%w %q: %w", ErrInvalidIdentifier, id, err)
	}
	s, err := t.unfields(f, fs)
	if err != nil {
		return Period{}, fmt.Errorf("%w %q: %w", ErrInvalidIdentifier, id, err)
	}
	p, _, err := t.build(f, s)
	if err != nil {
		return Period{}, fmt.Errorf("%w %q: %w", ErrInvalidIdentifier, id, err)
	}
	// Out of range ordinals, like a fifth quarter, end up in another year.
	if got, err := layout.Parse(t.layout, p.ID); err != nil || got != fs {
		return Period{}, fmt.Errorf("%w %q: no such %s period", ErrInvalidIdentifier, id, t.name)
	}
	return p, nil
}

func daily(name string) *periodType {
	return &periodType{
		name:      name,
		frequency: 1,
		layout:    layout.ISOBasic,
		start: func(c calendar.Calendar, u calendar.DateTimeUnit) (calendar.DateTimeUnit, error) {
			return u, c.Validate(u)
		},
		step: func(c calendar.Calendar, s calendar.DateTimeUnit, n int) (calendar.DateTimeUnit, error) {
			return c.PlusDays(s, n)
		},
		fields: func(s calendar.DateTimeUnit) layout.Fields {
			return layout.Fields{Year: s.Year, Month: s.Month, Day: s.Day}
		},
		unfields: func(_ calendar.Calendar, f layout.Fields) (calendar.DateTimeUnit, error) {
			return calendar.Local(f.Year, f.Month, f.Day), nil
		},
	}
}

// monthIndex counts the months of u since the start of year 0.
func monthIndex(u calendar.DateTimeUnit) int {
	return u.Year*12 + u.Month - 1
}

// months returns a type with periods of n months, aligned such that a period
// starts on month first of every year.
func months(name string, frequency, n, first int, l string) *periodType {
	return &periodType{
		name:      name,
		frequency: frequency,
		layout:    l,
		start: func(c calendar.Calendar, u calendar.DateTimeUnit) (calendar.DateTimeUnit, error) {
			if err := c.Validate(u); err != nil {
				return calendar.DateTimeUnit{}, err
			}
			i := epoch.FloorDiv(monthIndex(u)-(first-1), n)*n + first - 1
			return calendar.DateTimeUnit{
				Year:  epoch.FloorDiv(i, 12),
				Month: epoch.FloorMod(i, 12) + 1,
				Day:   1,
				ISO:   u.ISO,
			}, nil
		},
		step: func(c calendar.Calendar, s calendar.DateTimeUnit, k int) (calendar.DateTimeUnit, error) {
			return c.PlusMonths(s, k*n)
		},
		fields: func(s calendar.DateTimeUnit) layout.Fields {
			i := monthIndex(s) - (first - 1)
			return layout.Fields{
				Year:    epoch.FloorDiv(i, 12),
				Month:   s.Month,
				Ordinal: epoch.FloorMod(i, 12)/n + 1,
			}
		},
		unfields: func(_ calendar.Calendar, f layout.Fields) (calendar.DateTimeUnit, error) {
			i := f.Year*12 + f.Month - 1
			if f.Month < 0 {
				ord := max(f.Ordinal, 1)
				i = f.Year*12 + first - 1 + (ord-1)*n
			}
			return calendar.Local(epoch.FloorDiv(i, 12), epoch.FloorMod(i, 12)+1, 1), nil
		},
	}
}
