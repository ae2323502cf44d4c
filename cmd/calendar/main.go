// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command calendar converts dates between calendars, does date arithmetic and
// lists reporting periods.
//
// Usage:
//
//	calendar [-calendar name] command [flags] [args]
//
// The commands are:
//
//	convert [-from-iso] date   convert a local date to ISO, or back
//	add date n unit            add n days, weeks, months or years
//	weekday date               print the day of the week
//	today [-tz zone]           print the current date
//	periods [-type name] [-json] start end
//	                           list the periods of [start, end)
//	parse [-type name] [-json] id
//	                           print the period with the given identifier
//	calendars                  list the supported calendars
//	types                      list the period types
//
// Dates are given as YYYY-MM-DD in the selected calendar. The default
// calendar and logging are configured by the CALENDAR_DEFAULT,
// CALENDAR_LOG_FORMAT and CALENDAR_LOG_LEVEL environment variables.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"gonih.org/calendar"
	"gonih.org/calendar/period"
)

var exitProcess = os.Exit

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	exitProcess(code)
}

// env is passed to commands.
type env struct {
	cal    calendar.Calendar
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

type command func(ctx context.Context, e *env, args []string) error

var commands = map[string]command{
	"convert":   convert,
	"add":       add,
	"weekday":   weekday,
	"today":     today,
	"periods":   periods,
	"parse":     parse,
	"calendars": calendars,
	"types":     types,
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := loadConfigFromEnv()
	if err != nil {
		fmt.Fprintln(stderr, "calendar:", err)
		return 1
	}
	log, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "calendar:", err)
		return 1
	}

	fs := flag.NewFlagSet("calendar", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("calendar", cfg.Default, "calendar `name`")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: calendar [-calendar name] command [flags] [args]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 1
	}

	cal, err := calendar.ByName(*name)
	if err != nil {
		log.Error("invalid calendar", slog.Any("error", err))
		return 1
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		log.Error("unknown command", slog.String("command", fs.Arg(0)))
		fs.Usage()
		return 1
	}

	e := &env{cal: cal, stdout: stdout, stderr: stderr, log: log}
	log.Debug("running command", slog.String("command", fs.Arg(0)), slog.String("calendar", cal.Name()))
	if err := cmd(ctx, e, fs.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		log.Error("command failed", slog.String("command", fs.Arg(0)), slog.Any("error", err))
		return 1
	}
	return 0
}

// flags returns a flag set for the named command.
func (e *env) flags(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "usage: calendar %s %s\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

// parseDate parses a date of the selected calendar.
func (e *env) parseDate(s string) (calendar.DateTimeUnit, error) {
	if e.cal == calendar.ISO8601 {
		return calendar.Parse(s)
	}
	return calendar.ParseLocal(s)
}

func nargs(fs *flag.FlagSet, n int) error {
	if fs.NArg() != n {
		fs.Usage()
		return fmt.Errorf("%w: want %d arguments, got %d", errUsage, n, fs.NArg())
	}
	return nil
}

func convert(_ context.Context, e *env, args []string) error {
	fs := e.flags("convert", "[-from-iso] date")
	fromISO := fs.Bool("from-iso", false, "convert an ISO date into the selected calendar")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := nargs(fs, 1); err != nil {
		return err
	}

	var (
		u   calendar.DateTimeUnit
		err error
	)
	if *fromISO {
		if u, err = calendar.Parse(fs.Arg(0)); err == nil {
			u, err = e.cal.FromIso(u)
		}
	} else {
		if u, err = e.parseDate(fs.Arg(0)); err == nil {
			u, err = e.cal.ToIso(u)
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, u)
	return nil
}

func add(_ context.Context, e *env, args []string) error {
	fs := e.flags("add", "date n days|weeks|months|years")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := nargs(fs, 3); err != nil {
		return err
	}
	u, err := e.parseDate(fs.Arg(0))
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("%w: invalid count %q", errUsage, fs.Arg(1))
	}

	var f func(calendar.DateTimeUnit, int) (calendar.DateTimeUnit, error)
	switch fs.Arg(2) {
	case "day", "days":
		f = e.cal.PlusDays
	case "week", "weeks":
		f = e.cal.PlusWeeks
	case "month", "months":
		f = e.cal.PlusMonths
	case "year", "years":
		f = e.cal.PlusYears
	default:
		return fmt.Errorf("%w: invalid unit %q", errUsage, fs.Arg(2))
	}
	if u, err = f(u, n); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, u)
	return nil
}

func weekday(_ context.Context, e *env, args []string) error {
	fs := e.flags("weekday", "date")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := nargs(fs, 1); err != nil {
		return err
	}
	u, err := e.parseDate(fs.Arg(0))
	if err != nil {
		return err
	}
	local, err := e.cal.Weekday(u)
	if err != nil {
		return err
	}
	iso, err := e.cal.IsoWeekday(u)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "%v %d/%d\n", time.Weekday(iso%7), local, e.cal.DaysInWeek())
	return nil
}

func today(_ context.Context, e *env, args []string) error {
	fs := e.flags("today", "[-tz zone]")
	tz := fs.String("tz", "", "IANA time `zone`; the local zone if empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := nargs(fs, 0); err != nil {
		return err
	}
	var loc *time.Location
	if *tz != "" {
		var err error
		if loc, err = time.LoadLocation(*tz); err != nil {
			return err
		}
	}
	u, err := e.cal.Today(loc)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, u)
	return nil
}

func periods(ctx context.Context, e *env, args []string) error {
	fs := e.flags("periods", "[-type name] [-json] start end")
	typ := fs.String("type", "", "period type `name`; all types if empty")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := nargs(fs, 2); err != nil {
		return err
	}
	start, err := e.parseDate(fs.Arg(0))
	if err != nil {
		return err
	}
	end, err := e.parseDate(fs.Arg(1))
	if err != nil {
		return err
	}

	if *typ != "" {
		t, err := period.ByName(*typ)
		if err != nil {
			return err
		}
		ps, err := t.Generate(e.cal, start, end)
		if err != nil {
			return err
		}
		e.log.Debug("generated periods", slog.String("type", t.Name()), slog.Int("count", len(ps)))
		if *asJSON {
			return writeJSON(e.stdout, ps)
		}
		for _, p := range ps {
			fmt.Fprintf(e.stdout, "%s\t%v\t%v\n", p.ID, p.Start, p.End)
		}
		return nil
	}

	m, err := period.GenerateAll(ctx, e.cal, start, end)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(e.stdout, m)
	}
	for _, t := range period.Types() {
		for _, p := range m[t.Name()] {
			fmt.Fprintf(e.stdout, "%s\t%s\t%v\t%v\n", p.Type, p.ID, p.Start, p.End)
		}
	}
	return nil
}

func parse(_ context.Context, e *env, args []string) error {
	fs := e.flags("parse", "[-type name] [-json] id")
	typ := fs.String("type", "", "period type `name`; detected if empty")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := nargs(fs, 1); err != nil {
		return err
	}

	var (
		p   period.Period
		err error
	)
	if *typ == "" {
		p, err = period.ParseAny(e.cal, fs.Arg(0))
	} else {
		var t period.Type
		if t, err = period.ByName(*typ); err == nil {
			p, err = t.Parse(e.cal, fs.Arg(0))
		}
	}
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(e.stdout, p)
	}
	fmt.Fprintf(e.stdout, "%s\t%s\t%v\t%v\n", p.Type, p.ID, p.Start, p.End)
	return nil
}

func calendars(_ context.Context, e *env, args []string) error {
	fs := e.flags("calendars", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, n := range calendar.Names() {
		fmt.Fprintln(e.stdout, n)
	}
	return nil
}

func types(_ context.Context, e *env, args []string) error {
	fs := e.flags("types", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, t := range period.Types() {
		fmt.Fprintf(e.stdout, "%s\t%d\n", t.Name(), t.Frequency())
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
