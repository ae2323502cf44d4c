// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonih.org/calendar/period"
)

func runCommand(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = run(context.Background(), args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestCommands(t *testing.T) {
	tcs := []struct {
		name string
		args []string
		want string
	}{
		{"ConvertNepali", []string{"-calendar", "nepali", "convert", "2071-01-01"}, "2014-04-14\n"},
		{"ConvertFromISO", []string{"-calendar", "ethiopian", "convert", "-from-iso", "2014-09-11"}, "2007-01-01\n"},
		{"ConvertISO", []string{"convert", "2014-04-14"}, "2014-04-14\n"},
		{"AddDays", []string{"-calendar", "persian", "add", "1403-12-29", "1", "days"}, "1403-12-30\n"},
		{"AddMonths", []string{"add", "2024-01-31", "1", "months"}, "2024-02-29\n"},
		{"SubtractWeeks", []string{"add", "2024-01-15", "-2", "weeks"}, "2024-01-01\n"},
		{"AddYears", []string{"-calendar", "ethiopian", "add", "2007-12-30", "1", "year"}, "2008-12-30\n"},
		{"Weekday", []string{"weekday", "2024-01-01"}, "Monday 1/7\n"},
		{"WeekdayPersian", []string{"-calendar", "persian", "weekday", "1393-01-25"}, "Monday 2/7\n"},
		{
			"Periods",
			[]string{"-calendar", "ethiopian", "periods", "-type", "quarterly", "2007-01-01", "2008-01-01"},
			"2007Q1\t2014-09-11\t2014-12-09\n" +
				"2007Q2\t2014-12-10\t2015-03-09\n" +
				"2007Q3\t2015-03-10\t2015-06-07\n" +
				"2007Q4\t2015-06-08\t2015-09-11\n",
		},
		{"Parse", []string{"parse", "2014Q2"}, "quarterly\t2014Q2\t2014-04-01\t2014-06-30\n"},
		{"ParseType", []string{"-calendar", "nepali", "parse", "-type", "monthly", "207101"}, "monthly\t207101\t2014-04-14\t2014-05-14\n"},
		{"Calendars", []string{"calendars"}, "ethiopian\niso8601\nnepali\npersian\n"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			code, stdout, stderr := runCommand(t, tc.args...)
			require.Equal(t, 0, code, stderr)
			assert.Equal(t, tc.want, stdout)
		})
	}
}

func TestDefaultCalendar(t *testing.T) {
	t.Setenv("CALENDAR_DEFAULT", "nepali")
	code, stdout, stderr := runCommand(t, "convert", "2071-01-01")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "2014-04-14\n", stdout)

	// Flags take precedence.
	code, stdout, stderr = runCommand(t, "-calendar", "iso8601", "convert", "2071-01-01")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "2071-01-01\n", stdout)
}

func TestToday(t *testing.T) {
	code, stdout, stderr := runCommand(t, "today", "-tz", "UTC")
	require.Equal(t, 0, code, stderr)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}\n$`, stdout)
}

func TestTypes(t *testing.T) {
	code, stdout, stderr := runCommand(t, "types")
	require.Equal(t, 0, code, stderr)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, len(period.Types()))
	assert.Equal(t, "daily\t1", lines[0])
}

func TestPeriodsAll(t *testing.T) {
	code, stdout, stderr := runCommand(t, "periods", "2014-01-01", "2014-01-02")
	require.Equal(t, 0, code, stderr)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, len(period.Types()))
	assert.Equal(t, "daily\t20140101\t2014-01-01\t2014-01-01", lines[0])
	assert.Contains(t, lines, "weekly\t2014W01\t2013-12-30\t2014-01-05")
	assert.Contains(t, lines, "financial_july\t2013July\t2013-07-01\t2014-06-30")
}

func TestPeriodsJSON(t *testing.T) {
	code, stdout, stderr := runCommand(t, "-calendar", "nepali", "periods", "-json", "-type", "monthly", "2071-01-01", "2071-03-01")
	require.Equal(t, 0, code, stderr)

	var got []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []map[string]string{
		{"type": "monthly", "id": "207101", "start": "2014-04-14", "end": "2014-05-14"},
		{"type": "monthly", "id": "207102", "start": "2014-05-15", "end": "2014-06-14"},
	}, got)

	code, stdout, stderr = runCommand(t, "periods", "-json", "2014-01-01", "2014-01-02")
	require.Equal(t, 0, code, stderr)
	var all map[string][]map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &all))
	assert.Len(t, all, len(period.Types()))
	assert.Equal(t, "2014Q1", all["quarterly"][0]["id"])
}

func TestErrors(t *testing.T) {
	tcs := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"NoCommand", nil, "usage: calendar"},
		{"UnknownCommand", []string{"frobnicate"}, "unknown command"},
		{"UnknownCalendar", []string{"-calendar", "julian", "convert", "2014-01-01"}, "unknown calendar"},
		{"Syntax", []string{"convert", "2014-1-1x"}, "invalid date syntax"},
		{"InvalidDay", []string{"-calendar", "ethiopian", "convert", "2007-12-31"}, "invalid day"},
		{"OutOfRange", []string{"-calendar", "nepali", "convert", "-from-iso", "1900-01-01"}, "date out of conversion range"},
		{"MissingArgs", []string{"add", "2014-01-01", "1"}, "want 3 arguments"},
		{"BadCount", []string{"add", "2014-01-01", "x", "days"}, "invalid count"},
		{"BadUnit", []string{"add", "2014-01-01", "1", "fortnights"}, "invalid unit"},
		{"UnknownType", []string{"periods", "-type", "hourly", "2014-01-01", "2014-02-01"}, "unknown period type"},
		{"InvalidRange", []string{"periods", "-type", "daily", "2014-02-01", "2014-01-01"}, "invalid range"},
		{"InvalidIdentifier", []string{"parse", "2014Q5"}, "invalid period identifier"},
		{"BadFlag", []string{"convert", "-to-mars", "2014-01-01"}, "flag provided but not defined"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			code, _, stderr := runCommand(t, tc.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tc.stderr)
		})
	}
}

func TestHelp(t *testing.T) {
	code, _, stderr := runCommand(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "usage: calendar")

	code, _, stderr = runCommand(t, "periods", "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "usage: calendar periods")
}

func TestConfig(t *testing.T) {
	tcs := []struct {
		name  string
		key   string
		value string
	}{
		{"Calendar", "CALENDAR_DEFAULT", "julian"},
		{"LogFormat", "CALENDAR_LOG_FORMAT", "xml"},
		{"LogLevel", "CALENDAR_LOG_LEVEL", "verbose"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := loadConfigFromEnv()
			require.Error(t, err)

			code, _, stderr := runCommand(t, "calendars")
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, "invalid configuration")
		})
	}

	cfg, err := loadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, &config{Default: "iso8601", LogFormat: "text", LogLevel: "info"}, cfg)
}

func TestJSONLog(t *testing.T) {
	t.Setenv("CALENDAR_LOG_FORMAT", "json")
	t.Setenv("CALENDAR_LOG_LEVEL", "debug")
	code, _, stderr := runCommand(t, "-calendar", "nepali", "convert", "1999-01-01")
	require.Equal(t, 1, code)

	lines := strings.Split(strings.TrimSuffix(stderr, "\n"), "\n")
	require.Len(t, lines, 2)

	var debug, failure map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &debug))
	assert.Equal(t, "DEBUG", debug["level"])
	assert.Equal(t, "nepali", debug["calendar"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "command failed", failure["msg"])
	assert.Equal(t, "convert", failure["command"])
	assert.Contains(t, failure["error"], "date out of conversion range")
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		log, err := newLogger(&config{LogFormat: "text", LogLevel: level}, &bytes.Buffer{})
		require.NoError(t, err, level)
		require.NotNil(t, log)
	}

	_, err := newLogger(&config{LogFormat: "json", LogLevel: "verbose"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "verbose"`)
}

func TestParseLongNepaliMonth(t *testing.T) {
	code, stdout, stderr := runCommand(t, "-calendar", "nepali", "parse", "20660432")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "daily\t20660432\t2009-08-16\t2009-08-16\n", stdout)

	code, stdout, stderr = runCommand(t, "-calendar", "nepali", "convert", "-from-iso", "2026-10-14")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "2083-06-28\n", stdout)
}
