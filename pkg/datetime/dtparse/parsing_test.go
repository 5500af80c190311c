// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

package dtparse_test

import (
	"fmt"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/calshift/calshift/pkg/datetime"
	"github.com/calshift/calshift/pkg/datetime/dtparse"
	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

// parseNow is the fixed clock all data-driven cases run against:
// 2020-07-15 10:30:00 UTC, or 03:30 the same day in Los Angeles.
var parseNow = time.Date(2020, 7, 15, 10, 30, 0, 0, time.UTC)

// TestParseDataDriven feeds each input line of testdata/parse through
// ParseTimestamp or ParseDate, one result line per input line. Inputs
// that do not parse produce the line "error".
func TestParseDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/parse", func(t *testing.T, d *datadriven.TestData) string {
		loc := time.UTC
		if d.HasArg("zone") {
			var name string
			d.ScanArgs(t, "zone", &name)
			var err error
			loc, err = time.LoadLocation(name)
			require.NoError(t, err)
		}
		var buf strings.Builder
		for _, line := range strings.Split(d.Input, "\n") {
			switch d.Cmd {
			case "timestamp":
				if micros, ok := dtparse.ParseTimestamp(parseNow, loc, line); ok {
					fmt.Fprintf(&buf, "%d\n", int64(micros))
				} else {
					buf.WriteString("error\n")
				}
			case "date":
				if days, ok := dtparse.ParseDate(parseNow, loc, line); ok {
					fmt.Fprintf(&buf, "%d\n", int32(days))
				} else {
					buf.WriteString("error\n")
				}
			default:
				d.Fatalf(t, "unknown command %q", d.Cmd)
			}
		}
		return buf.String()
	})
}

func TestParseTimestampNilLocation(t *testing.T) {
	// A nil default location means UTC.
	got, ok := dtparse.ParseTimestamp(parseNow, nil, "2015-03-18 12:03:17")
	require.True(t, ok)
	require.Equal(t, datetime.Micros(1426680197000000), got)
}

func TestParseTimestampWhitespace(t *testing.T) {
	got, ok := dtparse.ParseTimestamp(parseNow, time.UTC, "  2015-03-18 12:03:17  ")
	require.True(t, ok)
	require.Equal(t, datetime.Micros(1426680197000000), got)

	_, ok = dtparse.ParseTimestamp(parseNow, time.UTC, "")
	require.False(t, ok)
}

func TestParseTimeOnlyUsesClockDate(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// 10:30 UTC on 2020-07-15 is still 2020-07-15 in Los Angeles, but a
	// clock late enough in the UTC day crosses into the next local day
	// in zones east of Greenwich.
	tokyoClock := time.Date(2020, 7, 15, 22, 30, 0, 0, time.UTC)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	got, ok := dtparse.ParseDate(tokyoClock, tokyo, "today")
	require.True(t, ok)
	require.Equal(t, datetime.Days(18459), got) // 2020-07-16 in Tokyo

	got, ok = dtparse.ParseDate(tokyoClock, la, "today")
	require.True(t, ok)
	require.Equal(t, datetime.Days(18458), got) // still 2020-07-15 in LA
}
