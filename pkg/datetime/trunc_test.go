// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var allTruncUnits = []TruncUnit{
	TruncMicrosecond, TruncMillisecond, TruncSecond, TruncMinute,
	TruncHour, TruncDay, TruncWeek, TruncMonth, TruncQuarter,
	TruncYear, TruncDecade, TruncCentury, TruncMillennium,
}

func mustMicros(t *testing.T, tt time.Time) Micros {
	t.Helper()
	m, err := TimeToMicros(tt)
	require.NoError(t, err)
	return m
}

func TestTruncTimestampIdempotent(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		mustLoc(t, "America/New_York"),
		mustLoc(t, "Asia/Kolkata"),
	}
	inputs := []time.Time{
		time.Date(2019, 8, 9, 14, 23, 45, 123456000, time.UTC),
		time.Date(1969, 7, 20, 20, 17, 40, 0, time.UTC),
		time.Date(2001, 1, 1, 0, 0, 0, 1000, time.UTC),
	}
	for _, loc := range zones {
		for _, in := range inputs {
			x := mustMicros(t, in)
			for _, unit := range allTruncUnits {
				once, err := TruncTimestamp(x, unit, loc)
				require.NoError(t, err)
				twice, err := TruncTimestamp(once, unit, loc)
				require.NoError(t, err)
				require.Equal(t, once, twice,
					"%s in %s not idempotent", unit, loc)
				require.LessOrEqual(t, int64(once), int64(x))
			}
		}
	}
}

func TestTruncTimestampSubHourIsZoneFree(t *testing.T) {
	require.Equal(t, Micros(-1000000),
		mustTrunc(t, -1, TruncSecond, time.UTC))
	require.Equal(t, Micros(-1000),
		mustTrunc(t, -1, TruncMillisecond, time.UTC))
	require.Equal(t, Micros(0),
		mustTrunc(t, 59999999, TruncMinute, time.UTC))
	require.Equal(t, Micros(60000000),
		mustTrunc(t, 60000001, TruncMinute, time.UTC))
}

func TestTruncTimestampHourRespectsZoneOffset(t *testing.T) {
	// India is offset by half an hour: truncating to the hour must land
	// on the local hour boundary, which raw modulo arithmetic misses.
	ist := mustLoc(t, "Asia/Kolkata")
	in := mustMicros(t, time.Date(2015, 3, 18, 12, 45, 30, 0, ist))
	want := mustMicros(t, time.Date(2015, 3, 18, 12, 0, 0, 0, ist))
	require.Equal(t, want, mustTrunc(t, in, TruncHour, ist))
}

func TestTruncTimestampLocalFields(t *testing.T) {
	ny := mustLoc(t, "America/New_York")
	in := mustMicros(t, time.Date(2019, 8, 9, 14, 23, 45, 123456000, ny))
	testCases := []struct {
		unit TruncUnit
		want time.Time
	}{
		{TruncDay, time.Date(2019, 8, 9, 0, 0, 0, 0, ny)},
		{TruncWeek, time.Date(2019, 8, 5, 0, 0, 0, 0, ny)}, // Monday
		{TruncMonth, time.Date(2019, 8, 1, 0, 0, 0, 0, ny)},
		{TruncQuarter, time.Date(2019, 7, 1, 0, 0, 0, 0, ny)},
		{TruncYear, time.Date(2019, 1, 1, 0, 0, 0, 0, ny)},
		{TruncDecade, time.Date(2010, 1, 1, 0, 0, 0, 0, ny)},
		{TruncCentury, time.Date(2001, 1, 1, 0, 0, 0, 0, ny)},
		{TruncMillennium, time.Date(2001, 1, 1, 0, 0, 0, 0, ny)},
	}
	for _, tc := range testCases {
		t.Run(tc.unit.String(), func(t *testing.T) {
			require.Equal(t, mustMicros(t, tc.want), mustTrunc(t, in, tc.unit, ny))
		})
	}
}

func TestTruncCenturyBoundary(t *testing.T) {
	// Year 2000 is the last year of the 20th century, so it truncates
	// down to 1901, not 2000.
	in := mustMicros(t, time.Date(2000, 6, 1, 0, 0, 0, 0, time.UTC))
	want := mustMicros(t, time.Date(1901, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Equal(t, want, mustTrunc(t, in, TruncCentury, time.UTC))
}

func TestTruncDate(t *testing.T) {
	d := civilDays(2015, 3, 18)
	testCases := []struct {
		unit TruncUnit
		want Days
	}{
		{TruncMicrosecond, d},
		{TruncHour, d},
		{TruncDay, d},
		{TruncWeek, civilDays(2015, 3, 16)},
		{TruncMonth, civilDays(2015, 3, 1)},
		{TruncQuarter, civilDays(2015, 1, 1)},
		{TruncYear, civilDays(2015, 1, 1)},
		{TruncDecade, civilDays(2010, 1, 1)},
		{TruncCentury, civilDays(2001, 1, 1)},
		{TruncMillennium, civilDays(2001, 1, 1)},
	}
	for _, tc := range testCases {
		got, err := TruncDate(d, tc.unit)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "unit %s", tc.unit)
	}

	// Epoch day 0 was a Thursday; its week began on day -3.
	got, err := TruncDate(0, TruncWeek)
	require.NoError(t, err)
	require.Equal(t, Days(-3), got)
}

func TestTruncUnitFromString(t *testing.T) {
	u, err := TruncUnitFromString("WEEK")
	require.NoError(t, err)
	require.Equal(t, TruncWeek, u)

	u, err = TruncUnitFromString("mon")
	require.NoError(t, err)
	require.Equal(t, TruncMonth, u)

	_, err = TruncUnitFromString("fortnight")
	require.Error(t, err)
}

func mustTrunc(t *testing.T, in Micros, unit TruncUnit, loc *time.Location) Micros {
	t.Helper()
	out, err := TruncTimestamp(in, unit, loc)
	require.NoError(t, err)
	return out
}
