// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

package datetime

import (
	"math"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestDateAddMonths(t *testing.T) {
	testCases := []struct {
		y, m, d int
		months  int
		wy      int
		wm      int
		wd      int
	}{
		{2015, 1, 31, 1, 2015, 2, 28},  // clamp to non-leap February
		{2016, 1, 31, 1, 2016, 2, 29},  // clamp to leap February
		{2016, 2, 29, 12, 2017, 2, 28}, // leap day plus a year
		{2015, 3, 31, -1, 2015, 2, 28},
		{2015, 1, 15, 13, 2016, 2, 15},
		{2015, 1, 15, -25, 2012, 12, 15},
		{2015, 6, 30, 0, 2015, 6, 30},
	}
	for _, tc := range testCases {
		got := DateAddMonths(civilDays(tc.y, tc.m, tc.d), tc.months)
		require.Equal(t, civilDays(tc.wy, tc.wm, tc.wd), got,
			"%04d-%02d-%02d + %d months", tc.y, tc.m, tc.d, tc.months)
	}
}

func TestTimestampAddInterval(t *testing.T) {
	in := mustMicros(t, time.Date(2015, 1, 31, 10, 0, 0, 500000000, time.UTC))

	// Month clamping carries the time of day through unchanged.
	got, err := TimestampAddInterval(in, 1, 0, 0, time.UTC)
	require.NoError(t, err)
	want := mustMicros(t, time.Date(2015, 2, 28, 10, 0, 0, 500000000, time.UTC))
	require.Equal(t, want, got)

	// Day and microsecond components stack on top of the month shift.
	got, err = TimestampAddInterval(in, 1, 2, 30*MicrosPerMinute, time.UTC)
	require.NoError(t, err)
	want = mustMicros(t, time.Date(2015, 3, 2, 10, 30, 0, 500000000, time.UTC))
	require.Equal(t, want, got)

	// The microsecond part overflows int64.
	_, err = TimestampAddInterval(Micros(math.MaxInt64-10), 0, 0, 1000, time.UTC)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrOverflow))
}

func TestTimestampAddIntervalLocalCalendar(t *testing.T) {
	// Adding a month across a DST change keeps the local wall clock,
	// not the UTC instant.
	ny := mustLoc(t, "America/New_York")
	in := mustMicros(t, time.Date(2019, 2, 15, 12, 0, 0, 0, ny))
	got, err := TimestampAddInterval(in, 1, 0, 0, ny)
	require.NoError(t, err)
	require.Equal(t, mustMicros(t, time.Date(2019, 3, 15, 12, 0, 0, 0, ny)), got)
}

func TestMonthsBetween(t *testing.T) {
	ts := func(y int, m time.Month, d, hh, mm, ss int) Micros {
		return mustMicros(t, time.Date(y, m, d, hh, mm, ss, 0, time.UTC))
	}

	// Partial months are resolved against a 31-day month.
	got := MonthsBetween(
		ts(1997, time.February, 28, 10, 30, 0),
		ts(1996, time.October, 30, 0, 0, 0),
		true, time.UTC)
	require.Equal(t, 3.94959677, got)

	// Same day of month gives a whole number regardless of time of day.
	got = MonthsBetween(
		ts(2015, time.March, 15, 23, 0, 0),
		ts(2015, time.January, 15, 1, 0, 0),
		true, time.UTC)
	require.Equal(t, 2.0, got)

	// Both on the last day of their months also gives a whole number.
	got = MonthsBetween(
		ts(2015, time.February, 28, 0, 0, 0),
		ts(2015, time.January, 31, 0, 0, 0),
		true, time.UTC)
	require.Equal(t, 1.0, got)

	// Negative direction.
	got = MonthsBetween(
		ts(1996, time.October, 30, 0, 0, 0),
		ts(1997, time.February, 28, 10, 30, 0),
		true, time.UTC)
	require.Equal(t, -3.94959677, got)

	// Without rounding, the raw quotient survives.
	raw := MonthsBetween(
		ts(1997, time.February, 28, 10, 30, 0),
		ts(1996, time.October, 30, 0, 0, 0),
		false, time.UTC)
	require.InDelta(t, 3.9495967741935485, raw, 1e-15)
	require.NotEqual(t, 3.94959677, raw)
}
