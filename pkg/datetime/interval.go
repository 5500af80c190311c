// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

package datetime

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
)

// DateAddMonths adds a number of months to a day value. The day of
// month is clamped to the length of the target month, so Jan 31 plus
// one month is Feb 28 (or 29 in a leap year).
func DateAddMonths(days Days, months int) Days {
	y, m, d := civilFromEpochDays(days)
	total := y*12 + (m - 1) + months
	ny := int(floorDiv(int64(total), 12))
	nm := int(floorMod(int64(total), 12)) + 1
	if last := daysInMonth(ny, nm); d > last {
		d = last
	}
	return epochDaysFromCivil(ny, nm, d)
}

// TimestampAddInterval adds a (months, days, micros) interval to a
// timestamp in local calendar coordinates: the month and day parts
// move the local civil date (months with day-of-month clamping), the
// microsecond part is plain instant arithmetic. Fails with ErrOverflow
// when the result is not representable.
func TimestampAddInterval(
	micros Micros, months, days int, microsDelta int64, loc *time.Location,
) (Micros, error) {
	t := MicrosToTime(micros, loc)
	localDays := TimeToDays(t)
	newDays := DateAddMonths(localDays, months) + Days(days)
	y, m, d := civilFromEpochDays(newDays)
	shifted := time.Date(
		y, time.Month(m), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	base, err := TimeToMicros(shifted)
	if err != nil {
		return 0, err
	}
	out, ok := addCheck(int64(base), microsDelta)
	if !ok {
		return 0, errors.Wrapf(ErrOverflow, "interval addition")
	}
	return Micros(out), nil
}

// MonthsBetween returns the number of months between two timestamps
// as observed in loc, micros1 minus micros2. If the local days of
// month match, or both fall on the last day of their months, the
// result is a whole number of months; otherwise the remainder is
// computed assuming a 31-day month. With roundOff the result is
// rounded to 8 fractional digits.
func MonthsBetween(micros1, micros2 Micros, roundOff bool, loc *time.Location) float64 {
	t1 := MicrosToTime(micros1, loc)
	t2 := MicrosToTime(micros2, loc)
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()

	months := float64((y1-y2)*12 + int(m1) - int(m2))
	lastDay1 := d1 == daysInMonth(y1, int(m1))
	lastDay2 := d2 == daysInMonth(y2, int(m2))
	if d1 == d2 || (lastDay1 && lastDay2) {
		return maybeRound(months, roundOff)
	}

	secs1 := secondOfDay(t1)
	secs2 := secondOfDay(t2)
	fraction := (float64(d1-d2)*float64(SecondsPerDay) + secs1 - secs2) /
		(31 * float64(SecondsPerDay))
	return maybeRound(months+fraction, roundOff)
}

func secondOfDay(t time.Time) float64 {
	return float64(t.Hour()*3600+t.Minute()*60+t.Second()) +
		float64(t.Nanosecond())/float64(time.Second)
}

func maybeRound(v float64, roundOff bool) float64 {
	if !roundOff {
		return v
	}
	return math.Round(v*1e8) / 1e8
}
