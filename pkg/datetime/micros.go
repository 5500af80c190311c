// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

// Package datetime provides the epoch arithmetic primitives, calendar
// field extraction, truncation and interval arithmetic shared by the
// parsing and rebasing packages.
//
// Timestamps are Micros: signed 64-bit microseconds since
// 1970-01-01T00:00:00Z. Dates are Days: signed 32-bit days since
// 1970-01-01, both in the proleptic Gregorian calendar. Arithmetic
// that would leave the representable range fails with ErrOverflow;
// it never wraps.
package datetime

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
)

// Micros is a timestamp in microseconds since the Unix epoch.
type Micros int64

// Days is a calendar date in days since the Unix epoch.
type Days int32

// Unit conversion factors.
const (
	MicrosPerMillisecond int64 = 1000
	MicrosPerSecond      int64 = 1000 * 1000
	MicrosPerMinute      int64 = 60 * MicrosPerSecond
	MicrosPerHour        int64 = 60 * MicrosPerMinute
	MicrosPerDay         int64 = 24 * MicrosPerHour
	SecondsPerDay        int64 = 24 * 60 * 60
	NanosPerMicro        int64 = 1000
)

// ErrOverflow is returned when a conversion or interval operation
// leaves the representable range of Micros or Days.
var ErrOverflow = errors.New("timestamp arithmetic overflow")

// MicrosToMillis converts microseconds to milliseconds, rounding
// toward negative infinity so that negative instants stay consistent
// with calendar-day semantics.
func MicrosToMillis(micros Micros) int64 {
	return floorDiv(int64(micros), MicrosPerMillisecond)
}

// MillisToMicros converts milliseconds to microseconds. It fails with
// ErrOverflow when the result is not representable.
func MillisToMicros(millis int64) (Micros, error) {
	m, ok := mulCheck(millis, MicrosPerMillisecond)
	if !ok {
		return 0, errors.Wrapf(ErrOverflow, "%d ms", millis)
	}
	return Micros(m), nil
}

// InstantToMicros converts a (seconds, nanos) instant to microseconds.
// The nanosecond component must be in [0, 1e9); it is truncated, not
// rounded, to microsecond precision. Fails with ErrOverflow when the
// result is not representable.
func InstantToMicros(sec int64, nsec int64) (Micros, error) {
	if nsec < 0 || nsec >= int64(time.Second) {
		return 0, errors.Newf("nanosecond component %d out of range", nsec)
	}
	s, ok := mulCheck(sec, MicrosPerSecond)
	if !ok {
		return 0, errors.Wrapf(ErrOverflow, "%d s", sec)
	}
	m, ok := addCheck(s, nsec/NanosPerMicro)
	if !ok {
		return 0, errors.Wrapf(ErrOverflow, "%d s", sec)
	}
	return Micros(m), nil
}

// MicrosToInstant splits a microsecond timestamp into (seconds, nanos)
// with nanos in [0, 1e9).
func MicrosToInstant(micros Micros) (sec int64, nsec int64) {
	sec = floorDiv(int64(micros), MicrosPerSecond)
	nsec = floorMod(int64(micros), MicrosPerSecond) * NanosPerMicro
	return sec, nsec
}

// TimeToMicros converts a time.Time to microseconds, truncating the
// sub-microsecond component toward negative infinity.
func TimeToMicros(t time.Time) (Micros, error) {
	return InstantToMicros(t.Unix(), int64(t.Nanosecond()))
}

// MicrosToTime converts microseconds to a time.Time in the given
// location.
func MicrosToTime(micros Micros, loc *time.Location) time.Time {
	sec, nsec := MicrosToInstant(micros)
	return time.Unix(sec, nsec).In(loc)
}

// DaysToMicros returns the instant of the local midnight starting the
// given civil day in loc. On days whose local midnight does not exist
// (a daylight-saving gap), the conversion resolves to the earliest
// valid instant of that day per the zone rules. Fails with ErrOverflow
// for days whose midnight is not representable in Micros.
func DaysToMicros(days Days, loc *time.Location) (Micros, error) {
	y, m, d := civilFromEpochDays(days)
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	return TimeToMicros(t)
}

// MicrosToDays returns the civil day containing the given instant in
// loc.
func MicrosToDays(micros Micros, loc *time.Location) Days {
	return TimeToDays(MicrosToTime(micros, loc))
}

// TimeToDays returns the civil day of t in t's location.
func TimeToDays(t time.Time) Days {
	y, m, d := t.Date()
	return epochDaysFromCivil(y, int(m), d)
}

// epochDaysFromCivil converts a proleptic Gregorian civil date to epoch
// days using the standard library calendar.
func epochDaysFromCivil(y, m, d int) Days {
	sec := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC).Unix()
	return Days(sec / SecondsPerDay)
}

// civilFromEpochDays converts epoch days to a proleptic Gregorian
// civil date.
func civilFromEpochDays(days Days) (y, m, d int) {
	t := time.Unix(int64(days)*SecondsPerDay, 0).UTC()
	year, month, day := t.Date()
	return year, int(month), day
}

// daysInMonth returns the number of days in the given proleptic
// Gregorian month.
func daysInMonth(y, m int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(y, time.Month(m+1), 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

func mulCheck(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/b != a || (a == math.MinInt64 && b == -1) {
		return 0, false
	}
	return r, true
}

func addCheck(a, b int64) (int64, bool) {
	r := a + b
	if (r > a) != (b > 0) {
		return 0, false
	}
	return r, true
}
