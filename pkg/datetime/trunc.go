// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

package datetime

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// TruncUnit is a truncation granularity, ordered from finest to
// coarsest.
type TruncUnit int8

const (
	TruncMicrosecond TruncUnit = iota
	TruncMillisecond
	TruncSecond
	TruncMinute
	TruncHour
	TruncDay
	TruncWeek
	TruncMonth
	TruncQuarter
	TruncYear
	TruncDecade
	TruncCentury
	TruncMillennium
)

var truncUnitNames = [...]string{
	TruncMicrosecond: "microsecond",
	TruncMillisecond: "millisecond",
	TruncSecond:      "second",
	TruncMinute:      "minute",
	TruncHour:        "hour",
	TruncDay:         "day",
	TruncWeek:        "week",
	TruncMonth:       "month",
	TruncQuarter:     "quarter",
	TruncYear:        "year",
	TruncDecade:      "decade",
	TruncCentury:     "century",
	TruncMillennium:  "millennium",
}

func (u TruncUnit) String() string {
	if u < 0 || int(u) >= len(truncUnitNames) {
		return "unknown"
	}
	return truncUnitNames[u]
}

// SafeValue implements redact.SafeValue.
func (u TruncUnit) SafeValue() {}

var _ redact.SafeValue = TruncUnit(0)

var truncUnitAliases = map[string]TruncUnit{
	"us":   TruncMicrosecond,
	"ms":   TruncMillisecond,
	"sec":  TruncSecond,
	"min":  TruncMinute,
	"mon":  TruncMonth,
	"mm":   TruncMonth,
	"yy":   TruncYear,
	"yyyy": TruncYear,
	"dd":   TruncDay,
}

// TruncUnitFromString resolves a granularity name, accepting the
// canonical names and a few common abbreviations.
func TruncUnitFromString(s string) (TruncUnit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for u, n := range truncUnitNames {
		if n == name {
			return TruncUnit(u), nil
		}
	}
	if u, ok := truncUnitAliases[name]; ok {
		return u, nil
	}
	return 0, errors.Newf("unsupported truncation unit %q", s)
}

// TruncTimestamp truncates micros down to the given granularity.
// Millisecond, second and minute truncation are pure modulo arithmetic
// on the microsecond value; hour and coarser granularities re-derive
// the result from local wall-clock fields in loc, because DST and
// non-UTC offsets make raw modulo incorrect there.
func TruncTimestamp(micros Micros, unit TruncUnit, loc *time.Location) (Micros, error) {
	switch unit {
	case TruncMicrosecond:
		return micros, nil
	case TruncMillisecond:
		return truncMod(micros, MicrosPerMillisecond), nil
	case TruncSecond:
		return truncMod(micros, MicrosPerSecond), nil
	case TruncMinute:
		return truncMod(micros, MicrosPerMinute), nil
	}

	t := MicrosToTime(micros, loc)
	y, m, d := t.Date()
	switch unit {
	case TruncHour:
		t = time.Date(y, m, d, t.Hour(), 0, 0, 0, loc)
	case TruncDay:
		t = time.Date(y, m, d, 0, 0, 0, 0, loc)
	case TruncWeek:
		days, err := TruncDate(TimeToDays(t), TruncWeek)
		if err != nil {
			return 0, err
		}
		return DaysToMicros(days, loc)
	case TruncMonth:
		t = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case TruncQuarter:
		t = time.Date(y, time.Month((int(m)-1)/3*3+1), 1, 0, 0, 0, 0, loc)
	case TruncYear:
		t = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	case TruncDecade, TruncCentury, TruncMillennium:
		t = time.Date(truncYear(y, unit), time.January, 1, 0, 0, 0, 0, loc)
	default:
		return 0, errors.Newf("unsupported truncation unit %s", unit)
	}
	return TimeToMicros(t)
}

// TruncDate truncates a day value down to the given granularity.
// Granularities finer than a day leave the value unchanged.
func TruncDate(days Days, unit TruncUnit) (Days, error) {
	switch unit {
	case TruncMicrosecond, TruncMillisecond, TruncSecond, TruncMinute, TruncHour, TruncDay:
		return days, nil
	case TruncWeek:
		// Day 0 of the epoch was a Thursday; Monday of that week is
		// day -3. The +3 offset is that convention, not ISO numbering.
		return days - Days(floorMod(int64(days)+3, 7)), nil
	}

	y, m, _ := civilFromEpochDays(days)
	switch unit {
	case TruncMonth:
		return epochDaysFromCivil(y, m, 1), nil
	case TruncQuarter:
		return epochDaysFromCivil(y, (m-1)/3*3+1, 1), nil
	case TruncYear:
		return epochDaysFromCivil(y, 1, 1), nil
	case TruncDecade, TruncCentury, TruncMillennium:
		return epochDaysFromCivil(truncYear(y, unit), 1, 1), nil
	}
	return 0, errors.Newf("unsupported truncation unit %s", unit)
}

// truncYear rounds a year down to the first year of its decade,
// century or millennium. Centuries and millennia start at year 1 of
// the span (2001, not 2000); decades start at multiples of ten.
func truncYear(y int, unit TruncUnit) int {
	switch unit {
	case TruncDecade:
		return int(floorDiv(int64(y), 10)) * 10
	case TruncCentury:
		return int(floorDiv(int64(y)-1, 100))*100 + 1
	default:
		return int(floorDiv(int64(y)-1, 1000))*1000 + 1
	}
}

func truncMod(micros Micros, unit int64) Micros {
	return micros - Micros(floorMod(int64(micros), unit))
}
