// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

package datetime

import "time"

// Year returns the proleptic Gregorian year of the given day.
func Year(days Days) int {
	y, _, _ := civilFromEpochDays(days)
	return y
}

// Month returns the month (1..12) of the given day.
func Month(days Days) int {
	_, m, _ := civilFromEpochDays(days)
	return m
}

// DayOfMonth returns the day of month (1..31) of the given day.
func DayOfMonth(days Days) int {
	_, _, d := civilFromEpochDays(days)
	return d
}

// Quarter returns the quarter (1..4) of the given day.
func Quarter(days Days) int {
	return (Month(days)-1)/3 + 1
}

// DayOfYear returns the ordinal day within the year (1..366).
func DayOfYear(days Days) int {
	return time.Unix(int64(days)*SecondsPerDay, 0).UTC().YearDay()
}

// IsoYear returns the ISO 8601 week-numbering year of the given day,
// which differs from the civil year near year boundaries.
func IsoYear(days Days) int {
	y, _ := time.Unix(int64(days)*SecondsPerDay, 0).UTC().ISOWeek()
	return y
}

// WeekOfYear returns the ISO 8601 week number (1..53) of the given
// day.
func WeekOfYear(days Days) int {
	_, w := time.Unix(int64(days)*SecondsPerDay, 0).UTC().ISOWeek()
	return w
}

// DayOfWeek returns the day of week as an epoch-anchored ordinal:
// day 0 (1970-01-01) was a Thursday, so Thursday is 0, Friday is 1,
// and Wednesday is 6. Downstream consumers depend on this numbering;
// it is intentionally not the ISO Monday-based one.
func DayOfWeek(days Days) int {
	return int(floorMod(int64(days), 7))
}

// Millennium returns the conventional millennium of the given day's
// year: years 1001..2000 are the second millennium, 2001..3000 the
// third. Years at or before 0 count backward from -1.
func Millennium(days Days) int {
	return eraUnit(Year(days), 1000)
}

// Century returns the conventional century of the given day's year:
// year 2000 belongs to the 20th century, 2001 to the 21st.
func Century(days Days) int {
	return eraUnit(Year(days), 100)
}

// Decade returns the year divided by ten, rounded toward negative
// infinity. Unlike Century and Millennium, decades are counted from
// year 0 by convention.
func Decade(days Days) int {
	return int(floorDiv(int64(Year(days)), 10))
}

func eraUnit(year, span int) int {
	if year > 0 {
		return (year + span - 1) / span
	}
	return year/span - 1
}
