// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

// Package hybridcal implements the hybrid Julian/Gregorian calendar:
// Julian leap-year rules through 1582-10-04, Gregorian rules from
// 1582-10-15, with the ten days in between absent. This is the civil
// calendar convention used by legacy systems whose persisted day and
// timestamp values the rebase package converts to and from.
//
// Everything here is pure integer arithmetic over days since the Unix
// epoch (1970-01-01 in the proleptic Gregorian calendar). The package
// is consumed by rebase table construction and by tests as the
// reference implementation; the production rebase lookup never calls
// into it per conversion.
package hybridcal

// Epoch-day constants for the calendar cutover.
const (
	// CutoverDays is 1582-10-15, the first Gregorian day of the hybrid
	// calendar, in days since the Unix epoch.
	CutoverDays = -141427

	// LastJulianDays is 1582-10-04, the last Julian day of the hybrid
	// calendar. The next hybrid day is CutoverDays; the civil labels
	// 1582-10-05 through 1582-10-14 do not exist.
	LastJulianDays = CutoverDays - 1
)

const (
	// Days in the 400-year Gregorian and 4-year Julian leap cycles.
	daysPerGregorianCycle = 146097
	daysPerJulianCycle    = 1461

	// Days from the March-based cycle origin (0000-03-01) to
	// 1970-01-01 in each calendar.
	gregorianEpochShift = 719468
	julianEpochShift    = 719470
)

// IsJulianLeapYear reports whether year y is a leap year under the
// proleptic Julian rule (every fourth year, no century exception).
func IsJulianLeapYear(y int) bool {
	return floorMod(y, 4) == 0
}

// IsGregorianLeapYear reports whether year y is a leap year under the
// proleptic Gregorian rule.
func IsGregorianLeapYear(y int) bool {
	return floorMod(y, 4) == 0 && (floorMod(y, 100) != 0 || floorMod(y, 400) == 0)
}

// IsLeapYear reports whether year y is a leap year in the hybrid
// calendar: the Julian rule through the cutover year, Gregorian after.
func IsLeapYear(y int) bool {
	if y <= 1582 {
		return IsJulianLeapYear(y)
	}
	return IsGregorianLeapYear(y)
}

var daysPerMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in the given month of the
// hybrid calendar. The 1582-10-05..14 gap is not reflected here; use
// DaysFromCivil to check whether a specific label exists.
func DaysInMonth(y, m int) int {
	if m == 2 && IsLeapYear(y) {
		return 29
	}
	return daysPerMonth[m]
}

// GregorianDaysFromCivil converts a proleptic Gregorian civil date to
// days since the Unix epoch. The date is not validated.
func GregorianDaysFromCivil(y, m, d int) int {
	yy := y
	if m <= 2 {
		yy--
	}
	era := floorDiv(yy, 400)
	yoe := yy - era*400
	doy := (153*monthFromMarch(m)+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*daysPerGregorianCycle + doe - gregorianEpochShift
}

// GregorianCivilFromDays converts days since the Unix epoch to a
// proleptic Gregorian civil date.
func GregorianCivilFromDays(days int) (y, m, d int) {
	shifted := days + gregorianEpochShift
	era := floorDiv(shifted, daysPerGregorianCycle)
	doe := shifted - era*daysPerGregorianCycle
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	return civilFromYearAndDoy(era*400+yoe, doy)
}

// JulianDaysFromCivil converts a proleptic Julian civil date to days
// since the Unix epoch. The date is not validated.
func JulianDaysFromCivil(y, m, d int) int {
	yy := y
	if m <= 2 {
		yy--
	}
	era := floorDiv(yy, 4)
	yoe := yy - era*4
	doy := (153*monthFromMarch(m)+2)/5 + d - 1
	doe := yoe*365 + doy
	return era*daysPerJulianCycle + doe - julianEpochShift
}

// JulianCivilFromDays converts days since the Unix epoch to a
// proleptic Julian civil date.
func JulianCivilFromDays(days int) (y, m, d int) {
	shifted := days + julianEpochShift
	era := floorDiv(shifted, daysPerJulianCycle)
	doe := shifted - era*daysPerJulianCycle
	yoe := doe / 365
	if yoe == 4 {
		// The last day of the cycle is Feb 29 of the leap year.
		yoe = 3
	}
	doy := doe - 365*yoe
	return civilFromYearAndDoy(era*4+yoe, doy)
}

// DaysFromCivil converts a hybrid-calendar civil date to days since
// the Unix epoch. It returns false for labels that are not valid
// hybrid dates: out-of-range fields, Feb 29 of a non-leap year, and
// the 1582-10-05..14 gap.
func DaysFromCivil(y, m, d int) (int, bool) {
	if m < 1 || m > 12 || d < 1 || d > DaysInMonth(y, m) {
		return 0, false
	}
	if y == 1582 && m == 10 && d >= 5 && d <= 14 {
		return 0, false
	}
	if y > 1582 || (y == 1582 && (m > 10 || (m == 10 && d >= 15))) {
		return GregorianDaysFromCivil(y, m, d), true
	}
	return JulianDaysFromCivil(y, m, d), true
}

// CivilFromDays converts days since the Unix epoch to the hybrid
// civil date a legacy system would display for that day.
func CivilFromDays(days int) (y, m, d int) {
	if days >= CutoverDays {
		return GregorianCivilFromDays(days)
	}
	return JulianCivilFromDays(days)
}

// monthFromMarch maps a civil month (1=Jan) to its index in the
// March-based year (0=Mar .. 11=Feb).
func monthFromMarch(m int) int {
	return (m + 9) % 12
}

func civilFromYearAndDoy(marchYear, doy int) (y, m, d int) {
	mp := (5*doy + 2) / 153
	d = doy - (153*mp+2)/5 + 1
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	y = marchYear
	if m <= 2 {
		y++
	}
	return y, m, d
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
