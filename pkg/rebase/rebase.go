// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

package rebase

import (
	"time"

	"github.com/calshift/calshift/pkg/datetime"
	"github.com/calshift/calshift/pkg/hybridcal"
)

// RebaseGregorianToJulianDays converts a proleptic Gregorian day value
// to the hybrid-calendar day carrying the same civil date. Days at or
// after the 1582-10-15 cutover pass through unchanged; that is the
// overwhelmingly common case. Gregorian labels inside the 1582-10-05
// to 1582-10-14 gap have no hybrid equivalent and land ten days later.
func RebaseGregorianToJulianDays(days datetime.Days) datetime.Days {
	if days >= hybridcal.CutoverDays {
		return days
	}
	return datetime.Days(mustLoadTable(KindGregorianToJulian).Rebase(int64(days)))
}

// RebaseJulianToGregorianDays converts a hybrid-calendar day value to
// the proleptic Gregorian day carrying the same civil date. Days at or
// after the cutover pass through unchanged.
func RebaseJulianToGregorianDays(days datetime.Days) datetime.Days {
	if days >= hybridcal.CutoverDays {
		return days
	}
	return datetime.Days(mustLoadTable(KindJulianToGregorian).Rebase(int64(days)))
}

// RebaseGregorianToJulianMicros converts a microsecond timestamp from
// the proleptic Gregorian to the hybrid calendar, preserving the local
// wall-clock reading in loc. The calendar divergence is a civil
// concept, so the day component is rebased in local coordinates and
// the microsecond-of-day is reattached unchanged: both calendars share
// the same 24-hour day.
func RebaseGregorianToJulianMicros(loc *time.Location, micros datetime.Micros) datetime.Micros {
	return rebaseMicros(KindGregorianToJulian, loc, micros)
}

// RebaseJulianToGregorianMicros is the inverse of
// RebaseGregorianToJulianMicros.
func RebaseJulianToGregorianMicros(loc *time.Location, micros datetime.Micros) datetime.Micros {
	return rebaseMicros(KindJulianToGregorian, loc, micros)
}

func rebaseMicros(kind Kind, loc *time.Location, micros datetime.Micros) datetime.Micros {
	// The UTC cutover bounds every zone's local cutover by less than a
	// day; modern timestamps skip the table machinery entirely.
	if int64(micros) >= lastSwitchMicros+int64(datetime.MicrosPerDay) {
		return micros
	}
	if loc == nil {
		loc = time.UTC
	}
	tbl, err := LoadMicrosTable(kind, loc)
	if err != nil {
		panic(err)
	}
	return datetime.Micros(tbl.Rebase(int64(micros)))
}

const lastSwitchMicros = int64(hybridcal.CutoverDays) * 24 * 60 * 60 * 1000 * 1000

func mustLoadTable(kind Kind) *Table {
	tbl, err := LoadTable(kind)
	if err != nil {
		// A corrupt table is a packaging defect; there is no sane way
		// to continue rebasing values.
		panic(err)
	}
	return tbl
}
