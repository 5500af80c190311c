// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

// Package timeutil provides time zone resolution and clock helpers for
// the calendar rebasing and parsing packages. Zone lookups never fall
// back to UTC silently: an unresolvable zone is an error, since a
// wrong zone would silently corrupt rebased dates.
package timeutil

import "time"

// FullTimeFormat is the time format used to display any timestamp
// with date, time and time zone data. The zone suffix carries seconds
// because historical zones have sub-minute offsets.
const FullTimeFormat = "2006-01-02 15:04:05.999999-07:00:00"

// Now returns the current time.
func Now() time.Time {
	return time.Now()
}

// Unix returns the time corresponding to the given Unix time in the
// UTC location, unlike time.Unix which uses the local time zone.
func Unix(sec, nsec int64) time.Time {
	return time.Unix(sec, nsec).UTC()
}
