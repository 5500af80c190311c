// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

// Package dtparse converts free-form date and timestamp strings into
// epoch values. The grammar covers ISO-ish forms from a bare year up
// to full timestamps with fractional seconds and zone suffixes
// ("2015", "2015-03-18 12:03:17.123456", "T10:11:12Z",
// "2015-03-18 12:03:17 America/New_York"), plus the special literals
// "epoch", "now", "today", "yesterday" and "tomorrow".
//
// Parsing never panics and never returns a partial result: an input
// that does not exactly match the grammar, including one with trailing
// garbage after a valid prefix, yields ok=false.
package dtparse

import (
	"strings"
	"time"

	"github.com/calshift/calshift/pkg/datetime"
)

// ParseTimestamp converts a string into an epoch-microsecond
// timestamp. Fields missing from the input resolve to their minimum
// value (January, day 1, midnight). Strings without an explicit zone
// are interpreted in defaultLoc; time-only strings take their date
// from now as observed in the effective zone.
func ParseTimestamp(
	now time.Time, defaultLoc *time.Location, s string,
) (datetime.Micros, bool) {
	s = strings.TrimSpace(s)
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	if micros, ok, handled := specialMicros(now, defaultLoc, s); handled {
		return micros, ok
	}
	fs, err := scan(s)
	if err != nil {
		return 0, false
	}
	micros, err := fs.toMicros(now, defaultLoc)
	if err != nil {
		return 0, false
	}
	return micros, true
}

// ParseDate converts a string into an epoch-day date. The full
// timestamp grammar is accepted; time and zone components must still
// be well-formed but do not shift the resulting civil date.
func ParseDate(
	now time.Time, defaultLoc *time.Location, s string,
) (datetime.Days, bool) {
	s = strings.TrimSpace(s)
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	if days, ok, handled := specialDays(now, defaultLoc, s); handled {
		return days, ok
	}
	fs, err := scan(s)
	if err != nil {
		return 0, false
	}
	days, err := fs.toDays(now, defaultLoc)
	if err != nil {
		return 0, false
	}
	return days, true
}
