// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

package dtparse

import (
	"strings"
	"time"

	"github.com/calshift/calshift/pkg/datetime"
	"github.com/calshift/calshift/pkg/timeutil"
)

// Special calendar literals, matched case-insensitively before the
// generic scan runs. A literal may be followed by whitespace and a
// zone id, except "now": it names an instant, so qualifying it with a
// zone is nonsensical and rejected.
const (
	litEpoch     = "epoch"
	litNow       = "now"
	litToday     = "today"
	litYesterday = "yesterday"
	litTomorrow  = "tomorrow"
)

// splitSpecial splits the input into a lowercased leading word and the
// remaining zone qualifier. handled is false when the word is not a
// special literal.
func splitSpecial(s string) (word, zone string, handled bool) {
	word = s
	if i := strings.IndexByte(s, ' '); i >= 0 {
		word, zone = s[:i], strings.TrimSpace(s[i+1:])
	}
	word = strings.ToLower(word)
	switch word {
	case litEpoch, litNow, litToday, litYesterday, litTomorrow:
		return word, zone, true
	}
	return "", "", false
}

// specialMicros handles the special literals for timestamp parsing.
// handled reports whether the input was a literal at all; ok reports
// whether it was a valid one.
func specialMicros(
	now time.Time, defaultLoc *time.Location, s string,
) (micros datetime.Micros, ok bool, handled bool) {
	word, zone, handled := splitSpecial(s)
	if !handled {
		return 0, false, false
	}
	loc := defaultLoc
	if zone != "" {
		if word == litNow {
			return 0, false, true
		}
		var err error
		if loc, err = timeutil.TimeZoneStringToLocation(zone); err != nil {
			return 0, false, true
		}
	}

	switch word {
	case litEpoch:
		return 0, true, true
	case litNow:
		m, err := datetime.TimeToMicros(now)
		return m, err == nil, true
	}

	y, m, d := now.In(loc).Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
	switch word {
	case litYesterday:
		midnight = midnight.AddDate(0, 0, -1)
	case litTomorrow:
		midnight = midnight.AddDate(0, 0, 1)
	}
	out, err := datetime.TimeToMicros(midnight)
	return out, err == nil, true
}

// specialDays handles the special literals for date parsing.
func specialDays(
	now time.Time, defaultLoc *time.Location, s string,
) (days datetime.Days, ok bool, handled bool) {
	word, zone, handled := splitSpecial(s)
	if !handled {
		return 0, false, false
	}
	loc := defaultLoc
	if zone != "" {
		if word == litNow {
			return 0, false, true
		}
		var err error
		if loc, err = timeutil.TimeZoneStringToLocation(zone); err != nil {
			return 0, false, true
		}
	}

	switch word {
	case litEpoch:
		return 0, true, true
	case litYesterday:
		return datetime.TimeToDays(now.In(loc)) - 1, true, true
	case litTomorrow:
		return datetime.TimeToDays(now.In(loc)) + 1, true, true
	default: // now, today
		return datetime.TimeToDays(now.In(loc)), true, true
	}
}
