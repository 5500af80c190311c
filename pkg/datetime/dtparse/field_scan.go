// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

package dtparse

import (
	"time"

	"github.com/calshift/calshift/pkg/datetime"
	"github.com/calshift/calshift/pkg/timeutil"
	"github.com/cockroachdb/errors"
)

// Segment indices in fieldScan.segments.
const (
	segYear = iota
	segMonth
	segDay
	segHour
	segMinute
	segSecond
	segMicros
	segTZHour
	segTZMinute
	numSegments
)

// scanState identifies the segment the scanner is currently
// accumulating.
type scanState int8

const (
	scanYear scanState = iota
	scanMonth
	scanDay
	scanHour
	scanMinute
	scanSecond
	scanFraction
	scanTZHour
	scanTZMinute
	scanZoneName
	scanDone // a 'Z' suffix was consumed; no byte may follow
)

var errSyntax = errors.New("invalid date/time syntax")

// fieldScan is the state of the single left-to-right pass over the
// input. step consumes one byte; finish validates the terminal state
// and seals the segment in progress.
type fieldScan struct {
	state    scanState
	segments [numSegments]int
	digits   int  // digits accumulated in the current segment
	fracLen  int  // fractional digits seen, including dropped ones
	pos      int  // byte offset, for the leading-'T' rule
	justTime bool // time-only form; the date comes from the clock
	sawMonth bool // a month segment was started
	sawDay   bool // a day segment was started
	tzSign   int  // +1 or -1 once a numeric offset sign was seen
	utc      bool // 'Z' suffix
	zone     []byte
}

// scan runs the state machine over s.
func scan(s string) (*fieldScan, error) {
	fs := &fieldScan{}
	for i := 0; i < len(s); i++ {
		if err := fs.step(s[i]); err != nil {
			return nil, err
		}
		fs.pos++
	}
	if err := fs.finish(); err != nil {
		return nil, err
	}
	return fs, nil
}

// step is the per-byte transition function.
func (fs *fieldScan) step(c byte) error {
	switch fs.state {
	case scanYear:
		switch {
		case isDigit(c):
			if fs.digits == 4 {
				return errSyntax
			}
			fs.accumulate(segYear, c)
		case c == 'T' && fs.pos == 0:
			fs.justTime = true
			fs.state = scanHour
		case c == '-' && fs.digits == 4:
			fs.advance(scanMonth)
			fs.sawMonth = true
		case c == ':' && fs.digits >= 1 && fs.digits <= 2:
			// The leading digits were an hour: time-only form.
			fs.segments[segHour] = fs.segments[segYear]
			fs.segments[segYear] = 0
			fs.justTime = true
			fs.advance(scanMinute)
		case c == ' ' && fs.digits == 4:
			fs.advance(scanZoneName)
		default:
			return errSyntax
		}

	case scanMonth:
		switch {
		case isDigit(c):
			if fs.digits == 2 {
				return errSyntax
			}
			fs.accumulate(segMonth, c)
		case c == '-' && fs.digits >= 1:
			fs.advance(scanDay)
			fs.sawDay = true
		case c == ' ' && fs.digits >= 1:
			fs.advance(scanZoneName)
		default:
			return errSyntax
		}

	case scanDay:
		switch {
		case isDigit(c):
			if fs.digits == 2 {
				return errSyntax
			}
			fs.accumulate(segDay, c)
		case (c == ' ' || c == 'T') && fs.digits >= 1:
			fs.advance(scanHour)
		default:
			return errSyntax
		}

	case scanHour:
		switch {
		case isDigit(c):
			if fs.digits == 2 {
				return errSyntax
			}
			fs.accumulate(segHour, c)
		case c == ':' && fs.digits >= 1:
			fs.advance(scanMinute)
		case c == ' ' && fs.digits == 0:
			// Extra whitespace between the date and whatever follows.
		default:
			if fs.digits == 0 {
				// No time followed the separator: a zone suffix or a
				// numeric offset starts here instead.
				return fs.zoneIntro(c)
			}
			return fs.timeSuffix(c)
		}

	case scanMinute:
		switch {
		case isDigit(c):
			if fs.digits == 2 {
				return errSyntax
			}
			fs.accumulate(segMinute, c)
		case c == ':' && fs.digits >= 1:
			fs.advance(scanSecond)
		default:
			if fs.digits == 0 {
				return errSyntax
			}
			return fs.timeSuffix(c)
		}

	case scanSecond:
		switch {
		case isDigit(c):
			if fs.digits == 2 {
				return errSyntax
			}
			fs.accumulate(segSecond, c)
		case c == '.' && fs.digits >= 1:
			fs.advance(scanFraction)
		default:
			if fs.digits == 0 {
				return errSyntax
			}
			return fs.timeSuffix(c)
		}

	case scanFraction:
		switch {
		case isDigit(c):
			if fs.fracLen == 9 {
				return errSyntax
			}
			if fs.fracLen < 6 {
				fs.segments[segMicros] = fs.segments[segMicros]*10 + int(c-'0')
			}
			// Digits beyond the sixth are dropped, not rounded.
			fs.fracLen++
		default:
			if fs.fracLen == 0 {
				return errSyntax
			}
			return fs.timeSuffix(c)
		}

	case scanTZHour:
		switch {
		case isDigit(c):
			if fs.digits == 4 {
				return errSyntax
			}
			fs.accumulate(segTZHour, c)
		case c == ':' && fs.digits >= 1 && fs.digits <= 2:
			fs.advance(scanTZMinute)
		default:
			return errSyntax
		}

	case scanTZMinute:
		if !isDigit(c) || fs.digits == 2 {
			return errSyntax
		}
		fs.accumulate(segTZMinute, c)

	case scanZoneName:
		switch {
		case c == ' ' && len(fs.zone) == 0:
			// Skip whitespace preceding the zone name.
		case isZoneNameByte(c):
			fs.zone = append(fs.zone, c)
		default:
			return errSyntax
		}

	case scanDone:
		return errSyntax
	}
	return nil
}

// timeSuffix handles the bytes that may terminate a completed time
// segment: 'Z', a numeric offset sign, or the start of a zone name.
func (fs *fieldScan) timeSuffix(c byte) error {
	if c == 'Z' {
		// Uppercase only; a lowercase z is not a UTC marker.
		fs.utc = true
		fs.advance(scanDone)
		return nil
	}
	return fs.zoneIntro(c)
}

func (fs *fieldScan) zoneIntro(c byte) error {
	switch {
	case c == '+':
		fs.tzSign = 1
		fs.advance(scanTZHour)
	case c == '-':
		fs.tzSign = -1
		fs.advance(scanTZHour)
	case c == ' ':
		fs.advance(scanZoneName)
	case isAlpha(c):
		// An attached zone word such as "GMT+5" or "UTC".
		fs.advance(scanZoneName)
		fs.zone = append(fs.zone, c)
	default:
		return errSyntax
	}
	return nil
}

func (fs *fieldScan) accumulate(seg int, c byte) {
	fs.segments[seg] = fs.segments[seg]*10 + int(c-'0')
	fs.digits++
}

func (fs *fieldScan) advance(next scanState) {
	fs.state = next
	fs.digits = 0
}

// finish seals the segment in progress and validates the terminal
// state.
func (fs *fieldScan) finish() error {
	switch fs.state {
	case scanYear:
		if fs.digits != 4 {
			return errSyntax
		}
	case scanMonth, scanDay, scanMinute, scanSecond:
		if fs.digits < 1 || fs.digits > 2 {
			return errSyntax
		}
	case scanHour:
		// digits == 0 would mean a trailing separator, which the
		// initial TrimSpace makes unreachable for ' '; a trailing 'T'
		// still lands here.
		if fs.digits < 1 || fs.digits > 2 {
			return errSyntax
		}
	case scanFraction:
		if fs.fracLen < 1 {
			return errSyntax
		}
	case scanTZHour:
		switch fs.digits {
		case 1, 2:
			// [+-]H or [+-]HH.
		case 4:
			// [+-]HHMM, colonless.
			fs.segments[segTZMinute] = fs.segments[segTZHour] % 100
			fs.segments[segTZHour] /= 100
		default:
			return errSyntax
		}
	case scanTZMinute:
		if fs.digits != 2 {
			return errSyntax
		}
	case scanZoneName:
		if len(fs.zone) == 0 {
			return errSyntax
		}
	case scanDone:
	}

	if fs.fracLen > 0 {
		for i := fs.fracLen; i < 6; i++ {
			fs.segments[segMicros] *= 10
		}
	}
	return nil
}

// location resolves the effective time zone of the parsed string:
// an explicit numeric offset or 'Z' wins, then a trailing zone name,
// then the caller's default.
func (fs *fieldScan) location(defaultLoc *time.Location) (*time.Location, error) {
	switch {
	case fs.utc:
		return time.UTC, nil
	case fs.tzSign != 0:
		if fs.segments[segTZMinute] > 59 {
			return nil, errSyntax
		}
		offset := fs.tzSign * (fs.segments[segTZHour]*3600 + fs.segments[segTZMinute]*60)
		return timeutil.FixedOffsetLocation(offset, "parsed offset")
	case len(fs.zone) > 0:
		return timeutil.TimeZoneStringToLocation(string(fs.zone))
	}
	return defaultLoc, nil
}

// civil resolves and validates the civil date/time fields, taking the
// date from now for time-only forms.
func (fs *fieldScan) civil(now time.Time, loc *time.Location) (y, mo, d int, err error) {
	if fs.justTime {
		ny, nm, nd := now.In(loc).Date()
		y, mo, d = ny, int(nm), nd
	} else {
		y = fs.segments[segYear]
		mo, d = 1, 1
		if fs.sawMonth {
			mo = fs.segments[segMonth]
		}
		if fs.sawDay {
			d = fs.segments[segDay]
		}
		// Constructive check: an invalid combination such as Feb 29 of
		// a non-leap year normalizes to a different date.
		check := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
		cy, cm, cd := check.Date()
		if cy != y || int(cm) != mo || cd != d {
			return 0, 0, 0, errSyntax
		}
	}
	if fs.segments[segHour] > 23 ||
		fs.segments[segMinute] > 59 ||
		fs.segments[segSecond] > 59 {
		return 0, 0, 0, errSyntax
	}
	return y, mo, d, nil
}

func (fs *fieldScan) toMicros(now time.Time, defaultLoc *time.Location) (datetime.Micros, error) {
	loc, err := fs.location(defaultLoc)
	if err != nil {
		return 0, err
	}
	y, mo, d, err := fs.civil(now, loc)
	if err != nil {
		return 0, err
	}
	t := time.Date(
		y, time.Month(mo), d,
		fs.segments[segHour], fs.segments[segMinute], fs.segments[segSecond],
		fs.segments[segMicros]*int(datetime.NanosPerMicro), loc)
	return datetime.TimeToMicros(t)
}

func (fs *fieldScan) toDays(now time.Time, defaultLoc *time.Location) (datetime.Days, error) {
	loc, err := fs.location(defaultLoc)
	if err != nil {
		return 0, err
	}
	y, mo, d, err := fs.civil(now, loc)
	if err != nil {
		return 0, err
	}
	return datetime.TimeToDays(time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isZoneNameByte(c byte) bool {
	return isAlpha(c) || isDigit(c) ||
		c == '/' || c == '_' || c == '+' || c == '-' || c == ':' || c == '.'
}
