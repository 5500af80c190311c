// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrInvalidOffset is returned when a numeric zone offset cannot be
// turned into a fixed-offset location.
var ErrInvalidOffset = errors.New("invalid zone offset")

// MaxOffsetSeconds bounds the magnitude of a fixed zone offset. It
// matches the widest offset representable by common zone libraries;
// real zones top out at ±14:00.
const MaxOffsetSeconds = 18 * 60 * 60

const fixedOffsetPrefix string = "fixed offset:"

// offsetPattern matches GMT/UTC/UT prefixed offsets such as "UTC+5",
// "GMT-08:30" and "UT+07:52:58". Hours are not bounded here; the
// magnitude check happens in FixedOffsetLocation.
var offsetPattern = regexp.MustCompile(
	`(?i)^(?:GMT|UTC|UT)([+-])(\d{1,2})(?::(\d{2})(?::(\d{2}))?)?$`)

// FixedOffsetLocation creates a time.Location with the given offset in
// seconds east of UTC, carrying the representation the offset was
// parsed from. It fails with ErrInvalidOffset when the offset exceeds
// MaxOffsetSeconds.
func FixedOffsetLocation(offset int, origRepr string) (*time.Location, error) {
	if offset > MaxOffsetSeconds || offset < -MaxOffsetSeconds {
		return nil, errors.Mark(
			errors.Newf("zone offset %d out of range", offset), ErrInvalidOffset)
	}
	return time.FixedZone(
		fmt.Sprintf("%s%d (%s)", fixedOffsetPrefix, offset, origRepr),
		offset), nil
}

// ParseFixedOffsetTimeZone parses the string representation of a
// location created by FixedOffsetLocation back into its offset and the
// original representation. The bool is true if parsing succeeded.
//
// The strings produced by FixedOffsetLocation look like
// "<fixedOffsetPrefix><offset> (<origRepr>)".
func ParseFixedOffsetTimeZone(location string) (offset int, origRepr string, success bool) {
	if !strings.HasPrefix(location, fixedOffsetPrefix) {
		return 0, "", false
	}
	location = strings.TrimPrefix(location, fixedOffsetPrefix)
	parts := strings.SplitN(location, " ", 2)
	if len(parts) < 2 {
		return 0, "", false
	}

	offset, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", false
	}

	origRepr = parts[1]
	if !strings.HasPrefix(origRepr, "(") || !strings.HasSuffix(origRepr, ")") {
		return 0, "", false
	}
	return offset, strings.TrimSuffix(strings.TrimPrefix(origRepr, "("), ")"), true
}

// TimeZoneOffsetStringConversion converts a GMT/UTC/UT prefixed offset
// string to seconds east of UTC. Sub-minute offsets are supported
// since historical zones carry them. Returns ok=false when the string
// is not an offset form.
func TimeZoneOffsetStringConversion(s string) (offset int64, ok bool) {
	m := offsetPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.ParseInt(m[2], 10, 64)
	var minutes, seconds int64
	if m[3] != "" {
		minutes, _ = strconv.ParseInt(m[3], 10, 64)
	}
	if m[4] != "" {
		seconds, _ = strconv.ParseInt(m[4], 10, 64)
	}
	if minutes > 59 || seconds > 59 {
		return 0, false
	}
	offset = hours*60*60 + minutes*60 + seconds
	if m[1] == "-" {
		offset = -offset
	}
	return offset, true
}

// TimeZoneStringToLocation transforms a string into a time.Location.
// It supports IANA zone names, the GMT/UTC/UT offset forms handled by
// TimeZoneOffsetStringConversion, and the representations produced by
// FixedOffsetLocation. Unresolvable zones fail with
// ErrInvalidTimeZone; there is no silent UTC fallback.
func TimeZoneStringToLocation(location string) (*time.Location, error) {
	if offset, origRepr, parsed := ParseFixedOffsetTimeZone(location); parsed {
		return FixedOffsetLocation(offset, origRepr)
	}
	switch strings.ToLower(strings.TrimSpace(location)) {
	case "":
		return nil, errors.Mark(errors.New("empty time zone"), ErrInvalidTimeZone)
	case "gmt", "utc", "ut":
		return time.UTC, nil
	}
	if offset, ok := TimeZoneOffsetStringConversion(location); ok {
		loc, err := FixedOffsetLocation(int(offset), location)
		if err != nil {
			return nil, errors.Mark(err, ErrInvalidTimeZone)
		}
		return loc, nil
	}
	return LoadLocation(location)
}
