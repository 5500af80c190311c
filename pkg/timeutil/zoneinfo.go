// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

package timeutil

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrInvalidTimeZone is the cause of every zone-resolution failure
// reported by this package. Callers match it with errors.Is.
var ErrInvalidTimeZone = errors.New("invalid time zone")

var errTZDataNotFound = errors.New("timezone data cannot be found")

// LoadLocation returns the time.Location with the given name.
// The name is taken to be a location name corresponding to a file
// in the IANA Time Zone database, such as "America/New_York".
//
// We do not use Go's time.LoadLocation() directly because:
// 1) it maps "Local" to the local time zone, whereas we want UTC.
// 2) when a tz is not found, it reports some garbage message
// related to zoneinfo.zip, which we don't ship, instead
// of a more useful message like "the tz file with such name
// is not present in one of the standard tz locations".
func LoadLocation(name string) (*time.Location, error) {
	switch strings.ToLower(name) {
	case "local", "default":
		name = "UTC"
	}
	l, err := time.LoadLocation(name)
	if err != nil {
		if strings.Contains(err.Error(), "zoneinfo.zip") {
			err = errTZDataNotFound
		}
		return nil, errors.Mark(errors.Wrapf(err, "cannot load time zone %q", name), ErrInvalidTimeZone)
	}
	return l, nil
}
