// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

// Package rebase converts day and microsecond epoch values between the
// proleptic Gregorian calendar (used internally) and the hybrid
// Julian/Gregorian calendar (used by legacy systems), preserving the
// civil date/time label.
//
// The two calendars agree on and after the 1582-10-15 cutover, so
// values there pass through unchanged; earlier values are shifted by a
// cumulative day difference found in a small precomputed table. Tables
// are built once, published atomically, and read lock-free afterward.
package rebase

import (
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"golang.org/x/sync/singleflight"

	"github.com/calshift/calshift/pkg/datetime"
	"github.com/calshift/calshift/pkg/hybridcal"
	"github.com/calshift/calshift/pkg/timeutil"
)

// Kind selects a rebase direction.
type Kind int8

const (
	// KindGregorianToJulian rebases proleptic Gregorian values to the
	// hybrid calendar.
	KindGregorianToJulian Kind = iota
	// KindJulianToGregorian rebases hybrid-calendar values to the
	// proleptic Gregorian calendar.
	KindJulianToGregorian
)

func (k Kind) String() string {
	switch k {
	case KindGregorianToJulian:
		return "gregorian-julian"
	case KindJulianToGregorian:
		return "julian-gregorian"
	}
	return "unknown"
}

// SafeValue implements redact.SafeValue.
func (k Kind) SafeValue() {}

var _ redact.SafeValue = Kind(0)

// ErrCorruptRebaseData reports a malformed rebase table. It indicates
// a packaging defect, not a runtime condition, and is fatal: callers
// must not proceed with default or zero diffs.
var ErrCorruptRebaseData = errors.New("corrupt rebase data")

// LegacyCalendar is the narrow surface the table builder needs from
// the hybrid-calendar implementation. Production rebasing only ever
// touches the finished tables.
type LegacyCalendar interface {
	// DaysFromCivil converts a hybrid civil date to epoch days,
	// reporting false for labels that do not exist in that calendar.
	DaysFromCivil(y, m, d int) (int, bool)
}

type hybridCalendar struct{}

func (hybridCalendar) DaysFromCivil(y, m, d int) (int, bool) {
	return hybridcal.DaysFromCivil(y, m, d)
}

// Table maps inputs before its cutover onto the other calendar by
// adding the cumulative diff of the containing switch interval.
// Switches is strictly ascending; Diffs[i] applies to inputs in
// [Switches[i], Switches[i+1]). Inputs at or after Cutover, or before
// Switches[0], pass through unchanged.
type Table struct {
	Kind     Kind
	Switches []int64
	Diffs    []int64
	Cutover  int64
}

// Validate fails with ErrCorruptRebaseData when the table violates its
// structural invariants.
func (t *Table) Validate() error {
	if len(t.Switches) == 0 {
		return errors.Wrapf(ErrCorruptRebaseData, "%s: empty table", t.Kind)
	}
	if len(t.Switches) != len(t.Diffs) {
		return errors.Wrapf(ErrCorruptRebaseData,
			"%s: %d switches vs %d diffs", t.Kind, len(t.Switches), len(t.Diffs))
	}
	for i := 1; i < len(t.Switches); i++ {
		if t.Switches[i] <= t.Switches[i-1] {
			return errors.Wrapf(ErrCorruptRebaseData,
				"%s: switch points not strictly ascending at %d", t.Kind, i)
		}
	}
	if t.Cutover <= t.Switches[len(t.Switches)-1] {
		return errors.Wrapf(ErrCorruptRebaseData,
			"%s: cutover inside switch range", t.Kind)
	}
	return nil
}

// Rebase converts one value. Lower-bound semantics: an input equal to
// a switch point takes the diff of the interval starting there.
func (t *Table) Rebase(v int64) int64 {
	if v >= t.Cutover {
		return v
	}
	i := sort.Search(len(t.Switches), func(i int) bool {
		return t.Switches[i] > v
	}) - 1
	if i < 0 {
		// Before the table's domain (year 1); no adjustment known.
		return v
	}
	return v + t.Diffs[i]
}

// diffSwitchLabels are the civil dates at which the cumulative
// Julian/Gregorian day difference changes: the start of the table
// domain, then March 1 of every century year whose Julian leap day
// the Gregorian calendar skips. This is the static data the day
// tables are derived from.
var diffSwitchLabels = [...]struct{ y, m, d int }{
	{1, 1, 1},
	{100, 3, 1}, {200, 3, 1}, {300, 3, 1},
	{500, 3, 1}, {600, 3, 1}, {700, 3, 1},
	{900, 3, 1}, {1000, 3, 1}, {1100, 3, 1},
	{1300, 3, 1}, {1400, 3, 1}, {1500, 3, 1},
}

// buildDayTable derives a day-granularity table by comparing the
// legacy calendar with the proleptic Gregorian one at every switch
// label.
func buildDayTable(kind Kind, legacy LegacyCalendar) (*Table, error) {
	t := &Table{
		Kind:     kind,
		Switches: make([]int64, len(diffSwitchLabels)),
		Diffs:    make([]int64, len(diffSwitchLabels)),
		Cutover:  hybridcal.CutoverDays,
	}
	for i, l := range diffSwitchLabels {
		jd, ok := legacy.DaysFromCivil(l.y, l.m, l.d)
		if !ok {
			return nil, errors.Wrapf(ErrCorruptRebaseData,
				"switch label %04d-%02d-%02d not a legacy date", l.y, l.m, l.d)
		}
		gd := gregorianEpochDays(l.y, l.m, l.d)
		switch kind {
		case KindGregorianToJulian:
			t.Switches[i] = gd
			t.Diffs[i] = int64(jd) - gd
		case KindJulianToGregorian:
			t.Switches[i] = int64(jd)
			t.Diffs[i] = gd - int64(jd)
		default:
			return nil, errors.Wrapf(ErrCorruptRebaseData, "unknown kind %d", kind)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func gregorianEpochDays(y, m, d int) int64 {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC).Unix() /
		datetime.SecondsPerDay
}

var dayTables struct {
	once         sync.Once
	gregToJulian *Table
	julianToGreg *Table
	err          error
}

// LoadTable returns the day-granularity rebase table for the given
// direction. The tables are built on first use and immutable
// afterward; concurrent callers observe the same instance.
func LoadTable(kind Kind) (*Table, error) {
	dayTables.once.Do(func() {
		legacy := hybridCalendar{}
		dayTables.gregToJulian, dayTables.err = buildDayTable(KindGregorianToJulian, legacy)
		if dayTables.err != nil {
			return
		}
		dayTables.julianToGreg, dayTables.err = buildDayTable(KindJulianToGregorian, legacy)
	})
	if dayTables.err != nil {
		return nil, dayTables.err
	}
	switch kind {
	case KindGregorianToJulian:
		return dayTables.gregToJulian, nil
	case KindJulianToGregorian:
		return dayTables.julianToGreg, nil
	}
	return nil, errors.Wrapf(ErrCorruptRebaseData, "unknown kind %d", kind)
}

var (
	microsTables sync.Map // string -> *Table
	microsGroup  singleflight.Group
)

// LoadMicrosTable returns the microsecond-granularity rebase table for
// the given direction and zone. Every instant in the table's domain
// predates the zone's first recorded transition, so the table is the
// day table scaled to microseconds and shifted by the zone's fixed
// pre-transition (local mean time) offset. Tables are built once per
// (direction, zone) and published atomically.
func LoadMicrosTable(kind Kind, loc *time.Location) (*Table, error) {
	key := kind.String() + "|" + loc.String()
	if tbl, ok := microsTables.Load(key); ok {
		return tbl.(*Table), nil
	}
	v, err, _ := microsGroup.Do(key, func() (interface{}, error) {
		tbl, err := buildMicrosTable(kind, loc)
		if err != nil {
			return nil, err
		}
		actual, _ := microsTables.LoadOrStore(key, tbl)
		return actual, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

func buildMicrosTable(kind Kind, loc *time.Location) (*Table, error) {
	day, err := LoadTable(kind)
	if err != nil {
		return nil, err
	}
	cutoverSec := int64(hybridcal.CutoverDays) * datetime.SecondsPerDay
	_, offset := timeutil.Unix(cutoverSec, 0).In(loc).Zone()

	t := &Table{
		Kind:     kind,
		Switches: make([]int64, len(day.Switches)),
		Diffs:    make([]int64, len(day.Diffs)),
		Cutover:  (cutoverSec - int64(offset)) * datetime.MicrosPerSecond,
	}
	for i := range day.Switches {
		t.Switches[i] = (day.Switches[i]*datetime.SecondsPerDay - int64(offset)) *
			datetime.MicrosPerSecond
		t.Diffs[i] = day.Diffs[i] * datetime.MicrosPerDay
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
