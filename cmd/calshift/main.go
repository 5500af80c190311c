// Copyright 2025 The Calshift Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the LICENSE file.

// calshift is a development tool for poking at the library: it parses
// date/timestamp strings, rebases epoch values between calendars, and
// truncates timestamps, printing the raw and formatted results.
package main

import (
	"fmt"
	"os"
	"strconv"

	// Embed the zone database so the binary resolves IANA names on
	// hosts without one.
	_ "time/tzdata"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/calshift/calshift/pkg/datetime"
	"github.com/calshift/calshift/pkg/datetime/dtparse"
	"github.com/calshift/calshift/pkg/rebase"
	"github.com/calshift/calshift/pkg/timeutil"
)

var zoneName string

func main() {
	root := &cobra.Command{
		Use:           "calshift",
		Short:         "calendar rebasing and date/time parsing tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(
		&zoneName, "zone", "UTC", "IANA time zone for zone-aware operations")
	root.AddCommand(parseCmd(), rebaseCmd(), truncCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func parseCmd() *cobra.Command {
	var asDate bool
	cmd := &cobra.Command{
		Use:   "parse STRING",
		Short: "parse a date/timestamp string into an epoch value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := timeutil.TimeZoneStringToLocation(zoneName)
			if err != nil {
				return err
			}
			now := timeutil.Now()
			if asDate {
				days, ok := dtparse.ParseDate(now, loc, args[0])
				if !ok {
					return errors.Newf("cannot parse %q as date", args[0])
				}
				micros, err := datetime.DaysToMicros(days, loc)
				if err != nil {
					return err
				}
				fmt.Printf("%d\t%s\n", days,
					datetime.MicrosToTime(micros, loc).Format("2006-01-02"))
				return nil
			}
			micros, ok := dtparse.ParseTimestamp(now, loc, args[0])
			if !ok {
				return errors.Newf("cannot parse %q as timestamp", args[0])
			}
			fmt.Printf("%d\t%s\n", micros,
				datetime.MicrosToTime(micros, loc).Format(timeutil.FullTimeFormat))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asDate, "date", false, "parse as a date instead of a timestamp")
	return cmd
}

func rebaseCmd() *cobra.Command {
	var toJulian, asMicros bool
	cmd := &cobra.Command{
		Use:   "rebase VALUE",
		Short: "rebase an epoch value between calendars",
		Long: "Rebase an epoch day (default) or microsecond value between the\n" +
			"proleptic Gregorian and hybrid Julian/Gregorian calendars.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "bad value %q", args[0])
			}
			loc, err := timeutil.TimeZoneStringToLocation(zoneName)
			if err != nil {
				return err
			}
			if asMicros {
				in := datetime.Micros(v)
				var out datetime.Micros
				if toJulian {
					out = rebase.RebaseGregorianToJulianMicros(loc, in)
				} else {
					out = rebase.RebaseJulianToGregorianMicros(loc, in)
				}
				fmt.Println(int64(out))
				return nil
			}
			in := datetime.Days(v)
			var out datetime.Days
			if toJulian {
				out = rebase.RebaseGregorianToJulianDays(in)
			} else {
				out = rebase.RebaseJulianToGregorianDays(in)
			}
			fmt.Println(int32(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&toJulian, "to-julian", false,
		"rebase Gregorian to hybrid instead of hybrid to Gregorian")
	cmd.Flags().BoolVar(&asMicros, "micros", false,
		"treat VALUE as epoch microseconds instead of epoch days")
	return cmd
}

func truncCmd() *cobra.Command {
	var unitName string
	cmd := &cobra.Command{
		Use:   "trunc MICROS",
		Short: "truncate an epoch-microsecond timestamp to a granularity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "bad value %q", args[0])
			}
			unit, err := datetime.TruncUnitFromString(unitName)
			if err != nil {
				return err
			}
			loc, err := timeutil.TimeZoneStringToLocation(zoneName)
			if err != nil {
				return err
			}
			out, err := datetime.TruncTimestamp(datetime.Micros(v), unit, loc)
			if err != nil {
				return err
			}
			fmt.Printf("%d\t%s\n", out,
				datetime.MicrosToTime(out, loc).Format(timeutil.FullTimeFormat))
			return nil
		},
	}
	cmd.Flags().StringVar(&unitName, "unit", "day", "truncation granularity")
	return cmd
}
