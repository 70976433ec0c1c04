// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"strings"
	"time"
	_ "time/tzdata"
)

// DefaultTimezone is used when neither the caller nor the upstream provides a timezone.
const DefaultTimezone = "America/Chicago"

// LocationName returns name or UnknownLocation if name is empty.
func LocationName(name string) string {
	if name == "" {
		return UnknownLocation
	}
	return name
}

// LoadLocation resolves the timezone name, falling back to DefaultTimezone and finally UTC.
func LoadLocation(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// HourLabel returns the short hour label used in hourly forecasts, e.g. "9am" or "12pm".
func HourLabel(t time.Time) string {
	return strings.ToLower(t.Format("3PM"))
}

// DayLabel returns the abbreviated weekday used in daily forecasts, e.g. "Mon".
func DayLabel(t time.Time) string {
	return t.Format("Mon")
}
