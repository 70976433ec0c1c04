// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package calc

import (
	"math"
	"time"
)

const (
	// SynodicMonth is the mean length of the lunar cycle in days.
	SynodicMonth = 29.53058770576
	// NewMoonReference is the Julian day of the new moon of January 6th, 2000.
	NewMoonReference = 2451549.5

	gregorianReform = 2299161
)

// Moon phase names.
const (
	PhaseNewMoon        = "New Moon"
	PhaseWaxingCrescent = "Waxing Crescent"
	PhaseFirstQuarter   = "First Quarter"
	PhaseWaxingGibbous  = "Waxing Gibbous"
	PhaseFullMoon       = "Full Moon"
	PhaseWaningGibbous  = "Waning Gibbous"
	PhaseThirdQuarter   = "Third Quarter"
	PhaseWaningCrescent = "Waning Crescent"
)

// JulianDay converts the instant to a Julian day number including the fraction of the day.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	year, month, day := t.Year(), int(t.Month()), t.Day()
	if month <= 2 {
		year--
		month += 12
	}

	century := year / 100
	b := 2 - century + century/4
	jd := float64(int(365.25*float64(year+4716))) + float64(int(30.6001*float64(month+1))) +
		float64(day) + float64(b) - 1524.5

	secs := float64(t.Hour()*3600+t.Minute()*60+t.Second()) + float64(t.Nanosecond())/1e9
	return jd + secs/86400
}

// FromJulianDay converts a Julian day number back to a UTC time.
func FromJulianDay(jd float64) time.Time {
	z := int(jd + 0.5)
	fraction := jd + 0.5 - float64(z)

	beta := z
	if z >= gregorianReform {
		alpha := int((float64(z) - 1867216.25) / 36524.25)
		beta = z + 1 + alpha - alpha/4
	}
	gamma := beta + 1524
	delta := int((float64(gamma) - 122.1) / 365.25)
	epsilon := int(365.25 * float64(delta))
	zeta := int(float64(gamma-epsilon) / 30.6001)

	day := gamma - epsilon - int(30.6001*float64(zeta))
	month := zeta - 1
	if zeta > 13 {
		month = zeta - 13
	}
	year := delta - 4715
	if month > 2 {
		year = delta - 4716
	}

	midnight := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(fraction * 24 * float64(time.Hour)))
}

// LunarAge returns the number of days since the last new moon for the given Julian day.
func LunarAge(jd float64) float64 {
	cycles := (jd - NewMoonReference) / SynodicMonth
	age := (cycles - math.Trunc(cycles)) * SynodicMonth
	if age < 0 {
		age += SynodicMonth
	}
	return age
}

// LunarIllumination returns the illuminated fraction of the moon (0 at new moon, 1 at full moon).
func LunarIllumination(age float64) float64 {
	illumination := (1 - math.Cos(age/SynodicMonth*2*math.Pi)) / 2
	return math.Max(0, math.Min(1, illumination))
}

// LunarPhaseName returns the phase name for the given lunar age in days.
func LunarPhaseName(age float64) string {
	switch {
	case age < 1 || age > SynodicMonth-1:
		return PhaseNewMoon
	case age >= 6 && age <= 9:
		return PhaseFirstQuarter
	case age >= 13 && age <= 16:
		return PhaseFullMoon
	case age >= 20 && age <= 23:
		return PhaseThirdQuarter
	case age < 6:
		return PhaseWaxingCrescent
	case age < 13:
		return PhaseWaxingGibbous
	case age < 20:
		return PhaseWaningGibbous
	default:
		return PhaseWaningCrescent
	}
}

// NextNewMoon returns the next mean new moon after t.
func NextNewMoon(t time.Time) time.Time {
	months := (JulianDay(t) - NewMoonReference) / SynodicMonth
	return FromJulianDay(NewMoonReference + math.Ceil(months)*SynodicMonth)
}

// NextFullMoon returns the next mean full moon after t.
func NextFullMoon(t time.Time) time.Time {
	jd := JulianDay(t)
	months := (jd - NewMoonReference) / SynodicMonth
	full := NewMoonReference + math.Floor(months)*SynodicMonth + SynodicMonth/2
	if full < jd {
		full += SynodicMonth
	}
	return FromJulianDay(full)
}
