// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package calc

import (
	"math"
	"time"
)

// Sun depression angles for the twilight phases.
const (
	CivilTwilight        = -6.0
	NauticalTwilight     = -12.0
	AstronomicalTwilight = -18.0

	defaultDaylightHours = 12.0
)

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// SolarDeclination returns the solar declination in degrees for the given day of the year.
func SolarDeclination(dayOfYear int) float64 {
	return 23.45 * math.Sin(radians(360*float64(284+dayOfYear)/365))
}

// EquationOfTime returns the equation of time in minutes for the given day of the year.
func EquationOfTime(dayOfYear int) float64 {
	b := 2 * math.Pi * float64(dayOfYear-81) / 365
	return 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
}

// solarNoonHours returns the UTC hour of solar noon for the given longitude.
func solarNoonHours(lon, eot float64) float64 {
	return 12 - lon/15 - eot/60
}

func utcMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func addHours(t time.Time, hours float64) time.Time {
	return t.Add(time.Duration(hours * float64(time.Hour)))
}

// SunriseSunset returns sunrise and sunset in UTC for the UTC day of date. During polar day the
// sun rises 12 hours before and sets 12 hours after solar noon, during polar night both equal
// solar noon.
func SunriseSunset(lat, lon float64, date time.Time) (time.Time, time.Time) {
	day := utcMidnight(date)
	n := day.YearDay()
	decl := SolarDeclination(n)

	arg := -math.Tan(radians(lat)) * math.Tan(radians(decl))
	var hourAngle float64
	switch {
	case math.IsNaN(arg) || arg < -1 || arg > 1:
		if lat*decl > 0 {
			hourAngle = 180
		}
	default:
		hourAngle = degrees(math.Acos(arg))
	}

	noon := solarNoonHours(lon, EquationOfTime(n))
	return addHours(day, noon-hourAngle/15), addHours(day, noon+hourAngle/15)
}

// Twilight returns the time at which the sun passes the given depression angle in the morning
// (dawn) or evening. ok is false if the sun never reaches that angle on this day.
func Twilight(lat, lon float64, date time.Time, angle float64, dawn bool) (t time.Time, ok bool) {
	day := utcMidnight(date)
	n := day.YearDay()
	decl := radians(SolarDeclination(n))
	latRad := radians(lat)

	arg := (math.Sin(radians(angle)) - math.Sin(latRad)*math.Sin(decl)) / (math.Cos(latRad) * math.Cos(decl))
	if math.IsNaN(arg) || math.IsInf(arg, 0) || arg < -1 || arg > 1 {
		return time.Time{}, false
	}
	hourAngle := degrees(math.Acos(arg))

	noon := solarNoonHours(lon, EquationOfTime(n))
	if dawn {
		return addHours(day, noon-hourAngle/15), true
	}
	return addHours(day, noon+hourAngle/15), true
}

// SolarElevation returns the elevation of the sun above the horizon in degrees at instant t.
func SolarElevation(lat, lon float64, t time.Time) float64 {
	t = t.UTC()
	n := t.YearDay()
	decl := radians(SolarDeclination(n))

	solarTime := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	hourAngle := radians(15 * (solarTime - solarNoonHours(lon, EquationOfTime(n))))
	latRad := radians(lat)

	return degrees(math.Asin(math.Sin(latRad)*math.Sin(decl) + math.Cos(latRad)*math.Cos(decl)*math.Cos(hourAngle)))
}

// DaylightHours returns the time between sunrise and sunset in hours for the UTC day of date.
func DaylightHours(lat, lon float64, date time.Time) float64 {
	sunrise, sunset := SunriseSunset(lat, lon, date)
	hours := sunset.Sub(sunrise).Hours()
	if math.IsNaN(hours) {
		return defaultDaylightHours
	}
	return hours
}
