// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package solar calculates the solar ephemeris of a location: sunrise and sunset, twilight, golden
// and blue hour, daylight progress and the current solar elevation.
package solar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/weather-aggregator/internal/calc"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/vartype"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	Name        = "solar"
	DisplayName = "SolarDataProvider"
)

// Request is the input of the solar calculation. A zero Date means now.
type Request struct {
	Latitude  float64
	Longitude float64
	Date      time.Time
}

// Advisor is the calculation-only solar provider.
type Advisor struct {
	log *logger.Logger
	now func() time.Time
}

// New returns a new solar advisor.
func New(log *logger.Logger) (*Advisor, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Advisor{log: log, now: time.Now}, nil
}

func (a *Advisor) Name() string {
	return Name
}

func (a *Advisor) Describe() weather.Info {
	return weather.Info{
		Name:        Name,
		Description: "Sunrise, sunset, twilight and daylight calculations",
	}
}

// FetchRaw never performs a request.
func (a *Advisor) FetchRaw(context.Context, float64, float64, string) (any, error) {
	return nil, nil
}

// Normalize expects a Request. An unknown or empty timezone falls back to UTC.
func (a *Advisor) Normalize(raw any, location, tz string) (*weather.Data, error) {
	req, err := weather.RawAs[Request](raw)
	if err != nil {
		return nil, err
	}

	loc := time.UTC
	if tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			a.log.Warn("unknown timezone, falling back to UTC", slog.String("timezone", tz), logger.Err(err))
			loc = time.UTC
		}
	}
	date := req.Date
	if date.IsZero() {
		date = a.now().In(loc)
	}

	solar := Calculate(req.Latitude, req.Longitude, date, a.now())
	solar.Location = weather.SolarLocation{Latitude: req.Latitude, Longitude: req.Longitude, Timezone: loc.String()}
	return &weather.Data{
		Solar:     &solar,
		Location:  weather.LocationName(location),
		Provider:  DisplayName,
		Timezone:  loc.String(),
		Timestamp: a.now().UTC().Format(time.RFC3339),
	}, nil
}

// Calculate returns the solar data for the UTC day of date. The solar elevation is taken at date,
// the daylight progress at now.
func Calculate(lat, lon float64, date, now time.Time) weather.Solar {
	date = date.UTC()
	sunrise, sunset := calc.SunriseSunset(lat, lon, date)
	daylight := sunset.Sub(sunrise)
	hours := daylight.Hours()

	var progress float64
	isDaylight := false
	switch {
	case !now.Before(sunrise) && !now.After(sunset):
		isDaylight = true
		if daylight > 0 {
			progress = min(1, float64(now.Sub(sunrise))/float64(daylight))
		}
	case now.After(sunset):
		progress = 1
	}

	elevation := calc.SolarElevation(lat, lon, date)
	yesterday := calc.DaylightHours(lat, lon, date.AddDate(0, 0, -1))
	tomorrow := calc.DaylightHours(lat, lon, date.AddDate(0, 0, 1))

	return weather.Solar{
		Times: weather.SolarTimes{
			Sunrise:                  format(sunrise),
			Sunset:                   format(sunset),
			SolarNoon:                format(sunrise.Add(daylight / 2)),
			CivilTwilightDawn:        twilight(lat, lon, date, calc.CivilTwilight, true),
			CivilTwilightDusk:        twilight(lat, lon, date, calc.CivilTwilight, false),
			NauticalTwilightDawn:     twilight(lat, lon, date, calc.NauticalTwilight, true),
			NauticalTwilightDusk:     twilight(lat, lon, date, calc.NauticalTwilight, false),
			AstronomicalTwilightDawn: twilight(lat, lon, date, calc.AstronomicalTwilight, true),
			AstronomicalTwilightDusk: twilight(lat, lon, date, calc.AstronomicalTwilight, false),
		},
		GoldenHour: weather.HourWindow{
			MorningStart: format(sunrise.Add(-30 * time.Minute)),
			MorningEnd:   format(sunrise.Add(30 * time.Minute)),
			EveningStart: format(sunset.Add(-30 * time.Minute)),
			EveningEnd:   format(sunset.Add(30 * time.Minute)),
		},
		BlueHour: weather.HourWindow{
			MorningStart: format(sunrise.Add(-60 * time.Minute)),
			MorningEnd:   format(sunrise.Add(-20 * time.Minute)),
			EveningStart: format(sunset.Add(20 * time.Minute)),
			EveningEnd:   format(sunset.Add(60 * time.Minute)),
		},
		Daylight: weather.Daylight{
			DurationHours:   calc.Round(hours, 2),
			DurationMinutes: int(calc.Round(hours*60, 0)),
			Progress:        calc.Round(progress, 3),
			IsDaylight:      isDaylight,
		},
		SolarElevation: weather.SolarElevation{
			CurrentDegrees: calc.Round(elevation, 2),
			IsAboveHorizon: elevation > 0,
		},
		Comparisons: weather.DaylightComparison{
			YesterdayDurationHours:     calc.Round(yesterday, 2),
			TomorrowDurationHours:      calc.Round(tomorrow, 2),
			ChangeFromYesterdayMinutes: calc.Round((hours-yesterday)*60, 1),
			ChangeToTomorrowMinutes:    calc.Round((tomorrow-hours)*60, 1),
		},
	}
}

func twilight(lat, lon float64, date time.Time, angle float64, dawn bool) vartype.VarString {
	t, ok := calc.Twilight(lat, lon, date, angle, dawn)
	if !ok {
		return vartype.VarString{}
	}
	return vartype.NewVariable(format(t))
}

func format(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
