// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package pirateweather implements the real-time current conditions provider backed by the
// PirateWeather API.
package pirateweather

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/weather-aggregator/internal/calc"
	"github.com/wneessen/weather-aggregator/internal/http"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/vartype"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	Name        = "pirate-weather"
	DisplayName = "PirateWeather"
	DataSource  = "realtime"
	apiEndpoint = "https://api.pirateweather.net/forecast"
	apiTimeout  = time.Second * 10

	placeholderKey = "YOUR_API_KEY_HERE"
	hourlyLimit    = 6
)

// PirateWeather is the real-time provider. It reports current conditions and a short hourly
// outlook only.
type PirateWeather struct {
	apikey string
	log    *logger.Logger
	http   *http.Client
	now    func() time.Time
}

// DataPoint is a single PirateWeather observation or forecast hour.
type DataPoint struct {
	Time                int64              `json:"time"`
	Summary             vartype.VarString  `json:"summary"`
	Icon                vartype.VarString  `json:"icon"`
	PrecipIntensity     float64            `json:"precipIntensity"`
	PrecipProbability   float64            `json:"precipProbability"`
	PrecipType          vartype.VarString  `json:"precipType"`
	Temperature         float64            `json:"temperature"`
	ApparentTemperature float64            `json:"apparentTemperature"`
	DewPoint            vartype.VarFloat64 `json:"dewPoint"`
	Humidity            float64            `json:"humidity"`
	Pressure            float64            `json:"pressure"`
	WindSpeed           float64            `json:"windSpeed"`
	WindGust            vartype.VarFloat64 `json:"windGust"`
	WindBearing         vartype.VarFloat64 `json:"windBearing"`
	CloudCover          float64            `json:"cloudCover"`
	UVIndex             float64            `json:"uvIndex"`
	Visibility          vartype.VarFloat64 `json:"visibility"`
}

// Response is the subset of the PirateWeather forecast response the provider consumes.
type Response struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timezone  string     `json:"timezone"`
	Currently *DataPoint `json:"currently"`
	Hourly    struct {
		Summary string      `json:"summary"`
		Data    []DataPoint `json:"data"`
	} `json:"hourly"`
}

// New returns a new PirateWeather provider. An empty API key is accepted; the provider then reports
// itself as not configured on every request.
func New(http *http.Client, log *logger.Logger, apikey string) (*PirateWeather, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &PirateWeather{apikey: apikey, http: http, log: log, now: time.Now}, nil
}

func (p *PirateWeather) Name() string {
	return Name
}

func (p *PirateWeather) Describe() weather.Info {
	return weather.Info{
		Name:        Name,
		Timeout:     int(apiTimeout.Seconds()),
		Description: "PirateWeather provider - optimized for real-time current conditions",
	}
}

// Configured reports whether a usable API key is present.
func (p *PirateWeather) Configured() bool {
	return p.apikey != "" && p.apikey != placeholderKey
}

// FetchRaw requests the current conditions and the hourly forecast. It returns a *Response.
func (p *PirateWeather) FetchRaw(ctx context.Context, lat, lon float64, _ string) (any, error) {
	if !p.Configured() {
		return nil, fmt.Errorf("PirateWeather API key: %w", weather.ErrNotConfigured)
	}

	endpoint, err := url.JoinPath(apiEndpoint, p.apikey,
		strings.Join([]string{formatCoord(lat), formatCoord(lon)}, ","))
	if err != nil {
		return nil, fmt.Errorf("failed to build PirateWeather API URL: %w", err)
	}
	query := url.Values{}
	query.Set("units", "us")
	query.Set("exclude", "minutely,daily,alerts")

	res := new(Response)
	code, err := p.http.GetWithTimeout(ctx, endpoint, res, query, nil, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve weather data from PirateWeather API: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("PirateWeather API returned non-positive response code: %d", code)
	}
	return res, nil
}

// Normalize converts a *Response into weather data with the current block and up to six hourly
// entries in HourlyShort.
func (p *PirateWeather) Normalize(raw any, location, tz string) (*weather.Data, error) {
	res, err := weather.RawAs[*Response](raw)
	if err != nil {
		return nil, err
	}
	if res == nil || res.Currently == nil {
		return nil, weather.ErrNoData
	}
	if tz == "" {
		tz = res.Timezone
	}
	if tz == "" {
		tz = weather.DefaultTimezone
	}
	loc := weather.LoadLocation(tz)

	data := &weather.Data{
		Current:     p.current(res.Currently),
		HourlyShort: make([]weather.Hour, 0, hourlyLimit),
		Location:    weather.LocationName(location),
		Provider:    DisplayName,
		DataSource:  DataSource,
		Timezone:    tz,
		Timestamp:   p.now().In(loc).Format(time.RFC3339),
	}
	for _, hour := range res.Hourly.Data[:min(hourlyLimit, len(res.Hourly.Data))] {
		data.HourlyShort = append(data.HourlyShort, weather.Hour{
			Temp:              math.Round(hour.Temperature),
			Icon:              hour.Icon.Or("clear-day"),
			Rain:              math.Round(hour.PrecipProbability * 100),
			Time:              weather.HourLabel(time.Unix(hour.Time, 0).In(loc)),
			Desc:              hour.Summary.Or("Unknown"),
			PrecipitationRate: vartype.NewVariable(hour.PrecipIntensity),
		})
	}
	return data, nil
}

func (p *PirateWeather) current(cur *DataPoint) *weather.Current {
	icon := cur.Icon.Or("clear-day")
	current := &weather.Current{
		Temperature:       math.Round(cur.Temperature),
		FeelsLike:         math.Round(cur.ApparentTemperature),
		Humidity:          math.Round(cur.Humidity * 100),
		WindSpeed:         math.Round(cur.WindSpeed),
		WindDirection:     cur.WindBearing,
		WindGust:          cur.WindGust,
		UVIndex:           cur.UVIndex,
		Pressure:          calc.Round(cur.Pressure, 2),
		PrecipitationRate: cur.PrecipIntensity,
		PrecipitationProb: math.Round(cur.PrecipProbability * 100),
		PrecipitationType: cur.PrecipType,
		Icon:              icon,
		Summary:           cur.Summary.Or("Unknown"),
		IsDay:             !strings.Contains(icon, "night"),
		Timestamp:         vartype.NewVariable(cur.Time),
		DataAge:           vartype.NewVariable(p.dataAge(cur.Time)),
	}
	if cur.DewPoint.IsSet() {
		current.DewPoint = vartype.NewVariable(math.Round(cur.DewPoint.Value()))
	}
	if cur.Visibility.IsSet() {
		current.Visibility = vartype.NewVariable(calc.Round(cur.Visibility.Value(), 1))
	}
	return current
}

// dataAge returns the age of the observation in whole minutes.
func (p *PirateWeather) dataAge(timestamp int64) int64 {
	return max(0, (p.now().Unix()-timestamp)/60)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
