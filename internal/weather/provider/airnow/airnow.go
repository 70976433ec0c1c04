// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package airnow implements the air quality provider backed by the EPA AirNow API.
package airnow

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/wneessen/weather-aggregator/internal/http"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	Name        = "airnow"
	DisplayName = "AirQuality (EPA AirNow)"
	apiEndpoint = "http://www.airnowapi.org/aq/observation/latLong/current/"
	apiTimeout  = time.Second * 10

	// searchRadius is the observation search distance in miles.
	searchRadius = "25"
)

// band is one EPA AQI category. The upper limit is inclusive.
type band struct {
	limit          int
	category       string
	recommendation string
	color          string
}

var bands = []band{
	{50, "Good", "Air quality is satisfactory for most people", "#00e400"},
	{100, "Moderate", "Sensitive individuals may experience minor symptoms", "#ffff00"},
	{150, "Unhealthy for Sensitive Groups", "Sensitive groups should reduce outdoor activities", "#ff7e00"},
	{200, "Unhealthy", "Everyone should limit outdoor activities", "#ff0000"},
	{300, "Very Unhealthy", "Avoid outdoor activities; stay indoors", "#99004c"},
}

var hazardous = band{
	category:       "Hazardous",
	recommendation: "Emergency conditions - avoid all outdoor activities",
	color:          "#7e0023",
}

// AirNow is the EPA AirNow air quality provider.
type AirNow struct {
	apikey string
	log    *logger.Logger
	http   *http.Client
}

// Observation is one pollutant reading of a reporting area.
type Observation struct {
	DateObserved  string  `json:"DateObserved"`
	HourObserved  int     `json:"HourObserved"`
	LocalTimeZone string  `json:"LocalTimeZone"`
	ReportingArea string  `json:"ReportingArea"`
	StateCode     string  `json:"StateCode"`
	Latitude      float64 `json:"Latitude"`
	Longitude     float64 `json:"Longitude"`
	ParameterName string  `json:"ParameterName"`
	AQI           int     `json:"AQI"`
	Category      struct {
		Number int    `json:"Number"`
		Name   string `json:"Name"`
	} `json:"Category"`
}

// New returns a new AirNow provider.
func New(http *http.Client, log *logger.Logger, apikey string) (*AirNow, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &AirNow{apikey: apikey, http: http, log: log}, nil
}

func (a *AirNow) Name() string {
	return Name
}

func (a *AirNow) Describe() weather.Info {
	return weather.Info{
		Name:        Name,
		Timeout:     int(apiTimeout.Seconds()),
		Description: "EPA AirNow API for official, accurate air quality index data",
	}
}

// FetchRaw requests the current observations around the coordinates. It returns a []Observation.
func (a *AirNow) FetchRaw(ctx context.Context, lat, lon float64, _ string) (any, error) {
	if a.apikey == "" {
		return nil, fmt.Errorf("AirNow API key: %w", weather.ErrNotConfigured)
	}

	query := url.Values{}
	query.Set("format", "application/json")
	query.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("distance", searchRadius)
	query.Set("API_KEY", a.apikey)

	var observations []Observation
	code, err := a.http.GetWithTimeout(ctx, apiEndpoint, &observations, query, nil, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve air quality data from AirNow API: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("AirNow API returned non-positive response code: %d", code)
	}
	if len(observations) == 0 {
		a.log.Debug("no AirNow observations in search radius", slog.Float64("lat", lat),
			slog.Float64("lon", lon))
	}
	return observations, nil
}

// Normalize picks the pollutant with the highest AQI as the overall air quality.
func (a *AirNow) Normalize(raw any, location, _ string) (*weather.Data, error) {
	observations, err := weather.RawAs[[]Observation](raw)
	if err != nil {
		return nil, err
	}
	if len(observations) == 0 {
		return nil, fmt.Errorf("empty observation list: %w", weather.ErrNoData)
	}

	highest, primary := 0, ""
	area := location
	readings := make(map[string]int, len(observations))
	for _, obs := range observations {
		readings[obs.ParameterName] = obs.AQI
		if obs.AQI > highest {
			highest = obs.AQI
			primary = obs.ParameterName
		}
		if area == "" || area == weather.UnknownLocation {
			area = obs.ReportingArea
		}
	}
	if highest == 0 {
		return nil, fmt.Errorf("no valid AQI reading: %w", weather.ErrNoData)
	}
	if area == "" {
		area = location
	}

	b := bandFor(highest)
	return &weather.Data{
		AQI: &weather.AirQuality{
			USAQI:                highest,
			Category:             b.category,
			HealthRecommendation: b.recommendation,
			Color:                b.color,
			PrimaryPollutant:     primary,
		},
		Pollutants: &weather.Pollutants{
			PM25: readings["PM2.5"],
			PM10: readings["PM10"],
			O3:   readings["O3"],
			NO2:  readings["NO2"],
			SO2:  readings["SO2"],
			CO:   readings["CO"],
		},
		ObservationCount: len(observations),
		Location:         weather.LocationName(area),
		Provider:         DisplayName,
	}, nil
}

// Category returns the EPA category name for the AQI value.
func Category(aqi int) string {
	return bandFor(aqi).category
}

// HealthRecommendation returns the health recommendation for the AQI value.
func HealthRecommendation(aqi int) string {
	return bandFor(aqi).recommendation
}

// Color returns the EPA color code for the AQI value.
func Color(aqi int) string {
	return bandFor(aqi).color
}

func bandFor(aqi int) band {
	for _, b := range bands {
		if aqi <= b.limit {
			return b
		}
	}
	return hazardous
}
