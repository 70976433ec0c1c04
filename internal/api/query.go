// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wneessen/weather-aggregator/internal/service"
)

// locationQuery holds the query parameters shared by the location based endpoints.
type locationQuery struct {
	Latitude  *float64 `validate:"omitempty,latitude"`
	Longitude *float64 `validate:"omitempty,longitude"`
	Location  string   `validate:"max=100"`
	Timezone  string   `validate:"omitempty,timezone"`
	Date      string   `validate:"omitempty,datetime=2006-01-02"`
}

func (s *Server) parseLocationQuery(r *http.Request) (locationQuery, error) {
	values := r.URL.Query()
	query := locationQuery{
		Location: values.Get("location"),
		Timezone: values.Get("timezone"),
		Date:     values.Get("date"),
	}

	var err error
	if query.Latitude, err = parseCoordinate(values, "lat"); err != nil {
		return query, err
	}
	if query.Longitude, err = parseCoordinate(values, "lon"); err != nil {
		return query, err
	}
	if err = s.validate.Struct(query); err != nil {
		return query, fmt.Errorf("invalid query: %w", err)
	}
	return query, nil
}

func parseCoordinate(values url.Values, key string) (*float64, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return &value, nil
}

// coordinates returns the requested coordinate, or the default place if either part is missing.
func (q locationQuery) coordinates(fallback service.Place) (float64, float64) {
	if q.Latitude == nil || q.Longitude == nil {
		return fallback.Latitude, fallback.Longitude
	}
	return *q.Latitude, *q.Longitude
}

func (q locationQuery) name(fallback string) string {
	if q.Location != "" {
		return q.Location
	}
	return fallback
}

func (q locationQuery) timezone(fallback string) string {
	if q.Timezone != "" {
		return q.Timezone
	}
	return fallback
}

// date returns local noon of the requested day in tz, or the zero time if no date was requested.
// The query is validated, so parsing does not fail for validated input.
func (q locationQuery) date(tz string) (time.Time, error) {
	if q.Date == "" {
		return time.Time{}, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	day, err := time.ParseInLocation(time.DateOnly, q.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", q.Date, err)
	}
	return day.Add(time.Hour * 12), nil
}
