// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"strconv"
	"strings"
)

// Place is a named coordinate.
type Place struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Name      string  `json:"name"`
}

// CityKeys lists the city shortcuts in display order.
var CityKeys = []string{"chicago", "nyc", "sf", "london", "paris", "tokyo", "sydney", "berlin", "rome", "madrid"}

var cities = map[string]Place{
	"chicago": {41.8781, -87.6298, "Chicago"},
	"nyc":     {40.7128, -74.0060, "New York City"},
	"sf":      {37.7749, -122.4194, "San Francisco"},
	"london":  {51.5074, -0.1278, "London"},
	"paris":   {48.8566, 2.3522, "Paris"},
	"tokyo":   {35.6762, 139.6503, "Tokyo"},
	"sydney":  {-33.8688, 151.2093, "Sydney"},
	"berlin":  {52.5200, 13.4050, "Berlin"},
	"rome":    {41.9028, 12.4964, "Rome"},
	"madrid":  {40.4168, -3.7038, "Madrid"},
}

// LookupCity resolves a city shortcut, case-insensitively, or a "lat,lon" pair within the valid
// coordinate range.
func LookupCity(city string) (Place, bool) {
	if place, ok := cities[strings.ToLower(city)]; ok {
		return place, true
	}

	latStr, lonStr, found := strings.Cut(city, ",")
	if !found {
		return Place{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Place{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Place{}, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Place{}, false
	}
	return Place{Latitude: lat, Longitude: lon, Name: city}, true
}

// DefaultPlace returns the configured location used for requests without coordinates.
func (s *Service) DefaultPlace() Place {
	loc := s.config.Weather.DefaultLocation
	return Place{Latitude: loc.Latitude, Longitude: loc.Longitude, Name: loc.Name}
}

// DefaultTimezone returns the configured fallback timezone.
func (s *Service) DefaultTimezone() string {
	return s.config.Weather.DefaultTimezone
}
