// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build unix

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/wneessen/weather-aggregator/internal/api"
	"github.com/wneessen/weather-aggregator/internal/service"
)

var errNoResult = errors.New("no data available")

// ServeCmd runs the HTTP API until the process is terminated.
type ServeCmd struct {
	Listen string `help:"Address to listen on. Overrides the configured server address." short:"l"`
}

func (c *ServeCmd) Run(rt *runtime) error {
	if c.Listen != "" {
		rt.conf.Server.Address = c.Listen
	}
	serv, err := service.New(rt.conf, rt.log)
	if err != nil {
		return fmt.Errorf("failed to initialize weather-aggregator service: %w", err)
	}

	rt.log.Info("starting weather-aggregator service", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date),
		slog.String("address", rt.conf.Server.Address))
	if err = serv.Run(rt.ctx, api.New(serv, rt.log).Routes()); err != nil {
		return err
	}
	rt.log.Info("shutting down weather-aggregator service")
	return nil
}

// WeatherCmd prints the normalized weather data of the active provider chain.
type WeatherCmd struct {
	City     string   `help:"City shortcut or \"lat,lon\" pair. Takes precedence over the coordinates."`
	Lat      *float64 `help:"Latitude of the location." and:"coords"`
	Lon      *float64 `help:"Longitude of the location." and:"coords"`
	Location string   `help:"Display name of the location."`
	Timezone string   `help:"IANA timezone of the location." short:"t"`
}

func (c *WeatherCmd) Run(rt *runtime) error {
	serv, err := service.New(rt.conf, rt.log)
	if err != nil {
		return err
	}

	place := serv.DefaultPlace()
	switch {
	case c.City != "":
		var ok bool
		if place, ok = service.LookupCity(c.City); !ok {
			return fmt.Errorf("city %q not found, available cities: %s", c.City,
				strings.Join(service.CityKeys, ", "))
		}
	case c.Lat != nil && c.Lon != nil:
		place = service.Place{Latitude: *c.Lat, Longitude: *c.Lon, Name: c.Location}
	}
	if c.Location != "" {
		place.Name = c.Location
	}

	return printResult(os.Stdout, serv.Weather(rt.ctx, place.Latitude, place.Longitude, place.Name, c.Timezone))
}

// ProvidersCmd prints the provider chain.
type ProvidersCmd struct{}

func (c *ProvidersCmd) Run(rt *runtime) error {
	serv, err := service.New(rt.conf, rt.log)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, serv.Providers())
}

// LunarCmd prints the moon phase at the current time.
type LunarCmd struct {
	Timezone string `help:"IANA timezone used for the moon event times." short:"t"`
}

func (c *LunarCmd) Run(rt *runtime) error {
	serv, err := service.New(rt.conf, rt.log)
	if err != nil {
		return err
	}
	tz := c.Timezone
	if tz == "" {
		tz = serv.DefaultTimezone()
	}
	return printResult(os.Stdout, serv.Lunar("", tz))
}

// SolarCmd prints the sun events of a day.
type SolarCmd struct {
	Lat      *float64 `help:"Latitude of the location." and:"coords"`
	Lon      *float64 `help:"Longitude of the location." and:"coords"`
	Date     string   `help:"Day to calculate in YYYY-MM-DD format. Defaults to today."`
	Timezone string   `help:"IANA timezone of the location." short:"t"`
}

func (c *SolarCmd) Run(rt *runtime) error {
	serv, err := service.New(rt.conf, rt.log)
	if err != nil {
		return err
	}

	place := serv.DefaultPlace()
	if c.Lat != nil && c.Lon != nil {
		place = service.Place{Latitude: *c.Lat, Longitude: *c.Lon}
	}
	tz := c.Timezone
	if tz == "" {
		tz = serv.DefaultTimezone()
	}

	var day time.Time
	if c.Date != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", tz, err)
		}
		if day, err = time.ParseInLocation(time.DateOnly, c.Date, loc); err != nil {
			return fmt.Errorf("invalid date %q: %w", c.Date, err)
		}
		day = day.Add(time.Hour * 12)
	}

	return printResult(os.Stdout, serv.Solar(place.Latitude, place.Longitude, day, "", tz))
}

func printResult[T any](w io.Writer, result *T) error {
	if result == nil {
		return errNoResult
	}
	return printJSON(w, result)
}

func printJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
