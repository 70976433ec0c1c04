// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package hybrid implements a provider that blends the current conditions of a real-time provider
// into the full forecast of a general forecast provider.
package hybrid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/vartype"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	Name = "hybrid"

	LabelBlended          = "Hybrid (PirateWeather + OpenMeteo)"
	LabelRealtimeFallback = "PirateWeather (OpenMeteo fallback)"
	LabelForecastFallback = "OpenMeteo (PirateWeather fallback)"

	defaultVisibility = 10.0
	timeout           = time.Second * 10
)

// Hybrid fetches both sources concurrently and blends them. Forecast blocks always come from the
// forecast provider.
type Hybrid struct {
	realtime weather.Provider
	forecast weather.Provider
	log      *logger.Logger

	// preferRealtimeAtmospherics takes pressure, dew point, UV index and the day flag from the
	// real-time provider instead of the forecast provider.
	preferRealtimeAtmospherics bool
}

// Raw holds the raw payloads of both sources. A nil payload marks a failed source.
type Raw struct {
	Realtime any
	Forecast any
}

// New returns a new Hybrid provider for the given real-time and forecast providers.
func New(realtime, forecast weather.Provider, log *logger.Logger, preferRealtimeAtmospherics bool) (*Hybrid, error) {
	if realtime == nil || forecast == nil {
		return nil, fmt.Errorf("real-time and forecast providers are required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Hybrid{
		realtime:                   realtime,
		forecast:                   forecast,
		log:                        log,
		preferRealtimeAtmospherics: preferRealtimeAtmospherics,
	}, nil
}

func (h *Hybrid) Name() string {
	return Name
}

func (h *Hybrid) Describe() weather.Info {
	return weather.Info{
		Name:        Name,
		Timeout:     int(timeout.Seconds()),
		Description: "Hybrid provider that blends PirateWeather current + OpenMeteo forecasts",
	}
}

// FetchRaw fetches both sources concurrently. A failing source does not abort the other one; an
// error is only returned if both fail.
func (h *Hybrid) FetchRaw(ctx context.Context, lat, lon float64, tz string) (any, error) {
	raw := new(Raw)
	var realtimeErr, forecastErr error

	var group errgroup.Group
	group.Go(func() error {
		raw.Realtime, realtimeErr = h.realtime.FetchRaw(ctx, lat, lon, tz)
		return nil
	})
	group.Go(func() error {
		raw.Forecast, forecastErr = h.forecast.FetchRaw(ctx, lat, lon, tz)
		return nil
	})
	_ = group.Wait()

	if realtimeErr != nil && forecastErr != nil {
		return nil, errors.Join(realtimeErr, forecastErr)
	}
	if realtimeErr != nil {
		h.log.Debug("real-time source failed, continuing with forecast only", logger.Err(realtimeErr))
	}
	if forecastErr != nil {
		h.log.Debug("forecast source failed, continuing with real-time only", logger.Err(forecastErr))
	}
	return raw, nil
}

// Normalize normalizes both payloads with their own providers and blends the results.
func (h *Hybrid) Normalize(raw any, location, tz string) (*weather.Data, error) {
	payload, err := weather.RawAs[*Raw](raw)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, weather.ErrNoData
	}

	realtime := h.normalize(h.realtime, payload.Realtime, location, tz)
	forecast := h.normalize(h.forecast, payload.Forecast, location, tz)
	h.log.Debug("hybrid data sources available", slog.Bool("realtime", realtime != nil),
		slog.Bool("forecast", forecast != nil))

	data := h.Blend(realtime, forecast, location)
	if data == nil {
		return nil, weather.ErrNoData
	}
	return data, nil
}

func (h *Hybrid) normalize(p weather.Provider, raw any, location, tz string) *weather.Data {
	if raw == nil {
		return nil
	}
	data, err := p.Normalize(raw, location, tz)
	if err != nil {
		h.log.Debug("failed to normalize hybrid source", slog.String("provider", p.Name()), logger.Err(err))
		return nil
	}
	return data
}

// Blend merges the normalized results of both sources. If only one source is available, its result
// is returned with a provider label noting the fallback. It returns nil if neither is available.
func (h *Hybrid) Blend(realtime, forecast *weather.Data, location string) *weather.Data {
	switch {
	case realtime == nil && forecast == nil:
		return nil
	case forecast == nil:
		data := *realtime
		data.Provider = LabelRealtimeFallback
		return &data
	case realtime == nil || realtime.Current == nil:
		data := *forecast
		data.Provider = LabelForecastFallback
		return &data
	}

	data := *forecast
	data.Current = h.blendCurrent(realtime.Current, forecast.Current)
	data.Provider = LabelBlended
	data.Location = weather.LocationName(location)
	return &data
}

func (h *Hybrid) blendCurrent(rt, fc *weather.Current) *weather.Current {
	if fc == nil {
		fc = new(weather.Current)
	}
	cur := *fc

	cur.Temperature = rt.Temperature
	cur.FeelsLike = rt.FeelsLike
	cur.PrecipitationRate = rt.PrecipitationRate
	cur.PrecipitationProb = rt.PrecipitationProb
	if rt.PrecipitationType.IsSet() {
		cur.PrecipitationType = rt.PrecipitationType
	}
	cur.Summary = rt.Summary
	cur.Icon = rt.Icon
	cur.Visibility = vartype.NewVariable(rt.Visibility.Or(defaultVisibility))
	cur.Humidity = rt.Humidity
	cur.WindSpeed = rt.WindSpeed

	if h.preferRealtimeAtmospherics {
		if rt.Pressure != 0 {
			cur.Pressure = rt.Pressure
		}
		if rt.DewPoint.IsSet() {
			cur.DewPoint = rt.DewPoint
		}
		cur.UVIndex = rt.UVIndex
		cur.IsDay = rt.IsDay
	}

	rtType := rt.PrecipitationType.Or("")
	cur.RainRate = fc.RainRate
	if rtType == "rain" {
		cur.RainRate = max(fc.RainRate, rt.PrecipitationRate)
	}
	cur.SnowRate = fc.SnowRate
	if rtType == "snow" {
		cur.SnowRate = max(fc.SnowRate, rt.PrecipitationRate)
	}
	cur.ShowerRate = fc.ShowerRate

	cur.DataAge = rt.DataAge
	cur.Timestamp = rt.Timestamp
	return &cur
}
