// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/metrics"
)

var (
	// ErrNoData indicates that the provider has nothing to report for the request.
	ErrNoData = errors.New("no data available")
	// ErrNotConfigured indicates a missing or placeholder API key. It is returned before any
	// network round-trip.
	ErrNotConfigured = errors.New("provider is not configured")
	// ErrUnexpectedShape indicates a raw payload that does not match what the provider expects.
	ErrUnexpectedShape = errors.New("unexpected payload shape")
	// ErrProviderNotFound is returned for operations on an unregistered provider name.
	ErrProviderNotFound = errors.New("provider not found")
)

// Provider is implemented by each weather API backend and by the calculation-only advisors.
// FetchRaw performs the upstream call and Normalize turns its payload into Data. Normalize must
// be deterministic for a given payload and location.
type Provider interface {
	Name() string
	Describe() Info
	FetchRaw(ctx context.Context, lat, lon float64, tz string) (any, error)
	Normalize(raw any, location, tz string) (*Data, error)
}

// Info is the static description of a provider.
type Info struct {
	Name        string `json:"name"`
	Timeout     int    `json:"timeout"`
	Description string `json:"description"`
}

// Get fetches and normalizes weather data with the given provider. All failures are logged and
// collapse to nil, so callers only ever see a complete result or nothing.
func Get(ctx context.Context, p Provider, log *logger.Logger, lat, lon float64, location, tz string) *Data {
	start := time.Now()
	defer func() {
		metrics.ProviderLatency.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())
	}()

	data, err := fetchAndNormalize(ctx, p, lat, lon, location, tz)
	return report(p, log, data, err, slog.Float64("lat", lat), slog.Float64("lon", lon))
}

// Derive runs only the Normalize step of a calculation-only provider on input, e.g. a previously
// fetched weather result. Failures are handled like in Get.
func Derive(p Provider, log *logger.Logger, input any, location, tz string) *Data {
	start := time.Now()
	defer func() {
		metrics.ProviderLatency.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())
	}()

	data, err := normalize(p, input, location, tz)
	return report(p, log, data, err, slog.String("location", location))
}

// report records the outcome of a provider call and logs failures by category.
func report(p Provider, log *logger.Logger, data *Data, err error, extra ...any) *Data {
	if err == nil && data == nil {
		err = ErrNoData
	}

	attrs := append([]any{slog.String("provider", p.Name())}, extra...)
	switch {
	case err == nil:
		metrics.ProviderCallsTotal.WithLabelValues(p.Name(), metrics.OutcomeOK).Inc()
		return data
	case errors.Is(err, ErrNoData):
		metrics.ProviderCallsTotal.WithLabelValues(p.Name(), metrics.OutcomeNoData).Inc()
		log.Debug("weather provider has no data", append(attrs, logger.Err(err))...)
	case errors.Is(err, ErrNotConfigured):
		metrics.ProviderCallsTotal.WithLabelValues(p.Name(), metrics.OutcomeNotConfigured).Inc()
		log.Debug("weather provider is not configured", append(attrs, logger.Err(err))...)
	case errors.Is(err, ErrUnexpectedShape):
		metrics.ProviderCallsTotal.WithLabelValues(p.Name(), metrics.OutcomeUnexpectedShape).Inc()
		log.Error("weather provider returned an unexpected payload", append(attrs, logger.Err(err))...)
	default:
		metrics.ProviderCallsTotal.WithLabelValues(p.Name(), metrics.OutcomeError).Inc()
		log.Warn("failed to retrieve weather data", append(attrs, logger.Err(err))...)
	}
	return nil
}

func fetchAndNormalize(ctx context.Context, p Provider, lat, lon float64, location, tz string) (data *Data, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, r)
		}
	}()

	raw, err := p.FetchRaw(ctx, lat, lon, tz)
	if err != nil {
		return nil, err
	}
	return p.Normalize(raw, location, tz)
}

func normalize(p Provider, input any, location, tz string) (data *Data, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, r)
		}
	}()

	return p.Normalize(input, location, tz)
}

// RawAs asserts the raw payload to the type a provider's Normalize expects. A nil payload yields
// ErrNoData, any other type ErrUnexpectedShape.
func RawAs[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, ErrNoData
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T, want %T", ErrUnexpectedShape, raw, zero)
	}
	return v, nil
}
