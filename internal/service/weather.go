// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/wneessen/weather-aggregator/internal/advisor/solar"
	"github.com/wneessen/weather-aggregator/internal/cache"
	"github.com/wneessen/weather-aggregator/internal/config"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

// AirQualityWindow is the time bucket of the air quality cache keys. Results refresh at the latest
// when the bucket rolls over.
const AirQualityWindow = time.Minute * 30

// CacheStats is the diagnostics view of the caches. The top level fields describe the weather
// cache.
type CacheStats struct {
	CacheSize       int                    `json:"cache_size"`
	MaxSize         int                    `json:"max_size"`
	TTLSeconds      int                    `json:"ttl_seconds"`
	CachedLocations []string               `json:"cached_locations"`
	Caches          map[string]cache.Stats `json:"caches"`
}

// Weather returns the weather for the coordinate. A cached result is returned with the requested
// location name.
func (s *Service) Weather(ctx context.Context, lat, lon float64, location, tz string) *weather.Data {
	key := cache.Key(lat, lon)
	if data, ok := s.weatherCache.Get(key); ok {
		s.logger.Debug("returning cached weather data", slog.String("key", key))
		return data.WithLocation(location)
	}

	s.logger.Debug("fetching weather data", slog.String("location", location), slog.String("key", key))
	data := s.manager.GetWeather(ctx, lat, lon, location, tz)
	if data == nil {
		return nil
	}
	s.weatherCache.Set(key, data)
	return data
}

// AirQualityAvailable reports whether an air quality provider is configured.
func (s *Service) AirQualityAvailable() bool {
	return s.airQuality != nil
}

// AirQuality returns the air quality for the coordinate. It returns nil if no air quality provider
// is configured.
func (s *Service) AirQuality(ctx context.Context, lat, lon float64, location string) *weather.Data {
	if s.airQuality == nil {
		return nil
	}

	key := cache.BucketKey(config.CacheAirQuality, lat, lon, s.now(), AirQualityWindow)
	if data, ok := s.airQualityCache.Get(key); ok {
		s.logger.Debug("returning cached air quality data", slog.String("key", key))
		return data
	}

	data := weather.Get(ctx, s.airQuality, s.logger, lat, lon, location, "")
	if data == nil {
		return nil
	}
	s.airQualityCache.Set(key, data)
	return data
}

// Alerts returns the active government alerts and the text forecast for the coordinate.
func (s *Service) Alerts(ctx context.Context, lat, lon float64, location string) *weather.Data {
	key := cache.KindKey(config.CacheAlerts, lat, lon)
	if data, ok := s.alertsCache.Get(key); ok {
		return data.WithLocation(location)
	}

	data := weather.Get(ctx, s.alerts, s.logger, lat, lon, location, "")
	if data == nil {
		return nil
	}
	s.alertsCache.Set(key, data)
	return data
}

// Radar returns the radar tile timeline for the coordinate. The free RainViewer provider is used
// if OpenWeatherMap is not configured or fails.
func (s *Service) Radar(ctx context.Context, lat, lon float64, location string) *weather.Data {
	key := cache.KindKey(config.CacheRadar, lat, lon)
	if data, ok := s.radarCache.Get(key); ok {
		return data.WithLocation(location)
	}

	var data *weather.Data
	if s.radar != nil {
		data = weather.Get(ctx, s.radar, s.logger, lat, lon, location, "")
	}
	if data == nil {
		s.logger.Debug("using free radar provider", slog.String("provider", s.freeRadar.Name()))
		data = weather.Get(ctx, s.freeRadar, s.logger, lat, lon, location, "")
	}
	if data == nil {
		return nil
	}
	s.radarCache.Set(key, data)
	return data
}

// Clothing returns clothing advice derived from the weather at the coordinate.
func (s *Service) Clothing(ctx context.Context, lat, lon float64, location, tz string) *weather.Data {
	return s.derived(ctx, s.clothing, s.clothingCache, lat, lon, location, tz)
}

// Trends returns the temperature trend analysis derived from the weather at the coordinate.
func (s *Service) Trends(ctx context.Context, lat, lon float64, location, tz string) *weather.Data {
	return s.derived(ctx, s.trends, s.trendsCache, lat, lon, location, tz)
}

func (s *Service) derived(ctx context.Context, advisor weather.Provider, store *cache.TTL[*weather.Data],
	lat, lon float64, location, tz string,
) *weather.Data {
	key := cache.KindKey(store.Name(), lat, lon)
	if data, ok := store.Get(key); ok {
		return data.WithLocation(location)
	}

	current := s.Weather(ctx, lat, lon, location, tz)
	if current == nil {
		return nil
	}
	data := weather.Derive(advisor, s.logger, current, location, tz)
	if data == nil {
		return nil
	}
	store.Set(key, data)
	return data
}

// Lunar returns the moon phase data for the current instant. The moon phase does not depend on the
// location.
func (s *Service) Lunar(location, tz string) *weather.Data {
	return weather.Derive(s.lunar, s.logger, s.now(), location, tz)
}

// Solar returns the sun times and daylight data of the coordinate for date. A zero date selects
// the current day in the timezone, UTC if the timezone is empty or unknown.
func (s *Service) Solar(lat, lon float64, date time.Time, location, tz string) *weather.Data {
	day := date
	if day.IsZero() {
		loc := time.UTC
		if named, err := time.LoadLocation(tz); tz != "" && err == nil {
			loc = named
		}
		day = s.now().In(loc)
	}
	key := cache.KindKey(config.CacheSolar, lat, lon) + ":" + day.Format(time.DateOnly) + ":" + tz
	if data, ok := s.solarCache.Get(key); ok {
		return data.WithLocation(location)
	}

	data := weather.Derive(s.solar, s.logger, solar.Request{Latitude: lat, Longitude: lon, Date: date},
		location, tz)
	if data == nil {
		return nil
	}
	s.solarCache.Set(key, data)
	return data
}

// Providers describes the registered weather providers.
func (s *Service) Providers() weather.ProvidersInfo {
	return s.manager.Describe()
}

// ProviderNames returns the sorted names of the registered weather providers.
func (s *Service) ProviderNames() []string {
	return s.manager.Names()
}

// SwitchProvider makes the named provider primary. On success the cached weather results and
// everything derived from them are dropped.
func (s *Service) SwitchProvider(name string) bool {
	if !s.manager.SwitchProvider(name) {
		return false
	}
	s.weatherCache.Clear()
	s.clothingCache.Clear()
	s.trendsCache.Clear()
	return true
}

// CacheStats returns the diagnostics of all caches.
func (s *Service) CacheStats() CacheStats {
	stats := CacheStats{Caches: make(map[string]cache.Stats, len(s.caches))}
	for _, c := range s.caches {
		stats.Caches[c.Name()] = c.Stats()
	}
	primary := stats.Caches[config.CacheWeather]
	stats.CacheSize = primary.Size
	stats.MaxSize = primary.MaxSize
	stats.TTLSeconds = primary.TTLSeconds
	stats.CachedLocations = primary.Keys
	return stats
}

// ClearCaches drops the entries of all caches.
func (s *Service) ClearCaches() {
	for _, c := range s.caches {
		c.Clear()
	}
	s.logger.Info("all caches cleared")
}
