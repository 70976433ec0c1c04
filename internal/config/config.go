// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/kkyr/fig"

	"github.com/wneessen/weather-aggregator/internal/weather/provider/hybrid"
	openmeteo "github.com/wneessen/weather-aggregator/internal/weather/provider/open-meteo"
	pirateweather "github.com/wneessen/weather-aggregator/internal/weather/provider/pirate-weather"
)

const configEnv = "WEATHERAGG"

// Cache names as used in the configuration, the metrics and the cache diagnostics.
const (
	CacheWeather    = "weather"
	CacheAirQuality = "airquality"
	CacheAlerts     = "alerts"
	CacheRadar      = "radar"
	CacheClothing   = "clothing"
	CacheSolar      = "solar"
	CacheTrends     = "trends"
)

const defaultCacheSize = 100

var defaultCacheTTLs = map[string]time.Duration{
	CacheWeather:    time.Minute * 3,
	CacheAirQuality: time.Minute * 30,
	CacheAlerts:     time.Minute * 5,
	CacheRadar:      time.Minute * 10,
	CacheClothing:   time.Minute * 3,
	CacheSolar:      time.Hour,
	CacheTrends:     time.Minute * 10,
}

// PrimaryProviders lists the provider names allowed as configured primary.
var PrimaryProviders = []string{openmeteo.Name, pirateweather.Name, hybrid.Name}

// Config represents the application's configuration structure.
type Config struct {
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Server struct {
		Address         string        `fig:"address" default:"127.0.0.1:8080"`
		ReadTimeout     time.Duration `fig:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `fig:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `fig:"shutdown_timeout" default:"10s"`
	} `fig:"server"`

	Weather struct {
		// Allowed values: open-meteo, pirate-weather, hybrid. Empty selects hybrid if a
		// PirateWeather key is configured, open-meteo otherwise.
		Primary         string `fig:"primary"`
		DefaultTimezone string `fig:"default_timezone" default:"America/Chicago"`
		DefaultLocation struct {
			Latitude  float64 `fig:"lat" default:"41.8781"`
			Longitude float64 `fig:"lon" default:"-87.6298"`
			Name      string  `fig:"name" default:"Chicago"`
		} `fig:"default_location"`
		Hybrid struct {
			PreferRealtimeAtmospherics bool `fig:"prefer_realtime_atmospherics"`
		} `fig:"hybrid"`
	} `fig:"weather"`

	APIKeys struct {
		PirateWeather  string `fig:"pirateweather"`
		AirNow         string `fig:"airnow"`
		OpenWeatherMap string `fig:"openweathermap"`
	} `fig:"apikeys"`

	Upstream struct {
		Timeout         time.Duration `fig:"timeout" default:"10s"`
		RateLimit       float64       `fig:"rate_limit" default:"5"`
		Burst           int           `fig:"burst" default:"10"`
		BreakerFailures uint32        `fig:"breaker_failures" default:"5"`
		BreakerCooldown time.Duration `fig:"breaker_cooldown" default:"30s"`
	} `fig:"upstream"`

	Cache struct {
		Weather    Cache `fig:"weather"`
		AirQuality Cache `fig:"airquality"`
		Alerts     Cache `fig:"alerts"`
		Radar      Cache `fig:"radar"`
		Clothing   Cache `fig:"clothing"`
		Solar      Cache `fig:"solar"`
		Trends     Cache `fig:"trends"`
	} `fig:"cache"`

	Intervals struct {
		Diagnostics time.Duration `fig:"diagnostics" default:"1m"`
	} `fig:"intervals"`
}

// Cache configures the capacity and the entry lifetime of one cache. Zero values select the
// defaults of the respective cache.
type Cache struct {
	Size int           `fig:"size"`
	TTL  time.Duration `fig:"ttl"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address must not be empty")
	}
	if c.Weather.Primary != "" && !slices.Contains(PrimaryProviders, c.Weather.Primary) {
		return fmt.Errorf("invalid primary weather provider: %s", c.Weather.Primary)
	}
	if _, err := time.LoadLocation(c.Weather.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid default timezone %q: %w", c.Weather.DefaultTimezone, err)
	}
	loc := c.Weather.DefaultLocation
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("invalid default location: %f,%f", loc.Latitude, loc.Longitude)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("invalid upstream timeout: %s", c.Upstream.Timeout)
	}
	if c.Upstream.RateLimit < 0 {
		return fmt.Errorf("invalid upstream rate limit: %f", c.Upstream.RateLimit)
	}
	if c.Intervals.Diagnostics <= 0 {
		return fmt.Errorf("invalid diagnostics interval: %s", c.Intervals.Diagnostics)
	}

	for name, cache := range c.Caches() {
		if cache.Size < 0 || cache.TTL < 0 {
			return fmt.Errorf("invalid %s cache settings: size %d, ttl %s", name, cache.Size, cache.TTL)
		}
		if cache.Size == 0 {
			cache.Size = defaultCacheSize
		}
		if cache.TTL == 0 {
			cache.TTL = defaultCacheTTLs[name]
		}
	}

	return nil
}

// Caches returns the cache settings by cache name.
func (c *Config) Caches() map[string]*Cache {
	return map[string]*Cache{
		CacheWeather:    &c.Cache.Weather,
		CacheAirQuality: &c.Cache.AirQuality,
		CacheAlerts:     &c.Cache.Alerts,
		CacheRadar:      &c.Cache.Radar,
		CacheClothing:   &c.Cache.Clothing,
		CacheSolar:      &c.Cache.Solar,
		CacheTrends:     &c.Cache.Trends,
	}
}
