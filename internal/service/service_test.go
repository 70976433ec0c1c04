// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wneessen/weather-aggregator/internal/advisor/clothing"
	"github.com/wneessen/weather-aggregator/internal/advisor/lunar"
	"github.com/wneessen/weather-aggregator/internal/advisor/solar"
	"github.com/wneessen/weather-aggregator/internal/advisor/trends"
	"github.com/wneessen/weather-aggregator/internal/config"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/metrics"
	"github.com/wneessen/weather-aggregator/internal/weather"
	"github.com/wneessen/weather-aggregator/internal/weather/provider/hybrid"
	openmeteo "github.com/wneessen/weather-aggregator/internal/weather/provider/open-meteo"
	pirateweather "github.com/wneessen/weather-aggregator/internal/weather/provider/pirate-weather"
	"github.com/wneessen/weather-aggregator/internal/weather/provider/rainviewer"
)

func TestNew(t *testing.T) {
	t.Run("new service succeeds", func(t *testing.T) {
		serv := testService(t)
		if serv.AirQualityAvailable() {
			t.Error("expected air quality to be unavailable without an API key")
		}
		if serv.radar != nil {
			t.Error("expected OpenWeatherMap radar to be unset without an API key")
		}
		if serv.freeRadar == nil || serv.freeRadar.Name() != rainviewer.Name {
			t.Error("expected the free radar provider to be set")
		}
		if len(serv.caches) != 7 {
			t.Errorf("expected 7 caches, got %d", len(serv.caches))
		}
	})
	t.Run("provider registration depends on the configuration", func(t *testing.T) {
		tests := []struct {
			name          string
			env           []string
			wantPrimary   string
			wantFallbacks []string
		}{
			{
				"without api keys",
				nil,
				openmeteo.Name,
				[]string{},
			},
			{
				"with a placeholder pirateweather key",
				[]string{"WEATHERAGG_APIKEYS_PIRATEWEATHER=YOUR_API_KEY_HERE"},
				openmeteo.Name,
				[]string{},
			},
			{
				"with a pirateweather key",
				[]string{"WEATHERAGG_APIKEYS_PIRATEWEATHER=abc"},
				hybrid.Name,
				[]string{openmeteo.Name, pirateweather.Name},
			},
			{
				"with a pirateweather key and open-meteo as configured primary",
				[]string{
					"WEATHERAGG_APIKEYS_PIRATEWEATHER=abc",
					"WEATHERAGG_WEATHER_PRIMARY=open-meteo",
				},
				openmeteo.Name,
				[]string{pirateweather.Name, hybrid.Name},
			},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				for _, envVar := range tc.env {
					key, value, ok := strings.Cut(envVar, "=")
					if !ok {
						t.Fatalf("invalid env var %q", envVar)
					}
					t.Setenv(key, value)
				}
				info := testService(t).Providers()
				if info.Primary != tc.wantPrimary {
					t.Errorf("expected primary to be %q, got %q", tc.wantPrimary, info.Primary)
				}
				if !slices.Equal(info.Fallbacks, tc.wantFallbacks) {
					t.Errorf("expected fallbacks %v, got %v", tc.wantFallbacks, info.Fallbacks)
				}
			})
		}
	})
	t.Run("configured primary must be registered", func(t *testing.T) {
		t.Setenv("WEATHERAGG_WEATHER_PRIMARY", "pirate-weather")
		conf, err := config.New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		_, err = New(conf, logger.NewLogger(slog.LevelError, io.Discard))
		if err == nil {
			t.Fatal("expected service creation to fail")
		}
		if !errors.Is(err, weather.ErrProviderNotFound) {
			t.Errorf("expected ErrProviderNotFound, got %s", err)
		}
		wantErr := "failed to select primary weather provider"
		if !strings.Contains(err.Error(), wantErr) {
			t.Errorf("expected error to contain %q, got %q", wantErr, err)
		}
	})
	t.Run("api keys enable the extension providers", func(t *testing.T) {
		t.Setenv("WEATHERAGG_APIKEYS_AIRNOW", "abc")
		t.Setenv("WEATHERAGG_APIKEYS_OPENWEATHERMAP", "def")
		serv := testService(t)
		if !serv.AirQualityAvailable() {
			t.Error("expected air quality to be available")
		}
		if serv.radar == nil {
			t.Error("expected OpenWeatherMap radar to be set")
		}
	})
	t.Run("nil logger fails", func(t *testing.T) {
		conf, err := config.New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		_, err = New(conf, nil)
		if err == nil {
			t.Fatal("expected service creation to fail")
		}
		wantErr := "logger is required"
		if !strings.Contains(err.Error(), wantErr) {
			t.Errorf("expected error to contain %q, got %q", wantErr, err)
		}
	})
	t.Run("nil config fails", func(t *testing.T) {
		if _, err := New(nil, logger.NewLogger(slog.LevelError, io.Discard)); err == nil {
			t.Fatal("expected service creation to fail")
		}
	})
}

func TestService_Run(t *testing.T) {
	t.Run("start the service and gracefully shut it down", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		serv := testService(t)
		serv.config.Server.Address = "127.0.0.1:0"
		done := make(chan error, 1)
		go func() {
			done <- serv.Run(ctx, nil)
		}()

		time.Sleep(time.Millisecond * 100)
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("failed to run service: %s", err)
			}
		case <-time.After(time.Second * 5):
			t.Fatal("service did not shut down")
		}
	})
	t.Run("starting service fails due to an invalid listen address", func(t *testing.T) {
		serv := testService(t)
		serv.config.Server.Address = "127.0.0.1:99999"
		err := serv.Run(t.Context(), nil)
		if err == nil {
			t.Fatal("expected service to fail")
		}
		wantErr := "failed to serve HTTP"
		if !strings.Contains(err.Error(), wantErr) {
			t.Errorf("expected error to contain %q, got %q", wantErr, err)
		}
	})
	t.Run("starting service fails due to an invalid diagnostics interval", func(t *testing.T) {
		serv := testService(t)
		serv.config.Intervals.Diagnostics = 0
		err := serv.Run(t.Context(), nil)
		if err == nil {
			t.Fatal("expected service to fail")
		}
		wantErr := "failed to create cache_diagnostics_job"
		if !strings.Contains(err.Error(), wantErr) {
			t.Errorf("expected error to contain %q, got %q", wantErr, err)
		}
	})
}

func TestService_Weather(t *testing.T) {
	t.Run("results are cached per coordinate", func(t *testing.T) {
		serv := testService(t)
		prov := &mockProvider{name: "primary", data: testWeatherData()}
		useProviders(serv, prov)

		first := serv.Weather(t.Context(), 41.8781, -87.6298, "Home", "")
		if first == nil {
			t.Fatal("expected weather data")
		}
		second := serv.Weather(t.Context(), 41.87812, -87.62981, "Office", "")
		if second == nil {
			t.Fatal("expected cached weather data")
		}
		if prov.calls.Load() != 1 {
			t.Errorf("expected 1 provider call, got %d", prov.calls.Load())
		}
		if second.Location != "Office" {
			t.Errorf("expected cached result to carry the requested location, got %q", second.Location)
		}
		if first.Location != "Home" {
			t.Errorf("expected the cached result to stay untouched, got %q", first.Location)
		}
	})
	t.Run("fallback provider answers when the primary fails", func(t *testing.T) {
		serv := testService(t)
		primary := &mockProvider{name: "primary", fail: true}
		fallback := &mockProvider{name: "fallback", data: testWeatherData()}
		useProviders(serv, primary, fallback)

		data := serv.Weather(t.Context(), 1, 2, "Home", "")
		if data == nil {
			t.Fatal("expected weather data")
		}
		if data.Provider != "fallback" {
			t.Errorf("expected fallback provider, got %q", data.Provider)
		}
	})
	t.Run("failures are not cached", func(t *testing.T) {
		serv := testService(t)
		prov := &mockProvider{name: "primary", fail: true}
		useProviders(serv, prov)

		for range 2 {
			if data := serv.Weather(t.Context(), 1, 2, "Home", ""); data != nil {
				t.Errorf("expected nil data, got %+v", data)
			}
		}
		if prov.calls.Load() != 2 {
			t.Errorf("expected 2 provider calls, got %d", prov.calls.Load())
		}
		if serv.weatherCache.Len() != 0 {
			t.Errorf("expected empty cache, got %d entries", serv.weatherCache.Len())
		}
	})
}

func TestService_AirQuality(t *testing.T) {
	t.Run("unavailable without provider", func(t *testing.T) {
		serv := testService(t)
		if data := serv.AirQuality(t.Context(), 1, 2, "Home"); data != nil {
			t.Errorf("expected nil data, got %+v", data)
		}
	})
	t.Run("results are cached within the time bucket", func(t *testing.T) {
		serv := testService(t)
		now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
		serv.now = func() time.Time { return now }
		prov := &mockProvider{name: "airquality", data: &weather.Data{Provider: "airquality"}}
		serv.airQuality = prov

		for range 2 {
			if data := serv.AirQuality(t.Context(), 1, 2, "Home"); data == nil {
				t.Fatal("expected air quality data")
			}
		}
		if prov.calls.Load() != 1 {
			t.Errorf("expected 1 provider call, got %d", prov.calls.Load())
		}

		now = now.Add(AirQualityWindow)
		if data := serv.AirQuality(t.Context(), 1, 2, "Home"); data == nil {
			t.Fatal("expected air quality data")
		}
		if prov.calls.Load() != 2 {
			t.Errorf("expected a new bucket to fetch again, got %d calls", prov.calls.Load())
		}
	})
}

func TestService_Alerts(t *testing.T) {
	t.Run("alerts are cached", func(t *testing.T) {
		serv := testService(t)
		prov := &mockProvider{name: "alerts", data: &weather.Data{Provider: "alerts", Alerts: &weather.Alerts{}}}
		serv.alerts = prov

		if data := serv.Alerts(t.Context(), 1, 2, "Home"); data == nil || data.Alerts == nil {
			t.Fatal("expected alerts data")
		}
		data := serv.Alerts(t.Context(), 1, 2, "Office")
		if data == nil {
			t.Fatal("expected cached alerts data")
		}
		if data.Location != "Office" {
			t.Errorf("expected location Office, got %q", data.Location)
		}
		if prov.calls.Load() != 1 {
			t.Errorf("expected 1 provider call, got %d", prov.calls.Load())
		}
	})
	t.Run("failure yields nil", func(t *testing.T) {
		serv := testService(t)
		serv.alerts = &mockProvider{name: "alerts", fail: true}
		if data := serv.Alerts(t.Context(), 1, 2, "Home"); data != nil {
			t.Errorf("expected nil data, got %+v", data)
		}
	})
}

func TestService_Radar(t *testing.T) {
	tests := []struct {
		name         string
		radar        *mockProvider
		wantProvider string
		wantFree     int32
	}{
		{"free radar without OpenWeatherMap", nil, "free", 1},
		{"free radar when OpenWeatherMap fails", &mockProvider{name: "owm", fail: true}, "free", 1},
		{"OpenWeatherMap radar when available", &mockProvider{name: "owm", data: &weather.Data{Provider: "owm"}}, "owm", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			serv := testService(t)
			free := &mockProvider{name: "free", data: &weather.Data{Provider: "free"}}
			serv.freeRadar = free
			if tc.radar != nil {
				serv.radar = tc.radar
			}

			data := serv.Radar(t.Context(), 1, 2, "Home")
			if data == nil {
				t.Fatal("expected radar data")
			}
			if data.Provider != tc.wantProvider {
				t.Errorf("expected provider %q, got %q", tc.wantProvider, data.Provider)
			}
			if free.calls.Load() != tc.wantFree {
				t.Errorf("expected %d free radar calls, got %d", tc.wantFree, free.calls.Load())
			}
		})
	}
}

func TestService_Advisors(t *testing.T) {
	t.Run("clothing and trends share the cached weather", func(t *testing.T) {
		serv := testService(t)
		prov := &mockProvider{name: "primary", data: testWeatherData()}
		useProviders(serv, prov)

		clothes := serv.Clothing(t.Context(), 1, 2, "Home", "")
		if clothes == nil || clothes.Clothing == nil {
			t.Fatal("expected clothing data")
		}
		if clothes.Provider != clothing.DisplayName {
			t.Errorf("expected provider %q, got %q", clothing.DisplayName, clothes.Provider)
		}
		temps := serv.Trends(t.Context(), 1, 2, "Home", "")
		if temps == nil || temps.TemperatureTrends == nil {
			t.Fatal("expected temperature trends")
		}
		if temps.Provider != trends.DisplayName {
			t.Errorf("expected provider %q, got %q", trends.DisplayName, temps.Provider)
		}
		if prov.calls.Load() != 1 {
			t.Errorf("expected 1 weather provider call, got %d", prov.calls.Load())
		}
		if serv.clothingCache.Len() != 1 || serv.trendsCache.Len() != 1 {
			t.Errorf("expected derived results to be cached, got %d and %d entries",
				serv.clothingCache.Len(), serv.trendsCache.Len())
		}
	})
	t.Run("no weather means no advice", func(t *testing.T) {
		serv := testService(t)
		useProviders(serv, &mockProvider{name: "primary", fail: true})
		if data := serv.Clothing(t.Context(), 1, 2, "Home", ""); data != nil {
			t.Errorf("expected nil clothing data, got %+v", data)
		}
		if data := serv.Trends(t.Context(), 1, 2, "Home", ""); data != nil {
			t.Errorf("expected nil trends data, got %+v", data)
		}
	})
	t.Run("lunar data is calculated for the current instant", func(t *testing.T) {
		serv := testService(t)
		now := time.Date(2025, 6, 2, 14, 20, 0, 0, time.UTC)
		serv.now = func() time.Time { return now }

		data := serv.Lunar("Home", "America/Chicago")
		if data == nil || data.LunarData == nil {
			t.Fatal("expected lunar data")
		}
		want := lunar.Calculate(now)
		if !reflect.DeepEqual(*data.LunarData, want) {
			t.Errorf("expected lunar data %+v, got %+v", want, *data.LunarData)
		}
		if data.Provider != lunar.DisplayName {
			t.Errorf("expected provider %q, got %q", lunar.DisplayName, data.Provider)
		}
	})
	t.Run("solar data is cached per day", func(t *testing.T) {
		serv := testService(t)
		date := time.Date(2025, 6, 2, 14, 20, 0, 0, time.UTC)

		first := serv.Solar(41.8781, -87.6298, date, "Home", "America/Chicago")
		if first == nil || first.Solar == nil {
			t.Fatal("expected solar data")
		}
		if first.Provider != solar.DisplayName {
			t.Errorf("expected provider %q, got %q", solar.DisplayName, first.Provider)
		}
		second := serv.Solar(41.8781, -87.6298, date.Add(time.Hour), "Office", "America/Chicago")
		if second == nil || second.Location != "Office" {
			t.Fatalf("expected cached solar data for Office, got %+v", second)
		}
		if serv.solarCache.Len() != 1 {
			t.Errorf("expected 1 solar cache entry, got %d", serv.solarCache.Len())
		}
		serv.Solar(41.8781, -87.6298, date.AddDate(0, 0, 1), "Home", "America/Chicago")
		if serv.solarCache.Len() != 2 {
			t.Errorf("expected 2 solar cache entries, got %d", serv.solarCache.Len())
		}
	})
}

func TestService_SwitchProvider(t *testing.T) {
	t.Run("unknown provider keeps the cache", func(t *testing.T) {
		serv := testService(t)
		useProviders(serv, &mockProvider{name: "primary", data: testWeatherData()})
		serv.Weather(t.Context(), 1, 2, "Home", "")

		if serv.SwitchProvider("unknown") {
			t.Error("expected switch to fail")
		}
		if serv.weatherCache.Len() != 1 {
			t.Errorf("expected cache to be kept, got %d entries", serv.weatherCache.Len())
		}
	})
	t.Run("switching clears the weather cache", func(t *testing.T) {
		serv := testService(t)
		useProviders(serv, &mockProvider{name: "primary", data: testWeatherData()},
			&mockProvider{name: "secondary", data: testWeatherData()})
		serv.Weather(t.Context(), 1, 2, "Home", "")
		serv.Clothing(t.Context(), 1, 2, "Home", "")

		if !serv.SwitchProvider("secondary") {
			t.Fatal("expected switch to succeed")
		}
		if serv.weatherCache.Len() != 0 || serv.clothingCache.Len() != 0 {
			t.Errorf("expected caches to be cleared, got %d and %d entries", serv.weatherCache.Len(),
				serv.clothingCache.Len())
		}
		if primary := serv.Providers().Primary; primary != "secondary" {
			t.Errorf("expected primary to be secondary, got %q", primary)
		}
		if !slices.Equal(serv.ProviderNames(), []string{"primary", "secondary"}) {
			t.Errorf("unexpected provider names: %v", serv.ProviderNames())
		}
	})
}

func TestService_CacheStats(t *testing.T) {
	t.Run("weather cache statistics", func(t *testing.T) {
		serv := testService(t)
		useProviders(serv, &mockProvider{name: "primary", data: testWeatherData()})
		serv.Weather(t.Context(), 41.8781, -87.6298, "Chicago", "")

		stats := serv.CacheStats()
		if stats.CacheSize != 1 {
			t.Errorf("expected cache size 1, got %d", stats.CacheSize)
		}
		if stats.MaxSize != 100 {
			t.Errorf("expected max size 100, got %d", stats.MaxSize)
		}
		if stats.TTLSeconds != 180 {
			t.Errorf("expected ttl 180, got %d", stats.TTLSeconds)
		}
		if !slices.Equal(stats.CachedLocations, []string{"41.8781,-87.6298"}) {
			t.Errorf("unexpected cached locations: %v", stats.CachedLocations)
		}
		if len(stats.Caches) != 7 {
			t.Errorf("expected 7 caches, got %d", len(stats.Caches))
		}
		if stats.Caches[config.CacheAirQuality].TTLSeconds != 1800 {
			t.Errorf("expected air quality ttl 1800, got %d", stats.Caches[config.CacheAirQuality].TTLSeconds)
		}
	})
	t.Run("cache entries are published as metrics", func(t *testing.T) {
		serv := testService(t)
		useProviders(serv, &mockProvider{name: "primary", data: testWeatherData()})
		serv.Weather(t.Context(), 1, 2, "Home", "")
		serv.Weather(t.Context(), 3, 4, "Home", "")

		serv.publishCacheMetrics(t.Context())
		if got := testutil.ToFloat64(metrics.CacheEntries.WithLabelValues(config.CacheWeather)); got != 2 {
			t.Errorf("expected 2 weather cache entries, got %f", got)
		}
		if got := testutil.ToFloat64(metrics.CacheEntries.WithLabelValues(config.CacheRadar)); got != 0 {
			t.Errorf("expected 0 radar cache entries, got %f", got)
		}
	})
}

func TestService_HandleSignals(t *testing.T) {
	t.Run("HUP signal clears the caches", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		serv := testService(t)
		useProviders(serv, &mockProvider{name: "primary", data: testWeatherData()})
		serv.Weather(t.Context(), 1, 2, "Home", "")
		buf := &syncBuffer{buf: bytes.NewBuffer(nil)}
		serv.logger = logger.NewLogger(slog.LevelInfo, buf)

		sigChan := make(chan os.Signal, 1)
		serv.SignalSrc.Notify(sigChan, syscall.SIGHUP, syscall.SIGUSR1)
		go func() {
			defer serv.SignalSrc.Stop(sigChan)
			serv.HandleSignals(ctx, sigChan)
		}()

		sigChan <- syscall.SIGHUP
		time.Sleep(time.Millisecond * 100)
		if !strings.Contains(buf.String(), `msg="all caches cleared"`) {
			t.Errorf("expected log to contain cache clearing, got %q", buf.String())
		}
		if serv.weatherCache.Len() != 0 {
			t.Errorf("expected weather cache to be empty, got %d entries", serv.weatherCache.Len())
		}
		cancel()
	})
	t.Run("USR1 signal logs the cache statistics", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		serv := testService(t)
		buf := &syncBuffer{buf: bytes.NewBuffer(nil)}
		serv.logger = logger.NewLogger(slog.LevelInfo, buf)
		sigChan := make(chan os.Signal, 1)
		serv.SignalSrc.Notify(sigChan, syscall.SIGHUP, syscall.SIGUSR1)
		go func() {
			defer serv.SignalSrc.Stop(sigChan)
			serv.HandleSignals(ctx, sigChan)
		}()

		sigChan <- syscall.SIGUSR1
		time.Sleep(time.Millisecond * 100)
		wantLog := `msg="cache statistics" cache=weather size=0 max_size=100 ttl_seconds=180`
		if !strings.Contains(buf.String(), wantLog) {
			t.Errorf("expected log to contain %q, got %q", wantLog, buf.String())
		}
		cancel()
		time.Sleep(time.Millisecond * 100)
	})
}

func TestLookupCity(t *testing.T) {
	tests := []struct {
		name  string
		city  string
		want  Place
		found bool
	}{
		{"city shortcut", "nyc", Place{40.7128, -74.0060, "New York City"}, true},
		{"city shortcut is case-insensitive", "London", Place{51.5074, -0.1278, "London"}, true},
		{"coordinate pair", "48.1,11.5", Place{48.1, 11.5, "48.1,11.5"}, true},
		{"coordinate pair out of range", "91,11.5", Place{}, false},
		{"malformed coordinate pair", "abc,11.5", Place{}, false},
		{"unknown city", "atlantis", Place{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, found := LookupCity(tc.city)
			if found != tc.found {
				t.Fatalf("expected found to be %t, got %t", tc.found, found)
			}
			if got != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
	t.Run("every shortcut is listed", func(t *testing.T) {
		if len(CityKeys) != len(cities) {
			t.Fatalf("expected %d city keys, got %d", len(cities), len(CityKeys))
		}
		for _, key := range CityKeys {
			if _, ok := cities[key]; !ok {
				t.Errorf("city key %q has no coordinates", key)
			}
		}
	})
}

func testService(t *testing.T) *Service {
	t.Helper()
	conf, err := config.New()
	if err != nil {
		t.Fatalf("failed to load config: %s", err)
	}
	serv, err := New(conf, logger.NewLogger(slog.LevelError, io.Discard))
	if err != nil {
		t.Fatalf("failed to create service: %s", err)
	}
	return serv
}

// useProviders replaces the weather providers of the service. The first provider is primary.
func useProviders(serv *Service, providers ...*mockProvider) {
	serv.manager = weather.NewManager(serv.logger)
	for i, p := range providers {
		serv.manager.AddProvider(p, i == 0)
	}
}

func testWeatherData() *weather.Data {
	hourly := make([]weather.Hour, 12)
	for i := range hourly {
		hourly[i] = weather.Hour{Temp: 60 + float64(i), Time: "12pm", Rain: 10}
	}
	return &weather.Data{
		Current: &weather.Current{
			Temperature: 72,
			FeelsLike:   72,
			Humidity:    50,
			WindSpeed:   5,
			UVIndex:     3,
		},
		Hourly: hourly,
		Daily:  []weather.Day{{High: 78, Low: 60, Day: "Mon"}},
	}
}

type (
	mockProvider struct {
		name  string
		data  *weather.Data
		fail  bool
		calls atomic.Int32
	}
	syncBuffer struct {
		mu  sync.Mutex
		buf *bytes.Buffer
	}
)

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Describe() weather.Info {
	return weather.Info{Name: m.name, Timeout: 10, Description: "mock provider"}
}

func (m *mockProvider) FetchRaw(context.Context, float64, float64, string) (any, error) {
	m.calls.Add(1)
	if m.fail {
		return nil, errors.New("intentionally failing")
	}
	return m.data, nil
}

func (m *mockProvider) Normalize(raw any, location, _ string) (*weather.Data, error) {
	data, err := weather.RawAs[*weather.Data](raw)
	if err != nil {
		return nil, err
	}
	result := data.WithLocation(weather.LocationName(location))
	result.Provider = m.name
	return result, nil
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}
