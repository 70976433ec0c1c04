// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"log/slog"

	"github.com/wneessen/weather-aggregator/internal/advisor/clothing"
	"github.com/wneessen/weather-aggregator/internal/advisor/lunar"
	"github.com/wneessen/weather-aggregator/internal/advisor/solar"
	"github.com/wneessen/weather-aggregator/internal/advisor/trends"
	"github.com/wneessen/weather-aggregator/internal/http"
	"github.com/wneessen/weather-aggregator/internal/weather"
	"github.com/wneessen/weather-aggregator/internal/weather/provider/airnow"
	"github.com/wneessen/weather-aggregator/internal/weather/provider/hybrid"
	"github.com/wneessen/weather-aggregator/internal/weather/provider/nws"
	openmeteo "github.com/wneessen/weather-aggregator/internal/weather/provider/open-meteo"
	owmradar "github.com/wneessen/weather-aggregator/internal/weather/provider/owm-radar"
	pirateweather "github.com/wneessen/weather-aggregator/internal/weather/provider/pirate-weather"
	"github.com/wneessen/weather-aggregator/internal/weather/provider/rainviewer"
)

// newHTTPClient returns an upstream client with its own rate limiter and circuit breaker, so a
// failing upstream never blocks the others.
func (s *Service) newHTTPClient(upstream string) *http.Client {
	conf := s.config.Upstream
	client := http.New(s.logger,
		http.WithRateLimit(conf.RateLimit, conf.Burst),
		http.WithCircuitBreaker(upstream, conf.BreakerFailures, conf.BreakerCooldown),
	)
	client.Timeout = conf.Timeout
	return client
}

// createManager registers the weather providers. With a PirateWeather API key the hybrid
// provider is primary and Open-Meteo and PirateWeather are its fallbacks, otherwise Open-Meteo is
// the only provider. A configured primary overrides the default.
func (s *Service) createManager() (*weather.Manager, error) {
	manager := weather.NewManager(s.logger)

	forecast, err := openmeteo.New(s.newHTTPClient(openmeteo.Name), s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo weather provider: %w", err)
	}
	realtime, err := pirateweather.New(s.newHTTPClient(pirateweather.Name), s.logger, s.config.APIKeys.PirateWeather)
	if err != nil {
		return nil, fmt.Errorf("failed to create PirateWeather weather provider: %w", err)
	}

	if realtime.Configured() {
		blended, err := hybrid.New(realtime, forecast, s.logger, s.config.Weather.Hybrid.PreferRealtimeAtmospherics)
		if err != nil {
			return nil, fmt.Errorf("failed to create hybrid weather provider: %w", err)
		}
		manager.AddProvider(blended, true)
		manager.AddProvider(forecast, false)
		manager.AddProvider(realtime, false)
		s.logger.Info("PirateWeather API key found, using the hybrid weather provider")
	} else {
		manager.AddProvider(forecast, true)
		s.logger.Info("no PirateWeather API key found, using Open-Meteo only")
	}

	if primary := s.config.Weather.Primary; primary != "" {
		if err = manager.SetPrimary(primary); err != nil {
			return nil, fmt.Errorf("failed to select primary weather provider: %w", err)
		}
	}

	info := manager.Describe()
	s.logger.Debug("weather providers registered", slog.String("primary", info.Primary),
		slog.Any("fallbacks", info.Fallbacks))
	return manager, nil
}

// createExtensionProviders creates the single purpose providers. Air quality and the
// OpenWeatherMap radar stay unset without an API key.
func (s *Service) createExtensionProviders() error {
	if key := s.config.APIKeys.AirNow; key != "" {
		provider, err := airnow.New(s.newHTTPClient(airnow.Name), s.logger, key)
		if err != nil {
			return fmt.Errorf("failed to create AirNow provider: %w", err)
		}
		s.airQuality = provider
	} else {
		s.logger.Info("no AirNow API key found, air quality service unavailable")
	}

	if key := s.config.APIKeys.OpenWeatherMap; key != "" {
		provider, err := owmradar.New(s.newHTTPClient(owmradar.Name), s.logger, key)
		if err != nil {
			return fmt.Errorf("failed to create OpenWeatherMap radar provider: %w", err)
		}
		s.radar = provider
	}

	freeRadar, err := rainviewer.New(s.newHTTPClient(rainviewer.Name), s.logger)
	if err != nil {
		return fmt.Errorf("failed to create RainViewer radar provider: %w", err)
	}
	s.freeRadar = freeRadar

	alerts, err := nws.New(s.newHTTPClient(nws.Name), s.logger)
	if err != nil {
		return fmt.Errorf("failed to create NWS alerts provider: %w", err)
	}
	s.alerts = alerts

	return nil
}

func (s *Service) createAdvisors() (err error) {
	if s.clothing, err = clothing.New(s.logger); err != nil {
		return fmt.Errorf("failed to create clothing advisor: %w", err)
	}
	if s.trends, err = trends.New(s.logger); err != nil {
		return fmt.Errorf("failed to create temperature trends advisor: %w", err)
	}
	if s.lunar, err = lunar.New(s.logger); err != nil {
		return fmt.Errorf("failed to create lunar advisor: %w", err)
	}
	if s.solar, err = solar.New(s.logger); err != nil {
		return fmt.Errorf("failed to create solar advisor: %w", err)
	}
	return nil
}
