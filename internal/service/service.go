// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service ties the weather providers, the advisors and the per-kind caches together and
// runs the HTTP server and the background jobs of the weather aggregator.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/wneessen/weather-aggregator/internal/cache"
	"github.com/wneessen/weather-aggregator/internal/config"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/metrics"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

type Service struct {
	SignalSrc signalSource

	config    *config.Config
	logger    *logger.Logger
	manager   *weather.Manager
	scheduler gocron.Scheduler
	now       func() time.Time

	// airQuality and radar are nil if the respective API key is missing
	airQuality weather.Provider
	radar      weather.Provider
	freeRadar  weather.Provider
	alerts     weather.Provider
	clothing   weather.Provider
	trends     weather.Provider
	lunar      weather.Provider
	solar      weather.Provider

	weatherCache    *cache.TTL[*weather.Data]
	airQualityCache *cache.TTL[*weather.Data]
	alertsCache     *cache.TTL[*weather.Data]
	radarCache      *cache.TTL[*weather.Data]
	clothingCache   *cache.TTL[*weather.Data]
	solarCache      *cache.TTL[*weather.Data]
	trendsCache     *cache.TTL[*weather.Data]
	caches          []cache.Statter
}

func New(conf *config.Config, log *logger.Logger) (*Service, error) {
	if conf == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	service := &Service{
		SignalSrc: stdLibSignalSource{},
		config:    conf,
		logger:    log,
		scheduler: scheduler,
		now:       time.Now,
	}
	if service.manager, err = service.createManager(); err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	if err = service.createExtensionProviders(); err != nil {
		return nil, fmt.Errorf("failed to create extension provider: %w", err)
	}
	if err = service.createAdvisors(); err != nil {
		return nil, fmt.Errorf("failed to create advisor: %w", err)
	}
	service.createCaches()

	return service, nil
}

// Run starts the scheduled jobs and serves handler until the context is canceled. The HTTP server
// is shut down gracefully within the configured shutdown timeout.
func (s *Service) Run(ctx context.Context, handler stdhttp.Handler) error {
	// Start scheduled jobs
	if err := s.createScheduledJob(ctx, s.config.Intervals.Diagnostics, s.publishCacheMetrics,
		"cache_diagnostics_job"); err != nil {
		return err
	}
	s.scheduler.Start()

	sigChan := make(chan os.Signal, 1)
	s.SignalSrc.Notify(sigChan, syscall.SIGHUP, syscall.SIGUSR1)
	defer s.SignalSrc.Stop(sigChan)
	go s.HandleSignals(ctx, sigChan)

	server := &stdhttp.Server{
		Addr:              s.config.Server.Address,
		Handler:           handler,
		ReadTimeout:       s.config.Server.ReadTimeout,
		ReadHeaderTimeout: s.config.Server.ReadTimeout,
		WriteTimeout:      s.config.Server.WriteTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		defer close(serveErr)
		s.logger.Info("starting HTTP server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for the context to cancel or the server to fail
	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to shut down HTTP server: %w", err))
	}
	if err := s.scheduler.Shutdown(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to shut down scheduler: %w", err))
	}
	return runErr
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// publishCacheMetrics exports the number of live entries of each cache. Expired entries are not
// counted.
func (s *Service) publishCacheMetrics(context.Context) {
	for _, c := range s.caches {
		size := c.Stats().Size
		metrics.CacheEntries.WithLabelValues(c.Name()).Set(float64(size))
		s.logger.Debug("published cache diagnostics", slog.String("cache", c.Name()), slog.Int("entries", size))
	}
}

func (s *Service) createCaches() {
	settings := s.config.Caches()
	newCache := func(name string) *cache.TTL[*weather.Data] {
		c := cache.New[*weather.Data](name, settings[name].Size, settings[name].TTL)
		s.caches = append(s.caches, c)
		return c
	}

	s.weatherCache = newCache(config.CacheWeather)
	s.airQualityCache = newCache(config.CacheAirQuality)
	s.alertsCache = newCache(config.CacheAlerts)
	s.radarCache = newCache(config.CacheRadar)
	s.clothingCache = newCache(config.CacheClothing)
	s.solarCache = newCache(config.CacheSolar)
	s.trendsCache = newCache(config.CacheTrends)
}
