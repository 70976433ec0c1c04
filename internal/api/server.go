// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package api implements the HTTP interface of the weather aggregator. Handlers are thin: they
// validate the query, call the service and map empty results to error responses.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/service"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

// Backend is the part of the service the handlers depend on.
type Backend interface {
	Weather(ctx context.Context, lat, lon float64, location, tz string) *weather.Data
	AirQualityAvailable() bool
	AirQuality(ctx context.Context, lat, lon float64, location string) *weather.Data
	Alerts(ctx context.Context, lat, lon float64, location string) *weather.Data
	Radar(ctx context.Context, lat, lon float64, location string) *weather.Data
	Clothing(ctx context.Context, lat, lon float64, location, tz string) *weather.Data
	Trends(ctx context.Context, lat, lon float64, location, tz string) *weather.Data
	Lunar(location, tz string) *weather.Data
	Solar(lat, lon float64, date time.Time, location, tz string) *weather.Data
	Providers() weather.ProvidersInfo
	ProviderNames() []string
	SwitchProvider(name string) bool
	CacheStats() service.CacheStats
	DefaultPlace() service.Place
	DefaultTimezone() string
}

// Server holds the HTTP handlers.
type Server struct {
	backend  Backend
	logger   *logger.Logger
	validate *validator.Validate
	now      func() time.Time
}

// New returns a new Server for the backend.
func New(backend Backend, log *logger.Logger) *Server {
	return &Server{
		backend:  backend,
		logger:   log,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Routes returns the router with all API routes, the health check and the metrics endpoint.
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(s.logRequests)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(router chi.Router) {
		router.Get("/weather", s.handleWeather)
		router.Get("/weather/city/{city}", s.handleCityWeather)
		router.Get("/air-quality", s.handleAirQuality)
		router.Get("/alerts", s.handleAlerts)
		router.Get("/radar", s.handleRadar)
		router.Get("/clothing", s.handleClothing)
		router.Get("/temperature-trends", s.handleTrends)
		router.Get("/lunar", s.handleLunar)
		router.Get("/solar", s.handleSolar)

		router.Get("/providers", s.handleProviders)
		router.Post("/providers/switch", s.handleSwitchProvider)
		router.Get("/cache/stats", s.handleCacheStats)
	})

	return router
}

// logRequests logs every request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Debug("HTTP request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logger.Err(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

var _ Backend = (*service.Service)(nil)
