// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"

	"github.com/wneessen/weather-aggregator/internal/service"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	weatherMaxAge = 180
	alertsMaxAge  = 300
	radarMaxAge   = 600
	etagWindow    = 300 // seconds

	maxSwitchBody = 1 << 12
)

type switchRequest struct {
	Provider string `json:"provider"`
}

type switchResponse struct {
	Success            bool                   `json:"success"`
	Message            string                 `json:"message,omitempty"`
	Error              string                 `json:"error,omitempty"`
	ProviderInfo       *weather.ProvidersInfo `json:"provider_info,omitempty"`
	AvailableProviders []string               `json:"available_providers,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	query, err := s.parseLocationQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fallback := s.backend.DefaultPlace()
	lat, lon := query.coordinates(fallback)
	s.respondWeather(w, r, lat, lon, query.name(fallback.Name), query.Timezone)
}

func (s *Server) handleCityWeather(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	place, ok := service.LookupCity(city)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("City '%s' not found. Available cities: %s", city,
			strings.Join(service.CityKeys, ", ")))
		return
	}
	query, err := s.parseLocationQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondWeather(w, r, place.Latitude, place.Longitude, query.name(place.Name), query.Timezone)
}

func (s *Server) respondWeather(w http.ResponseWriter, r *http.Request, lat, lon float64, location, tz string) {
	data := s.backend.Weather(r.Context(), lat, lon, location, tz)
	if data == nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch weather data from all sources")
		return
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", weatherMaxAge))
	w.Header().Set("ETag", etag(lat, lon, s.now()))
	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleAirQuality(w http.ResponseWriter, r *http.Request) {
	if !s.backend.AirQualityAvailable() {
		s.writeError(w, http.StatusServiceUnavailable, "Air quality service unavailable - AirNow API key required")
		return
	}
	query, err := s.parseLocationQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lat, lon := query.coordinates(s.backend.DefaultPlace())

	data := s.backend.AirQuality(r.Context(), lat, lon, query.name(weather.UnknownLocation))
	if data == nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch air quality data")
		return
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(service.AirQualityWindow.Seconds())))
	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	query, err := s.parseLocationQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lat, lon := query.coordinates(s.backend.DefaultPlace())

	data := s.backend.Alerts(r.Context(), lat, lon, query.Location)
	if data == nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch weather alerts")
		return
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", alertsMaxAge))
	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleRadar(w http.ResponseWriter, r *http.Request) {
	query, err := s.parseLocationQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lat, lon := query.coordinates(s.backend.DefaultPlace())

	data := s.backend.Radar(r.Context(), lat, lon, query.Location)
	if data == nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch radar data")
		return
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", radarMaxAge))
	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleClothing(w http.ResponseWriter, r *http.Request) {
	query, err := s.parseLocationQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lat, lon := query.coordinates(s.backend.DefaultPlace())

	data := s.backend.Clothing(r.Context(), lat, lon, query.Location, query.Timezone)
	if data == nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to generate clothing recommendations")
		return
	}
	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	query, err := s.parseLocationQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lat, lon := query.coordinates(s.backend.DefaultPlace())

	data := s.backend.Trends(r.Context(), lat, lon, query.Location, query.Timezone)
	if data == nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to generate temperature trends")
		return
	}
	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleLunar(w http.ResponseWriter, r *http.Request) {
	query, err := s.parseLocationQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data := s.backend.Lunar(query.Location, query.timezone(s.backend.DefaultTimezone()))
	if data == nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to calculate lunar data")
		return
	}
	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleSolar(w http.ResponseWriter, r *http.Request) {
	query, err := s.parseLocationQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lat, lon := query.coordinates(s.backend.DefaultPlace())
	tz := query.timezone(s.backend.DefaultTimezone())
	date, err := query.date(tz)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data := s.backend.Solar(lat, lon, date, query.Location, tz)
	if data == nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to calculate solar data")
		return
	}
	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleProviders(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.backend.Providers())
}

func (s *Server) handleSwitchProvider(w http.ResponseWriter, r *http.Request) {
	req := new(switchRequest)
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSwitchBody)).Decode(req); err != nil ||
		req.Provider == "" {
		s.writeError(w, http.StatusBadRequest, "Provider name is required")
		return
	}

	if !s.backend.SwitchProvider(req.Provider) {
		s.writeJSON(w, http.StatusBadRequest, switchResponse{
			Error:              fmt.Sprintf("Provider %s not found", req.Provider),
			AvailableProviders: s.backend.ProviderNames(),
		})
		return
	}

	info := s.backend.Providers()
	s.logger.Info("weather provider switched via API", slog.String("provider", req.Provider))
	s.writeJSON(w, http.StatusOK, switchResponse{
		Success:      true,
		Message:      fmt.Sprintf("Switched to %s provider", req.Provider),
		ProviderInfo: &info,
	})
}

func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.backend.CacheStats())
}

// etag returns the entity tag for the coordinate that changes every five minutes.
func etag(lat, lon float64, now time.Time) string {
	return fmt.Sprintf(`"%d"`, xxhash.Sum64String(fmt.Sprintf("%v%v%d", lat, lon, now.Unix()/etagWindow)))
}
