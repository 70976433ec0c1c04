// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package nws implements the government alerts provider backed by the National Weather Service API.
package nws

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wneessen/weather-aggregator/internal/http"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/vartype"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	Name           = "nws"
	DisplayName    = "NationalWeatherService"
	ForecastSource = "National Weather Service"
	apiEndpoint    = "https://api.weather.gov"
	apiTimeout     = time.Second * 10

	alertLimit  = "20"
	periodLimit = 7
	geoJSON     = "application/geo+json"
)

var severityColors = map[string]string{
	"extreme":  "#8B0000",
	"severe":   "#FF0000",
	"moderate": "#FF8C00",
	"minor":    "#FFD700",
}

const defaultSeverityColor = "#1E90FF"

// NWS is the National Weather Service provider. It covers US locations only and needs no API key.
type NWS struct {
	log  *logger.Logger
	http *http.Client
	now  func() time.Time
}

// Grid identifies the forecast office and grid cell of a coordinate.
type Grid struct {
	Office string
	X      int
	Y      int
}

// Raw holds the responses of the three sequential upstream calls. Alerts and Forecast are nil if
// the respective optional call failed.
type Raw struct {
	Grid     Grid
	Alerts   *AlertsResponse
	Forecast *ForecastResponse
}

type pointsResponse struct {
	Properties struct {
		CWA   string           `json:"cwa"`
		GridX vartype.VarInt64 `json:"gridX"`
		GridY vartype.VarInt64 `json:"gridY"`
	} `json:"properties"`
}

// AlertsResponse is the subset of the active alerts response the provider consumes.
type AlertsResponse struct {
	Features []struct {
		Properties struct {
			ID          string `json:"id"`
			AreaDesc    string `json:"areaDesc"`
			Onset       string `json:"onset"`
			Expires     string `json:"expires"`
			Status      string `json:"status"`
			Severity    string `json:"severity"`
			Certainty   string `json:"certainty"`
			Urgency     string `json:"urgency"`
			Event       string `json:"event"`
			SenderName  string `json:"senderName"`
			Headline    string `json:"headline"`
			Description string `json:"description"`
			Instruction string `json:"instruction"`
			Response    string `json:"response"`
		} `json:"properties"`
	} `json:"features"`
}

// ForecastResponse is the subset of the grid forecast response the provider consumes.
type ForecastResponse struct {
	Properties struct {
		Periods []struct {
			Number           int              `json:"number"`
			Name             string           `json:"name"`
			IsDaytime        bool             `json:"isDaytime"`
			Temperature      vartype.VarInt64 `json:"temperature"`
			TemperatureUnit  string           `json:"temperatureUnit"`
			WindSpeed        string           `json:"windSpeed"`
			WindDirection    string           `json:"windDirection"`
			Icon             string           `json:"icon"`
			ShortForecast    string           `json:"shortForecast"`
			DetailedForecast string           `json:"detailedForecast"`
		} `json:"periods"`
	} `json:"properties"`
}

// New returns a new NWS provider.
func New(http *http.Client, log *logger.Logger) (*NWS, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &NWS{http: http, log: log, now: time.Now}, nil
}

func (n *NWS) Name() string {
	return Name
}

func (n *NWS) Describe() weather.Info {
	return weather.Info{
		Name:        Name,
		Timeout:     int(apiTimeout.Seconds()),
		Description: "National Weather Service provider for official weather alerts and warnings",
	}
}

// FetchRaw resolves the forecast grid of the coordinate and then requests the active alerts and the
// grid forecast. Only the grid lookup is required. It returns a *Raw.
func (n *NWS) FetchRaw(ctx context.Context, lat, lon float64, _ string) (any, error) {
	point := fmt.Sprintf("%.4f,%.4f", lat, lon)
	headers := map[string]string{"Accept": geoJSON}

	points := new(pointsResponse)
	code, err := n.http.GetWithTimeout(ctx, apiEndpoint+"/points/"+point, points, nil, headers, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve NWS grid point: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("NWS points API returned non-positive response code: %d", code)
	}
	props := points.Properties
	if props.CWA == "" || !props.GridX.IsSet() || !props.GridY.IsSet() {
		return nil, fmt.Errorf("NWS grid coordinates missing: %w", weather.ErrNoData)
	}
	raw := &Raw{Grid: Grid{Office: props.CWA, X: int(props.GridX.Value()), Y: int(props.GridY.Value())}}

	query := url.Values{}
	query.Set("point", point)
	query.Set("status", "actual")
	query.Set("limit", alertLimit)
	alerts := new(AlertsResponse)
	code, err = n.http.GetWithTimeout(ctx, apiEndpoint+"/alerts/active", alerts, query, headers, apiTimeout)
	switch {
	case err != nil:
		n.log.Warn("failed to retrieve NWS alerts", logger.Err(err))
	case code != 200:
		n.log.Warn("NWS alerts API returned non-positive response code", slog.Int("code", code))
	default:
		raw.Alerts = alerts
	}

	endpoint := fmt.Sprintf("%s/gridpoints/%s/%d,%d/forecast", apiEndpoint, raw.Grid.Office, raw.Grid.X, raw.Grid.Y)
	forecast := new(ForecastResponse)
	code, err = n.http.GetWithTimeout(ctx, endpoint, forecast, nil, headers, apiTimeout)
	switch {
	case err != nil:
		n.log.Warn("failed to retrieve NWS grid forecast", logger.Err(err))
	case code != 200:
		n.log.Warn("NWS forecast API returned non-positive response code", slog.Int("code", code))
	default:
		raw.Forecast = forecast
	}

	n.log.Debug("resolved NWS grid", slog.String("office", raw.Grid.Office), slog.Int("x", raw.Grid.X),
		slog.Int("y", raw.Grid.Y))
	return raw, nil
}

// Normalize converts the alerts and up to seven forecast periods. Missing optional responses yield
// empty blocks.
func (n *NWS) Normalize(raw any, location, _ string) (*weather.Data, error) {
	payload, err := weather.RawAs[*Raw](raw)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, weather.ErrNoData
	}

	alerts := &weather.Alerts{Alerts: make([]weather.Alert, 0)}
	if payload.Alerts != nil {
		for _, feature := range payload.Alerts.Features {
			p := feature.Properties
			alert := weather.Alert{
				ID:          p.ID,
				Type:        p.Event,
				Headline:    p.Headline,
				Description: p.Description,
				Severity:    CanonicalSeverity(p.Severity),
				Certainty:   p.Certainty,
				Urgency:     p.Urgency,
				StartTime:   p.Onset,
				EndTime:     p.Expires,
				Sender:      p.SenderName,
				Areas:       p.AreaDesc,
				Instruction: p.Instruction,
				Response:    p.Response,
				Color:       SeverityColor(p.Severity),
			}
			if IsWarning(alert.Severity) {
				alerts.HasWarnings = true
			}
			alerts.Alerts = append(alerts.Alerts, alert)
		}
	}
	alerts.ActiveCount = len(alerts.Alerts)

	forecast := &weather.Forecast{Periods: make([]weather.ForecastPeriod, 0, periodLimit), Source: ForecastSource}
	if payload.Forecast != nil {
		periods := payload.Forecast.Properties.Periods
		for _, p := range periods[:min(periodLimit, len(periods))] {
			forecast.Periods = append(forecast.Periods, weather.ForecastPeriod{
				Name:             p.Name,
				Temperature:      p.Temperature,
				TemperatureUnit:  p.TemperatureUnit,
				WindSpeed:        p.WindSpeed,
				WindDirection:    p.WindDirection,
				ShortForecast:    p.ShortForecast,
				DetailedForecast: p.DetailedForecast,
				IsDaytime:        p.IsDaytime,
				Icon:             p.Icon,
			})
		}
	}

	return &weather.Data{
		Alerts:    alerts,
		Forecast:  forecast,
		Location:  weather.LocationName(location),
		Provider:  DisplayName,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}, nil
}

// CanonicalSeverity returns the title-cased severity, e.g. "Severe" for "SEVERE".
func CanonicalSeverity(value string) string {
	if value == "" {
		return ""
	}
	// A Caser is stateful and must not be shared between goroutines.
	return cases.Title(language.English).String(strings.ToLower(value))
}

// SeverityColor returns the display color for the alert severity.
func SeverityColor(severity string) string {
	if color, ok := severityColors[strings.ToLower(severity)]; ok {
		return color
	}
	return defaultSeverityColor
}

// IsWarning reports whether the severity is extreme or severe.
func IsWarning(severity string) bool {
	s := strings.ToLower(severity)
	return s == "extreme" || s == "severe"
}
