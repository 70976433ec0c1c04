// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"strings"
	"testing"
	"time"

	"github.com/wneessen/weather-aggregator/internal/calc"
	"github.com/wneessen/weather-aggregator/internal/http"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/testhelper"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	testLat     = 41.8781
	testLon     = -87.6298
	fixtureFile = "../../../../testdata/open-meteo.json"
)

func testProvider(t *testing.T, rt stdhttp.RoundTripper) *OpenMeteo {
	t.Helper()
	log := logger.NewLogger(slog.LevelError, io.Discard)
	client := http.New(log)
	client.Transport = rt
	provider, err := New(client, log)
	if err != nil {
		t.Fatalf("failed to create provider: %s", err)
	}
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("failed to load timezone: %s", err)
	}
	provider.now = func() time.Time { return time.Date(2025, time.June, 2, 9, 20, 0, 0, chicago) }
	return provider
}

func fetchFixture(t *testing.T) (*OpenMeteo, *Response) {
	t.Helper()
	provider := testProvider(t, testhelper.FileRoundTripper(t, 200, fixtureFile, nil))
	raw, err := provider.FetchRaw(t.Context(), testLat, testLon, "")
	if err != nil {
		t.Fatalf("failed to fetch raw data: %s", err)
	}
	res, ok := raw.(*Response)
	if !ok {
		t.Fatalf("expected *Response, got %T", raw)
	}
	return provider, res
}

func TestNew(t *testing.T) {
	log := logger.NewLogger(slog.LevelError, io.Discard)
	t.Run("new provider succeeds", func(t *testing.T) {
		var provider weather.Provider
		provider, err := New(http.New(log), log)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		if provider.Name() != Name {
			t.Errorf("expected name %s, got %s", Name, provider.Name())
		}
		if provider.Describe().Timeout != 10 {
			t.Errorf("expected timeout of 10 seconds, got %d", provider.Describe().Timeout)
		}
	})
	t.Run("missing http client fails", func(t *testing.T) {
		if _, err := New(nil, log); err == nil {
			t.Error("expected error")
		}
	})
	t.Run("missing logger fails", func(t *testing.T) {
		if _, err := New(http.New(log), nil); err == nil {
			t.Error("expected error")
		}
	})
}

func TestOpenMeteo_FetchRaw(t *testing.T) {
	t.Run("request carries all parameters", func(t *testing.T) {
		var gotReq *stdhttp.Request
		provider := testProvider(t, testhelper.MockRoundTripper{Fn: func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotReq = req
			return testhelper.FileResponse(t, 200, fixtureFile), nil
		}})
		if _, err := provider.FetchRaw(t.Context(), testLat, testLon, ""); err != nil {
			t.Fatalf("failed to fetch raw data: %s", err)
		}
		query := gotReq.URL.Query()
		for key, want := range map[string]string{
			"latitude":         "41.878100",
			"temperature_unit": "fahrenheit",
			"wind_speed_unit":  "mph",
			"timezone":         "auto",
			"past_days":        "1",
			"forecast_days":    "7",
		} {
			if got := query.Get(key); got != want {
				t.Errorf("expected query %s to be %s, got %s", key, want, got)
			}
		}
		if !strings.Contains(query.Get("minutely_15"), "snowfall") {
			t.Errorf("expected minutely_15 fields, got %s", query.Get("minutely_15"))
		}
	})
	t.Run("API error is returned", func(t *testing.T) {
		provider := testProvider(t, testhelper.MockRoundTripper{Fn: func(*stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 400,
				Body:       io.NopCloser(strings.NewReader(`{"error":true,"reason":"Latitude must be in range"}`)),
			}, nil
		}})
		_, err := provider.FetchRaw(t.Context(), 100, testLon, "")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "Latitude must be in range") {
			t.Errorf("expected error to contain the reason, got %s", err)
		}
	})
	t.Run("transport failure is returned", func(t *testing.T) {
		provider := testProvider(t, testhelper.MockRoundTripper{Fn: func(*stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("connection refused")
		}})
		if _, err := provider.FetchRaw(t.Context(), testLat, testLon, ""); err == nil {
			t.Error("expected error")
		}
	})
}

func TestOpenMeteo_Normalize(t *testing.T) {
	provider, res := fetchFixture(t)
	data, err := provider.Normalize(res, "Chicago", "")
	if err != nil {
		t.Fatalf("failed to normalize data: %s", err)
	}

	t.Run("metadata", func(t *testing.T) {
		if data.Location != "Chicago" {
			t.Errorf("expected location Chicago, got %s", data.Location)
		}
		if data.Provider != DisplayName {
			t.Errorf("expected provider %s, got %s", DisplayName, data.Provider)
		}
		if data.Timezone != "America/Chicago" {
			t.Errorf("expected timezone from API, got %s", data.Timezone)
		}
	})
	t.Run("current conditions", func(t *testing.T) {
		cur := data.Current
		if cur == nil {
			t.Fatal("expected current conditions")
		}
		if cur.Temperature != 72 || cur.FeelsLike != 75 {
			t.Errorf("expected rounded temperatures 72/75, got %.1f/%.1f", cur.Temperature, cur.FeelsLike)
		}
		if cur.WindSpeed != 9 || cur.WindGust.Value() != 15 {
			t.Errorf("expected rounded wind 9/15, got %.1f/%.1f", cur.WindSpeed, cur.WindGust.Value())
		}
		if cur.WindDirection.Value() != 180 {
			t.Errorf("expected wind direction 180, got %.1f", cur.WindDirection.Value())
		}
		if cur.Pressure != 1006.6 {
			t.Errorf("expected pressure 1006.6, got %.2f", cur.Pressure)
		}
		if cur.PrecipitationType.Value() != "rain" {
			t.Errorf("expected precipitation type rain, got %s", cur.PrecipitationType.Value())
		}
		if cur.Icon != "light-rain" || cur.Summary != "Slight rain" {
			t.Errorf("expected light-rain/Slight rain, got %s/%s", cur.Icon, cur.Summary)
		}
		if !cur.IsDay {
			t.Error("expected daytime")
		}
		if cur.PrecipitationProb != 0 {
			t.Errorf("expected no current precipitation probability, got %.1f", cur.PrecipitationProb)
		}
	})
	t.Run("hourly starts at the current hour", func(t *testing.T) {
		if len(data.Hourly) != 24 {
			t.Fatalf("expected 24 hourly entries, got %d", len(data.Hourly))
		}
		first := data.Hourly[0]
		if first.Time != "9am" {
			t.Errorf("expected first label 9am, got %s", first.Time)
		}
		if first.Temp != 67 || first.Rain != 31 {
			t.Errorf("expected temp 67 and rain 31, got %.1f and %.1f", first.Temp, first.Rain)
		}
		if first.Icon != "cloudy" || first.Desc != "Overcast" {
			t.Errorf("expected cloudy/Overcast, got %s/%s", first.Icon, first.Desc)
		}
		if first.Pressure.Value() != 1006.6 {
			t.Errorf("expected pressure 1006.6, got %.1f", first.Pressure.Value())
		}
		if last := data.Hourly[23]; last.Time != "8am" {
			t.Errorf("expected last label 8am, got %s", last.Time)
		}
	})
	t.Run("pressure trend from past samples", func(t *testing.T) {
		trend := data.PressureTrend
		if trend == nil {
			t.Fatal("expected pressure trend")
		}
		if trend.Trend != "rising" || trend.Rate != 0.2 {
			t.Errorf("expected rising at 0.2, got %s at %.2f", trend.Trend, trend.Rate)
		}
		if trend.CurrentPressure != 1006.6 {
			t.Errorf("expected current pressure 1006.6, got %.1f", trend.CurrentPressure)
		}
		if len(trend.History) != 12 || trend.History[0].Time != "2025-06-02T09:00" {
			t.Errorf("unexpected history: %+v", trend.History)
		}
	})
	t.Run("daily starts today", func(t *testing.T) {
		if len(data.Daily) != 3 {
			t.Fatalf("expected 3 daily entries, got %d", len(data.Daily))
		}
		today := data.Daily[0]
		if today.Day != "Mon" || today.High != 79 || today.Low != 59 || today.Icon != "light-rain" {
			t.Errorf("unexpected first day: %+v", today)
		}
		if len(data.Sun) != 3 {
			t.Errorf("expected 3 sun entries, got %d", len(data.Sun))
		}
		if sun := data.Sun["2025-06-02"]; sun.Sunrise != "2025-06-02T05:15" || sun.Sunset != "2025-06-02T20:25" {
			t.Errorf("unexpected sun times: %+v", sun)
		}
	})
	t.Run("minutely starts at the current quarter hour", func(t *testing.T) {
		if len(data.Minutely) != 8 {
			t.Fatalf("expected 8 minutely entries, got %d", len(data.Minutely))
		}
		if data.Minutely[0].Time != "09:15" || data.Minutely[7].Time != "11:00" {
			t.Errorf("unexpected minutely range: %s - %s", data.Minutely[0].Time, data.Minutely[7].Time)
		}
		if data.Minutely[0].Temp != 70 || data.Minutely[0].WeatherCode != 61 {
			t.Errorf("unexpected minutely entry: %+v", data.Minutely[0])
		}
	})
	t.Run("normalize is deterministic", func(t *testing.T) {
		again, err := provider.Normalize(res, "Chicago", "")
		if err != nil {
			t.Fatalf("failed to normalize data: %s", err)
		}
		if again.Current.Temperature != data.Current.Temperature || len(again.Hourly) != len(data.Hourly) {
			t.Error("expected identical results for identical input")
		}
	})
}

func TestOpenMeteo_Normalize_edgecases(t *testing.T) {
	t.Run("missing sunrise is calculated locally", func(t *testing.T) {
		provider, res := fetchFixture(t)
		res.Daily.Sunrise = nil
		data, err := provider.Normalize(res, "", "")
		if err != nil {
			t.Fatalf("failed to normalize data: %s", err)
		}
		sun, ok := data.Sun["2025-06-02"]
		if !ok {
			t.Fatal("expected sun entry for today")
		}
		if !strings.HasPrefix(sun.Sunrise, "2025-06-02T05:") {
			t.Errorf("expected calculated sunrise around 5am, got %s", sun.Sunrise)
		}
		if data.Location != weather.UnknownLocation {
			t.Errorf("expected unknown location, got %s", data.Location)
		}
	})
	t.Run("empty response has no data", func(t *testing.T) {
		provider := testProvider(t, nil)
		if _, err := provider.Normalize(new(Response), "", ""); !errors.Is(err, weather.ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})
	t.Run("wrong payload type", func(t *testing.T) {
		provider := testProvider(t, nil)
		if _, err := provider.Normalize("invalid", "", ""); !errors.Is(err, weather.ErrUnexpectedShape) {
			t.Errorf("expected ErrUnexpectedShape, got %v", err)
		}
	})
	t.Run("short pressure history is insufficient", func(t *testing.T) {
		provider, res := fetchFixture(t)
		provider.now = func() time.Time { return time.Date(2025, time.June, 1, 6, 1, 0, 0, time.UTC) }
		data, err := provider.Normalize(res, "", "")
		if err != nil {
			t.Fatalf("failed to normalize data: %s", err)
		}
		if data.PressureTrend.Prediction != calc.PressureInsufficientData {
			t.Errorf("expected insufficient data, got %s", data.PressureTrend.Prediction)
		}
	})
}

func TestPrecipitationType(t *testing.T) {
	tests := []struct {
		name                string
		rain, showers, snow float64
		want                string
	}{
		{"no precipitation", 0, 0, 0, ""},
		{"snow wins above threshold", 0.1, 0.1, 0.02, "snow"},
		{"showers over rain", 0.01, 0.05, 0, "showers"},
		{"rain", 0.05, 0.01, 0, "rain"},
		{"trace snow only", 0, 0, 0.005, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PrecipitationType(tc.rain, tc.showers, tc.snow); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIcon(t *testing.T) {
	if got := Icon(0, false); got != "clear-night" {
		t.Errorf("expected clear-night, got %s", got)
	}
	if got := Icon(3, false); got != "cloudy" {
		t.Errorf("expected cloudy, got %s", got)
	}
	if got := Icon(42, true); got != "clear-day" {
		t.Errorf("expected clear-day for unknown code, got %s", got)
	}
	if got := Description(45); got != "Foggy" {
		t.Errorf("expected Foggy, got %s", got)
	}
	if got := Description(42); got != "Unknown" {
		t.Errorf("expected Unknown, got %s", got)
	}
}
