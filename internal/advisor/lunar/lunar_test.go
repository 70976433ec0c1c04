// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package lunar

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/wneessen/weather-aggregator/internal/calc"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

// referenceNewMoon is the new moon of January 6th, 2000 at 00:00 UTC.
var referenceNewMoon = time.Date(2000, 1, 6, 0, 0, 0, 0, time.UTC)

func testAdvisor(t *testing.T) *Advisor {
	t.Helper()
	advisor, err := New(logger.NewLogger(slog.LevelError, io.Discard))
	if err != nil {
		t.Fatalf("failed to create advisor: %s", err)
	}
	return advisor
}

func TestCalculate(t *testing.T) {
	t.Run("new moon is dark", func(t *testing.T) {
		lunar := Calculate(referenceNewMoon)
		if lunar.CurrentPhase.Name != calc.PhaseNewMoon {
			t.Errorf("expected %s, got %s", calc.PhaseNewMoon, lunar.CurrentPhase.Name)
		}
		if lunar.CurrentPhase.IlluminationPercent >= 5 {
			t.Errorf("expected illumination below 5%%, got %f", lunar.CurrentPhase.IlluminationPercent)
		}
		if lunar.CurrentPhase.Icon != "🌑" {
			t.Errorf("unexpected icon: %s", lunar.CurrentPhase.Icon)
		}
		if lunar.AstronomicalData.JulianDay != calc.NewMoonReference {
			t.Errorf("expected julian day %f, got %f", calc.NewMoonReference, lunar.AstronomicalData.JulianDay)
		}
		if lunar.AstronomicalData.BestViewing.Stargazing != "Excellent - darkest skies" {
			t.Errorf("unexpected viewing recommendation: %+v", lunar.AstronomicalData.BestViewing)
		}
		if lunar.AstronomicalData.ReferencePhase == "" {
			t.Error("expected a reference phase")
		}
	})
	t.Run("full moon is bright", func(t *testing.T) {
		full := calc.FromJulianDay(calc.NewMoonReference + calc.SynodicMonth/2)
		lunar := Calculate(full)
		if lunar.CurrentPhase.Name != calc.PhaseFullMoon {
			t.Errorf("expected %s, got %s", calc.PhaseFullMoon, lunar.CurrentPhase.Name)
		}
		if lunar.CurrentPhase.IlluminationPercent <= 95 {
			t.Errorf("expected illumination above 95%%, got %f", lunar.CurrentPhase.IlluminationPercent)
		}
		if lunar.LunarCycle.CurrentCycleProgress != 50 {
			t.Errorf("expected cycle progress 50, got %f", lunar.LunarCycle.CurrentCycleProgress)
		}
	})
	t.Run("next phases lie ahead", func(t *testing.T) {
		instant := referenceNewMoon.Add(time.Hour * 24 * 10)
		lunar := Calculate(instant)
		if lunar.CurrentPhase.Name != calc.PhaseWaxingGibbous {
			t.Errorf("expected %s, got %s", calc.PhaseWaxingGibbous, lunar.CurrentPhase.Name)
		}
		if lunar.NextPhases.FullMoon.DaysUntil != 4.8 || lunar.NextPhases.FullMoon.CountdownText != "4 days" {
			t.Errorf("unexpected next full moon: %+v", lunar.NextPhases.FullMoon)
		}
		if lunar.NextPhases.NewMoon.DaysUntil != 19.5 || lunar.NextPhases.NewMoon.CountdownText != "19 days" {
			t.Errorf("unexpected next new moon: %+v", lunar.NextPhases.NewMoon)
		}
	})
	t.Run("location independence", func(t *testing.T) {
		advisor := testAdvisor(t)
		instant := time.Date(2025, 6, 2, 14, 20, 0, 0, time.UTC)
		var results []*weather.Data
		for _, loc := range []struct{ name, tz string }{
			{"Chicago", "America/Chicago"},
			{"Tokyo", "Asia/Tokyo"},
			{"Sydney", "Australia/Sydney"},
		} {
			data, err := advisor.Normalize(instant.In(time.FixedZone(loc.tz, 3600)), loc.name, loc.tz)
			if err != nil {
				t.Fatalf("failed to normalize: %s", err)
			}
			if data.Timezone != loc.tz || data.Location != loc.name {
				t.Errorf("unexpected metadata: %s/%s", data.Timezone, data.Location)
			}
			results = append(results, data)
		}
		for _, data := range results[1:] {
			if *data.LunarData != *results[0].LunarData {
				t.Errorf("expected identical lunar data, got %+v and %+v", *data.LunarData, *results[0].LunarData)
			}
		}
	})
}

func TestCountdown(t *testing.T) {
	tests := []struct {
		days float64
		want string
	}{
		{0.5, "12 hours"},
		{0.01, "0 hours"},
		{1.5, "1 day"},
		{2.9, "2 days"},
		{14.77, "14 days"},
	}
	for _, tc := range tests {
		if got := Countdown(tc.days); got != tc.want {
			t.Errorf("Countdown(%f): expected %s, got %s", tc.days, tc.want, got)
		}
	}
}

func TestDescription(t *testing.T) {
	if got := Description(calc.PhaseWaxingCrescent, 0.234); got != "A thin crescent moon is growing brighter (23% illuminated)" {
		t.Errorf("unexpected description: %s", got)
	}
	if got := Description("Blue Moon", 1); got != "Moon phase: Blue Moon" {
		t.Errorf("unexpected description: %s", got)
	}
	if got := Viewing("Blue Moon"); got.Visibility != "Check astronomical references" {
		t.Errorf("unexpected viewing fallback: %+v", got)
	}
}

func TestAdvisor_Normalize(t *testing.T) {
	advisor := testAdvisor(t)
	t.Run("default timezone", func(t *testing.T) {
		data, err := advisor.Normalize(referenceNewMoon, "", "")
		if err != nil {
			t.Fatalf("failed to normalize: %s", err)
		}
		if data.Timezone != "UTC" || data.Provider != DisplayName || data.Timestamp != "2000-01-06T00:00:00Z" {
			t.Errorf("unexpected metadata: %s/%s/%s", data.Timezone, data.Provider, data.Timestamp)
		}
	})
	t.Run("missing instant", func(t *testing.T) {
		if _, err := advisor.Normalize(nil, "", ""); !errors.Is(err, weather.ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
		if _, err := advisor.Normalize(time.Time{}, "", ""); !errors.Is(err, weather.ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})
	t.Run("wrong input type", func(t *testing.T) {
		if _, err := advisor.Normalize("now", "", ""); !errors.Is(err, weather.ErrUnexpectedShape) {
			t.Errorf("expected ErrUnexpectedShape, got %v", err)
		}
	})
}
