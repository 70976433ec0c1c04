// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package calc

import (
	"fmt"
	"math"
)

const (
	pressureMinSamples      = 3
	pressureHistoryCap      = 12
	pressureSteadyThreshold = 0.1
	pressureFastThreshold   = 0.5
	pressureHighThreshold   = 1020
	pressureNormalThreshold = 1000

	// PressureInsufficientData is the prediction reported when the history is too short.
	PressureInsufficientData = "Unable to determine trend - insufficient data"
	// PressureUncertain is the prediction for combinations without a known outcome.
	PressureUncertain = "Weather pattern uncertain"
)

var pressurePredictions = map[string]string{
	"rising_fast":   "Improving weather expected - clearing skies likely",
	"rising_slow":   "Weather gradually improving",
	"steady_high":   "Continued fair weather",
	"steady_normal": "Current weather conditions expected to persist",
	"steady_low":    "Unsettled weather may continue",
	"falling_slow":  "Weather may deteriorate gradually",
	"falling_fast":  "Stormy weather approaching - expect precipitation",
}

// PressureSample is one hourly sea level pressure observation.
type PressureSample struct {
	Time     string  `json:"time"`
	Pressure float64 `json:"pressure"`
}

// PressureTrend describes the barometric tendency derived from a pressure history.
type PressureTrend struct {
	Trend           string           `json:"trend"`
	Rate            float64          `json:"rate"`
	Prediction      string           `json:"prediction"`
	CurrentPressure float64          `json:"current_pressure,omitempty"`
	History         []PressureSample `json:"history,omitempty"`
}

// CalculatePressureTrend derives the pressure trend from a history ordered most recent first. The
// rate is the change over the last three samples (or fewer) in hPa per hour.
func CalculatePressureTrend(history []PressureSample) PressureTrend {
	if len(history) < pressureMinSamples {
		return PressureTrend{
			Trend:      "steady",
			Rate:       0,
			Prediction: PressureInsufficientData,
		}
	}

	current := history[0].Pressure
	past := history[min(3, len(history)-1)].Pressure
	rate := (current - past) / 3.0

	trend := "steady"
	switch {
	case math.Abs(rate) < pressureSteadyThreshold:
	case rate > 0:
		trend = "rising"
	default:
		trend = "falling"
	}

	retained := history[:min(pressureHistoryCap, len(history))]
	return PressureTrend{
		Trend:           trend,
		Rate:            Round(rate, 2),
		Prediction:      PressurePrediction(trend, rate, current),
		CurrentPressure: current,
		History:         append([]PressureSample(nil), retained...),
	}
}

// PressurePrediction returns a textual forecast for the given trend, rate and pressure level.
func PressurePrediction(trend string, rate, pressure float64) string {
	level := "low"
	switch {
	case pressure > pressureHighThreshold:
		level = "high"
	case pressure > pressureNormalThreshold:
		level = "normal"
	}

	var key string
	switch {
	case math.Abs(rate) < pressureSteadyThreshold:
		key = fmt.Sprintf("steady_%s", level)
	case math.Abs(rate) > pressureFastThreshold:
		key = trend + "_fast"
	default:
		key = trend + "_slow"
	}

	if prediction, ok := pressurePredictions[key]; ok {
		return prediction
	}
	return PressureUncertain
}
