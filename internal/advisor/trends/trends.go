// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package trends analyzes the hourly temperature forecast of a weather result: apparent
// temperatures with a widening confidence band, descriptive statistics, comfort zones and the
// overall trend.
package trends

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/wneessen/weather-aggregator/internal/calc"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	Name        = "trends"
	DisplayName = "EnhancedTemperatureTrendProvider"

	maxHours         = 48
	minTrendPoints   = 6
	extremaWindow    = 24
	warmingSlope     = 0.5
	coolingSlope     = -0.5
	extremeTempHigh  = 90
	extremeTempLow   = 20
	seasonalVariance = 15
	dailyVariance    = 10
)

// Comfort categories of the hourly analysis.
const (
	Comfortable = "comfortable"
	Hot         = "hot"
	Cool        = "cool"
	Cold        = "cold"
)

// categories is ordered, the first category wins a tie for the primary comfort.
var categories = []string{Comfortable, Hot, Cool, Cold}

// Advisor is the calculation-only temperature trend provider.
type Advisor struct {
	log *logger.Logger
	now func() time.Time
}

// New returns a new temperature trend advisor.
func New(log *logger.Logger) (*Advisor, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Advisor{log: log, now: time.Now}, nil
}

func (a *Advisor) Name() string {
	return Name
}

func (a *Advisor) Describe() weather.Info {
	return weather.Info{
		Name:        Name,
		Description: "Statistical temperature trend analysis of the hourly forecast",
	}
}

// FetchRaw never performs a request.
func (a *Advisor) FetchRaw(context.Context, float64, float64, string) (any, error) {
	return nil, nil
}

// Normalize expects a *weather.Data and returns a result holding only the temperature trends.
func (a *Advisor) Normalize(raw any, location, _ string) (*weather.Data, error) {
	data, err := weather.RawAs[*weather.Data](raw)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, weather.ErrNoData
	}

	trends := Analyze(data)
	return &weather.Data{
		TemperatureTrends: &trends,
		Location:          weather.LocationName(location),
		Provider:          DisplayName,
		Timestamp:         a.now().UTC().Format(time.RFC3339),
	}, nil
}

// Analyze derives the temperature trends of up to 48 forecast hours. The current humidity and wind
// speed stand in for the hourly values when computing apparent temperatures.
func Analyze(data *weather.Data) weather.TemperatureTrends {
	current := weather.TrendCurrent{Temperature: 70}
	humidity, wind := 50.0, 0.0
	if cur := data.Current; cur != nil {
		current.Temperature = cur.Temperature
		current.DewPoint = cur.DewPoint
		humidity, wind = cur.Humidity, cur.WindSpeed
	}
	current.ApparentTemperature = calc.ApparentTemperature(current.Temperature, humidity, wind)
	current.ComfortCategory = Comfort(current.Temperature, humidity)

	hours := data.Hourly[:min(maxHours, len(data.Hourly))]
	hourly := make([]weather.TrendHour, 0, len(hours))
	temps := make([]float64, 0, len(hours))
	apparent := make([]float64, 0, len(hours))
	for i, hour := range hours {
		label := hour.Time
		if label == "" {
			label = fmt.Sprintf("%dh", i)
		}
		uncertainty := Uncertainty(i, hour.Temp)
		entry := weather.TrendHour{
			Hour:                i,
			Time:                label,
			Temperature:         hour.Temp,
			ApparentTemperature: calc.ApparentTemperature(hour.Temp, humidity, wind),
			ConfidenceLower:     calc.Round(hour.Temp-uncertainty, 1),
			ConfidenceUpper:     calc.Round(hour.Temp+uncertainty, 1),
			Uncertainty:         calc.Round(uncertainty, 1),
			Pressure:            hour.Pressure.Or(0),
		}
		hourly = append(hourly, entry)
		temps = append(temps, entry.Temperature)
		apparent = append(apparent, entry.ApparentTemperature)
	}

	return weather.TemperatureTrends{
		HourlyData:      hourly,
		Statistics:      statistics(temps, apparent),
		ComfortAnalysis: comfortZones(temps),
		TrendAnalysis:   trend(temps),
		PercentileBands: weather.PercentileBands{
			P10:        current.Temperature - seasonalVariance,
			P25:        current.Temperature - dailyVariance,
			P50:        current.Temperature,
			P75:        current.Temperature + dailyVariance,
			P90:        current.Temperature + seasonalVariance,
			Note:       "Percentile bands are estimated based on typical seasonal patterns",
			DataSource: "estimated",
		},
		Current: current,
	}
}

// Uncertainty returns the half width of the confidence band in °F for the forecast hour. It grows
// with the square root of the lead time and widens for extreme temperatures.
func Uncertainty(hour int, temp float64) float64 {
	uncertainty := 1 + math.Sqrt(float64(hour)/6)
	if temp > extremeTempHigh || temp < extremeTempLow {
		uncertainty += 0.5
	}
	return uncertainty
}

// Comfort categorizes the combination of temperature and relative humidity.
func Comfort(temp, humidity float64) string {
	switch {
	case temp >= 68 && temp <= 72 && humidity >= 30 && humidity <= 60:
		return "optimal"
	case temp >= 65 && temp <= 75 && humidity >= 25 && humidity <= 70:
		return Comfortable
	case temp > 80 || humidity > 70:
		return Hot
	case temp < 60:
		return Cool
	default:
		return "moderate"
	}
}

func hourCategory(temp float64) string {
	switch {
	case temp >= 65 && temp <= 75:
		return Comfortable
	case temp > 80:
		return Hot
	case temp >= 50 && temp < 65:
		return Cool
	default:
		return Cold
	}
}

func comfortZones(temps []float64) weather.ComfortAnalysis {
	counts := make(map[string]int, len(categories))
	for _, category := range categories {
		counts[category] = 0
	}
	for _, temp := range temps {
		counts[hourCategory(temp)]++
	}
	analysis := weather.ComfortAnalysis{Categories: counts}
	if len(temps) == 0 {
		return analysis
	}

	analysis.Percentages = make(map[string]float64, len(categories))
	for _, category := range categories {
		analysis.Percentages[category] = calc.Round(float64(counts[category])/float64(len(temps))*100, 1)
		if analysis.PrimaryComfort == "" || counts[category] > counts[analysis.PrimaryComfort] {
			analysis.PrimaryComfort = category
		}
	}
	return analysis
}

func statistics(temps, apparent []float64) *weather.TemperatureStatistics {
	if len(temps) == 0 {
		return nil
	}
	tempMin, tempMax := minMax(temps)
	appMin, appMax := minMax(apparent)
	return &weather.TemperatureStatistics{
		Temperature: weather.TemperatureSummary{
			Min:          tempMin,
			Max:          tempMax,
			Mean:         calc.Round(calc.Mean(temps), 1),
			Median:       calc.Round(calc.SortedAt(temps, 1, 2), 1),
			Percentile25: calc.Round(calc.SortedAt(temps, 1, 4), 1),
			Percentile75: calc.Round(calc.SortedAt(temps, 3, 4), 1),
			StdDev:       calc.Round(calc.StdDev(temps), 1),
			Range:        calc.Round(tempMax-tempMin, 1),
		},
		ApparentTemperature: weather.ApparentSummary{
			Min:   appMin,
			Max:   appMax,
			Mean:  calc.Round(calc.Mean(apparent), 1),
			Range: calc.Round(appMax-appMin, 1),
		},
	}
}

func trend(temps []float64) *weather.TrendAnalysis {
	if len(temps) < minTrendPoints {
		return nil
	}

	slope := calc.LinearSlope(temps)
	direction := "stable"
	switch {
	case slope > warmingSlope:
		direction = "warming"
	case slope < coolingSlope:
		direction = "cooling"
	}

	var change float64
	if len(temps) >= extremaWindow {
		change = calc.Round(temps[extremaWindow-1]-temps[0], 1)
	}
	peaks, valleys := calc.LocalExtrema(temps[:min(extremaWindow, len(temps))])

	return &weather.TrendAnalysis{
		OverallSlopePerHour:  calc.Round(slope, 3),
		TrendDirection:       direction,
		TemperatureChange24h: change,
		Peaks:                peaks,
		Valleys:              valleys,
		Volatility:           calc.Round(calc.StdDev(temps), 1),
	}
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
