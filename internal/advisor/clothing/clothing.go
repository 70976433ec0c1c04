// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package clothing derives clothing advice from a previously fetched weather result.
package clothing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	Name        = "clothing"
	DisplayName = "ClothingRecommendationProvider"

	lookaheadHours = 12
)

// Feels-like thresholds in °F.
const (
	veryHotTemp  = 85
	hotTemp      = 75
	warmTemp     = 65
	coolTemp     = 50
	coldTemp     = 35
	sweatyTemp   = 80
	freezingTemp = 32
)

const (
	windyThreshold       = 15
	rainLikelyProb       = 60
	umbrellaTipProb      = 30
	rainSuggestionProb   = 50
	highUV               = 8
	moderateUV           = 6
	lowUV                = 3
	humidHumidity        = 80
	humidTemp            = 70
	dryHumidity          = 30
	largeTempSwing       = 20
	moderateTempSwing    = 15
	defaultTemperature   = 70
	defaultHumidityValue = 50
)

// Advisor is the calculation-only clothing provider. It performs no upstream calls.
type Advisor struct {
	log *logger.Logger
	now func() time.Time
}

// New returns a new clothing advisor.
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
		Description: "Clothing recommendations based on current conditions and the hourly forecast",
	}
}

// FetchRaw never performs a request. The advisor has to be fed through Normalize or Recommend.
func (a *Advisor) FetchRaw(context.Context, float64, float64, string) (any, error) {
	return nil, nil
}

// Normalize expects a *weather.Data and returns a result holding only the clothing block.
func (a *Advisor) Normalize(raw any, location, _ string) (*weather.Data, error) {
	data, err := weather.RawAs[*weather.Data](raw)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, weather.ErrNoData
	}

	clothing := Recommend(data)
	return &weather.Data{
		Clothing:  &clothing,
		Location:  weather.LocationName(location),
		Provider:  DisplayName,
		Timestamp: a.now().UTC().Format(time.RFC3339),
	}, nil
}

// Recommend derives the clothing advice for the weather result. Missing current conditions fall
// back to a mild 70°F at 50% humidity.
func Recommend(data *weather.Data) weather.Clothing {
	wctx := weather.ClothingContext{
		CurrentTemp: defaultTemperature,
		FeelsLike:   defaultTemperature,
		Conditions:  weather.ClothingConditions{Humidity: defaultHumidityValue},
	}
	if cur := data.Current; cur != nil {
		wctx.CurrentTemp = cur.Temperature
		wctx.FeelsLike = cur.FeelsLike
		wctx.Conditions = weather.ClothingConditions{
			Humidity:          cur.Humidity,
			WindSpeed:         cur.WindSpeed,
			PrecipitationProb: cur.PrecipitationProb,
			UVIndex:           cur.UVIndex,
		}
	}
	wctx.TempRange = weather.TempRange{High: wctx.CurrentTemp, Low: wctx.CurrentTemp}
	if len(data.Daily) > 0 {
		wctx.TempRange = weather.TempRange{High: data.Daily[0].High, Low: data.Daily[0].Low}
	}

	rainAhead := false
	for _, hour := range data.Hourly[:min(lookaheadHours, len(data.Hourly))] {
		if hour.Rain > rainLikelyProb {
			rainAhead = true
			break
		}
	}

	return weather.Clothing{
		Recommendations: recommend(wctx, rainAhead),
		WeatherContext:  wctx,
	}
}

func recommend(wctx weather.ClothingContext, rainAhead bool) weather.ClothingRecommendations {
	feels := wctx.FeelsLike
	cond := wctx.Conditions
	rec := weather.ClothingRecommendations{
		Items:       make([]string, 0),
		Warnings:    make([]string, 0),
		ComfortTips: make([]string, 0),
	}

	var baseLayer string
	switch {
	case feels >= veryHotTemp:
		baseLayer = "Light, breathable fabrics"
		rec.Items = append(rec.Items, "shorts", "t-shirt", "sandals")
	case feels >= hotTemp:
		baseLayer = "Lightweight clothing"
		rec.Items = append(rec.Items, "light pants", "short sleeves", "comfortable shoes")
	case feels >= warmTemp:
		baseLayer = "Comfortable casual wear"
		rec.Items = append(rec.Items, "pants", "long sleeves", "closed shoes")
	case feels >= coolTemp:
		baseLayer = "Layers recommended"
		rec.Items = append(rec.Items, "pants", "light sweater", "jacket")
	case feels >= coldTemp:
		baseLayer = "Warm clothing needed"
		rec.Items = append(rec.Items, "warm pants", "sweater", "coat", "warm shoes")
	default:
		baseLayer = "Heavy winter clothing"
		rec.Items = append(rec.Items, "insulated pants", "heavy coat", "warm layers", "winter boots")
	}

	if cond.WindSpeed > windyThreshold {
		rec.Items = append(rec.Items, "wind-resistant outer layer")
		rec.Warnings = append(rec.Warnings,
			fmt.Sprintf("Strong winds (%s mph) - wind-resistant clothing recommended", number(cond.WindSpeed)))
	}

	switch {
	case cond.PrecipitationProb > rainLikelyProb || rainAhead:
		rec.Items = append(rec.Items, "waterproof jacket", "umbrella")
		rec.Warnings = append(rec.Warnings,
			fmt.Sprintf("Rain likely (%s%%) - bring rain protection", number(cond.PrecipitationProb)))
	case cond.PrecipitationProb > umbrellaTipProb:
		rec.ComfortTips = append(rec.ComfortTips, "Consider bringing an umbrella just in case")
	}

	switch {
	case cond.UVIndex >= highUV:
		rec.Items = append(rec.Items, "sunscreen", "hat", "sunglasses")
		rec.Warnings = append(rec.Warnings,
			fmt.Sprintf("High UV index (%s) - sun protection essential", number(cond.UVIndex)))
	case cond.UVIndex >= moderateUV:
		rec.Items = append(rec.Items, "sunscreen", "hat")
		rec.ComfortTips = append(rec.ComfortTips, "Moderate UV - sun protection recommended")
	case cond.UVIndex >= lowUV:
		rec.ComfortTips = append(rec.ComfortTips, "Some sun protection advised during peak hours")
	}

	swing := wctx.TempRange.High - wctx.TempRange.Low
	switch {
	case swing > largeTempSwing:
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("Large temperature swing (%.0f°) - dress in layers", swing))
		rec.Items = append(rec.Items, "layering pieces")
	case swing > moderateTempSwing:
		rec.ComfortTips = append(rec.ComfortTips, "Temperature will change - consider layering")
	}

	switch {
	case cond.Humidity > humidHumidity && wctx.CurrentTemp > humidTemp:
		rec.ComfortTips = append(rec.ComfortTips, "High humidity - choose breathable fabrics")
	case cond.Humidity < dryHumidity:
		rec.ComfortTips = append(rec.ComfortTips, "Low humidity - consider moisturizer")
	}

	switch {
	case feels >= sweatyTemp:
		rec.PrimarySuggestion = baseLayer + " - stay cool and hydrated"
	case feels <= freezingTemp:
		rec.PrimarySuggestion = baseLayer + " - bundle up and stay warm"
	case swing > moderateTempSwing:
		rec.PrimarySuggestion = baseLayer + " - dress in removable layers"
	case cond.PrecipitationProb > rainSuggestionProb:
		rec.PrimarySuggestion = baseLayer + " with rain protection"
	default:
		rec.PrimarySuggestion = baseLayer
	}

	rec.ActivitySpecific = weather.ActivityAdvice{
		Commuting:   commute(feels, cond.WindSpeed, cond.PrecipitationProb),
		Exercise:    exercise(feels, cond.Humidity, cond.UVIndex),
		OutdoorWork: outdoorWork(feels, cond.WindSpeed, cond.UVIndex, cond.PrecipitationProb),
	}
	return rec
}

func commute(feels, wind, precipitation float64) string {
	var advice []string
	switch {
	case feels < 40:
		advice = append(advice, "warm coat and gloves")
	case feels > 80:
		advice = append(advice, "light layers you can remove indoors")
	}
	if wind > 20 {
		advice = append(advice, "secure any loose items")
	}
	if precipitation > 40 {
		advice = append(advice, "waterproof shoes and jacket")
	}
	return joinOr(advice, "standard work attire should be comfortable")
}

func exercise(feels, humidity, uv float64) string {
	var advice []string
	if feels > 75 {
		advice = append(advice, "moisture-wicking fabrics")
	}
	if humidity > 70 {
		advice = append(advice, "extra hydration")
	}
	if uv >= 6 {
		advice = append(advice, "sun protection and early/late timing")
	}
	if feels < 45 {
		advice = append(advice, "warm-up layers you can remove")
	}
	return joinOr(advice, "standard workout gear should work well")
}

func outdoorWork(feels, wind, uv, precipitation float64) string {
	var advice []string
	switch {
	case feels > 85:
		advice = append(advice, "frequent shade breaks and cooling gear")
	case feels < 32:
		advice = append(advice, "insulated work gear and hand warmers")
	}
	if wind > 25 {
		advice = append(advice, "secure all equipment and materials")
	}
	if uv >= 7 {
		advice = append(advice, "long sleeves, hat, and frequent sunscreen")
	}
	if precipitation > 30 {
		advice = append(advice, "waterproof work gear")
	}
	return joinOr(advice, "standard work clothing appropriate")
}

func joinOr(advice []string, fallback string) string {
	if len(advice) == 0 {
		return fallback
	}
	return strings.Join(advice, ", ")
}

// number formats a reading without trailing zeros, e.g. 18 or 18.5.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
