// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"github.com/wneessen/weather-aggregator/internal/calc"
	"github.com/wneessen/weather-aggregator/internal/vartype"
)

// Clothing is the clothing advice derived from a weather result.
type Clothing struct {
	Recommendations ClothingRecommendations `json:"recommendations"`
	WeatherContext  ClothingContext         `json:"weather_context"`
}

type ClothingRecommendations struct {
	PrimarySuggestion string         `json:"primary_suggestion"`
	Items             []string       `json:"items"`
	Warnings          []string       `json:"warnings"`
	ComfortTips       []string       `json:"comfort_tips"`
	ActivitySpecific  ActivityAdvice `json:"activity_specific"`
}

type ActivityAdvice struct {
	Commuting   string `json:"commuting"`
	Exercise    string `json:"exercise"`
	OutdoorWork string `json:"outdoor_work"`
}

type ClothingContext struct {
	CurrentTemp float64            `json:"current_temp"`
	FeelsLike   float64            `json:"feels_like"`
	TempRange   TempRange          `json:"temp_range"`
	Conditions  ClothingConditions `json:"conditions"`
}

type TempRange struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

type ClothingConditions struct {
	Humidity          float64 `json:"humidity"`
	WindSpeed         float64 `json:"wind_speed"`
	PrecipitationProb float64 `json:"precipitation_prob"`
	UVIndex           float64 `json:"uv_index"`
}

// TemperatureTrends is the statistical analysis of an hourly temperature forecast.
type TemperatureTrends struct {
	HourlyData      []TrendHour            `json:"hourly_data"`
	Statistics      *TemperatureStatistics `json:"statistics,omitempty"`
	ComfortAnalysis ComfortAnalysis        `json:"comfort_analysis"`
	TrendAnalysis   *TrendAnalysis         `json:"trend_analysis,omitempty"`
	PercentileBands PercentileBands        `json:"percentile_bands"`
	Current         TrendCurrent           `json:"current"`
}

// TrendHour is one forecast hour with its apparent temperature and confidence band.
type TrendHour struct {
	Hour                int     `json:"hour"`
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	ConfidenceLower     float64 `json:"confidence_lower"`
	ConfidenceUpper     float64 `json:"confidence_upper"`
	Uncertainty         float64 `json:"uncertainty"`
	Pressure            float64 `json:"pressure"`
}

type TemperatureStatistics struct {
	Temperature         TemperatureSummary `json:"temperature"`
	ApparentTemperature ApparentSummary    `json:"apparent_temperature"`
}

type TemperatureSummary struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Percentile25 float64 `json:"percentile_25"`
	Percentile75 float64 `json:"percentile_75"`
	StdDev       float64 `json:"std_dev"`
	Range        float64 `json:"range"`
}

type ApparentSummary struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Range float64 `json:"range"`
}

type ComfortAnalysis struct {
	Categories     map[string]int     `json:"categories"`
	Percentages    map[string]float64 `json:"percentages,omitempty"`
	PrimaryComfort string             `json:"primary_comfort,omitempty"`
}

type TrendAnalysis struct {
	OverallSlopePerHour  float64         `json:"overall_slope_per_hour"`
	TrendDirection       string          `json:"trend_direction"`
	TemperatureChange24h float64         `json:"temperature_change_24h"`
	Peaks                []calc.Extremum `json:"peaks"`
	Valleys              []calc.Extremum `json:"valleys"`
	Volatility           float64         `json:"volatility"`
}

type PercentileBands struct {
	P10        float64 `json:"10th_percentile"`
	P25        float64 `json:"25th_percentile"`
	P50        float64 `json:"50th_percentile"`
	P75        float64 `json:"75th_percentile"`
	P90        float64 `json:"90th_percentile"`
	Note       string  `json:"note"`
	DataSource string  `json:"data_source"`
}

type TrendCurrent struct {
	Temperature         float64            `json:"temperature"`
	ApparentTemperature float64            `json:"apparent_temperature"`
	DewPoint            vartype.VarFloat64 `json:"dew_point"`
	ComfortCategory     string             `json:"comfort_category"`
}

// LunarData describes the moon at a given instant.
type LunarData struct {
	CurrentPhase     LunarPhase       `json:"current_phase"`
	NextPhases       NextPhases       `json:"next_phases"`
	LunarCycle       LunarCycle       `json:"lunar_cycle"`
	AstronomicalData AstronomicalData `json:"astronomical_data"`
}

type LunarPhase struct {
	Name                string  `json:"name"`
	Icon                string  `json:"icon"`
	IlluminationPercent float64 `json:"illumination_percent"`
	LunarAgeDays        float64 `json:"lunar_age_days"`
	Description         string  `json:"description"`
}

type NextPhases struct {
	NewMoon  PhaseEvent `json:"new_moon"`
	FullMoon PhaseEvent `json:"full_moon"`
}

type PhaseEvent struct {
	Date          string  `json:"date"`
	DaysUntil     float64 `json:"days_until"`
	CountdownText string  `json:"countdown_text"`
}

type LunarCycle struct {
	CurrentCycleProgress float64 `json:"current_cycle_progress"`
	SynodicMonthDays     float64 `json:"synodic_month_days"`
}

type AstronomicalData struct {
	JulianDay           float64               `json:"julian_day"`
	LunarDistanceVaries bool                  `json:"lunar_distance_varies"`
	BestViewing         ViewingRecommendation `json:"best_viewing"`
	ReferencePhase      string                `json:"reference_phase"`
}

type ViewingRecommendation struct {
	Visibility  string `json:"visibility"`
	Photography string `json:"photography"`
	BestTime    string `json:"best_time"`
	Stargazing  string `json:"stargazing"`
}

// Solar holds the solar ephemeris of a location for one day. Times are RFC 3339 in UTC.
type Solar struct {
	Times          SolarTimes         `json:"times"`
	GoldenHour     HourWindow         `json:"golden_hour"`
	BlueHour       HourWindow         `json:"blue_hour"`
	Daylight       Daylight           `json:"daylight"`
	SolarElevation SolarElevation     `json:"solar_elevation"`
	Comparisons    DaylightComparison `json:"comparisons"`
	Location       SolarLocation      `json:"location"`
}

// SolarTimes holds the events of the solar day. Twilight times are null if the sun never reaches
// the corresponding depression angle.
type SolarTimes struct {
	Sunrise                  string            `json:"sunrise"`
	Sunset                   string            `json:"sunset"`
	SolarNoon                string            `json:"solar_noon"`
	CivilTwilightDawn        vartype.VarString `json:"civil_twilight_dawn"`
	CivilTwilightDusk        vartype.VarString `json:"civil_twilight_dusk"`
	NauticalTwilightDawn     vartype.VarString `json:"nautical_twilight_dawn"`
	NauticalTwilightDusk     vartype.VarString `json:"nautical_twilight_dusk"`
	AstronomicalTwilightDawn vartype.VarString `json:"astronomical_twilight_dawn"`
	AstronomicalTwilightDusk vartype.VarString `json:"astronomical_twilight_dusk"`
}

type HourWindow struct {
	MorningStart string `json:"morning_start"`
	MorningEnd   string `json:"morning_end"`
	EveningStart string `json:"evening_start"`
	EveningEnd   string `json:"evening_end"`
}

type Daylight struct {
	DurationHours   float64 `json:"duration_hours"`
	DurationMinutes int     `json:"duration_minutes"`
	Progress        float64 `json:"progress"`
	IsDaylight      bool    `json:"is_daylight"`
}

type SolarElevation struct {
	CurrentDegrees float64 `json:"current_degrees"`
	IsAboveHorizon bool    `json:"is_above_horizon"`
}

type DaylightComparison struct {
	YesterdayDurationHours     float64 `json:"yesterday_duration_hours"`
	TomorrowDurationHours      float64 `json:"tomorrow_duration_hours"`
	ChangeFromYesterdayMinutes float64 `json:"change_from_yesterday_minutes"`
	ChangeToTomorrowMinutes    float64 `json:"change_to_tomorrow_minutes"`
}

type SolarLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}
