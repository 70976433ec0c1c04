// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"github.com/wneessen/weather-aggregator/internal/calc"
	"github.com/wneessen/weather-aggregator/internal/vartype"
)

// UnknownLocation is the location name used when the caller did not provide one.
const UnknownLocation = "Unknown Location"

// Data is the normalized result every provider converges to. Temperatures are in °F, wind speeds
// in mph, precipitation in inches and pressure in hPa. Only the blocks the producing provider
// supports are populated.
type Data struct {
	Current       *Current            `json:"current,omitempty"`
	Hourly        []Hour              `json:"hourly,omitempty"`
	HourlyShort   []Hour              `json:"hourly_short,omitempty"`
	Daily         []Day               `json:"daily,omitempty"`
	Minutely      []Minute            `json:"minutely,omitempty"`
	Sun           map[string]SunTimes `json:"sun,omitempty"`
	PressureTrend *calc.PressureTrend `json:"pressure_trend,omitempty"`

	AQI              *AirQuality `json:"aqi,omitempty"`
	Pollutants       *Pollutants `json:"pollutants,omitempty"`
	ObservationCount int         `json:"observation_count,omitempty"`

	Radar          *Radar          `json:"radar,omitempty"`
	WeatherContext *WeatherContext `json:"weather_context,omitempty"`

	Alerts   *Alerts   `json:"alerts,omitempty"`
	Forecast *Forecast `json:"forecast,omitempty"`

	Clothing          *Clothing          `json:"clothing,omitempty"`
	TemperatureTrends *TemperatureTrends `json:"temperature_trends,omitempty"`
	LunarData         *LunarData         `json:"lunar_data,omitempty"`
	Solar             *Solar             `json:"solar,omitempty"`

	Location   string `json:"location"`
	Provider   string `json:"provider"`
	DataSource string `json:"data_source,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
}

// Current holds the current conditions. Fields that not every upstream reports are optional.
type Current struct {
	Temperature       float64            `json:"temperature"`
	FeelsLike         float64            `json:"feels_like"`
	Humidity          float64            `json:"humidity"`
	WindSpeed         float64            `json:"wind_speed"`
	WindDirection     vartype.VarFloat64 `json:"wind_direction"`
	WindGust          vartype.VarFloat64 `json:"wind_gust,omitzero"`
	UVIndex           float64            `json:"uv_index"`
	Pressure          float64            `json:"pressure"`
	DewPoint          vartype.VarFloat64 `json:"dew_point,omitzero"`
	Visibility        vartype.VarFloat64 `json:"visibility,omitzero"`
	PrecipitationRate float64            `json:"precipitation_rate"`
	RainRate          float64            `json:"rain_rate"`
	ShowerRate        float64            `json:"shower_rate"`
	SnowRate          float64            `json:"snow_rate"`
	PrecipitationProb float64            `json:"precipitation_prob"`
	PrecipitationType vartype.VarString  `json:"precipitation_type"`
	Icon              string             `json:"icon"`
	Summary           string             `json:"summary"`
	IsDay             bool               `json:"is_day"`
	Timestamp         vartype.VarInt64   `json:"timestamp,omitzero"`
	DataAge           vartype.VarInt64   `json:"data_age,omitzero"`
}

// Hour is one entry of an hourly forecast.
type Hour struct {
	Temp              float64            `json:"temp"`
	Icon              string             `json:"icon"`
	Rain              float64            `json:"rain"`
	Time              string             `json:"t"`
	Desc              string             `json:"desc"`
	Pressure          vartype.VarFloat64 `json:"pressure,omitzero"`
	PrecipitationRate vartype.VarFloat64 `json:"precipitation_rate,omitzero"`
}

// Day is one entry of a daily forecast.
type Day struct {
	High float64 `json:"h"`
	Low  float64 `json:"l"`
	Icon string  `json:"icon"`
	Day  string  `json:"d"`
}

// Minute is one 15 minute precipitation look-ahead entry.
type Minute struct {
	Time          string  `json:"time"`
	Temp          float64 `json:"temp"`
	Precipitation float64 `json:"precipitation"`
	Rain          float64 `json:"rain"`
	Snow          float64 `json:"snow"`
	WeatherCode   int     `json:"weather_code"`
}

// SunTimes holds the sunrise and sunset of one day in local ISO format.
type SunTimes struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// WithLocation returns a shallow copy of d with the location name replaced. Cached results are
// never modified in place.
func (d *Data) WithLocation(name string) *Data {
	if d == nil {
		return nil
	}
	c := *d
	if name != "" {
		c.Location = name
	}
	return &c
}
