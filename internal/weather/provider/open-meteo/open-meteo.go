// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package openmeteo implements the general forecast provider backed by the Open-Meteo API.
package openmeteo

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/wneessen/weather-aggregator/internal/calc"
	"github.com/wneessen/weather-aggregator/internal/http"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/vartype"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	Name        = "open-meteo"
	DisplayName = "OpenMeteo"
	apiEndpoint = "https://api.open-meteo.com/v1/forecast"
	apiTimeout  = time.Second * 10

	hourlyLimit   = 24
	dailyLimit    = 7
	minutelyLimit = 8

	timeLayout = "2006-01-02T15:04"
	dateLayout = "2006-01-02"
)

var (
	currentFields = []string{
		"temperature_2m", "relative_humidity_2m", "apparent_temperature", "is_day", "precipitation",
		"rain", "showers", "snowfall", "weather_code", "cloud_cover", "wind_speed_10m",
		"wind_direction_10m", "wind_gusts_10m", "uv_index", "pressure_msl", "surface_pressure",
		"dew_point_2m",
	}
	minutelyFields = []string{"temperature_2m", "precipitation", "rain", "snowfall", "weather_code"}
	hourlyFields   = []string{
		"temperature_2m", "precipitation_probability", "precipitation", "rain", "showers", "snowfall",
		"weather_code", "cloud_cover", "wind_speed_10m", "pressure_msl",
	}
	dailyFields = []string{
		"weather_code", "temperature_2m_max", "temperature_2m_min", "precipitation_sum", "rain_sum",
		"showers_sum", "snowfall_sum", "precipitation_probability_max", "wind_speed_10m_max",
		"uv_index_max", "sunrise", "sunset",
	}
)

// OpenMeteo is the Open-Meteo forecast provider. It needs no API key.
type OpenMeteo struct {
	log  *logger.Logger
	http *http.Client
	now  func() time.Time
}

// Response is the subset of the Open-Meteo forecast response the provider consumes.
type Response struct {
	Error     bool    `json:"error"`
	Reason    string  `json:"reason"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Current   struct {
		Time                string             `json:"time"`
		Temperature         float64            `json:"temperature_2m"`
		RelativeHumidity    float64            `json:"relative_humidity_2m"`
		ApparentTemperature float64            `json:"apparent_temperature"`
		IsDay               vartype.VarInt64   `json:"is_day"`
		Precipitation       float64            `json:"precipitation"`
		Rain                float64            `json:"rain"`
		Showers             float64            `json:"showers"`
		Snowfall            float64            `json:"snowfall"`
		WeatherCode         int                `json:"weather_code"`
		CloudCover          float64            `json:"cloud_cover"`
		WindSpeed           float64            `json:"wind_speed_10m"`
		WindDirection       vartype.VarFloat64 `json:"wind_direction_10m"`
		WindGusts           float64            `json:"wind_gusts_10m"`
		UVIndex             float64            `json:"uv_index"`
		PressureMSL         float64            `json:"pressure_msl"`
		SurfacePressure     float64            `json:"surface_pressure"`
		DewPoint            float64            `json:"dew_point_2m"`
	} `json:"current"`
	Minutely15 struct {
		Time          []string  `json:"time"`
		Temperature   []float64 `json:"temperature_2m"`
		Precipitation []float64 `json:"precipitation"`
		Rain          []float64 `json:"rain"`
		Snowfall      []float64 `json:"snowfall"`
		WeatherCode   []int     `json:"weather_code"`
	} `json:"minutely_15"`
	Hourly struct {
		Time                     []string             `json:"time"`
		Temperature              []float64            `json:"temperature_2m"`
		PrecipitationProbability []vartype.VarFloat64 `json:"precipitation_probability"`
		Precipitation            []float64            `json:"precipitation"`
		Rain                     []float64            `json:"rain"`
		Showers                  []float64            `json:"showers"`
		Snowfall                 []float64            `json:"snowfall"`
		WeatherCode              []int                `json:"weather_code"`
		CloudCover               []float64            `json:"cloud_cover"`
		WindSpeed                []float64            `json:"wind_speed_10m"`
		PressureMSL              []vartype.VarFloat64 `json:"pressure_msl"`
	} `json:"hourly"`
	Daily struct {
		Time                        []string  `json:"time"`
		WeatherCode                 []int     `json:"weather_code"`
		TemperatureMax              []float64 `json:"temperature_2m_max"`
		TemperatureMin              []float64 `json:"temperature_2m_min"`
		PrecipitationSum            []float64 `json:"precipitation_sum"`
		PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
		WindSpeedMax                []float64 `json:"wind_speed_10m_max"`
		UVIndexMax                  []float64 `json:"uv_index_max"`
		Sunrise                     []string  `json:"sunrise"`
		Sunset                      []string  `json:"sunset"`
	} `json:"daily"`
}

// New returns a new Open-Meteo provider.
func New(http *http.Client, log *logger.Logger) (*OpenMeteo, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &OpenMeteo{http: http, log: log, now: time.Now}, nil
}

func (o *OpenMeteo) Name() string {
	return Name
}

func (o *OpenMeteo) Describe() weather.Info {
	return weather.Info{
		Name:        Name,
		Timeout:     int(apiTimeout.Seconds()),
		Description: "Open-Meteo weather provider - free, accurate, European weather service",
	}
}

// FetchRaw requests the current conditions, the 15 minute look-ahead, the hourly and the daily
// forecast including the past day. It returns a *Response.
func (o *OpenMeteo) FetchRaw(ctx context.Context, lat, lon float64, _ string) (any, error) {
	res := new(Response)
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%f", lat))
	query.Set("longitude", fmt.Sprintf("%f", lon))
	query.Set("current", strings.Join(currentFields, ","))
	query.Set("minutely_15", strings.Join(minutelyFields, ","))
	query.Set("hourly", strings.Join(hourlyFields, ","))
	query.Set("daily", strings.Join(dailyFields, ","))
	query.Set("temperature_unit", "fahrenheit")
	query.Set("wind_speed_unit", "mph")
	query.Set("precipitation_unit", "inch")
	query.Set("timezone", "auto")
	query.Set("past_days", "1")
	query.Set("forecast_days", "7")

	code, err := o.http.GetWithTimeout(ctx, apiEndpoint, res, query, nil, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve weather data from Open-Meteo API: %w", err)
	}
	if code != 200 || res.Error {
		return nil, fmt.Errorf("Open-Meteo API returned non-positive response code: %d (%s)", code, res.Reason)
	}
	return res, nil
}

// Normalize converts a *Response into weather data. The timezone reported by the API takes
// precedence over tz.
func (o *OpenMeteo) Normalize(raw any, location, tz string) (*weather.Data, error) {
	res, err := weather.RawAs[*Response](raw)
	if err != nil {
		return nil, err
	}
	if res == nil || res.Current.Time == "" {
		return nil, weather.ErrNoData
	}
	if res.Timezone != "" {
		tz = res.Timezone
	}
	if tz == "" {
		tz = weather.DefaultTimezone
	}
	loc := weather.LoadLocation(tz)
	now := o.now().In(loc)

	data := &weather.Data{
		Current:   o.current(res, loc),
		Location:  weather.LocationName(location),
		Provider:  DisplayName,
		Timezone:  tz,
		Timestamp: now.Format(time.RFC3339),
	}

	start := firstIndexFrom(res.Hourly.Time, now.Truncate(time.Hour), loc)
	data.Hourly = o.hourly(res, start, loc)
	trend := calc.CalculatePressureTrend(pressureHistory(res, start))
	data.PressureTrend = &trend

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	data.Daily, data.Sun = o.daily(res, firstIndexFrom(res.Daily.Time, today, loc), loc)

	quarter := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute()-now.Minute()%15, 0, 0, loc)
	data.Minutely = o.minutely(res, firstIndexFrom(res.Minutely15.Time, quarter, loc), loc)

	return data, nil
}

func (o *OpenMeteo) current(res *Response, loc *time.Location) *weather.Current {
	cur := res.Current
	isDay := cur.IsDay.Or(1) == 1
	current := &weather.Current{
		Temperature:       math.Round(cur.Temperature),
		FeelsLike:         math.Round(cur.ApparentTemperature),
		Humidity:          cur.RelativeHumidity,
		WindSpeed:         math.Round(cur.WindSpeed),
		WindDirection:     cur.WindDirection,
		WindGust:          vartype.NewVariable(math.Round(cur.WindGusts)),
		UVIndex:           cur.UVIndex,
		Pressure:          calc.Round(cur.PressureMSL, 1),
		DewPoint:          vartype.NewVariable(math.Round(cur.DewPoint)),
		PrecipitationRate: cur.Precipitation,
		RainRate:          cur.Rain,
		ShowerRate:        cur.Showers,
		SnowRate:          cur.Snowfall,
		PrecipitationProb: 0,
		IsDay:             isDay,
		Icon:              Icon(cur.WeatherCode, isDay),
		Summary:           Description(cur.WeatherCode),
	}
	if ptype := PrecipitationType(cur.Rain, cur.Showers, cur.Snowfall); ptype != "" {
		current.PrecipitationType = vartype.NewVariable(ptype)
	}
	if at, err := time.ParseInLocation(timeLayout, cur.Time, loc); err == nil {
		current.Timestamp = vartype.NewVariable(at.Unix())
	}
	return current
}

func (o *OpenMeteo) hourly(res *Response, start int, loc *time.Location) []weather.Hour {
	hourly := make([]weather.Hour, 0, hourlyLimit)
	if start < 0 {
		return hourly
	}
	h := res.Hourly
	for i := start; i < len(h.Time) && len(hourly) < hourlyLimit; i++ {
		at, err := time.ParseInLocation(timeLayout, h.Time[i], loc)
		if err != nil {
			o.log.Debug("skipping hourly entry with invalid time", logger.Err(err))
			continue
		}
		code := at0(h.WeatherCode, i)
		hour := weather.Hour{
			Temp: math.Round(at0(h.Temperature, i)),
			Icon: Icon(code, true),
			Rain: at0(h.PrecipitationProbability, i).Or(0),
			Time: weather.HourLabel(at),
			Desc: Description(code),
		}
		if pressure := at0(h.PressureMSL, i); pressure.IsSet() {
			hour.Pressure = vartype.NewVariable(calc.Round(pressure.Value(), 1))
		}
		if i < len(h.Precipitation) {
			hour.PrecipitationRate = vartype.NewVariable(h.Precipitation[i])
		}
		hourly = append(hourly, hour)
	}
	return hourly
}

// pressureHistory returns the hourly pressure samples up to and including the current hour,
// most recent first.
func pressureHistory(res *Response, start int) []calc.PressureSample {
	h := res.Hourly
	if start < 0 {
		start = len(h.Time) - 1
	}
	history := make([]calc.PressureSample, 0, start+1)
	for i := min(start, len(h.Time)-1); i >= 0; i-- {
		pressure := at0(h.PressureMSL, i)
		if !pressure.IsSet() {
			continue
		}
		history = append(history, calc.PressureSample{Time: h.Time[i], Pressure: calc.Round(pressure.Value(), 1)})
	}
	return history
}

func (o *OpenMeteo) daily(res *Response, start int, loc *time.Location) ([]weather.Day, map[string]weather.SunTimes) {
	daily := make([]weather.Day, 0, dailyLimit)
	sun := make(map[string]weather.SunTimes)
	if start < 0 {
		return daily, sun
	}
	d := res.Daily
	for i := start; i < len(d.Time) && len(daily) < dailyLimit; i++ {
		date, err := time.ParseInLocation(dateLayout, d.Time[i], loc)
		if err != nil {
			o.log.Debug("skipping daily entry with invalid date", logger.Err(err))
			continue
		}
		daily = append(daily, weather.Day{
			High: math.Round(at0(d.TemperatureMax, i)),
			Low:  math.Round(at0(d.TemperatureMin, i)),
			Icon: Icon(at0(d.WeatherCode, i), true),
			Day:  weather.DayLabel(date),
		})
		sun[d.Time[i]] = o.sunTimes(res, i, date, loc)
	}
	return daily, sun
}

// sunTimes returns the upstream sunrise and sunset for the day at index i and calculates them
// locally if the API did not report them.
func (o *OpenMeteo) sunTimes(res *Response, i int, date time.Time, loc *time.Location) weather.SunTimes {
	d := res.Daily
	if i < len(d.Sunrise) && i < len(d.Sunset) && d.Sunrise[i] != "" && d.Sunset[i] != "" {
		return weather.SunTimes{Sunrise: d.Sunrise[i], Sunset: d.Sunset[i]}
	}
	rise, set := sunrise.SunriseSunset(res.Latitude, res.Longitude, date.Year(), date.Month(), date.Day())
	return weather.SunTimes{
		Sunrise: rise.In(loc).Format(timeLayout),
		Sunset:  set.In(loc).Format(timeLayout),
	}
}

func (o *OpenMeteo) minutely(res *Response, start int, loc *time.Location) []weather.Minute {
	minutely := make([]weather.Minute, 0, minutelyLimit)
	if start < 0 {
		return minutely
	}
	m := res.Minutely15
	for i := start; i < len(m.Time) && len(minutely) < minutelyLimit; i++ {
		at, err := time.ParseInLocation(timeLayout, m.Time[i], loc)
		if err != nil {
			continue
		}
		minutely = append(minutely, weather.Minute{
			Time:          at.Format("15:04"),
			Temp:          math.Round(at0(m.Temperature, i)),
			Precipitation: at0(m.Precipitation, i),
			Rain:          at0(m.Rain, i),
			Snow:          at0(m.Snowfall, i),
			WeatherCode:   at0(m.WeatherCode, i),
		})
	}
	return minutely
}

// firstIndexFrom returns the index of the first local timestamp at or after from, or -1 if there
// is none.
func firstIndexFrom(times []string, from time.Time, loc *time.Location) int {
	for i, value := range times {
		layout := timeLayout
		if len(value) == len(dateLayout) {
			layout = dateLayout
		}
		at, err := time.ParseInLocation(layout, value, loc)
		if err != nil {
			continue
		}
		if !at.Before(from) {
			return i
		}
	}
	return -1
}

// at0 returns values[i] or the zero value if the series is shorter than expected.
func at0[T any](values []T, i int) T {
	var zero T
	if i < 0 || i >= len(values) {
		return zero
	}
	return values[i]
}
