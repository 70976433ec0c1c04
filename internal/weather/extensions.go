// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import "github.com/wneessen/weather-aggregator/internal/vartype"

// AirQuality is the overall air quality reading, determined by the worst pollutant.
type AirQuality struct {
	USAQI                int    `json:"us_aqi"`
	Category             string `json:"category"`
	HealthRecommendation string `json:"health_recommendation"`
	Color                string `json:"color"`
	PrimaryPollutant     string `json:"primary_pollutant"`
}

// Pollutants holds the AQI per pollutant. Pollutants without an observation are 0.
type Pollutants struct {
	PM25 int `json:"pm25"`
	PM10 int `json:"pm10"`
	O3   int `json:"o3"`
	NO2  int `json:"no2"`
	SO2  int `json:"so2"`
	CO   int `json:"co"`
}

// Radar describes an animated radar tile overlay.
type Radar struct {
	Available         bool              `json:"available"`
	Timestamps        []int64           `json:"timestamps,omitempty"`
	TileLevels        []TileLevel       `json:"tile_levels,omitempty"`
	DefaultTiles      []Tile            `json:"default_tiles,omitempty"`
	Frames            []RadarFrame      `json:"frames,omitempty"`
	AnimationMetadata AnimationMetadata `json:"animation_metadata"`
	MapBounds         *MapBounds        `json:"map_bounds,omitempty"`
	Attribution       string            `json:"attribution,omitempty"`
	TileSize          int               `json:"tile_size,omitempty"`
}

// TileLevel holds the tiles of all animation frames for one zoom level.
type TileLevel struct {
	Zoom  int    `json:"zoom"`
	Tiles []Tile `json:"tiles"`
}

// Tile is a single radar tile of one animation frame.
type Tile struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// RadarFrame is a frame of a radar animation served from a URL template.
type RadarFrame struct {
	Timestamp  int64  `json:"timestamp"`
	TileURL    string `json:"tile_url"`
	FrameIndex int    `json:"frame_index"`
	IsCurrent  bool   `json:"is_current"`
}

// AnimationMetadata describes the split of a radar animation into past and forecast frames.
type AnimationMetadata struct {
	TotalFrames      int     `json:"total_frames"`
	HistoricalFrames int     `json:"historical_frames"`
	CurrentFrame     int     `json:"current_frame"`
	ForecastFrames   int     `json:"forecast_frames"`
	IntervalMinutes  int     `json:"interval_minutes,omitempty"`
	DurationHours    float64 `json:"duration_hours,omitempty"`
}

// MapBounds is the map center and the available zoom levels of a radar overlay.
type MapBounds struct {
	CenterLat  float64 `json:"center_lat"`
	CenterLon  float64 `json:"center_lon"`
	ZoomLevels []int   `json:"zoom_levels"`
}

// WeatherContext summarizes the conditions at the time of a radar snapshot.
type WeatherContext struct {
	Temperature   vartype.VarFloat64 `json:"temperature"`
	Precipitation float64            `json:"precipitation"`
	Description   string             `json:"description"`
}

// Alerts holds the active government weather alerts for a location.
type Alerts struct {
	ActiveCount int     `json:"active_count"`
	Alerts      []Alert `json:"alerts"`
	HasWarnings bool    `json:"has_warnings"`
}

// Alert is a single weather alert.
type Alert struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Certainty   string `json:"certainty"`
	Urgency     string `json:"urgency"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Sender      string `json:"sender"`
	Areas       string `json:"areas"`
	Instruction string `json:"instruction"`
	Response    string `json:"response"`
	Color       string `json:"color"`
}

// Forecast is a textual period forecast.
type Forecast struct {
	Periods []ForecastPeriod `json:"periods"`
	Source  string           `json:"source"`
}

// ForecastPeriod is one named forecast period such as "Tonight".
type ForecastPeriod struct {
	Name             string           `json:"name"`
	Temperature      vartype.VarInt64 `json:"temperature"`
	TemperatureUnit  string           `json:"temperature_unit"`
	WindSpeed        string           `json:"wind_speed"`
	WindDirection    string           `json:"wind_direction"`
	ShortForecast    string           `json:"short_forecast"`
	DetailedForecast string           `json:"detailed_forecast"`
	IsDaytime        bool             `json:"is_daytime"`
	Icon             string           `json:"icon"`
}
