// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package owmradar implements the radar tile provider backed by OpenWeatherMap.
package owmradar

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/wneessen/weather-aggregator/internal/calc"
	"github.com/wneessen/weather-aggregator/internal/http"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/vartype"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	Name        = "owm-radar"
	DisplayName = "RadarProvider"
	apiEndpoint = "https://api.openweathermap.org/data/2.5/onecall"
	tileBaseURL = "https://maps.openweathermap.org/maps/2.0/radar"
	apiTimeout  = time.Second * 10

	frameInterval   = 10 * time.Minute
	pastFrames      = 12
	forecastFrames  = 6
	defaultZoom     = 8
	intervalMinutes = 10
)

// ZoomLevels are the regional, local and detailed zoom levels tiles are generated for.
var ZoomLevels = []int{6, 8, 10}

// OWMRadar generates an animated radar timeline around the current OpenWeatherMap observation.
type OWMRadar struct {
	apikey string
	log    *logger.Logger
	http   *http.Client
	now    func() time.Time
}

type response struct {
	Current struct {
		Dt   int64              `json:"dt"`
		Temp vartype.VarFloat64 `json:"temp"`
		Rain struct {
			OneHour float64 `json:"1h"`
		} `json:"rain"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"current"`
}

// Raw is the radar timeline generated by FetchRaw.
type Raw struct {
	Timestamps     []int64
	TileLevels     []weather.TileLevel
	CurrentTime    int64
	ZoomLevels     []int
	CenterLat      float64
	CenterLon      float64
	WeatherContext weather.WeatherContext
}

// New returns a new OpenWeatherMap radar provider.
func New(http *http.Client, log *logger.Logger, apikey string) (*OWMRadar, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &OWMRadar{apikey: apikey, http: http, log: log, now: time.Now}, nil
}

func (r *OWMRadar) Name() string {
	return Name
}

func (r *OWMRadar) Describe() weather.Info {
	return weather.Info{
		Name:        Name,
		Timeout:     int(apiTimeout.Seconds()),
		Description: "OpenWeatherMap radar tiles provider for precipitation visualization",
	}
}

// FetchRaw validates the API key with a current conditions request and builds the tile timeline
// around the observation time. It returns a *Raw.
func (r *OWMRadar) FetchRaw(ctx context.Context, lat, lon float64, _ string) (any, error) {
	if r.apikey == "" {
		return nil, fmt.Errorf("OpenWeatherMap API key: %w", weather.ErrNotConfigured)
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("appid", r.apikey)
	query.Set("exclude", "minutely,daily,alerts")
	query.Set("units", "imperial")

	res := new(response)
	code, err := r.http.GetWithTimeout(ctx, apiEndpoint, res, query, nil, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve radar data from OpenWeatherMap API: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("OpenWeatherMap API returned non-positive response code: %d", code)
	}

	current := res.Current.Dt
	if current == 0 {
		current = r.now().Unix()
	}
	raw := &Raw{
		Timestamps:  Timeline(current),
		CurrentTime: current,
		ZoomLevels:  ZoomLevels,
		CenterLat:   lat,
		CenterLon:   lon,
		WeatherContext: weather.WeatherContext{
			Temperature:   res.Current.Temp,
			Precipitation: res.Current.Rain.OneHour,
		},
	}
	if len(res.Current.Weather) > 0 {
		raw.WeatherContext.Description = res.Current.Weather[0].Description
	}
	for _, zoom := range ZoomLevels {
		x, y := calc.TileXY(lat, lon, zoom)
		level := weather.TileLevel{Zoom: zoom, Tiles: make([]weather.Tile, 0, len(raw.Timestamps))}
		for _, ts := range raw.Timestamps {
			level.Tiles = append(level.Tiles, weather.Tile{URL: r.tileURL(zoom, x, y, ts), Timestamp: ts, X: x, Y: y})
		}
		raw.TileLevels = append(raw.TileLevels, level)
	}
	r.log.Debug("generated radar timeline", slog.Int("frames", len(raw.Timestamps)),
		slog.Int("zoom_levels", len(ZoomLevels)))
	return raw, nil
}

func (r *OWMRadar) tileURL(zoom, x, y int, ts int64) string {
	query := url.Values{}
	query.Set("appid", r.apikey)
	query.Set("date", strconv.FormatInt(ts, 10))
	return fmt.Sprintf("%s/%d/%d/%d?%s", tileBaseURL, zoom, x, y, query.Encode())
}

// Normalize derives the animation metadata from the timeline. The current frame is the last frame
// not later than the observation time.
func (r *OWMRadar) Normalize(raw any, location, _ string) (*weather.Data, error) {
	timeline, err := weather.RawAs[*Raw](raw)
	if err != nil {
		return nil, err
	}
	if timeline == nil || len(timeline.Timestamps) == 0 {
		return nil, weather.ErrNoData
	}

	total := len(timeline.Timestamps)
	currentIdx := 0
	for i, ts := range timeline.Timestamps {
		if ts > timeline.CurrentTime {
			break
		}
		currentIdx = i
	}

	var defaultTiles []weather.Tile
	for _, level := range timeline.TileLevels {
		if level.Zoom == defaultZoom {
			defaultTiles = level.Tiles
			break
		}
	}
	if defaultTiles == nil && len(timeline.TileLevels) > 0 {
		defaultTiles = timeline.TileLevels[0].Tiles
	}

	wctx := timeline.WeatherContext
	return &weather.Data{
		Radar: &weather.Radar{
			Available:    true,
			Timestamps:   timeline.Timestamps,
			TileLevels:   timeline.TileLevels,
			DefaultTiles: defaultTiles,
			AnimationMetadata: weather.AnimationMetadata{
				TotalFrames:      total,
				HistoricalFrames: currentIdx,
				CurrentFrame:     currentIdx,
				ForecastFrames:   max(0, total-currentIdx-1),
				IntervalMinutes:  intervalMinutes,
				DurationHours:    float64(total*intervalMinutes) / 60,
			},
			MapBounds: &weather.MapBounds{
				CenterLat:  timeline.CenterLat,
				CenterLon:  timeline.CenterLon,
				ZoomLevels: timeline.ZoomLevels,
			},
		},
		WeatherContext: &wctx,
		Location:       weather.LocationName(location),
		Provider:       DisplayName,
		Timestamp:      r.now().UTC().Format(time.RFC3339),
	}, nil
}

// Timeline returns the frame timestamps for 12 past frames, the current frame and 6 forecast
// frames at 10 minute spacing.
func Timeline(current int64) []int64 {
	step := int64(frameInterval.Seconds())
	timestamps := make([]int64, 0, pastFrames+1+forecastFrames)
	for i := int64(-pastFrames); i <= forecastFrames; i++ {
		timestamps = append(timestamps, current+i*step)
	}
	return timestamps
}
