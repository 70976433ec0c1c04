// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package rainviewer implements the free radar provider backed by the RainViewer public API.
package rainviewer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/weather-aggregator/internal/http"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	Name        = "rainviewer"
	DisplayName = "FreeRadarProvider"
	apiEndpoint = "https://api.rainviewer.com/public/weather-maps.json"
	tileHost    = "https://tilecache.rainviewer.com"
	apiTimeout  = time.Second * 10

	Attribution = "Radar data © RainViewer.com"
	TileSize    = 256
	frameLimit  = 12
)

// RainViewer serves past radar frames as tile URL templates. It needs no API key.
type RainViewer struct {
	log  *logger.Logger
	http *http.Client
}

// Frame is a single radar frame of the weather maps index.
type Frame struct {
	Time int64  `json:"time"`
	Path string `json:"path"`
}

type response struct {
	Version   string `json:"version"`
	Generated int64  `json:"generated"`
	Host      string `json:"host"`
	Radar     struct {
		Past    []Frame `json:"past"`
		Nowcast []Frame `json:"nowcast"`
	} `json:"radar"`
}

// New returns a new RainViewer provider.
func New(http *http.Client, log *logger.Logger) (*RainViewer, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &RainViewer{http: http, log: log}, nil
}

func (r *RainViewer) Name() string {
	return Name
}

func (r *RainViewer) Describe() weather.Info {
	return weather.Info{
		Name:        Name,
		Timeout:     int(apiTimeout.Seconds()),
		Description: "Free radar provider using RainViewer API for precipitation visualization",
	}
}

// FetchRaw returns the last 12 past frames with a timestamp and a tile path as []Frame.
func (r *RainViewer) FetchRaw(ctx context.Context, _, _ float64, _ string) (any, error) {
	res := new(response)
	code, err := r.http.GetWithTimeout(ctx, apiEndpoint, res, nil, nil, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve radar data from RainViewer API: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("RainViewer API returned non-positive response code: %d", code)
	}

	past := res.Radar.Past
	frames := make([]Frame, 0, frameLimit)
	for _, frame := range past[max(0, len(past)-frameLimit):] {
		if frame.Time == 0 || frame.Path == "" {
			continue
		}
		frames = append(frames, frame)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no valid radar frames: %w", weather.ErrNoData)
	}
	return frames, nil
}

// Normalize converts the frames into a radar animation. Every frame is historical and the last one
// is the current frame.
func (r *RainViewer) Normalize(raw any, location, _ string) (*weather.Data, error) {
	frames, err := weather.RawAs[[]Frame](raw)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, weather.ErrNoData
	}

	radar := &weather.Radar{
		Available:   true,
		Timestamps:  make([]int64, 0, len(frames)),
		Frames:      make([]weather.RadarFrame, 0, len(frames)),
		Attribution: Attribution,
		TileSize:    TileSize,
		AnimationMetadata: weather.AnimationMetadata{
			TotalFrames:      len(frames),
			HistoricalFrames: len(frames),
			CurrentFrame:     len(frames) - 1,
			ForecastFrames:   0,
		},
	}
	for i, frame := range frames {
		radar.Timestamps = append(radar.Timestamps, frame.Time)
		radar.Frames = append(radar.Frames, weather.RadarFrame{
			Timestamp:  frame.Time,
			TileURL:    TileURL(frame.Path),
			FrameIndex: i,
			IsCurrent:  i == len(frames)-1,
		})
	}
	return &weather.Data{
		Radar:    radar,
		Location: weather.LocationName(location),
		Provider: DisplayName,
	}, nil
}

// TileURL returns the tile URL template with {z}, {x} and {y} placeholders for the frame path.
func TileURL(path string) string {
	return fmt.Sprintf("%s%s/%d/{z}/{x}/{y}/2/1_1.png", tileHost, path, TileSize)
}
