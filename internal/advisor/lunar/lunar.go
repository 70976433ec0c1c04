// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package lunar calculates moon phase information. The result depends only on the instant and is
// the same for every location.
package lunar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/weather-aggregator/internal/calc"
	"github.com/wneessen/weather-aggregator/internal/logger"
	"github.com/wneessen/weather-aggregator/internal/weather"
)

const (
	Name        = "lunar"
	DisplayName = "LunarDataProvider"
)

// PhaseIcons maps the phase names to their emoji.
var PhaseIcons = map[string]string{
	calc.PhaseNewMoon:        "🌑",
	calc.PhaseWaxingCrescent: "🌒",
	calc.PhaseFirstQuarter:   "🌓",
	calc.PhaseWaxingGibbous:  "🌔",
	calc.PhaseFullMoon:       "🌕",
	calc.PhaseWaningGibbous:  "🌖",
	calc.PhaseThirdQuarter:   "🌗",
	calc.PhaseWaningCrescent: "🌘",
}

var viewing = map[string]weather.ViewingRecommendation{
	calc.PhaseNewMoon: {
		Visibility:  "Not visible",
		Photography: "Perfect for deep-sky astrophotography",
		BestTime:    "All night (moon not present)",
		Stargazing:  "Excellent - darkest skies",
	},
	calc.PhaseWaxingCrescent: {
		Visibility:  "Visible in western sky after sunset",
		Photography: "Great for lunar crescents and earthshine",
		BestTime:    "Evening twilight",
		Stargazing:  "Good - minimal light pollution",
	},
	calc.PhaseFirstQuarter: {
		Visibility:  "Visible from noon to midnight",
		Photography: "Excellent detail in lunar craters",
		BestTime:    "Evening hours",
		Stargazing:  "Fair - some light pollution",
	},
	calc.PhaseWaxingGibbous: {
		Visibility:  "Visible most of the night",
		Photography: "Good for detailed lunar surface",
		BestTime:    "Evening to late night",
		Stargazing:  "Limited - bright moonlight",
	},
	calc.PhaseFullMoon: {
		Visibility:  "Visible all night",
		Photography: "Beautiful but challenging due to brightness",
		BestTime:    "All night",
		Stargazing:  "Poor - very bright",
	},
	calc.PhaseWaningGibbous: {
		Visibility:  "Rises after sunset, visible until morning",
		Photography: "Good morning photography opportunities",
		BestTime:    "Late night to dawn",
		Stargazing:  "Limited early, better toward dawn",
	},
	calc.PhaseThirdQuarter: {
		Visibility:  "Visible from midnight to noon",
		Photography: "Great early morning shots",
		BestTime:    "Pre-dawn hours",
		Stargazing:  "Good in early evening",
	},
	calc.PhaseWaningCrescent: {
		Visibility:  "Visible in eastern sky before sunrise",
		Photography: "Beautiful crescent photography",
		BestTime:    "Pre-dawn twilight",
		Stargazing:  "Excellent in evening",
	},
}

// Advisor is the calculation-only lunar provider.
type Advisor struct {
	log *logger.Logger
}

// New returns a new lunar advisor.
func New(log *logger.Logger) (*Advisor, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Advisor{log: log}, nil
}

func (a *Advisor) Name() string {
	return Name
}

func (a *Advisor) Describe() weather.Info {
	return weather.Info{
		Name:        Name,
		Description: "Moon phase, illumination and viewing recommendations",
	}
}

// FetchRaw never performs a request.
func (a *Advisor) FetchRaw(context.Context, float64, float64, string) (any, error) {
	return nil, nil
}

// Normalize expects the instant as time.Time. The timezone is reported back and does not change
// the calculation.
func (a *Advisor) Normalize(raw any, location, tz string) (*weather.Data, error) {
	instant, err := weather.RawAs[time.Time](raw)
	if err != nil {
		return nil, err
	}
	if instant.IsZero() {
		return nil, weather.ErrNoData
	}
	if tz == "" {
		tz = "UTC"
	}

	lunar := Calculate(instant)
	a.log.Debug("calculated lunar data", slog.String("phase", lunar.CurrentPhase.Name),
		slog.Float64("illumination", lunar.CurrentPhase.IlluminationPercent))
	return &weather.Data{
		LunarData: &lunar,
		Location:  weather.LocationName(location),
		Provider:  DisplayName,
		Timezone:  tz,
		Timestamp: instant.UTC().Format(time.RFC3339),
	}, nil
}

// Calculate returns the lunar data for the instant.
func Calculate(instant time.Time) weather.LunarData {
	instant = instant.UTC()
	jd := calc.JulianDay(instant)
	age := calc.LunarAge(jd)
	illumination := calc.LunarIllumination(age)
	phase := calc.LunarPhaseName(age)

	nextNew := calc.NextNewMoon(instant)
	nextFull := calc.NextFullMoon(instant)

	return weather.LunarData{
		CurrentPhase: weather.LunarPhase{
			Name:                phase,
			Icon:                PhaseIcons[phase],
			IlluminationPercent: calc.Round(illumination*100, 1),
			LunarAgeDays:        calc.Round(age, 1),
			Description:         Description(phase, illumination),
		},
		NextPhases: weather.NextPhases{
			NewMoon:  phaseEvent(instant, nextNew),
			FullMoon: phaseEvent(instant, nextFull),
		},
		LunarCycle: weather.LunarCycle{
			CurrentCycleProgress: calc.Round(age/calc.SynodicMonth*100, 1),
			SynodicMonthDays:     calc.SynodicMonth,
		},
		AstronomicalData: weather.AstronomicalData{
			JulianDay:           calc.Round(jd, 4),
			LunarDistanceVaries: true,
			BestViewing:         Viewing(phase),
			ReferencePhase:      moonphase.New(instant).PhaseName(),
		},
	}
}

func phaseEvent(from, at time.Time) weather.PhaseEvent {
	days := at.Sub(from).Hours() / 24
	return weather.PhaseEvent{
		Date:          at.Format(time.RFC3339),
		DaysUntil:     calc.Round(days, 1),
		CountdownText: Countdown(days),
	}
}

// Countdown formats the number of days until a phase event.
func Countdown(days float64) string {
	switch {
	case days < 1:
		return fmt.Sprintf("%d hours", int(days*24))
	case days < 2:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", int(days))
	}
}

// Description returns the human readable description of the phase.
func Description(phase string, illumination float64) string {
	percent := int(illumination * 100)
	switch phase {
	case calc.PhaseNewMoon:
		return "The moon is not visible, creating dark skies perfect for stargazing"
	case calc.PhaseWaxingCrescent:
		return fmt.Sprintf("A thin crescent moon is growing brighter (%d%% illuminated)", percent)
	case calc.PhaseFirstQuarter:
		return "Half of the moon is illuminated, rising around noon"
	case calc.PhaseWaxingGibbous:
		return fmt.Sprintf("More than half illuminated and growing brighter (%d%%)", percent)
	case calc.PhaseFullMoon:
		return "The moon is fully illuminated, rising at sunset and setting at sunrise"
	case calc.PhaseWaningGibbous:
		return fmt.Sprintf("More than half illuminated but decreasing (%d%%)", percent)
	case calc.PhaseThirdQuarter:
		return "Half illuminated, rising around midnight"
	case calc.PhaseWaningCrescent:
		return fmt.Sprintf("A thin crescent moon is fading (%d%% illuminated)", percent)
	default:
		return "Moon phase: " + phase
	}
}

// Viewing returns the viewing and photography recommendations for the phase.
func Viewing(phase string) weather.ViewingRecommendation {
	if rec, ok := viewing[phase]; ok {
		return rec
	}
	return weather.ViewingRecommendation{
		Visibility:  "Check astronomical references",
		Photography: "Varies by phase",
		BestTime:    "Depends on moon position",
		Stargazing:  "Varies with illumination",
	}
}
