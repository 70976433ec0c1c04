// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

// wmoDayIcons maps WMO weather codes to icon names during daytime.
var wmoDayIcons = map[int]string{
	0:  "clear-day",
	1:  "clear-day",
	2:  "partly-cloudy-day",
	3:  "cloudy",
	45: "fog",
	48: "fog",
	51: "light-rain",
	53: "rain",
	55: "heavy-rain",
	61: "light-rain",
	63: "rain",
	65: "heavy-rain",
	71: "light-snow",
	73: "snow",
	75: "heavy-snow",
	80: "light-rain",
	81: "rain",
	82: "heavy-rain",
	85: "light-snow",
	86: "heavy-snow",
	95: "thunderstorm",
	96: "thunderstorm",
	99: "thunderstorm",
}

// wmoNightOverrides holds the codes whose night icon differs from the day icon.
var wmoNightOverrides = map[int]string{
	0: "clear-night",
	1: "clear-night",
	2: "partly-cloudy-night",
}

// wmoDescriptions maps WMO weather codes to a human readable description.
var wmoDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// Icon returns the icon name for the WMO weather code. Unknown codes map to a clear sky.
func Icon(code int, isDay bool) string {
	if !isDay {
		if icon, ok := wmoNightOverrides[code]; ok {
			return icon
		}
	}
	if icon, ok := wmoDayIcons[code]; ok {
		return icon
	}
	if isDay {
		return "clear-day"
	}
	return "clear-night"
}

// Description returns the description of the WMO weather code.
func Description(code int) string {
	if desc, ok := wmoDescriptions[code]; ok {
		return desc
	}
	return "Unknown"
}

// PrecipitationType classifies the current precipitation. It returns an empty string if there is
// none.
func PrecipitationType(rain, showers, snow float64) string {
	const snowThreshold = 0.01
	if rain+showers+snow <= 0 {
		return ""
	}
	switch {
	case snow > snowThreshold:
		return "snow"
	case showers > rain:
		return "showers"
	case rain > 0:
		return "rain"
	}
	return ""
}
