// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package calc

import "math"

const (
	heatIndexTempMin        = 80
	heatIndexTempMax        = 112
	heatIndexHumidityMin    = 40
	heatIndexHumidityLow    = 13
	heatIndexHumidityHigh   = 85
	heatIndexAdjustTempMax  = 87
	heatIndexComfortTemp    = 95
	windChillTempMax        = 50
	windChillSpeedThreshold = 3
)

// HeatIndex returns the NWS heat index (Rothfusz regression) rounded to one decimal. It applies
// only for temperatures of at least 80°F and a relative humidity of at least 40%; outside of that
// range the temperature is returned unchanged.
func HeatIndex(tempF, humidity float64) float64 {
	if tempF < heatIndexTempMin || humidity < heatIndexHumidityMin {
		return tempF
	}

	t, rh := tempF, humidity
	hi := -42.379 +
		2.04901523*t +
		10.14333127*rh -
		0.22475541*t*rh -
		6.83783e-3*t*t -
		5.481717e-2*rh*rh +
		1.22874e-3*t*t*rh +
		8.5282e-4*t*rh*rh -
		1.99e-6*t*t*rh*rh

	switch {
	case rh <= heatIndexHumidityLow && t >= heatIndexTempMin && t <= heatIndexTempMax:
		adjustment := (heatIndexHumidityLow - rh) / 4
		hi -= adjustment * math.Sqrt((17-math.Abs(t-heatIndexComfortTemp))/17)
	case rh > heatIndexHumidityHigh && t >= heatIndexTempMin && t <= heatIndexAdjustTempMax:
		hi += ((rh - heatIndexHumidityHigh) / 10) * ((heatIndexAdjustTempMax - t) / 5)
	}

	return Round(hi, 1)
}

// WindChill returns the NWS wind chill rounded to one decimal. It applies only for temperatures
// of at most 50°F and wind speeds above 3 mph; otherwise the temperature is returned unchanged.
func WindChill(tempF, windMPH float64) float64 {
	if tempF > windChillTempMax || windMPH <= windChillSpeedThreshold {
		return tempF
	}
	v := math.Pow(windMPH, 0.16)
	return Round(35.74+0.6215*tempF-35.75*v+0.4275*tempF*v, 1)
}

// ApparentTemperature selects the heat index regime for temperatures of 80°F and above, the wind
// chill regime for cold and windy conditions and the actual temperature otherwise.
func ApparentTemperature(tempF, humidity, windMPH float64) float64 {
	if tempF >= heatIndexTempMin {
		return HeatIndex(tempF, humidity)
	}
	if tempF <= windChillTempMax && windMPH > windChillSpeedThreshold {
		return WindChill(tempF, windMPH)
	}
	return tempF
}
