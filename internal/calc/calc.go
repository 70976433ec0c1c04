// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package calc implements the pure derived-value calculators used by the weather providers and
// advisors: apparent temperature, pressure trends, lunar and solar ephemeris, descriptive statistics
// and map tile projection. Temperatures are in °F, wind speeds in mph and pressure in hPa.
package calc

import "math"

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
