// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package calc

import "math"

// TileXY converts a coordinate to slippy map tile indices at the given zoom level using the
// web mercator projection.
func TileXY(lat, lon float64, zoom int) (int, int) {
	n := math.Exp2(float64(zoom))
	x := int((lon + 180) / 360 * n)
	y := int((1 - math.Asinh(math.Tan(radians(lat)))/math.Pi) / 2 * n)
	return x, y
}
