// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package calc

import (
	"math"
	"slices"
)

// Extremum is a local peak or valley in an hourly series.
type Extremum struct {
	Hour        int     `json:"hour"`
	Temperature float64 `json:"temperature"`
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the sample standard deviation of values, or 0 for fewer than two values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// SortedAt returns the element at index len*num/den of the sorted values. It is used for the median
// and the quartiles of short hourly series.
func SortedAt(values []float64, num, den int) float64 {
	if len(values) == 0 || den == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sorted[min(len(sorted)*num/den, len(sorted)-1)]
}

// LinearSlope returns the least squares slope of values over their index.
func LinearSlope(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	return (n*sumXY - sumX*sumY) / (n*sumX2 - sumX*sumX)
}

// LocalExtrema returns the strict local peaks and valleys of values.
func LocalExtrema(values []float64) (peaks, valleys []Extremum) {
	peaks, valleys = []Extremum{}, []Extremum{}
	for i := 1; i < len(values)-1; i++ {
		switch {
		case values[i] > values[i-1] && values[i] > values[i+1]:
			peaks = append(peaks, Extremum{Hour: i, Temperature: values[i]})
		case values[i] < values[i-1] && values[i] < values[i+1]:
			valleys = append(valleys, Extremum{Hour: i, Temperature: values[i]})
		}
	}
	return peaks, valleys
}
