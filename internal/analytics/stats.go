package analytics

import (
	"sort"
)

// Median returns the middle value of values, or the mean of the two middle
// values for an even count. An empty slice has median 0. values is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	// Create sorted copy
	sortedValues := make([]float64, len(values))
	copy(sortedValues, values)
	sort.Float64s(sortedValues)

	n := len(sortedValues)
	if n%2 == 0 {
		return (sortedValues[n/2-1] + sortedValues[n/2]) / 2
	}
	return sortedValues[n/2]
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
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

// MinMaxScale maps values onto [0, 100]. When every value is equal the
// result is 100 for a positive common value and 0 otherwise.
func MinMaxScale(values []float64) []float64 {
	n := len(values)
	if n == 0 {
		return []float64{}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	result := make([]float64, n)
	if hi <= lo {
		fill := 0.0
		if hi > 0 {
			fill = 100
		}
		for i := range result {
			result[i] = fill
		}
		return result
	}

	span := hi - lo
	for i, v := range values {
		// Divide before scaling so a sentinel maximum cannot overflow
		score := (v - lo) / span * 100
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		result[i] = score
	}
	return result
}
