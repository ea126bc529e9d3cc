package utils

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of the samples, or zero when empty.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

// Percentile returns the percentile (0-100) over a sorted copy of the
// samples. Returns zero if there are no samples.
func Percentile(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	index := int((p / 100.0) * float64(len(sorted)-1))
	if index < 0 {
		index = 0
	}
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

// Round2 rounds to two decimal places, the precision used for rates and USD
// amounts in rendered reports.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
