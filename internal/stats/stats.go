// Package stats provides the latency aggregations used by benchmark reports.
// Every function is defined as 0 on an empty series and leaves its input
// unmodified.
package stats

import (
	"math"
	"sort"
)

// Summary aggregates one latency series. Values are in the unit of the
// input, fractional milliseconds everywhere in this repo.
type Summary struct {
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	P95    float64 `json:"p95"`
}

// Summarize derives all summary statistics over v.
func Summarize(v []float64) Summary {
	return Summary{
		Mean:   Mean(v),
		Min:    Min(v),
		Max:    Max(v),
		Median: Median(v),
		P95:    P95(v),
	}
}

// Mean returns the arithmetic mean of v.
func Mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// Min returns the smallest value in v.
func Min(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// Max returns the largest value in v.
func Max(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// Median returns the middle value of v, or the mean of the two middle values
// when len(v) is even.
func Median(v []float64) float64 {
	n := len(v)
	if n == 0 {
		return 0
	}
	sorted := sortedCopy(v)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// P95 returns the 95th-percentile value of v: the element at index
// floor(0.95 * (n-1)) of the ascending sort. For small series this is a
// coarse but stable estimate; it never interpolates.
func P95(v []float64) float64 {
	n := len(v)
	if n == 0 {
		return 0
	}
	sorted := sortedCopy(v)
	idx := int(math.Floor(0.95 * float64(n-1)))
	return sorted[idx]
}

func sortedCopy(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	sort.Float64s(out)
	return out
}
