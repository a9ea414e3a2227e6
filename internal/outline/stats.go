package outline

import (
	"math"
	"sort"
)

// EstimateBodyProfile computes the dominant text style from spans on the
// first cfg.SamplePages pages. Sizes outside the plausible body band are
// skipped so display type and footnote gutter noise don't skew the estimate.
// An empty sample yields the sentinel profile; callers must treat that as
// "no heading candidates" rather than divide by the zero median.
func EstimateBodyProfile(spans []Span, cfg Config) BodyProfile {
	cfg = cfg.withDefaults()

	var sizes []float64
	for _, s := range spans {
		if !s.valid() || s.Page > cfg.SamplePages {
			continue
		}
		if s.FontSize < cfg.MinBodySize || s.FontSize > cfg.MaxBodySize {
			continue
		}
		sizes = append(sizes, s.FontSize)
	}
	if len(sizes) == 0 {
		return BodyProfile{}
	}

	sort.Float64s(sizes)

	return BodyProfile{
		MedianSize: median(sizes),
		StdDev:     stddev(sizes),
		Samples:    len(sizes),
	}
}

// median of an already-sorted slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stddev returns the sample standard deviation, floored at 1.0 when there
// are fewer than two distinct values. Without the floor, a document set in a
// single size would make any deviation look infinitely significant.
func stddev(values []float64) float64 {
	distinct := map[float64]struct{}{}
	var sum float64
	for _, v := range values {
		sum += v
		distinct[v] = struct{}{}
	}
	if len(distinct) < 2 {
		return 1.0
	}

	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}
