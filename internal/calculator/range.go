package calculator

import (
	"errors"
	"math"

	"StockDash/internal/model"
)

// DefaultBins is the histogram bin count used by the dashboard.
const DefaultBins = 20

// Range returns the smallest and largest defined value.
func Range(values model.Values) (low, high float64, err error) {
	low = math.Inf(1)
	high = math.Inf(-1)
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		n++
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	if n == 0 {
		return 0, 0, errors.New("no defined values")
	}
	return low, high, nil
}

// Histogram splits [min, max] into equal-width bins and counts defined values.
// The last bin includes max. When all values are equal a single bin holds them.
func Histogram(values model.Values, bins int) ([]model.Bucket, error) {
	if bins <= 0 {
		return nil, errors.New("bins must be positive")
	}
	low, high, err := Range(values)
	if err != nil {
		return nil, err
	}
	if high == low {
		return []model.Bucket{{Lower: low, Upper: high, Count: len(values.Valid())}}, nil
	}

	width := (high - low) / float64(bins)
	buckets := make([]model.Bucket, bins)
	for i := range buckets {
		buckets[i].Lower = low + float64(i)*width
		buckets[i].Upper = low + float64(i+1)*width
	}
	buckets[bins-1].Upper = high

	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		idx := int((v - low) / width)
		if idx >= bins {
			idx = bins - 1
		}
		buckets[idx].Count++
	}
	return buckets, nil
}
