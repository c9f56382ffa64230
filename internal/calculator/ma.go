package calculator

import (
	"errors"
	"math"
	"strconv"

	"StockDash/internal/model"
)

// DefaultWindow is the trailing window of the moving average column.
const DefaultWindow = 30

// MovingAverageColumn names the derived moving average column for a window.
func MovingAverageColumn(window int) string {
	return strconv.Itoa(window) + " Day MA"
}

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// RollingMean returns a series the same length as values where entry i is the
// mean of values[i-window+1..i]. The first window-1 entries, and any entry
// whose window contains an undefined value, are NaN.
func RollingMean(values model.Values, window int) (model.Values, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make(model.Values, len(values))
	missing := 0
	for i, v := range values {
		if math.IsNaN(v) {
			missing++
		}
		if i >= window && math.IsNaN(values[i-window]) {
			missing--
		}
		if i < window-1 || missing > 0 {
			out[i] = math.NaN()
			continue
		}
		sma, err := CalculateSMA(values[i-window+1:i+1], window)
		if err != nil {
			return nil, err
		}
		out[i] = sma
	}
	return out, nil
}
