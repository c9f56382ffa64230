package calculator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"StockDash/internal/model"
)

// Correlation returns the pairwise Pearson correlation matrix of the columns.
// Each pair uses only rows where both values are defined; a pair with fewer
// than two such rows or with zero variance yields NaN.
func Correlation(names []string, columns []model.Values) (*model.Matrix, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("correlation: %d names for %d columns", len(names), len(columns))
	}
	n := len(columns)
	values := make([]model.Values, n)
	for i := range values {
		values[i] = make(model.Values, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r, err := pearson(columns[i], columns[j])
			if err != nil {
				return nil, fmt.Errorf("correlation %q/%q: %w", names[i], names[j], err)
			}
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &model.Matrix{
		Labels: append([]string(nil), names...),
		Values: values,
	}, nil
}

func pearson(a, b model.Values) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch %d != %d", len(a), len(b))
	}
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	if len(x) < 2 || constant(x) || constant(y) {
		return math.NaN(), nil
	}
	r := stat.Correlation(x, y, nil)
	// Clamp rounding noise so the diagonal and perfect fits stay in [-1, 1].
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, nil
}

func constant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}
