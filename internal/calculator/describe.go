package calculator

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"StockDash/internal/model"
)

// Quantile returns the p-quantile of sorted data, interpolating linearly
// between the closest ranks at position (n-1)*p.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	pos := float64(n-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Describe computes count, mean, std, min, quartiles and max for each column.
// Undefined entries are excluded from every statistic.
func Describe(names []string, columns []model.Values) (*model.SummaryTable, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("describe: %d names for %d columns", len(names), len(columns))
	}

	rows := make([]model.SummaryRow, len(model.SummaryStats))
	for i, s := range model.SummaryStats {
		rows[i] = model.SummaryRow{Stat: s, Values: make(model.Values, len(columns))}
	}

	for ci, col := range columns {
		data := col.Valid()
		slices.Sort(data)
		stats := describeOne(data)
		for ri := range rows {
			rows[ri].Values[ci] = stats[ri]
		}
	}

	return &model.SummaryTable{
		Columns: append([]string(nil), names...),
		Rows:    rows,
	}, nil
}

// describeOne returns the statistics of sorted data in model.SummaryStats order.
func describeOne(sorted []float64) []float64 {
	nan := math.NaN()
	n := len(sorted)
	if n == 0 {
		return []float64{0, nan, nan, nan, nan, nan, nan, nan}
	}
	std := nan
	if n > 1 {
		std = stat.StdDev(sorted, nil)
	}
	return []float64{
		float64(n),
		stat.Mean(sorted, nil),
		std,
		floats.Min(sorted),
		Quantile(sorted, 0.25),
		Quantile(sorted, 0.50),
		Quantile(sorted, 0.75),
		floats.Max(sorted),
	}
}
