package model

import "math"

// Summary statistic row labels, in display order.
const (
	StatCount = "count"
	StatMean  = "mean"
	StatStd   = "std"
	StatMin   = "min"
	StatQ1    = "25%"
	StatQ2    = "50%"
	StatQ3    = "75%"
	StatMax   = "max"
)

// SummaryStats lists the rows of a summary table in order.
var SummaryStats = []string{StatCount, StatMean, StatStd, StatMin, StatQ1, StatQ2, StatQ3, StatMax}

// SummaryRow is one statistic across all described columns.
type SummaryRow struct {
	Stat   string `json:"stat"`
	Values Values `json:"values"`
}

// SummaryTable holds descriptive statistics, one row per statistic.
type SummaryTable struct {
	Columns []string     `json:"columns"`
	Rows    []SummaryRow `json:"rows"`
}

// Get returns the statistic for a column.
func (t *SummaryTable) Get(stat, column string) (float64, bool) {
	ci := -1
	for i, c := range t.Columns {
		if c == column {
			ci = i
			break
		}
	}
	if ci < 0 {
		return math.NaN(), false
	}
	for _, r := range t.Rows {
		if r.Stat == stat {
			return r.Values[ci], true
		}
	}
	return math.NaN(), false
}

// Matrix is a labelled square matrix.
type Matrix struct {
	Labels []string `json:"labels"`
	Values []Values `json:"values"`
}

// At returns the cell at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// Table is a row-oriented table ready for display. Cells hold strings,
// float64, int64 or nil for missing values.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
