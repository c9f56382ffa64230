package chart

import (
	"fmt"
	"time"

	"StockDash/internal/calculator"
	"StockDash/internal/model"
)

func window(ds *model.Dataset, n int) *model.RowWindow {
	if n > ds.Len() {
		n = ds.Len()
	}
	if n < 0 {
		n = 0
	}
	return &model.RowWindow{Start: 0, End: n}
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(model.DateLayout)
	}
	return out
}

// dateSeries plots a column against the Date column, optionally limited to the first rows.
func dateSeries(ds *model.Dataset, column string, rows *model.RowWindow) (model.Series, error) {
	y, err := ds.Column(column)
	if err != nil {
		return model.Series{}, err
	}
	dates := ds.Dates()
	if rows != nil {
		y = y[rows.Start:rows.End]
		dates = dates[rows.Start:rows.End]
	}
	return model.Series{Name: column, Dates: dates, Y: y}, nil
}

func buildLine(g *Generator, ds *model.Dataset) (model.ChartSpec, error) {
	s, err := dateSeries(ds, model.ColClose, nil)
	if err != nil {
		return model.ChartSpec{}, err
	}
	return model.ChartSpec{
		Heading: "Line Chart: Closing Prices Over Time",
		Title:   fmt.Sprintf("%s Closing Prices Over Time", g.Asset),
		X:       model.ColDate,
		Y:       []string{model.ColClose},
		Labels:  map[string]string{model.ColClose: "Closing Price"},
		Series:  []model.Series{s},
	}, nil
}

func buildBar(g *Generator, ds *model.Dataset) (model.ChartSpec, error) {
	rows := window(ds, g.BarRows)
	s, err := dateSeries(ds, model.ColVolume, rows)
	if err != nil {
		return model.ChartSpec{}, err
	}
	return model.ChartSpec{
		Heading: "Bar Chart: Trading Volume",
		Title:   fmt.Sprintf("Trading Volume (First %d Days)", g.BarRows),
		X:       model.ColDate,
		Y:       []string{model.ColVolume},
		Labels:  map[string]string{model.ColVolume: "Volume"},
		Rows:    rows,
		Series:  []model.Series{s},
	}, nil
}

func buildHistogram(g *Generator, ds *model.Dataset) (model.ChartSpec, error) {
	adj, err := ds.Column(model.ColAdjClose)
	if err != nil {
		return model.ChartSpec{}, err
	}
	var buckets []model.Bucket
	if len(adj.Valid()) > 0 {
		if buckets, err = calculator.Histogram(adj, g.Bins); err != nil {
			return model.ChartSpec{}, err
		}
	}
	return model.ChartSpec{
		Heading: "Histogram: Adjusted Closing Prices",
		Title:   "Distribution of Adjusted Closing Prices",
		X:       model.ColAdjClose,
		Bins:    g.Bins,
		Series:  []model.Series{{Name: model.ColAdjClose, Y: adj}},
		Buckets: buckets,
	}, nil
}

func buildBox(_ *Generator, ds *model.Dataset) (model.ChartSpec, error) {
	spec := model.ChartSpec{
		Heading: "Box Plot: Stock Prices",
		Title:   "Box Plot of Stock Prices",
		Y:       append([]string(nil), model.PriceColumns...),
	}
	for _, col := range model.PriceColumns {
		v, err := ds.Column(col)
		if err != nil {
			return model.ChartSpec{}, err
		}
		spec.Series = append(spec.Series, model.Series{Name: col, Y: v})
		if len(v.Valid()) == 0 {
			continue
		}
		box, err := calculator.BoxStats(col, v)
		if err != nil {
			return model.ChartSpec{}, err
		}
		spec.Boxes = append(spec.Boxes, box)
	}
	return spec, nil
}

func buildScatter(_ *Generator, ds *model.Dataset) (model.ChartSpec, error) {
	high, err := ds.Column(model.ColHigh)
	if err != nil {
		return model.ChartSpec{}, err
	}
	low, err := ds.Column(model.ColLow)
	if err != nil {
		return model.ChartSpec{}, err
	}
	return model.ChartSpec{
		Heading: "Scatter Plot: High vs Low Prices",
		Title:   "High vs Low Prices",
		X:       model.ColHigh,
		Y:       []string{model.ColLow},
		Labels: map[string]string{
			model.ColHigh: "High Prices",
			model.ColLow:  "Low Prices",
		},
		Series: []model.Series{{Name: model.ColLow, X: high, Y: low}},
	}, nil
}

func buildPie(g *Generator, ds *model.Dataset) (model.ChartSpec, error) {
	rows := window(ds, g.PieRows)
	vol, err := ds.Column(model.ColVolume)
	if err != nil {
		return model.ChartSpec{}, err
	}
	dates := ds.Dates()[rows.Start:rows.End]
	title := fmt.Sprintf("Volume Proportion (First %d Days)", g.PieRows)
	return model.ChartSpec{
		Heading: "Pie Chart: " + title,
		Title:   title,
		X:       model.ColDate,
		Y:       []string{model.ColVolume},
		Rows:    rows,
		Series: []model.Series{{
			Name:   model.ColVolume,
			Labels: formatDates(dates),
			Y:      vol[rows.Start:rows.End],
		}},
	}, nil
}

func buildHeatmap(_ *Generator, ds *model.Dataset) (model.ChartSpec, error) {
	cols, err := ds.Numeric(model.NumericColumns...)
	if err != nil {
		return model.ChartSpec{}, err
	}
	m, err := calculator.Correlation(model.NumericColumns, cols)
	if err != nil {
		return model.ChartSpec{}, err
	}
	return model.ChartSpec{
		Heading:    "Heatmap: Correlations",
		Title:      "Correlation Heatmap",
		ColorScale: "RdBu",
		Matrix:     m,
	}, nil
}

func buildArea(_ *Generator, ds *model.Dataset) (model.ChartSpec, error) {
	s, err := dateSeries(ds, model.ColAdjClose, nil)
	if err != nil {
		return model.ChartSpec{}, err
	}
	return model.ChartSpec{
		Heading: "Area Chart: Adjusted Closing Prices",
		Title:   "Area Chart of Adjusted Closing Prices",
		X:       model.ColDate,
		Y:       []string{model.ColAdjClose},
		Labels:  map[string]string{model.ColAdjClose: "Adjusted Closing Price"},
		Series:  []model.Series{s},
	}, nil
}

func buildMovingAverage(g *Generator, ds *model.Dataset) (model.ChartSpec, error) {
	maColumn := calculator.MovingAverageColumn(g.Window)
	closes, err := dateSeries(ds, model.ColClose, nil)
	if err != nil {
		return model.ChartSpec{}, err
	}
	ma, err := dateSeries(ds, maColumn, nil)
	if err != nil {
		return model.ChartSpec{}, err
	}
	closes.Name = "Closing Price"
	return model.ChartSpec{
		Heading: fmt.Sprintf("Moving Average (%d Days): Closing Prices", g.Window),
		Title:   fmt.Sprintf("%d-Day Moving Average of Closing Prices", g.Window),
		X:       model.ColDate,
		Y:       []string{model.ColClose, maColumn},
		Labels: map[string]string{
			model.ColDate:  "Date",
			model.ColClose: "Closing Price",
			"value":        "Price",
		},
		Series: []model.Series{closes, ma},
	}, nil
}

func buildPair(_ *Generator, ds *model.Dataset) (model.ChartSpec, error) {
	spec := model.ChartSpec{
		Heading: "Pair Plot: Numeric Columns",
		Title:   "Pair Plot of Numeric Columns",
		Y:       append([]string(nil), model.NumericColumns...),
	}
	for _, col := range model.NumericColumns {
		v, err := ds.Column(col)
		if err != nil {
			return model.ChartSpec{}, err
		}
		spec.Series = append(spec.Series, model.Series{Name: col, Y: v})
	}
	return spec, nil
}
