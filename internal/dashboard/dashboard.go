package dashboard

import (
	"fmt"
	"math"

	"StockDash/internal/calculator"
	"StockDash/internal/chart"
	"StockDash/internal/metrics"
	"StockDash/internal/model"
)

// AdvisoryNoColumns is shown instead of the overview table when nothing is selected.
const AdvisoryNoColumns = "Please select columns to display."

// Settings controls the page text and default selection.
type Settings struct {
	Title          string
	Description    string
	DefaultColumns []string
}

// Overview is the dataset table restricted to the selected columns.
type Overview struct {
	Columns  []string     `json:"columns"`
	Advisory string       `json:"advisory,omitempty"`
	Table    *model.Table `json:"table,omitempty"`
}

// Page is everything the dashboard shows for one interaction, top to bottom.
type Page struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Available   []string            `json:"available_columns"`
	Overview    *Overview           `json:"overview"`
	Summary     *model.SummaryTable `json:"summary"`
	Charts      []model.ChartSpec   `json:"charts"`
}

// Digest is a one-line snapshot of the latest trading day.
type Digest struct {
	Symbol        string
	Rows          int
	LastDate      string
	LastClose     float64
	MovingAverage float64
	Window        int
}

// Dashboard answers page requests from a loaded dataset. The dataset is not
// modified after construction, so calls may run concurrently.
type Dashboard struct {
	Dataset   *model.Dataset
	Generator *chart.Generator
	Settings  Settings
}

// New creates a Dashboard.
func New(ds *model.Dataset, gen *chart.Generator, settings Settings) *Dashboard {
	metrics.DatasetRows.Set(float64(ds.Len()))
	return &Dashboard{Dataset: ds, Generator: gen, Settings: settings}
}

// DefaultColumns returns a copy of the default overview selection.
func (d *Dashboard) DefaultColumns() []string {
	return append([]string(nil), d.Settings.DefaultColumns...)
}

// Overview builds the overview table for the selection, in selection order.
// An empty selection yields only the advisory message.
func (d *Dashboard) Overview(selected []string) (*Overview, error) {
	if len(selected) == 0 {
		return &Overview{Columns: []string{}, Advisory: AdvisoryNoColumns}, nil
	}

	cells := make([][]any, len(selected))
	for ci, name := range selected {
		col, err := d.columnCells(name)
		if err != nil {
			return nil, err
		}
		cells[ci] = col
	}

	rows := make([][]any, d.Dataset.Len())
	for ri := range rows {
		row := make([]any, len(selected))
		for ci := range selected {
			row[ci] = cells[ci][ri]
		}
		rows[ri] = row
	}

	cols := append([]string(nil), selected...)
	return &Overview{
		Columns: cols,
		Table:   &model.Table{Columns: cols, Rows: rows},
	}, nil
}

func (d *Dashboard) columnCells(name string) ([]any, error) {
	out := make([]any, d.Dataset.Len())
	switch name {
	case model.ColDate:
		for i, r := range d.Dataset.Records {
			out[i] = r.Date.Format(model.DateLayout)
		}
		return out, nil
	case model.ColVolume:
		for i, r := range d.Dataset.Records {
			if r.VolumeValid {
				out[i] = r.Volume
			}
		}
		return out, nil
	}

	values, err := d.Dataset.Column(name)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if !math.IsNaN(v) {
			out[i] = v
		}
	}
	return out, nil
}

// Summary describes every numeric input column.
func (d *Dashboard) Summary() (*model.SummaryTable, error) {
	cols, err := d.Dataset.Numeric(model.NumericColumns...)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return calculator.Describe(model.NumericColumns, cols)
}

// Correlation returns the correlation matrix of the numeric input columns.
func (d *Dashboard) Correlation() (*model.Matrix, error) {
	cols, err := d.Dataset.Numeric(model.NumericColumns...)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}
	return calculator.Correlation(model.NumericColumns, cols)
}

// Charts builds the default chart sequence.
func (d *Dashboard) Charts() ([]model.ChartSpec, error) {
	specs, err := d.Generator.Generate(d.Dataset)
	if err != nil {
		return nil, err
	}
	for _, s := range specs {
		metrics.ChartsGenerated.WithLabelValues(string(s.Kind)).Inc()
	}
	return specs, nil
}

// Chart builds one chart by kind.
func (d *Dashboard) Chart(kind model.ChartKind) (model.ChartSpec, error) {
	spec, err := d.Generator.Build(d.Dataset, kind)
	if err != nil {
		return model.ChartSpec{}, err
	}
	metrics.ChartsGenerated.WithLabelValues(string(kind)).Inc()
	return spec, nil
}

// Page runs the whole dashboard for one interaction.
func (d *Dashboard) Page(selected []string) (*Page, error) {
	overview, err := d.Overview(selected)
	if err != nil {
		return nil, err
	}
	summary, err := d.Summary()
	if err != nil {
		return nil, err
	}
	charts, err := d.Charts()
	if err != nil {
		return nil, err
	}
	return &Page{
		Title:       d.Settings.Title,
		Description: d.Settings.Description,
		Available:   d.Dataset.Columns(),
		Overview:    overview,
		Summary:     summary,
		Charts:      charts,
	}, nil
}

// Digest summarises the most recent row.
func (d *Dashboard) Digest() (Digest, error) {
	dg := Digest{
		Symbol:        d.Dataset.Symbol,
		Rows:          d.Dataset.Len(),
		Window:        d.Generator.Window,
		LastClose:     math.NaN(),
		MovingAverage: math.NaN(),
	}
	last, ok := d.Dataset.Last()
	if !ok {
		return dg, nil
	}
	dg.LastDate = last.Date.Format(model.DateLayout)
	if last.Close.Valid {
		dg.LastClose = last.Close.Decimal.InexactFloat64()
	}
	ma, err := d.Dataset.Column(calculator.MovingAverageColumn(d.Generator.Window))
	if err != nil {
		return dg, fmt.Errorf("digest: %w", err)
	}
	dg.MovingAverage = ma[len(ma)-1]
	return dg, nil
}
