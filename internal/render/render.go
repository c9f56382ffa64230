package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"StockDash/internal/model"
)

var (
	// ErrUnsupportedKind is returned for chart kinds with no raster rendering.
	ErrUnsupportedKind = errors.New("chart kind cannot be rendered as an image")
	// ErrNoData is returned when a chart has too few defined points to draw.
	ErrNoData = errors.New("not enough data to render")
)

const dateFormat = "2006-01"

// Supported reports whether kind can be rendered as a PNG.
func Supported(kind model.ChartKind) bool {
	switch kind {
	case model.ChartLine, model.ChartArea, model.ChartMovingAverage,
		model.ChartScatter, model.ChartBar, model.ChartHistogram, model.ChartPie:
		return true
	}
	return false
}

// PNG draws spec into w.
func PNG(spec model.ChartSpec, w io.Writer, width, height int) error {
	switch spec.Kind {
	case model.ChartLine, model.ChartMovingAverage:
		return timeChart(spec, w, width, height, false)
	case model.ChartArea:
		return timeChart(spec, w, width, height, true)
	case model.ChartScatter:
		return scatterChart(spec, w, width, height)
	case model.ChartBar:
		return barChart(spec, w, width, height)
	case model.ChartHistogram:
		return histogramChart(spec, w, width, height)
	case model.ChartPie:
		return pieChart(spec, w, width, height)
	}
	return fmt.Errorf("%s: %w", spec.Kind, ErrUnsupportedKind)
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// definedTimes drops points whose value is undefined.
func definedTimes(dates []time.Time, y model.Values) ([]time.Time, []float64) {
	xs := make([]time.Time, 0, len(y))
	ys := make([]float64, 0, len(y))
	for i, v := range y {
		if i >= len(dates) || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, dates[i])
		ys = append(ys, v)
	}
	return xs, ys
}

func timeChart(spec model.ChartSpec, w io.Writer, width, height int, fill bool) error {
	var series []chart.Series
	for i, s := range spec.Series {
		xs, ys := definedTimes(s.Dates, s.Y)
		if len(xs) < 2 {
			continue
		}
		col := chart.GetDefaultColor(i)
		st := chart.Style{StrokeColor: col, StrokeWidth: 2}
		if fill {
			st.FillColor = col.WithAlpha(64)
		}
		series = append(series, chart.TimeSeries{Name: spec.Label(s.Name), XValues: xs, YValues: ys, Style: st})
	}
	if len(series) == 0 {
		return fmt.Errorf("%s: %w", spec.Kind, ErrNoData)
	}

	yName := spec.Label("value")
	if len(spec.Y) == 1 {
		yName = spec.Label(spec.Y[0])
	}
	ch := chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: background(),
		XAxis:      chart.XAxis{Name: spec.Label(spec.X), ValueFormatter: chart.TimeValueFormatterWithFormat(dateFormat)},
		YAxis:      chart.YAxis{Name: yName},
		Series:     series,
	}
	if len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch.Render(chart.PNG, w)
}

func scatterChart(spec model.ChartSpec, w io.Writer, width, height int) error {
	if len(spec.Series) == 0 {
		return fmt.Errorf("%s: %w", spec.Kind, ErrNoData)
	}
	s := spec.Series[0]
	xs := make([]float64, 0, len(s.Y))
	ys := make([]float64, 0, len(s.Y))
	for i := range s.Y {
		if !s.X.Defined(i) || !s.Y.Defined(i) {
			continue
		}
		xs = append(xs, s.X[i])
		ys = append(ys, s.Y[i])
	}
	if len(xs) < 2 {
		return fmt.Errorf("%s: %w", spec.Kind, ErrNoData)
	}

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: background(),
		XAxis:      chart.XAxis{Name: spec.Label(spec.X), Range: padRange(xs)},
		YAxis:      chart.YAxis{Name: spec.Label(s.Name), Range: padRange(ys)},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    spec.Label(s.Name),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    chart.ColorBlue,
			},
		}},
	}
	return ch.Render(chart.PNG, w)
}

// padRange widens an axis whose values are all equal, which go-chart cannot
// scale. Other axes keep the automatic range.
func padRange(values []float64) chart.Range {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo != hi {
		return nil
	}
	pad := math.Abs(lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func bars(spec model.ChartSpec, values []chart.Value, w io.Writer, width, height int) error {
	if len(values) == 0 {
		return fmt.Errorf("%s: %w", spec.Kind, ErrNoData)
	}
	top := 0.0
	for _, v := range values {
		top = math.Max(top, v.Value)
	}
	if top <= 0 {
		return fmt.Errorf("%s: %w", spec.Kind, ErrNoData)
	}
	spacing := 2
	barWidth := (width-80)/len(values) - spacing
	if barWidth < 1 {
		barWidth = 1
	}
	bc := chart.BarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: background(),
		BarWidth:   barWidth,
		BarSpacing: spacing,
		XAxis:      chart.Style{Hidden: len(values) > 25},
		YAxis: chart.YAxis{
			Name:  spec.Label(firstY(spec)),
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.05},
		},
		Bars: values,
	}
	return bc.Render(chart.PNG, w)
}

func firstY(spec model.ChartSpec) string {
	if len(spec.Y) > 0 {
		return spec.Y[0]
	}
	return spec.X
}

func barChart(spec model.ChartSpec, w io.Writer, width, height int) error {
	if len(spec.Series) == 0 {
		return fmt.Errorf("%s: %w", spec.Kind, ErrNoData)
	}
	s := spec.Series[0]
	var values []chart.Value
	for i, v := range s.Y {
		if math.IsNaN(v) {
			continue
		}
		label := ""
		if i < len(s.Dates) {
			label = s.Dates[i].Format(model.DateLayout)
		}
		values = append(values, chart.Value{Label: label, Value: v})
	}
	return bars(spec, values, w, width, height)
}

func histogramChart(spec model.ChartSpec, w io.Writer, width, height int) error {
	values := make([]chart.Value, len(spec.Buckets))
	for i, b := range spec.Buckets {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%.0f", b.Lower),
			Value: float64(b.Count),
		}
	}
	return bars(spec, values, w, width, height)
}

func pieChart(spec model.ChartSpec, w io.Writer, width, height int) error {
	if len(spec.Series) == 0 {
		return fmt.Errorf("%s: %w", spec.Kind, ErrNoData)
	}
	s := spec.Series[0]
	var values []chart.Value
	for i, v := range s.Y {
		if math.IsNaN(v) || v <= 0 {
			continue
		}
		label := ""
		if i < len(s.Labels) {
			label = s.Labels[i]
		}
		values = append(values, chart.Value{Label: label, Value: v})
	}
	if len(values) == 0 {
		return fmt.Errorf("%s: %w", spec.Kind, ErrNoData)
	}
	pc := chart.PieChart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: background(),
		Values:     values,
		SliceStyle: chart.Style{StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
	}
	return pc.Render(chart.PNG, w)
}
