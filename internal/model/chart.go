package model

import (
	"encoding/json"
	"time"
)

// ChartKind identifies what a chart specification draws.
type ChartKind string

const (
	ChartLine          ChartKind = "line"
	ChartBar           ChartKind = "bar"
	ChartHistogram     ChartKind = "histogram"
	ChartBox           ChartKind = "box"
	ChartScatter       ChartKind = "scatter"
	ChartPie           ChartKind = "pie"
	ChartHeatmap       ChartKind = "heatmap"
	ChartArea          ChartKind = "area"
	ChartMovingAverage ChartKind = "moving_average"
	ChartPair          ChartKind = "pair"
)

// RowWindow restricts a chart to rows [Start, End).
type RowWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Series is one plotted data series. Exactly one of Dates, X or Labels is
// set, depending on the chart kind.
type Series struct {
	Name   string   `json:"name"`
	Dates  Dates    `json:"dates,omitempty"`
	X      Values   `json:"x,omitempty"`
	Labels []string `json:"labels,omitempty"`
	Y      Values   `json:"y"`
}

// Dates is a date axis. It encodes as YYYY-MM-DD strings.
type Dates []time.Time

func (d Dates) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	out := make([]string, len(d))
	for i, t := range d {
		out[i] = t.Format(DateLayout)
	}
	return json.Marshal(out)
}

func (d *Dates) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*d = nil
		return nil
	}
	out := make(Dates, len(raw))
	for i, s := range raw {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return err
		}
		out[i] = t
	}
	*d = out
	return nil
}

// Bucket is one histogram bin. Upper is exclusive except for the last bin.
type Bucket struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Box is the five-number summary of one column plus its whiskers.
type Box struct {
	Name         string  `json:"name"`
	Min          float64 `json:"min"`
	Q1           float64 `json:"q1"`
	Median       float64 `json:"median"`
	Q3           float64 `json:"q3"`
	Max          float64 `json:"max"`
	LowerWhisker float64 `json:"lower_whisker"`
	UpperWhisker float64 `json:"upper_whisker"`
	Outliers     int     `json:"outliers"`
}

// ChartSpec is a rendering-agnostic description of one chart.
type ChartSpec struct {
	Kind       ChartKind         `json:"kind"`
	Heading    string            `json:"heading"`
	Title      string            `json:"title"`
	X          string            `json:"x,omitempty"`
	Y          []string          `json:"y,omitempty"`
	Labels     map[string]string `json:"labels,omitempty"`
	Rows       *RowWindow        `json:"rows,omitempty"`
	Bins       int               `json:"bins,omitempty"`
	ColorScale string            `json:"color_scale,omitempty"`
	Series     []Series          `json:"series,omitempty"`
	Buckets    []Bucket          `json:"buckets,omitempty"`
	Boxes      []Box             `json:"boxes,omitempty"`
	Matrix     *Matrix           `json:"matrix,omitempty"`
}

// Label returns the display label for a field, falling back to the field name.
func (c *ChartSpec) Label(field string) string {
	if l, ok := c.Labels[field]; ok {
		return l
	}
	return field
}
