package chart

import (
	"errors"
	"fmt"

	"StockDash/internal/calculator"
	"StockDash/internal/model"
)

// ErrUnknownKind is returned for a chart kind with no builder.
var ErrUnknownKind = errors.New("unknown chart kind")

// DefaultKinds is the fixed order in which the dashboard shows its charts.
var DefaultKinds = []model.ChartKind{
	model.ChartLine,
	model.ChartBar,
	model.ChartHistogram,
	model.ChartBox,
	model.ChartScatter,
	model.ChartPie,
	model.ChartHeatmap,
	model.ChartArea,
	model.ChartMovingAverage,
}

type builder func(g *Generator, ds *model.Dataset) (model.ChartSpec, error)

var builders = map[model.ChartKind]builder{
	model.ChartLine:          buildLine,
	model.ChartBar:           buildBar,
	model.ChartHistogram:     buildHistogram,
	model.ChartBox:           buildBox,
	model.ChartScatter:       buildScatter,
	model.ChartPie:           buildPie,
	model.ChartHeatmap:       buildHeatmap,
	model.ChartArea:          buildArea,
	model.ChartMovingAverage: buildMovingAverage,
	model.ChartPair:          buildPair,
}

// ParseKind maps a kind name to a known chart kind.
func ParseKind(s string) (model.ChartKind, error) {
	k := model.ChartKind(s)
	if _, ok := builders[k]; !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownKind)
	}
	return k, nil
}

// Kinds returns every buildable kind, default ones first.
func Kinds() []model.ChartKind {
	return append(append([]model.ChartKind(nil), DefaultKinds...), model.ChartPair)
}

// Generator produces chart specifications from a dataset.
type Generator struct {
	Asset   string
	Window  int
	Bins    int
	BarRows int
	PieRows int
}

// NewGenerator creates a generator with the dashboard defaults.
func NewGenerator(asset string) *Generator {
	return &Generator{
		Asset:   asset,
		Window:  calculator.DefaultWindow,
		Bins:    calculator.DefaultBins,
		BarRows: 50,
		PieRows: 10,
	}
}

// Build produces the specification of a single chart.
func (g *Generator) Build(ds *model.Dataset, kind model.ChartKind) (model.ChartSpec, error) {
	b, ok := builders[kind]
	if !ok {
		return model.ChartSpec{}, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	spec, err := b(g, ds)
	if err != nil {
		return model.ChartSpec{}, fmt.Errorf("%s chart: %w", kind, err)
	}
	spec.Kind = kind
	return spec, nil
}

// Generate builds every default chart in order, stopping at the first failure.
func (g *Generator) Generate(ds *model.Dataset) ([]model.ChartSpec, error) {
	specs := make([]model.ChartSpec, 0, len(DefaultKinds))
	for _, kind := range DefaultKinds {
		spec, err := g.Build(ds, kind)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
