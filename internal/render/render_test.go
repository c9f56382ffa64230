package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"StockDash/internal/chart"
	"StockDash/internal/collector"
	"StockDash/internal/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func specs(t *testing.T) map[model.ChartKind]model.ChartSpec {
	t.Helper()
	ds, err := collector.NewCollector(&collector.MockSource{Price: 250, Days: 90}, "TSLA").Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	gen := chart.NewGenerator("Tesla")
	out := make(map[model.ChartKind]model.ChartSpec)
	for _, k := range chart.Kinds() {
		s, err := gen.Build(ds, k)
		if err != nil {
			t.Fatalf("build %s: %v", k, err)
		}
		out[k] = s
	}
	return out
}

func TestPNG_SupportedKinds(t *testing.T) {
	all := specs(t)
	for kind, spec := range all {
		if !Supported(kind) {
			continue
		}
		var buf bytes.Buffer
		if err := PNG(spec, &buf, 800, 480); err != nil {
			t.Errorf("%s: unexpected error: %v", kind, err)
			continue
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Errorf("%s: output is not a PNG", kind)
		}
	}
}

func TestPNG_UnsupportedKinds(t *testing.T) {
	all := specs(t)
	for _, kind := range []model.ChartKind{model.ChartBox, model.ChartHeatmap, model.ChartPair} {
		if Supported(kind) {
			t.Errorf("%s should not be supported", kind)
		}
		err := PNG(all[kind], &bytes.Buffer{}, 800, 480)
		if !errors.Is(err, ErrUnsupportedKind) {
			t.Errorf("%s: expected ErrUnsupportedKind, got %v", kind, err)
		}
	}
}

func TestPNG_NoData(t *testing.T) {
	spec := model.ChartSpec{Kind: model.ChartLine, Series: []model.Series{{Name: "Close"}}}
	err := PNG(spec, &bytes.Buffer{}, 800, 480)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func constantRecords(days int, price float64) []model.Record {
	p := decimal.NullDecimal{Decimal: decimal.NewFromFloat(price), Valid: true}
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	records := make([]model.Record, days)
	for i := range records {
		records[i] = model.Record{
			Date:        start.AddDate(0, 0, i),
			Open:        p,
			High:        p,
			Low:         p,
			Close:       p,
			AdjClose:    p,
			Volume:      1000000,
			VolumeValid: true,
		}
	}
	return records
}

func TestPNG_ConstantPrices(t *testing.T) {
	src := &collector.MockSource{Records: constantRecords(40, 100)}
	ds, err := collector.NewCollector(src, "TSLA").Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	gen := chart.NewGenerator("Tesla")
	for _, kind := range chart.DefaultKinds {
		if !Supported(kind) {
			continue
		}
		spec, err := gen.Build(ds, kind)
		if err != nil {
			t.Fatalf("build %s: %v", kind, err)
		}
		var buf bytes.Buffer
		if err := PNG(spec, &buf, 800, 480); err != nil {
			t.Errorf("%s: unexpected error: %v", kind, err)
			continue
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Errorf("%s: output is not a PNG", kind)
		}
	}
}

func TestPadRange(t *testing.T) {
	if r := padRange([]float64{1, 2, 3}); r != nil {
		t.Errorf("expected automatic range for varying values, got %v", r)
	}
	r := padRange([]float64{100, 100})
	if r == nil || r.GetMin() >= 100 || r.GetMax() <= 100 {
		t.Errorf("expected range around 100, got %v", r)
	}
	r = padRange([]float64{0, 0})
	if r == nil || r.GetMin() != -1 || r.GetMax() != 1 {
		t.Errorf("expected [-1, 1] around zero, got %v", r)
	}
}
