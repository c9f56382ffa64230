package collector

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"StockDash/internal/model"
)

const sampleCSV = `Date,Open,High,Low,Close,Adj Close,Volume
2023-01-03,118.470001,118.800003,104.639999,108.099998,108.099998,231402800
2023-01-04,109.110001,114.589996,107.519997,113.639999,113.639999,180389000
2023-01-05,110.510002,111.750000,107.160004,110.339996,110.339996,157986300
`

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	first := records[0]
	if !first.Date.Equal(time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date: %v", first.Date)
	}
	if first.Close.Decimal.String() != "108.099998" {
		t.Errorf("expected exact close 108.099998, got %s", first.Close.Decimal)
	}
	if !first.VolumeValid || first.Volume != 231402800 {
		t.Errorf("unexpected volume: %d (%v)", first.Volume, first.VolumeValid)
	}
}

func TestParseCSV_ExtraColumnsAndBOM(t *testing.T) {
	in := "\xef\xbb\xbfVolume,Date,Ticker,Open,High,Low,Close,Adj Close\n" +
		"100,2023-01-03,TSLA,1,2,0.5,1.5,1.5\n"
	records, err := ParseCSV([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Volume != 100 {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestParseCSV_MissingValues(t *testing.T) {
	in := "Date,Open,High,Low,Close,Adj Close,Volume\n" +
		"2023-01-03,,2,1,null,NaN,\n"
	records, err := ParseCSV([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := records[0]
	if r.Open.Valid || r.Close.Valid || r.AdjClose.Valid || r.VolumeValid {
		t.Errorf("expected missing values to be invalid: %+v", r)
	}
	if !r.High.Valid {
		t.Error("expected High to be valid")
	}
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing column", "Date,Open,High,Low,Close,Volume\n2023-01-03,1,1,1,1,1\n", "Adj Close"},
		{"bad number", "Date,Open,High,Low,Close,Adj Close,Volume\n2023-01-03,abc,1,1,1,1,1\n", "Open"},
		{"bad date", "Date,Open,High,Low,Close,Adj Close,Volume\nyesterday,1,1,1,1,1,1\n", "Date"},
		{"fractional volume", "Date,Open,High,Low,Close,Adj Close,Volume\n2023-01-03,1,1,1,1,1,1.5\n", "Volume"},
	}
	for _, tt := range tests {
		_, err := ParseCSV([]byte(tt.in))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error mentioning %q, got %v", tt.name, tt.want, err)
		}
	}

	_, err := ParseCSV([]byte("Date,Open\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}

func TestParseCSV_IntegralVolumeWithDecimals(t *testing.T) {
	in := "Date,Open,High,Low,Close,Adj Close,Volume\n2023-01-03,1,1,1,1,1,1500.0\n"
	records, err := ParseCSV([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].Volume != 1500 {
		t.Errorf("expected 1500, got %d", records[0].Volume)
	}
}

func TestCSVSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	src := NewCSVSource(path)
	records, err := src.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}

	missing := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"))
	if _, err := missing.Load(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestValidateDates(t *testing.T) {
	d := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	ok := []model.Record{{Date: d}, {Date: d.AddDate(0, 0, 1)}}
	if err := ValidateDates(ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	dup := []model.Record{{Date: d}, {Date: d}}
	if err := ValidateDates(dup); !errors.Is(err, ErrDuplicateDate) {
		t.Errorf("expected ErrDuplicateDate, got %v", err)
	}
	unsorted := []model.Record{{Date: d.AddDate(0, 0, 1)}, {Date: d}}
	if err := ValidateDates(unsorted); !errors.Is(err, ErrUnsortedDates) {
		t.Errorf("expected ErrUnsortedDates, got %v", err)
	}
}

func TestCollect_AddsMovingAverage(t *testing.T) {
	col := NewCollector(&MockSource{Price: 200, Days: 40}, "TSLA")
	ds, err := col.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Len() != 40 {
		t.Fatalf("expected 40 rows, got %d", ds.Len())
	}
	ma, err := ds.Column("30 Day MA")
	if err != nil {
		t.Fatalf("expected moving average column: %v", err)
	}
	if got := ma.UndefinedPrefix(); got != 29 {
		t.Errorf("expected 29 undefined entries, got %d", got)
	}
	if math.IsNaN(ma[39]) {
		t.Error("expected last entry to be defined")
	}
}

func TestCollect_DateChecks(t *testing.T) {
	d := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	records := GenerateMockRecords(d, 100, 3)
	records[2].Date = d

	strict := NewCollector(&MockSource{Records: records}, "TSLA")
	if _, err := strict.Collect(); !errors.Is(err, ErrUnsortedDates) {
		t.Errorf("expected ErrUnsortedDates, got %v", err)
	}

	lenient := NewCollector(&MockSource{Records: records}, "TSLA")
	lenient.StrictDates = false
	if _, err := lenient.Collect(); err != nil {
		t.Errorf("expected lenient collector to trust input, got %v", err)
	}
}

func TestCollect_SourceError(t *testing.T) {
	col := NewCollector(&MockSource{Err: errors.New("boom")}, "TSLA")
	if _, err := col.Collect(); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected source error, got %v", err)
	}
}
