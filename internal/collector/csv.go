package collector

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"StockDash/internal/model"
)

// ErrMissingColumn is returned when the CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

var dateLayouts = []string{
	model.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

// csvRow mirrors one line of the input file.
type csvRow struct {
	Date     string `csv:"Date"`
	Open     string `csv:"Open"`
	High     string `csv:"High"`
	Low      string `csv:"Low"`
	Close    string `csv:"Close"`
	AdjClose string `csv:"Adj Close"`
	Volume   string `csv:"Volume"`
}

// CSVSource reads records from a CSV file with a header row.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a source for the file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string { return "csv:" + s.Path }

// Load reads and parses the whole file.
func (s *CSVSource) Load() ([]model.Record, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return ParseCSV(data)
}

// ParseCSV decodes CSV bytes into records. Columns beyond the required set
// are ignored.
func ParseCSV(data []byte) ([]model.Record, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var rows []*csvRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	records := make([]model.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			// +2: one for the header, one for 1-based line numbers.
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, c := range model.BaseColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

func (r *csvRow) toRecord() (model.Record, error) {
	var rec model.Record
	var err error

	if rec.Date, err = parseDate(r.Date); err != nil {
		return rec, fmt.Errorf("%s: %w", model.ColDate, err)
	}
	prices := []struct {
		column string
		raw    string
		dst    *decimal.NullDecimal
	}{
		{model.ColOpen, r.Open, &rec.Open},
		{model.ColHigh, r.High, &rec.High},
		{model.ColLow, r.Low, &rec.Low},
		{model.ColClose, r.Close, &rec.Close},
		{model.ColAdjClose, r.AdjClose, &rec.AdjClose},
	}
	for _, p := range prices {
		if *p.dst, err = parsePrice(p.raw); err != nil {
			return rec, fmt.Errorf("%s: %w", p.column, err)
		}
	}
	if rec.Volume, rec.VolumeValid, err = parseVolume(r.Volume); err != nil {
		return rec, fmt.Errorf("%s: %w", model.ColVolume, err)
	}
	return rec, nil
}

func isMissing(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "null", "nan", "na", "n/a":
		return true
	}
	return false
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

func parsePrice(raw string) (decimal.NullDecimal, error) {
	if isMissing(raw) {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid number %q", raw)
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

func parseVolume(raw string) (int64, bool, error) {
	if isMissing(raw) {
		return 0, false, nil
	}
	raw = strings.TrimSpace(raw)
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, true, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsInteger() {
		return 0, false, fmt.Errorf("invalid count %q", raw)
	}
	return d.IntPart(), true, nil
}
