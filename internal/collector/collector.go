package collector

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"StockDash/internal/calculator"
	"StockDash/internal/model"
)

var (
	// ErrUnsortedDates is returned when a date is earlier than the row before it.
	ErrUnsortedDates = errors.New("dates are not in ascending order")
	// ErrDuplicateDate is returned when two rows share a date.
	ErrDuplicateDate = errors.New("duplicate date")
)

// MockSource returns fixed or generated records for development and testing.
type MockSource struct {
	Price   float64
	Days    int
	Start   time.Time
	Records []model.Record
	Err     error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Load() ([]model.Record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Records != nil {
		return m.Records, nil
	}
	start := m.Start
	if start.IsZero() {
		start = time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	}
	return GenerateMockRecords(start, m.Price, m.Days), nil
}

// GenerateMockRecords builds count consecutive days around basePrice.
func GenerateMockRecords(start time.Time, basePrice float64, count int) []model.Record {
	records := make([]model.Record, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		records[i] = model.Record{
			Date:        start.AddDate(0, 0, i),
			Open:        nullDecimal(p * 0.999),
			High:        nullDecimal(p * 1.005),
			Low:         nullDecimal(p * 0.995),
			Close:       nullDecimal(p),
			AdjClose:    nullDecimal(p),
			Volume:      1000000 + int64(i)*1000,
			VolumeValid: true,
		}
	}
	return records
}

func nullDecimal(v float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(v).Round(4), Valid: true}
}

// ValidateDates checks that dates are ascending and unique.
func ValidateDates(records []model.Record) error {
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1].Date, records[i].Date
		switch {
		case cur.Equal(prev):
			return fmt.Errorf("row %d: %s: %w", i+1, cur.Format(model.DateLayout), ErrDuplicateDate)
		case cur.Before(prev):
			return fmt.Errorf("row %d: %s after %s: %w", i+1, cur.Format(model.DateLayout), prev.Format(model.DateLayout), ErrUnsortedDates)
		}
	}
	return nil
}

// Collector loads the dataset and appends the moving average column.
type Collector struct {
	Source      Source
	Symbol      string
	Window      int
	StrictDates bool
}

// NewCollector creates a new Collector with the default moving average window.
func NewCollector(source Source, symbol string) *Collector {
	return &Collector{
		Source:      source,
		Symbol:      symbol,
		Window:      calculator.DefaultWindow,
		StrictDates: true,
	}
}

// Collect loads records from the source and computes derived columns.
func (c *Collector) Collect() (*model.Dataset, error) {
	records, err := c.Source.Load()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.Source.Name(), err)
	}

	if err := ValidateDates(records); err != nil {
		if c.StrictDates {
			return nil, fmt.Errorf("validate dates: %w", err)
		}
		log.Warn().Err(err).Str("source", c.Source.Name()).Msg("date check failed, trusting input order")
	}

	ds := model.NewDataset(c.Symbol, records)

	window := c.Window
	if window <= 0 {
		window = calculator.DefaultWindow
	}
	if err := AddMovingAverage(ds, window); err != nil {
		return nil, err
	}

	log.Info().
		Str("source", c.Source.Name()).
		Int("rows", ds.Len()).
		Int("window", window).
		Msg("dataset loaded")
	return ds, nil
}

// AddMovingAverage computes the rolling mean of Close and stores it on ds.
func AddMovingAverage(ds *model.Dataset, window int) error {
	closes, err := ds.Column(model.ColClose)
	if err != nil {
		return fmt.Errorf("moving average: %w", err)
	}
	ma, err := calculator.RollingMean(closes, window)
	if err != nil {
		return fmt.Errorf("moving average: %w", err)
	}
	return ds.SetDerived(calculator.MovingAverageColumn(window), ma)
}
