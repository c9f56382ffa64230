package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrUnknownColumn is returned when a column name is not part of the dataset.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNotNumeric is returned when a numeric operation is asked for the Date column.
	ErrNotNumeric = errors.New("column is not numeric")
	// ErrLengthMismatch is returned when a derived column does not match the row count.
	ErrLengthMismatch = errors.New("derived column length mismatch")
)

// Dataset holds the loaded trading days plus derived columns.
type Dataset struct {
	Symbol  string
	Records []Record

	derived      map[string]Values
	derivedOrder []string
}

// NewDataset wraps records loaded from a source.
func NewDataset(symbol string, records []Record) *Dataset {
	return &Dataset{Symbol: symbol, Records: records}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Columns returns base columns followed by derived columns in insertion order.
func (d *Dataset) Columns() []string {
	cols := make([]string, 0, len(BaseColumns)+len(d.derivedOrder))
	cols = append(cols, BaseColumns...)
	return append(cols, d.derivedOrder...)
}

// HasColumn reports whether name is a base or derived column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range BaseColumns {
		if c == name {
			return true
		}
	}
	_, ok := d.derived[name]
	return ok
}

// Dates returns the Date column.
func (d *Dataset) Dates() []time.Time {
	out := make([]time.Time, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Date
	}
	return out
}

// Column returns a numeric column. Missing cells are NaN.
func (d *Dataset) Column(name string) (Values, error) {
	if name == ColDate {
		return nil, fmt.Errorf("%q: %w", name, ErrNotNumeric)
	}
	if v, ok := d.derived[name]; ok {
		out := make(Values, len(v))
		copy(out, v)
		return out, nil
	}
	out := make(Values, len(d.Records))
	if name == ColVolume {
		for i, r := range d.Records {
			if r.VolumeValid {
				out[i] = float64(r.Volume)
			} else {
				out[i] = math.NaN()
			}
		}
		return out, nil
	}
	if _, ok := (Record{}).Price(name); !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownColumn)
	}
	for i, r := range d.Records {
		p, _ := r.Price(name)
		if p.Valid {
			out[i] = p.Decimal.InexactFloat64()
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// Numeric returns several numeric columns, failing on the first unknown one.
func (d *Dataset) Numeric(names ...string) ([]Values, error) {
	out := make([]Values, 0, len(names))
	for _, n := range names {
		v, err := d.Column(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// SetDerived attaches a derived column. Setting the same name again replaces it.
func (d *Dataset) SetDerived(name string, values Values) error {
	if len(values) != len(d.Records) {
		return fmt.Errorf("%q has %d rows, dataset has %d: %w", name, len(values), len(d.Records), ErrLengthMismatch)
	}
	for _, c := range BaseColumns {
		if c == name {
			return fmt.Errorf("%q shadows an input column", name)
		}
	}
	if d.derived == nil {
		d.derived = make(map[string]Values)
	}
	if _, exists := d.derived[name]; !exists {
		d.derivedOrder = append(d.derivedOrder, name)
	}
	d.derived[name] = values
	return nil
}

// Head returns the first n records, clipped to the dataset length.
func (d *Dataset) Head(n int) []Record {
	if n > len(d.Records) {
		n = len(d.Records)
	}
	if n < 0 {
		n = 0
	}
	return d.Records[:n]
}

// Last returns the most recent record.
func (d *Dataset) Last() (Record, bool) {
	if len(d.Records) == 0 {
		return Record{}, false
	}
	return d.Records[len(d.Records)-1], true
}
