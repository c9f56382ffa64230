package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column names as they appear in the CSV header.
const (
	ColDate     = "Date"
	ColOpen     = "Open"
	ColHigh     = "High"
	ColLow      = "Low"
	ColClose    = "Close"
	ColAdjClose = "Adj Close"
	ColVolume   = "Volume"
)

// DateLayout is the calendar date format used in the CSV and in outputs.
const DateLayout = "2006-01-02"

// BaseColumns lists the input columns in header order.
var BaseColumns = []string{ColDate, ColOpen, ColHigh, ColLow, ColClose, ColAdjClose, ColVolume}

// NumericColumns lists the numeric input columns in header order.
var NumericColumns = []string{ColOpen, ColHigh, ColLow, ColClose, ColAdjClose, ColVolume}

// PriceColumns are the columns compared side by side in the box plot.
var PriceColumns = []string{ColOpen, ColHigh, ColLow, ColClose}

// Record represents a single trading day.
type Record struct {
	Date        time.Time
	Open        decimal.NullDecimal
	High        decimal.NullDecimal
	Low         decimal.NullDecimal
	Close       decimal.NullDecimal
	AdjClose    decimal.NullDecimal
	Volume      int64
	VolumeValid bool
}

// Price returns the named price field of the record.
func (r Record) Price(column string) (decimal.NullDecimal, bool) {
	switch column {
	case ColOpen:
		return r.Open, true
	case ColHigh:
		return r.High, true
	case ColLow:
		return r.Low, true
	case ColClose:
		return r.Close, true
	case ColAdjClose:
		return r.AdjClose, true
	}
	return decimal.NullDecimal{}, false
}
