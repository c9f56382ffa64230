package collector

import "StockDash/internal/model"

// Source defines the interface for loading daily price records.
type Source interface {
	Load() ([]model.Record, error)
	Name() string
}
