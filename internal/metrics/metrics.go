package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockdash",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		},
		[]string{"route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stockdash",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	ChartsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockdash",
			Name:      "charts_generated_total",
			Help:      "Chart specifications produced, by kind",
		},
		[]string{"kind"},
	)

	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "stockdash",
			Name:      "dataset_rows",
			Help:      "Rows in the most recently loaded dataset",
		},
	)
)
