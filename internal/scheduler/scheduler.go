package scheduler

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"StockDash/internal/chart"
	"StockDash/internal/collector"
	"StockDash/internal/dashboard"
	"StockDash/internal/report"
)

// Scheduler periodically reloads the dataset and prints a digest line.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Generator *chart.Generator
	Settings  dashboard.Settings
	Out       io.Writer

	mu     sync.Mutex
	latest *dashboard.Dashboard
	last   dashboard.Digest
}

// NewScheduler creates a new Scheduler.
func NewScheduler(col *collector.Collector, gen *chart.Generator, settings dashboard.Settings, out io.Writer) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Generator: gen,
		Settings:  settings,
		Out:       out,
	}
}

// Register schedules the reload task.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.reloadTask); err != nil {
		return fmt.Errorf("register reload task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("entries", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running reload to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow reloads immediately.
func (s *Scheduler) RunNow() error {
	ds, err := s.Collector.Collect()
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	dash := dashboard.New(ds, s.Generator, s.Settings)
	dg, err := dash.Digest()
	if err != nil {
		return err
	}

	s.mu.Lock()
	changed := s.latest == nil || !sameDigest(dg, s.last)
	s.latest, s.last = dash, dg
	s.mu.Unlock()

	if !changed {
		log.Debug().Str("symbol", dg.Symbol).Msg("dataset unchanged")
		return nil
	}
	if s.Out != nil {
		fmt.Fprintln(s.Out, report.FormatDigest(dg))
	}
	return nil
}

// Latest returns the most recently loaded dashboard, or nil before the first reload.
func (s *Scheduler) Latest() *dashboard.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// sameDigest compares digests field by field, treating two undefined prices as equal.
func sameDigest(a, b dashboard.Digest) bool {
	return a.Symbol == b.Symbol &&
		a.Rows == b.Rows &&
		a.LastDate == b.LastDate &&
		a.Window == b.Window &&
		sameFloat(a.LastClose, b.LastClose) &&
		sameFloat(a.MovingAverage, b.MovingAverage)
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

func (s *Scheduler) reloadTask() {
	if err := s.RunNow(); err != nil {
		log.Error().Err(err).Msg("scheduled reload failed")
	}
}
