package scheduler

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"StockDash/internal/chart"
	"StockDash/internal/collector"
	"StockDash/internal/dashboard"
)

func newScheduler(src collector.Source, out io.Writer) *Scheduler {
	col := collector.NewCollector(src, "TSLA")
	return NewScheduler(col, chart.NewGenerator("Tesla"), dashboard.Settings{}, out)
}

func TestRunNow_PrintsDigestOnChange(t *testing.T) {
	src := &collector.MockSource{Price: 250, Days: 40}
	var out bytes.Buffer
	s := newScheduler(src, &out)

	if err := s.RunNow(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "TSLA") {
		t.Fatalf("expected digest line, got %q", out.String())
	}
	if s.Latest() == nil || s.Latest().Dataset.Len() != 40 {
		t.Fatal("expected latest dashboard with 40 rows")
	}

	out.Reset()
	if err := s.RunNow(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output for an unchanged dataset, got %q", out.String())
	}

	src.Days = 41
	if err := s.RunNow(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "41 rows") {
		t.Errorf("expected new digest, got %q", out.String())
	}
}

func TestRunNow_SourceError(t *testing.T) {
	boom := errors.New("disk gone")
	s := newScheduler(&collector.MockSource{Err: boom}, nil)
	if err := s.RunNow(); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
	if s.Latest() != nil {
		t.Error("expected no dashboard after a failed reload")
	}
}

func TestRegister_InvalidSpec(t *testing.T) {
	s := newScheduler(&collector.MockSource{Price: 1, Days: 1}, nil)
	if err := s.Register("not a cron line"); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
	if err := s.Register("0 */5 * * * *"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunNow_ShortDatasetUnchanged(t *testing.T) {
	var out bytes.Buffer
	s := newScheduler(&collector.MockSource{Price: 250, Days: 10}, &out)

	if err := s.RunNow(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "30 day MA -") {
		t.Fatalf("expected undefined moving average in digest, got %q", out.String())
	}

	out.Reset()
	if err := s.RunNow(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output for an unchanged short dataset, got %q", out.String())
	}
}

func TestSameDigest(t *testing.T) {
	base := dashboard.Digest{Symbol: "TSLA", Rows: 10, LastDate: "2023-01-11", LastClose: 251, MovingAverage: math.NaN(), Window: 30}

	if !sameDigest(base, base) {
		t.Error("expected digest with undefined average to equal itself")
	}
	other := base
	other.MovingAverage = 250
	if sameDigest(base, other) {
		t.Error("expected defined and undefined averages to differ")
	}
	other = base
	other.LastClose = math.NaN()
	if sameDigest(base, other) {
		t.Error("expected a missing close to differ from a defined one")
	}
	other = base
	other.Rows = 11
	if sameDigest(base, other) {
		t.Error("expected row count change to be detected")
	}
}
