package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"ImpulseSystem/internal/collector"
	"ImpulseSystem/internal/metrics"
	"ImpulseSystem/internal/model"
)

type captureSink struct {
	reports []*model.Report
	signals []*model.Signal
	err     error
}

func (c *captureSink) Deliver(report *model.Report, signal *model.Signal) error {
	c.reports = append(c.reports, report)
	c.signals = append(c.signals, signal)
	return c.err
}

func newCollector(f collector.Fetcher) *collector.Collector {
	return collector.NewCollector(f, "MS", "1d", time.Time{}, time.Time{}, collector.Request{
		Params: model.ImpulseParams{ShortEMA: 11, LongEMA: 22, Signal: 9},
		Mode:   model.ModeRSI,
		Window: 14,
	})
}

func TestRunNow(t *testing.T) {
	sink := &captureSink{}
	health := metrics.NewHealthStatus("MS")
	s := NewScheduler(context.Background(), newCollector(&collector.MockFetcher{Price: 100, Count: 80}), sink, metrics.NewMetrics(), health)

	if err := s.RunNow(); err != nil {
		t.Fatalf("RunNow: %v", err)
	}
	if len(sink.reports) != 1 {
		t.Fatalf("expected 1 delivered report, got %d", len(sink.reports))
	}
	if sink.reports[0].Bars != 80 || sink.signals[0] == nil {
		t.Errorf("unexpected delivery: %+v", sink.reports[0])
	}
	if health.Runs != 1 || health.LastError != "" {
		t.Errorf("unexpected health: runs=%d err=%q", health.Runs, health.LastError)
	}
}

func TestRunNow_CollectError(t *testing.T) {
	sink := &captureSink{}
	health := metrics.NewHealthStatus("MS")
	boom := errors.New("boom")
	s := NewScheduler(context.Background(), newCollector(&collector.MockFetcher{Err: boom}), sink, nil, health)

	if err := s.RunNow(); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped collect error, got %v", err)
	}
	if len(sink.reports) != 0 {
		t.Error("nothing should be delivered on failure")
	}
	if health.LastError == "" {
		t.Error("expected failure in health status")
	}
}

func TestRunNow_SinkError(t *testing.T) {
	sink := &captureSink{err: errors.New("closed pipe")}
	s := NewScheduler(context.Background(), newCollector(&collector.MockFetcher{Price: 100, Count: 40}), sink, nil, nil)
	if err := s.RunNow(); err == nil {
		t.Fatal("expected sink error")
	}
}

func TestRegister(t *testing.T) {
	s := NewScheduler(context.Background(), newCollector(&collector.MockFetcher{}), &captureSink{}, nil, nil)
	if err := s.Register("0 */5 * * * *"); err != nil {
		t.Errorf("valid cron expression rejected: %v", err)
	}
	if err := s.Register("every five minutes"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if got := len(s.Cron.Entries()); got != 1 {
		t.Errorf("expected 1 entry, got %d", got)
	}
}
