package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"ImpulseSystem/internal/collector"
	"ImpulseSystem/internal/metrics"
	"ImpulseSystem/internal/notifier"
	"ImpulseSystem/internal/strategy"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the recompute cron task.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Sink      notifier.Sink
	Metrics   *metrics.Metrics
	Health    *metrics.HealthStatus
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. Metrics and health may be nil.
func NewScheduler(ctx context.Context, col *collector.Collector, sink notifier.Sink, m *metrics.Metrics, health *metrics.HealthStatus) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Sink:      sink,
		Metrics:   m,
		Health:    health,
		Ctx:       ctx,
	}
}

// Register schedules the recompute task on a six-field cron expression.
func (s *Scheduler) Register(recomputeCron string) error {
	if _, err := s.Cron.AddFunc(recomputeCron, s.recomputeTask); err != nil {
		return fmt.Errorf("register recompute task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running recompute to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the recompute task immediately.
func (s *Scheduler) RunNow() error {
	return s.recompute()
}

func (s *Scheduler) recomputeTask() {
	if err := s.recompute(); err != nil {
		log.Printf("[ERROR] recompute: %v", err)
	}
}

func (s *Scheduler) recompute() error {
	log.Printf("[INFO] recomputing %s", s.Collector.Symbol)
	start := time.Now()

	report, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		if s.Metrics != nil {
			s.Metrics.ObserveFailure(time.Since(start))
		}
		if s.Health != nil {
			s.Health.Record(nil, err)
		}
		return fmt.Errorf("collect %s: %w", s.Collector.Symbol, err)
	}

	signal := strategy.Evaluate(report)
	if s.Metrics != nil {
		s.Metrics.ObserveReport(report, signal, time.Since(start))
	}
	if s.Health != nil {
		s.Health.Record(signal, nil)
	}
	log.Printf("[INFO] %s: %d bars, latest impulse %s (%s)", report.Symbol, report.Bars, signal.Impulse, signal.Permission)

	if err := s.Sink.Deliver(report, signal); err != nil {
		return fmt.Errorf("deliver report: %w", err)
	}
	return nil
}
