package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ImpulseSystem/internal/model"
)

// Metrics holds the Prometheus metrics of the recompute loop.
type Metrics struct {
	Registry *prometheus.Registry

	RecomputesTotal   prometheus.Counter
	RecomputeFailures prometheus.Counter
	ComputeDur        prometheus.Histogram
	BarsAnalysed      prometheus.Gauge

	// LatestImpulse is 1 for the impulse of the latest bar and 0 for the others.
	LatestImpulse *prometheus.GaugeVec
	// OscillatorValue holds the latest defined reading, labelled by mode.
	OscillatorValue *prometheus.GaugeVec
}

// NewMetrics creates all metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RecomputesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "impulse_recomputes_total",
			Help: "Total report recomputes",
		}),
		RecomputeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "impulse_recompute_failures_total",
			Help: "Recomputes that ended in an error",
		}),
		ComputeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "impulse_compute_duration_seconds",
			Help:    "Fetch plus indicator compute latency per recompute",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		BarsAnalysed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "impulse_bars_analysed",
			Help: "Number of bars in the latest report",
		}),
		LatestImpulse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "impulse_latest_bar",
			Help: "Impulse of the latest bar (1 for the active label)",
		}, []string{"impulse"}),
		OscillatorValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "impulse_oscillator_value",
			Help: "Latest defined oscillator reading",
		}, []string{"mode"}),
	}

	m.Registry.MustRegister(
		m.RecomputesTotal,
		m.RecomputeFailures,
		m.ComputeDur,
		m.BarsAnalysed,
		m.LatestImpulse,
		m.OscillatorValue,
	)
	return m
}

// ObserveReport records a successful recompute.
func (m *Metrics) ObserveReport(report *model.Report, signal *model.Signal, took time.Duration) {
	m.RecomputesTotal.Inc()
	m.ComputeDur.Observe(took.Seconds())
	m.BarsAnalysed.Set(float64(report.Bars))
	for _, imp := range []model.Impulse{model.Neutral, model.Bullish, model.Bearish} {
		v := 0.0
		if imp == signal.Impulse {
			v = 1
		}
		m.LatestImpulse.WithLabelValues(imp.String()).Set(v)
	}
	if signal.HasReading && report.Oscillator != nil {
		m.OscillatorValue.WithLabelValues(string(report.Oscillator.Mode)).Set(signal.Oscillator)
	}
}

// ObserveFailure records a failed recompute.
func (m *Metrics) ObserveFailure(took time.Duration) {
	m.RecomputesTotal.Inc()
	m.RecomputeFailures.Inc()
	m.ComputeDur.Observe(took.Seconds())
}

// HealthStatus tracks the outcome of the latest recompute.
type HealthStatus struct {
	mu sync.RWMutex

	Symbol      string
	LastRunAt   time.Time
	LastError   string
	LastImpulse string
	Runs        int
	StartedAt   time.Time
}

// NewHealthStatus returns a health status for symbol.
func NewHealthStatus(symbol string) *HealthStatus {
	return &HealthStatus{Symbol: symbol, StartedAt: time.Now()}
}

// Record stores the result of one recompute. signal is ignored when err is set.
func (h *HealthStatus) Record(signal *model.Signal, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Runs++
	h.LastRunAt = time.Now()
	if err != nil {
		h.LastError = err.Error()
		return
	}
	h.LastError = ""
	h.LastImpulse = signal.Impulse.String()
}

// ServeHTTP handles the /healthz endpoint.
func (h *HealthStatus) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	overallStatus := "healthy"
	httpCode := http.StatusOK
	switch {
	case h.LastError != "":
		overallStatus = "degraded"
		httpCode = http.StatusServiceUnavailable
	case h.Runs == 0:
		overallStatus = "starting"
	}

	lastRun := ""
	if !h.LastRunAt.IsZero() {
		lastRun = h.LastRunAt.Format(time.RFC3339)
	}

	status := struct {
		Status      string `json:"status"`
		Symbol      string `json:"symbol"`
		Uptime      string `json:"uptime"`
		Runs        int    `json:"runs"`
		LastRunAt   string `json:"last_run_at"`
		LastImpulse string `json:"last_impulse,omitempty"`
		LastError   string `json:"last_error,omitempty"`
	}{
		Status:      overallStatus,
		Symbol:      h.Symbol,
		Uptime:      time.Since(h.StartedAt).Round(time.Second).String(),
		Runs:        h.Runs,
		LastRunAt:   lastRun,
		LastImpulse: h.LastImpulse,
		LastError:   h.LastError,
	}

	w.Header().Set("Content-Type", "application/json")
	if httpCode != http.StatusOK {
		w.WriteHeader(httpCode)
	}
	json.NewEncoder(w).Encode(status)
}

// Server runs an HTTP server exposing /metrics and /healthz.
type Server struct {
	addr string
	srv  *http.Server
}

// NewServer creates a metrics and health server.
func NewServer(addr string, m *Metrics, health *HealthStatus) *Server {
	return &Server{
		addr: addr,
		srv: &http.Server{
			Addr:              addr,
			Handler:           Handler(m, health),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler routes /metrics and /healthz.
func Handler(m *Metrics, health *HealthStatus) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	mux.Handle("/healthz", health)
	return mux
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		log.Printf("[INFO] metrics server listening on %s", s.addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] metrics server: %v", err)
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
