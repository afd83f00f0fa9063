package collector

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"ImpulseSystem/internal/calculator"
	"ImpulseSystem/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Count  int
	Series *model.PriceSeries
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, symbol string, start, _ time.Time, interval string) (*model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Series != nil {
		return m.Series, nil
	}
	if start.IsZero() {
		start = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Interval:  interval,
		Bars:      generateMockBars(m.Price, m.Count, start),
		FetchedAt: time.Now(),
	}, nil
}

// generateMockBars produces a deterministic daily sine wave around basePrice.
func generateMockBars(basePrice float64, count int, start time.Time) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + 0.05*math.Sin(float64(i)/6))
		bars[i] = model.PriceBar{
			Time:     start.AddDate(0, 0, i),
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			AdjClose: p,
			Volume:   1000000,
		}
	}
	return bars
}

// Request carries the indicator parameters of one recompute.
type Request struct {
	Params model.ImpulseParams
	Mode   model.OscillatorMode
	Window int
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher  Fetcher
	Symbol   string
	Interval string
	Start    time.Time
	End      time.Time
	Request  Request
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol, interval string, start, end time.Time, req Request) *Collector {
	return &Collector{
		Fetcher:  fetcher,
		Symbol:   symbol,
		Interval: interval,
		Start:    start,
		End:      end,
		Request:  req,
	}
}

// Collect fetches the price series and computes a full report.
func (c *Collector) Collect(ctx context.Context) (*model.Report, error) {
	series, err := c.Fetcher.FetchSeries(ctx, c.Symbol, c.Start, c.End, c.Interval)
	if err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s series: %w", c.Symbol, err)
	}
	if series.Len() == 0 {
		log.Printf("[WARN] %s: no bars between %s and %s", c.Symbol, c.Start.Format("2006-01-02"), c.End.Format("2006-01-02"))
	}
	return Analyze(ctx, series, c.Request)
}

// Analyze computes the impulse view and the oscillator view of series concurrently.
// The computations share nothing; cancelling ctx only discards their results.
func Analyze(ctx context.Context, series *model.PriceSeries, req Request) (*model.Report, error) {
	report := &model.Report{
		Symbol:   series.Symbol,
		Interval: series.Interval,
		Bars:     series.Len(),
		Params:   req.Params,
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.Go(func() error {
		res, err := calculator.Impulse(series, req.Params.ShortEMA, req.Params.LongEMA, req.Params.Signal)
		if err != nil {
			return fmt.Errorf("impulse: %w", err)
		}
		report.Impulse = res
		return nil
	})
	g.Go(func() error {
		view, err := Oscillator(series, req.Mode, req.Window)
		if err != nil {
			return fmt.Errorf("oscillator: %w", err)
		}
		report.Oscillator = view
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.ComputedAt = time.Now()
	return report, nil
}

// Oscillator computes the oscillator selected by mode.
func Oscillator(series *model.PriceSeries, mode model.OscillatorMode, window int) (*model.OscillatorView, error) {
	view := &model.OscillatorView{
		Mode:       mode,
		Window:     window,
		Overbought: model.OverboughtLevel,
		Oversold:   model.OversoldLevel,
	}
	switch mode {
	case model.ModeRSI:
		rsi, err := calculator.RSI(series, window)
		if err != nil {
			return nil, err
		}
		view.RSI = rsi
	case model.ModeStochastic:
		st, err := calculator.Stochastic(series, window)
		if err != nil {
			return nil, err
		}
		view.K = st.K
		view.D = st.D
	default:
		return nil, fmt.Errorf("unknown oscillator mode %q", mode)
	}
	return view, nil
}
