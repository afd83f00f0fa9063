package model

import (
	"fmt"
	"time"
)

// PriceBar represents a single OHLC bar for one period.
type PriceBar struct {
	Time     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64 // dividend/split adjusted close, 0 when the source has none
	Volume   float64
}

// AdjustedClose returns the adjusted close, falling back to Close when no adjustment is available.
func (b PriceBar) AdjustedClose() float64 {
	if b.AdjClose == 0 {
		return b.Close
	}
	return b.AdjClose
}

// PriceSeries holds the bars of one symbol, ordered by time.
// The engine only reads it; every derived series is allocated fresh.
type PriceSeries struct {
	Symbol    string
	Interval  string
	Bars      []PriceBar
	FetchedAt time.Time
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// Closes returns the raw close of every bar.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// AdjustedCloses returns the adjusted close of every bar.
func (s *PriceSeries) AdjustedCloses() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.AdjustedClose()
	}
	return out
}

// Times returns the timestamp of every bar.
func (s *PriceSeries) Times() []time.Time {
	out := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Time
	}
	return out
}

// Validate checks ordering and price sanity and reports the first offending bar.
func (s *PriceSeries) Validate() error {
	for i, b := range s.Bars {
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return fmt.Errorf("bar %d (%s): prices must be positive", i, b.Time.Format(time.RFC3339))
		}
		if b.Low > b.Open || b.Low > b.Close || b.High < b.Open || b.High < b.Close {
			return fmt.Errorf("bar %d (%s): open/close outside [low, high]", i, b.Time.Format(time.RFC3339))
		}
		if i > 0 && !b.Time.After(s.Bars[i-1].Time) {
			return fmt.Errorf("bar %d (%s): timestamps must be strictly increasing", i, b.Time.Format(time.RFC3339))
		}
	}
	return nil
}
