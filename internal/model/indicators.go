package model

import (
	"fmt"
	"time"
)

// Impulse is the per-bar trend/momentum classification.
type Impulse int

const (
	Neutral Impulse = iota
	Bullish
	Bearish
)

func (i Impulse) String() string {
	switch i {
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	default:
		return "neutral"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (i Impulse) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Impulse) UnmarshalText(b []byte) error {
	switch string(b) {
	case "bullish":
		*i = Bullish
	case "bearish":
		*i = Bearish
	case "neutral":
		*i = Neutral
	default:
		return fmt.Errorf("unknown impulse %q", string(b))
	}
	return nil
}

// ClassifiedBar is a bar tagged with its impulse.
type ClassifiedBar struct {
	PriceBar
	Impulse Impulse
}

// ImpulseResult holds the EMA/MACD series and the impulse classification of every bar.
type ImpulseResult struct {
	ShortEMA   Series
	LongEMA    Series
	MACD       Series
	MACDSignal Series
	Histogram  Series

	// Bars has one entry per input bar, in input order.
	Bars []ClassifiedBar
	// Disjoint partitions of Bars by impulse; together they cover every bar exactly once.
	Bullish []PriceBar
	Bearish []PriceBar
	Neutral []PriceBar
}

// Latest returns the impulse of the last bar.
func (r *ImpulseResult) Latest() (ClassifiedBar, bool) {
	if len(r.Bars) == 0 {
		return ClassifiedBar{}, false
	}
	return r.Bars[len(r.Bars)-1], true
}

// StochasticResult holds the %K/%D pair, aligned with the input bars.
// The last window bars are always undefined because the extrema window looks forward.
type StochasticResult struct {
	K Series
	D Series
}

// Overbought / oversold levels shared by the RSI and stochastic oscillators.
const (
	OverboughtLevel = 80.0
	OversoldLevel   = 20.0
)

// Zone annotates an oscillator reading.
type Zone string

const (
	ZoneNormal     Zone = "normal"
	ZoneOverbought Zone = "overbought"
	ZoneOversold   Zone = "oversold"
)

// ZoneOf classifies an oscillator value against the 80/20 levels.
func ZoneOf(v float64) Zone {
	switch {
	case v >= OverboughtLevel:
		return ZoneOverbought
	case v <= OversoldLevel:
		return ZoneOversold
	default:
		return ZoneNormal
	}
}

// OscillatorMode selects which oscillator a report carries.
type OscillatorMode string

const (
	ModeRSI        OscillatorMode = "rsi"
	ModeStochastic OscillatorMode = "stochastic"
)

// Valid reports whether m is a known mode.
func (m OscillatorMode) Valid() bool {
	return m == ModeRSI || m == ModeStochastic
}

// OscillatorView is what the presentation side needs for the oscillator panel.
type OscillatorView struct {
	Mode       OscillatorMode
	Window     int
	RSI        Series // only for ModeRSI; undefined bars dropped, not aligned with the input
	K          Series // only for ModeStochastic
	D          Series // only for ModeStochastic
	Overbought float64
	Oversold   float64
}

// Latest returns the most recent defined oscillator reading (RSI, or %K in stochastic mode).
func (v *OscillatorView) Latest() (Point, bool) {
	if v.Mode == ModeStochastic {
		return v.K.Last()
	}
	return v.RSI.Last()
}

// ImpulseParams are the EMA/MACD spans of the impulse view.
type ImpulseParams struct {
	ShortEMA int
	LongEMA  int
	Signal   int
}

// Report is one full recompute for a symbol.
type Report struct {
	Symbol     string
	Interval   string
	Bars       int
	Params     ImpulseParams
	Impulse    *ImpulseResult
	Oscillator *OscillatorView
	ComputedAt time.Time
}
