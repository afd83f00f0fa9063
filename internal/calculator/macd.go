package calculator

import (
	"fmt"

	"ImpulseSystem/internal/model"
)

// MACDResult holds the MACD composite, aligned with the input values.
type MACDResult struct {
	ShortEMA  []model.Value
	LongEMA   []model.Value
	MACD      []model.Value
	Signal    []model.Value
	Histogram []model.Value
}

// MACD computes short EMA - long EMA, its signal EMA and the histogram (MACD - signal).
// short >= long is accepted and simply inverts the result.
func MACD(values []model.Value, short, long, signal int) (*MACDResult, error) {
	shortEMA, err := EMA(values, short)
	if err != nil {
		return nil, fmt.Errorf("short ema: %w", err)
	}
	longEMA, err := EMA(values, long)
	if err != nil {
		return nil, fmt.Errorf("long ema: %w", err)
	}
	if err := checkPositive("signal span", signal); err != nil {
		return nil, err
	}

	macd := subtract(shortEMA, longEMA)
	sig, err := EMA(macd, signal)
	if err != nil {
		return nil, fmt.Errorf("signal ema: %w", err)
	}

	return &MACDResult{
		ShortEMA:  shortEMA,
		LongEMA:   longEMA,
		MACD:      macd,
		Signal:    sig,
		Histogram: subtract(macd, sig),
	}, nil
}

// subtract returns a-b, undefined wherever either side is.
func subtract(a, b []model.Value) []model.Value {
	out := make([]model.Value, len(a))
	for i := range a {
		x, okA := a[i].Get()
		y, okB := b[i].Get()
		if okA && okB {
			out[i] = model.Defined(x - y)
		}
	}
	return out
}
