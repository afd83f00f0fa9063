package calculator

import (
	"math"

	"ImpulseSystem/internal/model"
)

// forwardRange returns, for each bar i, the lowest low and highest high of bars i+1 .. i+window.
// Bars without a full window ahead of them are undefined.
func forwardRange(bars []model.PriceBar, window int) (lows, highs []model.Value) {
	n := len(bars)
	lows = make([]model.Value, n)
	highs = make([]model.Value, n)
	for i := 0; i+window < n; i++ {
		low := math.Inf(1)
		high := math.Inf(-1)
		for j := i + 1; j <= i+window; j++ {
			if bars[j].Low < low {
				low = bars[j].Low
			}
			if bars[j].High > high {
				high = bars[j].High
			}
		}
		lows[i] = model.Defined(low)
		highs[i] = model.Defined(high)
	}
	return lows, highs
}

// clampPercent saturates v into [0, 100].
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
