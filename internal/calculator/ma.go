// Package calculator implements the indicator transforms: EMA, MACD and the impulse
// classification, RSI and the stochastic oscillator.
//
// Every function is pure. Missing history and degenerate divisions come back as
// model.Undefined values, never as NaN and never as an error; only a non-positive
// span or window is rejected.
package calculator

import (
	"errors"
	"fmt"

	"ImpulseSystem/internal/model"
)

// ErrInvalidParameter is returned for a non-positive span or window.
var ErrInvalidParameter = errors.New("invalid parameter")

func checkPositive(name string, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidParameter, name, n)
	}
	return nil
}

// mean returns the simple average of values, which must be non-empty.
func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// rollingSum sums window consecutive defined values ending at each index.
// Each sum is taken directly over its window so a flat run sums to exactly zero.
func rollingSum(values []model.Value, window int) []model.Value {
	out := make([]model.Value, len(values))
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			v, defined := values[j].Get()
			if !defined {
				ok = false
				break
			}
			sum += v
		}
		if ok {
			out[i] = model.Defined(sum)
		}
	}
	return out
}

func wrap(values []float64) []model.Value {
	out := make([]model.Value, len(values))
	for i, v := range values {
		out[i] = model.Defined(v)
	}
	return out
}
