package calculator

import "ImpulseSystem/internal/model"

// RSIValues computes the relative strength index of closes over a rolling window, aligned
// with the input.
//
// Gains and losses are averaged with a plain rolling sum (not Wilder smoothing), so the
// first defined index is window. A window whose gains and losses are both zero is undefined.
func RSIValues(closes []float64, window int) ([]model.Value, error) {
	if err := checkPositive("window", window); err != nil {
		return nil, err
	}

	n := len(closes)
	gains := make([]model.Value, n)
	losses := make([]model.Value, n)
	for i := 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		gains[i] = model.Defined(gain)
		losses[i] = model.Defined(loss)
	}

	up := rollingSum(gains, window)
	down := rollingSum(losses, window)
	out := make([]model.Value, n)
	for i := range out {
		g, okG := up[i].Get()
		l, okL := down[i].Get()
		if !okG || !okL || g+l == 0 {
			continue
		}
		// the 1/window factors cancel
		out[i] = model.Defined(100 * g / (g + l))
	}
	return out, nil
}

// RSI computes the RSI of the raw closes of series.
//
// Bars where the RSI is undefined are dropped, so the result may be shorter than the
// series and is not index-aligned with it; match points by Time.
func RSI(series *model.PriceSeries, window int) (model.Series, error) {
	values, err := RSIValues(series.Closes(), window)
	if err != nil {
		return nil, err
	}
	return model.NewSeries(series.Times(), values).Compact(), nil
}
