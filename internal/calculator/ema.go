package calculator

import "ImpulseSystem/internal/model"

// EMA computes the exponential moving average with weight 2/(span+1).
//
// The first span-1 outputs are undefined; the first defined output is the simple mean of
// span consecutive defined inputs, and every later one follows
// EMA[i] = α·x[i] + (1-α)·EMA[i-1]. An undefined input yields an undefined output and
// restarts the seeding, so a series with an undefined prefix (MACD) starts later still.
func EMA(values []model.Value, span int) ([]model.Value, error) {
	if err := checkPositive("span", span); err != nil {
		return nil, err
	}

	alpha := 2.0 / float64(span+1)
	out := make([]model.Value, len(values))
	seed := make([]float64, 0, span)
	var prev float64
	seeded := false

	for i, in := range values {
		x, ok := in.Get()
		if !ok {
			seed = seed[:0]
			seeded = false
			continue
		}
		if !seeded {
			seed = append(seed, x)
			if len(seed) < span {
				continue
			}
			prev = mean(seed)
			seeded = true
			out[i] = model.Defined(prev)
			continue
		}
		prev = alpha*x + (1-alpha)*prev
		out[i] = model.Defined(prev)
	}
	return out, nil
}

// EMASeries computes the EMA of the adjusted closes of series.
func EMASeries(series *model.PriceSeries, span int) (model.Series, error) {
	values, err := EMA(wrap(series.AdjustedCloses()), span)
	if err != nil {
		return nil, err
	}
	return model.NewSeries(series.Times(), values), nil
}
