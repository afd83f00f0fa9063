package calculator

import "ImpulseSystem/internal/model"

// smoothing is the %D period.
const smoothing = 3

// Stochastic computes %K and %D over a forward-looking window.
//
// For bar i the extrema come from bars i+1 .. i+window, so the last window bars form a
// trailing undefined gap. %D smooths the numerator (close - low) and the denominator
// (high - low) separately over the last 3 bars; it is not an average of %K. Zero ranges
// are undefined, %D is never defined where %K is not, and both are saturated into [0, 100]
// since bar i's own close lies outside its window. A saturated bar reads 0 or 100 and no
// longer equals the raw ratio, which can be far outside the range (a raw 5000 reads 100).
func Stochastic(series *model.PriceSeries, window int) (*model.StochasticResult, error) {
	if err := checkPositive("window", window); err != nil {
		return nil, err
	}

	bars := series.Bars
	n := len(bars)
	lows, highs := forwardRange(bars, window)

	num := make([]model.Value, n)
	den := make([]model.Value, n)
	k := make([]model.Value, n)
	for i, bar := range bars {
		l, okL := lows[i].Get()
		h, okH := highs[i].Get()
		if !okL || !okH {
			continue
		}
		num[i] = model.Defined(bar.Close - l)
		den[i] = model.Defined(h - l)
		if h-l == 0 {
			continue
		}
		k[i] = model.Defined(clampPercent(100 * (bar.Close - l) / (h - l)))
	}

	numSum := rollingSum(num, smoothing)
	denSum := rollingSum(den, smoothing)
	d := make([]model.Value, n)
	for i := range d {
		if !k[i].IsDefined() {
			continue
		}
		a, okA := numSum[i].Get()
		b, okB := denSum[i].Get()
		if !okA || !okB || b == 0 {
			continue
		}
		d[i] = model.Defined(clampPercent(100 * a / b))
	}

	times := series.Times()
	return &model.StochasticResult{
		K: model.NewSeries(times, k),
		D: model.NewSeries(times, d),
	}, nil
}
