package calculator

import "ImpulseSystem/internal/model"

// Impulse computes the dual EMA of the adjusted closes, the MACD histogram and the
// impulse of every bar.
//
// A bar is Bullish when both the short EMA and the histogram rose from the previous bar,
// Bearish when both fell, and Neutral otherwise, including flat slopes, the first bar and
// any bar whose inputs are not yet defined.
func Impulse(series *model.PriceSeries, short, long, signal int) (*model.ImpulseResult, error) {
	m, err := MACD(wrap(series.AdjustedCloses()), short, long, signal)
	if err != nil {
		return nil, err
	}

	times := series.Times()
	res := &model.ImpulseResult{
		ShortEMA:   model.NewSeries(times, m.ShortEMA),
		LongEMA:    model.NewSeries(times, m.LongEMA),
		MACD:       model.NewSeries(times, m.MACD),
		MACDSignal: model.NewSeries(times, m.Signal),
		Histogram:  model.NewSeries(times, m.Histogram),
		Bars:       make([]model.ClassifiedBar, len(series.Bars)),
	}

	for i, bar := range series.Bars {
		imp := model.Neutral
		if i > 0 {
			imp = Classify(slope(m.ShortEMA[i-1], m.ShortEMA[i]), slope(m.Histogram[i-1], m.Histogram[i]))
		}
		res.Bars[i] = model.ClassifiedBar{PriceBar: bar, Impulse: imp}
		switch imp {
		case model.Bullish:
			res.Bullish = append(res.Bullish, bar)
		case model.Bearish:
			res.Bearish = append(res.Bearish, bar)
		default:
			res.Neutral = append(res.Neutral, bar)
		}
	}
	return res, nil
}

// Classify maps the EMA slope sign and the histogram slope sign to an impulse.
// An undefined slope classifies as Neutral.
func Classify(emaSlope, histSlope model.Value) model.Impulse {
	e, okE := emaSlope.Get()
	h, okH := histSlope.Get()
	if !okE || !okH {
		return model.Neutral
	}
	switch {
	case e > 0 && h > 0:
		return model.Bullish
	case e < 0 && h < 0:
		return model.Bearish
	default:
		return model.Neutral
	}
}

// slope returns the sign of cur-prev as -1, 0 or 1.
func slope(prev, cur model.Value) model.Value {
	p, okP := prev.Get()
	c, okC := cur.Get()
	if !okP || !okC {
		return model.Undefined
	}
	switch d := c - p; {
	case d > 0:
		return model.Defined(1)
	case d < 0:
		return model.Defined(-1)
	default:
		return model.Defined(0)
	}
}
