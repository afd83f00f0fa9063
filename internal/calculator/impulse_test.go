package calculator

import (
	"errors"
	"testing"

	"ImpulseSystem/internal/model"
)

func TestMACD_Composite(t *testing.T) {
	in := wrap([]float64{1, 2, 3, 4, 5, 6})
	m, err := MACD(in, 2, 3, 2)
	if err != nil {
		t.Fatalf("MACD: %v", err)
	}
	// short EMA(2): α=2/3, seed 1.5 → 2.5, 3.5, 4.5, 5.5
	// long EMA(3):  α=1/2, seed 2   → 3, 4, 5
	assertValues(t, "short", m.ShortEMA, []*float64{nil, f(1.5), f(2.5), f(3.5), f(4.5), f(5.5)})
	assertValues(t, "long", m.LongEMA, []*float64{nil, nil, f(2), f(3), f(4), f(5)})
	assertValues(t, "macd", m.MACD, []*float64{nil, nil, f(0.5), f(0.5), f(0.5), f(0.5)})
	// signal EMA(2) of MACD is seeded at index 3
	assertValues(t, "signal", m.Signal, []*float64{nil, nil, nil, f(0.5), f(0.5), f(0.5)})
	assertValues(t, "hist", m.Histogram, []*float64{nil, nil, nil, f(0), f(0), f(0)})
}

func TestMACD_InvertedSpansAccepted(t *testing.T) {
	in := wrap(wave(40))
	normal, err := MACD(in, 5, 10, 3)
	if err != nil {
		t.Fatalf("MACD: %v", err)
	}
	inverted, err := MACD(in, 10, 5, 3)
	if err != nil {
		t.Fatalf("inverted MACD should not fail: %v", err)
	}
	for i := range normal.MACD {
		a, okA := normal.MACD[i].Get()
		b, okB := inverted.MACD[i].Get()
		if okA != okB {
			t.Fatalf("index %d: definedness differs", i)
		}
		if okA {
			assertClose(t, "inverted MACD", b, -a, 1e-9)
		}
	}
}

func TestMACD_InvalidSpans(t *testing.T) {
	in := wrap([]float64{1, 2, 3})
	cases := []struct{ short, long, signal int }{
		{0, 3, 2},
		{2, -1, 2},
		{2, 3, 0},
	}
	for _, c := range cases {
		if _, err := MACD(in, c.short, c.long, c.signal); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%+v: expected ErrInvalidParameter, got %v", c, err)
		}
	}
}

func TestClassify(t *testing.T) {
	d := model.Defined
	tests := []struct {
		ema, hist model.Value
		want      model.Impulse
	}{
		{d(1), d(1), model.Bullish},
		{d(-1), d(-1), model.Bearish},
		{d(1), d(-1), model.Neutral},
		{d(-1), d(1), model.Neutral},
		{d(0), d(1), model.Neutral},
		{d(-1), d(0), model.Neutral},
		{model.Undefined, d(1), model.Neutral},
		{d(1), model.Undefined, model.Neutral},
	}
	for _, tt := range tests {
		if got := Classify(tt.ema, tt.hist); got != tt.want {
			t.Errorf("Classify(%v, %v) = %v, want %v", tt.ema, tt.hist, got, tt.want)
		}
	}
}

func TestImpulse_PartitionsCoverEveryBar(t *testing.T) {
	for _, n := range []int{0, 1, 5, 40, 120} {
		s := seriesFromCloses(wave(n)...)
		res, err := Impulse(s, 11, 22, 9)
		if err != nil {
			t.Fatalf("Impulse: %v", err)
		}
		if len(res.Bars) != n {
			t.Fatalf("n=%d: got %d classified bars", n, len(res.Bars))
		}
		if total := len(res.Bullish) + len(res.Bearish) + len(res.Neutral); total != n {
			t.Errorf("n=%d: partitions sum to %d", n, total)
		}
		seen := make(map[int64]int, n)
		for _, group := range [][]model.PriceBar{res.Bullish, res.Bearish, res.Neutral} {
			for _, b := range group {
				seen[b.Time.Unix()]++
			}
		}
		for ts, c := range seen {
			if c != 1 {
				t.Errorf("n=%d: bar %d appears in %d partitions", n, ts, c)
			}
		}
	}
}

func TestImpulse_TrendingSeries(t *testing.T) {
	// Cubic rise then cubic fall, so the histogram keeps moving with the EMA.
	var closes []float64
	p := 100.0
	for i := 0; i < 30; i++ {
		p += 0.01 * float64(i*i)
		closes = append(closes, p)
	}
	for i := 0; i < 30; i++ {
		p -= 0.02 * float64(i*i)
		closes = append(closes, p)
	}
	res, err := Impulse(seriesFromCloses(closes...), 3, 6, 3)
	if err != nil {
		t.Fatalf("Impulse: %v", err)
	}
	if res.Bars[0].Impulse != model.Neutral {
		t.Errorf("first bar must be neutral, got %v", res.Bars[0].Impulse)
	}
	if got := res.Bars[28].Impulse; got != model.Bullish {
		t.Errorf("bar 28 during acceleration up: got %v, want bullish", got)
	}
	if got := res.Bars[58].Impulse; got != model.Bearish {
		t.Errorf("bar 58 during acceleration down: got %v, want bearish", got)
	}
}

func TestImpulse_InsufficientHistoryIsNeutral(t *testing.T) {
	res, err := Impulse(seriesFromCloses(1, 2, 3, 4, 5), 11, 22, 9)
	if err != nil {
		t.Fatalf("Impulse: %v", err)
	}
	if len(res.Neutral) != 5 {
		t.Errorf("expected all 5 bars neutral, got %d", len(res.Neutral))
	}
	if res.Histogram.Defined() != 0 {
		t.Errorf("histogram should be undefined throughout")
	}
}
