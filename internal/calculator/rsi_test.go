package calculator

import (
	"errors"
	"testing"
)

func TestRSIValues_KnownScenario(t *testing.T) {
	// Δ = [_, 1, 1, -1, -1]; window 2:
	// [2] gain 1, loss 0 → 100; [3] 0.5/0.5 → 50; [4] 0/1 → 0
	got, err := RSIValues([]float64{10, 11, 12, 11, 10}, 2)
	if err != nil {
		t.Fatalf("RSIValues: %v", err)
	}
	assertValues(t, "RSI(2)", got, []*float64{nil, nil, f(100), f(50), f(0)})
}

func TestRSIValues_FlatRunIsUndefined(t *testing.T) {
	for _, window := range []int{1, 2, 3, 5} {
		got, err := RSIValues([]float64{5, 5, 5, 5}, window)
		if err != nil {
			t.Fatalf("window %d: %v", window, err)
		}
		for i, v := range got {
			if v.IsDefined() {
				t.Errorf("window %d index %d: got %v, want undefined", window, i, v)
			}
		}
	}
}

func TestRSIValues_FlatAfterMovesIsUndefined(t *testing.T) {
	// The window at index 5 covers only flat changes even though earlier ones moved.
	got, err := RSIValues([]float64{1, 2, 1.3, 1.3, 1.3, 1.3}, 2)
	if err != nil {
		t.Fatalf("RSIValues: %v", err)
	}
	if got[5].IsDefined() {
		t.Errorf("index 5: got %v, want undefined", got[5])
	}
	if !got[3].IsDefined() {
		t.Errorf("index 3 should be defined")
	}
}

func TestRSIValues_Range(t *testing.T) {
	closes := wave(200)
	for _, window := range []int{1, 2, 7, 14, 50} {
		got, err := RSIValues(closes, window)
		if err != nil {
			t.Fatalf("window %d: %v", window, err)
		}
		for i, v := range got {
			x, ok := v.Get()
			if i < window && ok {
				t.Errorf("window %d index %d: defined before %d changes accumulated", window, i, window)
			}
			if ok && (x < 0 || x > 100) {
				t.Errorf("window %d index %d: %.4f outside [0,100]", window, i, x)
			}
		}
	}
}

func TestRSI_DropsUndefinedBars(t *testing.T) {
	s := seriesFromCloses(10, 11, 12, 11, 10)
	got, err := RSI(s, 2)
	if err != nil {
		t.Fatalf("RSI: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 points, got %d", len(got))
	}
	if !got[0].Time.Equal(s.Bars[2].Time) {
		t.Errorf("first point should carry bar 2's timestamp, got %s", got[0].Time)
	}
	want := []float64{100, 50, 0}
	for i, p := range got {
		v, ok := p.Value.Get()
		if !ok {
			t.Fatalf("point %d undefined", i)
		}
		assertClose(t, "RSI", v, want[i], 1e-9)
	}
}

func TestRSI_WindowLongerThanSeries(t *testing.T) {
	got, err := RSI(seriesFromCloses(1, 2, 3), 3)
	if err != nil {
		t.Fatalf("RSI: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty series, got %d points", len(got))
	}
}

func TestRSI_InvalidWindow(t *testing.T) {
	if _, err := RSI(seriesFromCloses(1, 2, 3), 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}
