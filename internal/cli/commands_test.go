package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeHistory(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Date,Open,High,Low,Close,Adj Close,Volume\n")
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := 100 + 10*math.Sin(float64(i)/5)
		fmt.Fprintf(&b, "%s,%.4f,%.4f,%.4f,%.4f,%.4f,%d\n",
			start.AddDate(0, 0, i).Format("2006-01-02"), c, c+1, c-1, c, c, 1000+i)
	}
	path := filepath.Join(t.TempDir(), "MS.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyze(t *testing.T) {
	out, err := run(t, "analyze", "ms", "--csv", writeHistory(t, 60))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for _, want := range []string{"MS 1d | 60 bars", "RSI(14):", "Impulse:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyze_JSONStochastic(t *testing.T) {
	out, err := run(t, "analyze", "--csv", writeHistory(t, 40), "--mode", "stochastic", "--window", "5", "--json")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var got struct {
		Report struct {
			Bars       int
			Oscillator struct {
				Mode string
				K    []struct {
					Value *float64 `json:"value"`
				}
			}
		} `json:"report"`
		Signal struct {
			Permission  string
			BarTime     time.Time
			ReadingTime time.Time
			WarningMsg  string
		} `json:"signal"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got.Report.Bars != 40 || got.Report.Oscillator.Mode != "stochastic" {
		t.Errorf("unexpected report: %+v", got.Report)
	}
	k := got.Report.Oscillator.K
	if len(k) != 40 {
		t.Fatalf("expected 40 %%K points, got %d", len(k))
	}
	for i := 35; i < 40; i++ {
		if k[i].Value != nil {
			t.Errorf("%%K[%d] should be null inside the trailing window", i)
		}
	}
	if got.Signal.Permission == "" {
		t.Error("expected a permission")
	}
	if lag := got.Signal.BarTime.Sub(got.Signal.ReadingTime); lag < 5*24*time.Hour {
		t.Errorf("%%K reading should trail the latest bar by the window, lag %s", lag)
	}
	if got.Signal.WarningMsg != "" {
		t.Errorf("a trailing reading must not warn, got %q", got.Signal.WarningMsg)
	}
}

func TestAnalyze_Errors(t *testing.T) {
	csv := writeHistory(t, 30)
	tests := []struct {
		name string
		args []string
	}{
		{"bad mode", []string{"analyze", "--csv", csv, "--mode", "macd"}},
		{"negative window", []string{"analyze", "--csv", csv, "--window", "-3"}},
		{"zero window", []string{"analyze", "--csv", csv, "--window", "0"}},
		{"missing csv", []string{"analyze", "--csv", filepath.Join(t.TempDir(), "nope.csv")}},
		{"too many args", []string{"analyze", "A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, Version) {
		t.Errorf("unexpected output %q", out)
	}
}
