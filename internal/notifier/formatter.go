package notifier

import (
	"fmt"
	"io"
	"strings"

	"ImpulseSystem/internal/model"
)

// Sink receives every recomputed report.
type Sink interface {
	Deliver(report *model.Report, signal *model.Signal) error
}

// WriterSink writes plain-text reports to W.
type WriterSink struct {
	W io.Writer
}

func (s *WriterSink) Deliver(report *model.Report, signal *model.Signal) error {
	if _, err := io.WriteString(s.W, FormatReport(report, signal)+"\n"); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// FormatReport formats a report and its signal as a plain-text summary.
func FormatReport(report *model.Report, signal *model.Signal) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Impulse System | %s %s | %d bars\n", report.Symbol, report.Interval, report.Bars))
	if !signal.BarTime.IsZero() {
		b.WriteString(fmt.Sprintf("Latest bar: %s\n", signal.BarTime.Format("2006-01-02 15:04")))
	}
	b.WriteString("\n")

	if imp := report.Impulse; imp != nil {
		p := report.Params
		b.WriteString(fmt.Sprintf("EMA(%d): %s | EMA(%d): %s\n",
			p.ShortEMA, lastValue(imp.ShortEMA), p.LongEMA, lastValue(imp.LongEMA)))
		b.WriteString(fmt.Sprintf("MACD: %s | Signal(%d): %s | Histogram: %s\n",
			lastValue(imp.MACD), p.Signal, lastValue(imp.MACDSignal), lastValue(imp.Histogram)))
		b.WriteString(fmt.Sprintf("Bars: %d bullish / %d bearish / %d neutral\n\n",
			len(imp.Bullish), len(imp.Bearish), len(imp.Neutral)))
	}

	if osc := report.Oscillator; osc != nil {
		switch osc.Mode {
		case model.ModeStochastic:
			b.WriteString(fmt.Sprintf("Stochastic(%d): %%K %s | %%D %s\n", osc.Window, lastValue(osc.K), lastValue(osc.D)))
		default:
			b.WriteString(fmt.Sprintf("RSI(%d): %s\n", osc.Window, lastValue(osc.RSI)))
		}
		if signal.HasReading {
			b.WriteString(fmt.Sprintf("Zone: %s (levels %.0f/%.0f)", signal.Zone, osc.Overbought, osc.Oversold))
			if !signal.Current() {
				b.WriteString(fmt.Sprintf(", reading of %s", signal.ReadingTime.Format("2006-01-02 15:04")))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Impulse: %s -> %s\n", signal.Impulse, signal.Permission))
	if signal.Commentary != "" {
		b.WriteString(fmt.Sprintf("  %s\n", signal.Commentary))
	}
	if signal.WarningMsg != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", signal.WarningMsg))
	}

	return b.String()
}

// lastValue renders the most recent defined point of s, or "n/a".
func lastValue(s model.Series) string {
	p, ok := s.Last()
	if !ok {
		return "n/a"
	}
	v, _ := p.Value.Get()
	return fmt.Sprintf("%.2f", v)
}
