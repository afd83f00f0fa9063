package strategy

import (
	"fmt"

	"ImpulseSystem/internal/model"
)

// latestReading returns the most recent defined oscillator point.
func latestReading(view *model.OscillatorView) (model.Point, bool) {
	if view == nil {
		return model.Point{}, false
	}
	return view.Latest()
}

// describeZone renders the reading, dated when it is older than the latest bar.
func describeZone(mode model.OscillatorMode, s *model.Signal) string {
	label := "RSI"
	if mode == model.ModeStochastic {
		label = "%K"
	}
	var text string
	switch s.Zone {
	case model.ZoneOverbought:
		text = fmt.Sprintf("%s=%.1f overbought", label, s.Oscillator)
	case model.ZoneOversold:
		text = fmt.Sprintf("%s=%.1f oversold", label, s.Oscillator)
	default:
		text = fmt.Sprintf("%s=%.1f", label, s.Oscillator)
	}
	if !s.Current() {
		text += " as of " + s.ReadingTime.Format("2006-01-02")
	}
	return text
}

// conflictWarning flags a permitted direction that runs into an oscillator extreme on the
// same bar. An older reading never raises a warning.
func conflictWarning(s *model.Signal) string {
	if !s.Current() {
		return ""
	}
	switch {
	case s.Permission == model.PermitLongOnly && s.Zone == model.ZoneOverbought:
		return fmt.Sprintf("WARNING: bullish impulse while overbought (%.1f), consider waiting for a pullback", s.Oscillator)
	case s.Permission == model.PermitShortOnly && s.Zone == model.ZoneOversold:
		return fmt.Sprintf("WARNING: bearish impulse while oversold (%.1f), consider waiting for a bounce", s.Oscillator)
	}
	return ""
}
