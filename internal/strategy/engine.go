package strategy

import (
	"fmt"

	"ImpulseSystem/internal/model"
)

// Permissions maps each impulse color to the trades it allows.
var Permissions = []struct {
	Impulse    model.Impulse
	Permission model.Permission
	Commentary string
}{
	{model.Bullish, model.PermitLongOnly, "green bar: shorting prohibited"},
	{model.Bearish, model.PermitShortOnly, "red bar: buying prohibited"},
	{model.Neutral, model.PermitAll, "blue bar: no restriction"},
}

// mapPermission maps an impulse to its trade permission.
func mapPermission(imp model.Impulse) (model.Permission, string) {
	for _, p := range Permissions {
		if p.Impulse == imp {
			return p.Permission, p.Commentary
		}
	}
	return model.PermitAll, ""
}

// Evaluate turns a report into a trade signal for its latest bar.
// A report without bars yields a Neutral signal with no reading.
func Evaluate(report *model.Report) *model.Signal {
	signal := &model.Signal{Impulse: model.Neutral, Permission: model.PermitAll, Zone: model.ZoneNormal}

	if report.Impulse != nil {
		if last, ok := report.Impulse.Latest(); ok {
			signal.BarTime = last.Time
			signal.Impulse = last.Impulse
		}
	}
	permission, commentary := mapPermission(signal.Impulse)
	signal.Permission = permission
	signal.Commentary = commentary

	if p, ok := latestReading(report.Oscillator); ok {
		v, _ := p.Value.Get()
		signal.Oscillator = v
		signal.HasReading = true
		signal.ReadingTime = p.Time
		signal.Zone = model.ZoneOf(v)
		signal.Commentary = fmt.Sprintf("%s; %s", commentary, describeZone(report.Oscillator.Mode, signal))
	}

	signal.WarningMsg = conflictWarning(signal)
	return signal
}
