package model

import "time"

// Permission tells which side of the market the impulse allows.
type Permission string

const (
	PermitAll       Permission = "LONG_OR_SHORT"
	PermitLongOnly  Permission = "LONG_ONLY"
	PermitShortOnly Permission = "SHORT_ONLY"
)

// Signal is the final output of the strategy evaluation for the latest bar.
type Signal struct {
	BarTime    time.Time
	Impulse    Impulse
	Permission Permission
	Oscillator float64
	HasReading bool
	// ReadingTime is the bar of the oscillator reading. It trails BarTime when the latest
	// bars are undefined, e.g. the forward window gap of the stochastic.
	ReadingTime time.Time
	Zone        Zone
	Commentary  string
	WarningMsg  string
}

// Current reports whether the oscillator reading belongs to the latest bar.
func (s *Signal) Current() bool {
	return s.HasReading && s.ReadingTime.Equal(s.BarTime)
}
