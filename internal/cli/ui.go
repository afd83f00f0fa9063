package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"ImpulseSystem/internal/model"
	"ImpulseSystem/internal/notifier"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Background(lipgloss.Color("#1F2937")).
		Padding(0, 1)

	reportBoxStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 1)

	bullishStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	bearishStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	neutralStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Bold(true)

	warningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)

	mutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))
)

func impulseStyle(imp model.Impulse) lipgloss.Style {
	switch imp {
	case model.Bullish:
		return bullishStyle
	case model.Bearish:
		return bearishStyle
	default:
		return neutralStyle
	}
}

func zoneStyle(z model.Zone) lipgloss.Style {
	switch z {
	case model.ZoneOverbought:
		return bearishStyle
	case model.ZoneOversold:
		return bullishStyle
	default:
		return mutedStyle
	}
}

// renderSignal renders the one-line verdict shown under the report box.
func renderSignal(signal *model.Signal) string {
	line := fmt.Sprintf("%s  %s",
		impulseStyle(signal.Impulse).Render(fmt.Sprintf("● %s", signal.Impulse)),
		string(signal.Permission))
	if signal.HasReading {
		reading := fmt.Sprintf("[%s %.1f]", signal.Zone, signal.Oscillator)
		if !signal.Current() {
			reading = fmt.Sprintf("[%s %.1f as of %s]", signal.Zone, signal.Oscillator, signal.ReadingTime.Format("2006-01-02"))
		}
		line += "  " + zoneStyle(signal.Zone).Render(reading)
	}
	if signal.WarningMsg != "" {
		line += "\n" + warningStyle.Render(signal.WarningMsg)
	}
	return line
}

// StyledSink prints reports for a terminal.
type StyledSink struct {
	W io.Writer
}

func (s *StyledSink) Deliver(report *model.Report, signal *model.Signal) error {
	out := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Impulse System"),
		reportBoxStyle.Render(notifier.FormatReport(report, signal)),
		renderSignal(signal),
		mutedStyle.Render(fmt.Sprintf("computed %s", report.ComputedAt.Format("2006-01-02 15:04:05"))),
	)
	if _, err := fmt.Fprintln(s.W, out); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
