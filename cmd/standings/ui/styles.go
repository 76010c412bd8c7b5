// Package ui renders standings tables and notices for the terminal.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"standings/internal/planner"
	"standings/internal/syndicate"
)

var (
	LightForeground = lipgloss.Color("#1b1b1b")
	LightMuted      = lipgloss.Color("#888888")
	DarkForeground  = lipgloss.Color("#e0e0e0")
	DarkMuted       = lipgloss.Color("#888888")

	Gold        = lipgloss.Color("#d4af37")
	Positive    = lipgloss.Color("#90ff90")
	Negative    = lipgloss.Color("#ff8888")
	Destructive = lipgloss.Color("#ff4444")
	Success     = lipgloss.Color("#4caf50")
	Warning     = lipgloss.Color("#ffc107")
	Info        = lipgloss.Color("#2196f3")
)

// factionColors are the syndicate sigil colors.
var factionColors = [syndicate.Count]lipgloss.Color{
	syndicate.Steel:    lipgloss.Color("#e0562b"),
	syndicate.Arbiters: lipgloss.Color("#c9c9c9"),
	syndicate.Suda:     lipgloss.Color("#4aa3df"),
	syndicate.Perrin:   lipgloss.Color("#5fb865"),
	syndicate.Veil:     lipgloss.Color("#c0392b"),
	syndicate.Loka:     lipgloss.Color("#9ccc65"),
}

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	IsDark     bool
}

func LightTheme() Theme {
	return Theme{Foreground: LightForeground, Muted: LightMuted}
}

func DarkTheme() Theme {
	return Theme{Foreground: DarkForeground, Muted: DarkMuted, IsDark: true}
}

// DetectTheme picks dark mode when COLORFGBG reports a dark background or
// STANDINGS_DARK_MODE=1.
func DetectTheme() Theme {
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
			return DarkTheme()
		}
	}
	if os.Getenv("STANDINGS_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	Positive lipgloss.Style
	Negative lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().Foreground(Gold).Bold(true),
		Body:  lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().Foreground(theme.Muted),
		Bold:  lipgloss.NewStyle().Foreground(theme.Foreground).Bold(true),

		Positive: lipgloss.NewStyle().Foreground(Positive),
		Negative: lipgloss.NewStyle().Foreground(Negative),

		Success: lipgloss.NewStyle().Foreground(Success).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(Warning).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(Info),
	}
}

// DefaultStyles returns styles for the detected terminal theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// Faction renders a syndicate's display name in its sigil color.
func (s Styles) Faction(f syndicate.Faction) string {
	if !f.Valid() {
		return s.Body.Render(f.Key())
	}
	return lipgloss.NewStyle().Foreground(factionColors[f]).Bold(true).Render(f.DisplayName())
}

// ForClass maps a projection class to its style.
func (s Styles) ForClass(c planner.Class) lipgloss.Style {
	switch c {
	case planner.ClassNegative:
		return s.Error
	case planner.ClassWarning:
		return s.Warning
	default:
		return s.Success
	}
}

// ForSeverity maps a recommendation severity to its style.
func (s Styles) ForSeverity(sev planner.Severity) lipgloss.Style {
	switch sev {
	case planner.SeverityCritical:
		return s.Error
	case planner.SeverityNormal:
		return s.Success
	default:
		return s.Info
	}
}

// ForDelta colors a signed change: green up, red down, muted for zero.
func (s Styles) ForDelta(v float64) lipgloss.Style {
	switch {
	case v > 0:
		return s.Positive
	case v < 0:
		return s.Negative
	default:
		return s.Muted
	}
}
