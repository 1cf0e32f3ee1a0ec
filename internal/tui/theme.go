package tui

import (
	"os"
	"strconv"
	"strings"

	"tickets-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so everything routes through lipgloss.AdaptiveColor and "faint" styling is
// only applied on dark backgrounds (faint on light terminals is illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorErrorFg    lipgloss.TerminalColor = ac("160", "196")
	colorStagedFg   lipgloss.TerminalColor = ac("130", "214") // orange: a staged, unsaved change
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

func styleStaged() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorStagedFg).Bold(true)
}

var statusColors = map[model.StatusID]lipgloss.TerminalColor{
	model.StatusPending:    ac("240", "246"),
	model.StatusOpen:       ac("27", "75"),
	model.StatusInProgress: ac("130", "214"),
	model.StatusCompleted:  ac("28", "76"),
	model.StatusResolved:   ac("28", "76"),
	model.StatusCancelled:  ac("160", "203"),
}

func renderStatusBadge(s model.StatusID) string {
	c, ok := statusColors[s]
	if !ok {
		c = colorMuted
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(strings.ToUpper(s.String()))
}

// applyColorProfilePreference sets lipgloss's color profile for the TUI.
// Only NO_COLOR is honored as an explicit off switch; CLICOLOR semantics are
// meant for non-interactive output and would degrade the TUI.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection for terminals that
// don't report it reliably.
//
// Priority:
// 1) TICKETS_TUI_THEME=light|dark
// 2) COLORFGBG heuristic ("fg;bg", last segment is the background)
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TICKETS_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
