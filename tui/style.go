package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("52")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("160"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	styleRule = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleChoice = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleOutcome = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183"))

	styleStats = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("160"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindTitle
	kindRule
	kindChoice
	kindOutcome
	kindStats
	kindSystem
	kindError
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "-=-"):
		return kindRule
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Blood: "):
		return kindStats
	case strings.HasPrefix(line, "Invalid "),
		strings.HasPrefix(line, "Warning:"):
		return kindError
	case strings.HasPrefix(line, "  "):
		return kindOutcome
	case isChoiceLine(line):
		return kindChoice
	default:
		return kindNarrative
	}
}

// isChoiceLine reports whether a line looks like a numbered menu entry,
// "3: Refuse the tithe."
func isChoiceLine(line string) bool {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && strings.HasPrefix(line[i:], ": ")
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindTitle:
		return styleTitle.Render(line)
	case kindRule:
		return styleRule.Render(line)
	case kindChoice:
		return styleChoice.Render(line)
	case kindOutcome:
		return styleOutcome.Render(line)
	case kindStats:
		return styleStats.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
