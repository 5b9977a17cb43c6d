package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusLow = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("203")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("208"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110"))

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleChoice = lipgloss.NewStyle().
			Foreground(lipgloss.Color("180"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("208"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindStatus
	kindReward
	kindDialogue
	kindChoice
	kindSystem
	kindError
	kindTrace
)

var (
	statusPrefixes = []string{"Level ", "Stance:", "Objective:", "Quickbar:", "Cinders:", "Perk points:"}
	rewardPrefixes = []string{"Received ", "Quest complete", "Level up!", "Perk unlocked", "Discovered ", "Defeated "}
	errorPrefixes  = []string{
		"You can't", "Not enough", "Nothing called", "Which ", "Too exhausted",
		"The way to", "The warden has fallen", "You are not talking", "Choose ",
	}
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case hasAnyPrefix(line, errorPrefixes):
		return kindError
	case hasAnyPrefix(line, rewardPrefixes):
		return kindReward
	case hasAnyPrefix(line, statusPrefixes):
		return kindStatus
	case isSpeech(line):
		return kindDialogue
	case isChoice(line):
		return kindChoice
	default:
		return kindNarration
	}
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// isSpeech matches `Speaker: "text"` lines.
func isSpeech(line string) bool {
	i := strings.Index(line, `: "`)
	return i > 0 && strings.HasSuffix(line, `"`) && len(line) > i+4
}

// isChoice matches numbered dialogue choices such as "  2. Leave".
func isChoice(line string) bool {
	rest := strings.TrimLeft(line, " ")
	if len(rest) == len(line) {
		return false
	}
	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	return digits > 0 && strings.HasPrefix(rest[digits:], ". ")
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindStatus:
		return styleStatus.Render(line)
	case kindReward:
		return styleReward.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindChoice:
		return styleChoice.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarration.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
