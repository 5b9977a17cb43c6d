package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// lowHPFraction is the HP share below which the bar turns red.
const lowHPFraction = 0.25

// renderStatusBar produces a full-width inverted status line showing the
// player's vitals on the left and the current objective on the right.
func (m Model) renderStatusBar() string {
	h := m.game.Session.HUD()

	left := fmt.Sprintf(" Lv %d | HP %d/%d | ST %d/%d | %d cinders",
		h.Level, h.HP, h.MaxHP, h.Stamina, h.MaxStamina, h.Cinders)
	if m.game.Session.InConversation() {
		left += " | talking"
	}

	right := ""
	if h.QuestHint != "" {
		room := m.width - lipgloss.Width(left) - 3
		if room > 8 {
			right = truncate.StringWithTail(h.QuestHint, uint(room), "...") + " "
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	style := styleStatusBar
	if h.MaxHP > 0 && float64(h.HP) < float64(h.MaxHP)*lowHPFraction {
		style = styleStatusLow
	}
	bar := left + strings.Repeat(" ", gap) + right
	return style.Width(m.width).Render(bar)
}
