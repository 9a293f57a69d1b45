package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line: the stat
// readout on the left, the forced-queue and pool sizes on the right.
func (m Model) renderStatusBar() string {
	st := m.stats

	left := fmt.Sprintf(" Blood: %d | Pop: %d | Happy: %d | Corrupt: %d | Level: %d",
		st.Blood(), st.Population(), st.Happiness(), st.Corruption(), st.DominionLevel())

	right := fmt.Sprintf("Forced: %d | Pool: %d ",
		len(m.engine.State.ForcedQueue), len(m.engine.EligiblePool()))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
