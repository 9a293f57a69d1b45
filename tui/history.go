// Package tui provides a Bubble Tea terminal UI for the Dominion event game.
package tui

// History keeps recent input lines for up/down recall at the prompt.
type History struct {
	entries []string
	cap     int
	cursor  int // -1 = at the fresh input line, otherwise an index into entries
}

// NewHistory creates a history buffer that retains at most cap entries.
func NewHistory(cap int) *History {
	return &History{
		entries: make([]string, 0, cap),
		cap:     cap,
		cursor:  -1,
	}
}

// Push records an input line. A line identical to the newest entry is not
// recorded again.
func (h *History) Push(line string) {
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.cap {
		h.entries = h.entries[1:]
	}
}

// Prev steps toward older entries. It reports false only when the history
// is empty; at the oldest entry it stays put.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor == -1 {
		h.cursor = len(h.entries) - 1
	} else if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps toward newer entries. Past the newest it reports false and
// returns the cursor to the fresh input line.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor returns navigation to the fresh input line.
func (h *History) ResetCursor() {
	h.cursor = -1
}
