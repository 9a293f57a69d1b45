package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/dominion/engine"
	"github.com/nathoo/dominion/engine/save"
	"github.com/nathoo/dominion/engine/state"
	"github.com/nathoo/dominion/loader"
)

const gameTitle = "Dominion Rising: Veins of Fate"

const (
	eventRule   = "-=-=-=-=-=-=-=--=-=-=-=-=-=-=-=- Event -=-=-=-=-=-=-=-=-=-=-=-=-=-=-=--=-=-=-=-"
	outcomeRule = "-=-=-=-=-=-=-=--=-=-=-=-=-=-=-= Outcome =-=-=-=-=-=-=-=-=-=-=-=-=-=-=--=-=-=-=-"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for meta-command output
}

// Model is the Bubble Tea model for the Dominion TUI.
type Model struct {
	engine  *engine.Engine
	stats   *state.Stats
	dataDir string
	saveDir string

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	quitting bool
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine and stat container.
func New(eng *engine.Engine, st *state.Stats, dataDir string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 64
	ti.PromptStyle = styleInputPrompt

	home, _ := os.UserHomeDir()
	return Model{
		engine:  eng,
		stats:   st,
		dataDir: dataDir,
		saveDir: filepath.Join(home, ".dominion", "saves"),
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, st *state.Stats, dataDir string) error {
	m := New(eng, st, dataDir)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro and first event.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		lines := []string{gameTitle, "", m.stats.String(), ""}
		lines = append(lines, m.presentNext()...)
		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		// A bare Enter acknowledges a choiceless event and moves on.
		if ev := m.engine.CurrentEvent(); ev != nil && len(ev.Choices) == 0 {
			m.engine.State.CurrentEvent = nil
			m = m.appendOutput(gameOutputMsg{lines: m.presentNext()})
		}
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Anything else is a choice selection for the event on screen.
	ev := m.engine.CurrentEvent()
	if ev == nil || len(ev.Choices) == 0 {
		m = m.appendOutput(gameOutputMsg{
			input: input, lines: []string{"There is nothing to choose right now."}, isSystem: true,
		})
		return m, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		m = m.appendOutput(gameOutputMsg{
			input: input, lines: []string{"Invalid input. Please enter a number."},
		})
		return m, nil
	}
	if n < 1 || n > len(ev.Choices) {
		m = m.appendOutput(gameOutputMsg{
			input: input,
			lines: []string{fmt.Sprintf("Invalid choice. Please enter a number between 1 and %d.", len(ev.Choices))},
		})
		return m, nil
	}

	choice := &ev.Choices[n-1]

	// Outcome text reflects pre-resolve trigger state plus the event's own
	// trigger, which selection already recorded.
	outcome := m.engine.OutcomeLines(choice)
	m.engine.Resolve(ev, choice, m.stats)

	lines := []string{outcomeRule}
	for _, line := range outcome {
		lines = append(lines, "  "+line)
	}
	lines = append(lines, "", m.stats.String(), "")
	lines = append(lines, m.presentNext()...)

	m = m.appendOutput(gameOutputMsg{input: input, lines: lines})
	return m, nil
}

// presentNext advances the turn cycle and returns the presentation lines
// for the next event: recompute, rebind on a dominion level change, resume
// an in-flight event or select a fresh one.
func (m *Model) presentNext() []string {
	m.engine.RecomputePool(m.stats)

	if m.stats.DominionLevel() != m.engine.Catalog.Level {
		cat, err := loader.Load(m.dataDir, m.stats.DominionLevel())
		if err != nil {
			return []string{"Warning: failed to load level content: " + err.Error()}
		}
		m.engine = m.engine.Rebind(cat)
		m.engine.RecomputePool(m.stats)
	}

	ev := m.engine.CurrentEvent()
	if ev == nil {
		ev = m.engine.SelectNext(m.stats)
	}
	if ev == nil {
		return []string{"No events available. You may have finished the game or encountered an error."}
	}

	lines := []string{eventRule, ev.Title, ""}
	lines = append(lines, ev.Description...)
	lines = append(lines, "")

	if len(ev.Choices) == 0 {
		lines = append(lines, "(press Enter to continue)")
		return lines
	}

	for i, choice := range ev.Choices {
		if len(choice.Text) == 0 {
			lines = append(lines, fmt.Sprintf("%d:", i+1))
			continue
		}
		lines = append(lines, fmt.Sprintf("%d: %s", i+1, choice.Text[0]))
		for _, line := range choice.Text[1:] {
			lines = append(lines, "   "+line)
		}
	}
	return lines
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	afterEventRule := false
	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
			// The line right after the event banner is the title.
			if afterEventRule && rl.kind == kindNarrative {
				rl.kind = kindTitle
			}
		}
		afterEventRule = line == eventRule
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Preserves existing newlines within the text.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"The night ends here."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/help":
		return m.cmdHelp(), false

	case "/stats":
		return []string{m.stats.String()}, false

	case "/history":
		return m.cmdHistory(), false

	case "/forced":
		return m.cmdForced(), false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Marshal(save.Capture(m.stats, m.engine))
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	if err := os.MkdirAll(m.saveDir, 0o755); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	path := filepath.Join(m.saveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	return []string{fmt.Sprintf("Game saved to %s.", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(m.saveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	snap, err := save.Unmarshal(data)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	save.Apply(snap, m.stats, m.engine)

	output := []string{fmt.Sprintf("Game loaded from %s.", name)}
	output = append(output, m.presentNext()...)
	return output
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /save [name]  — Save game (default: quicksave)",
		"  /load [name]  — Load game (default: quicksave)",
		"  /stats        — Show the stat readout",
		"  /history      — List events triggered so far",
		"  /forced       — Show the pending forced-event queue",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"",
		"Play:",
		"  Type the number of a choice and press Enter.",
		"  Press Enter alone to move past an event with no choices.",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for input history",
	}
}

func (m *Model) cmdHistory() []string {
	s := m.engine.State
	if len(s.History) == 0 {
		return []string{"Nothing has happened yet."}
	}
	output := make([]string, 0, len(s.History))
	for i, id := range s.History {
		title := "(not in this level)"
		if ev, ok := m.engine.Event(id); ok {
			title = ev.Title
		}
		output = append(output, fmt.Sprintf("%d. #%d %s", i+1, id, title))
	}
	return output
}

func (m *Model) cmdForced() []string {
	queue := m.engine.State.ForcedQueue
	if len(queue) == 0 {
		return []string{"The forced queue is empty."}
	}
	output := make([]string, 0, len(queue))
	for i, id := range queue {
		title := "(not in this level)"
		if ev, ok := m.engine.Event(id); ok {
			title = ev.Title
		}
		output = append(output, fmt.Sprintf("%d. #%d %s", i+1, id, title))
	}
	return output
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
