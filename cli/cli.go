// Package cli provides the line-mode game loop: it presents events, reads
// numbered choice selections, shows outcomes, and autosaves. The engine
// itself never renders or reads input; everything player-facing lives here.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nathoo/dominion/engine"
	"github.com/nathoo/dominion/engine/state"
	"github.com/nathoo/dominion/loader"
	"github.com/nathoo/dominion/types"
)

const title = "Dominion Rising: Veins of Fate"

const (
	eventRule   = "-=-=-=-=-=-=-=--=-=-=-=-=-=-=-=- Event -=-=-=-=-=-=-=-=-=-=-=-=-=-=-=--=-=-=-=-"
	outcomeRule = "-=-=-=-=-=-=-=--=-=-=-=-=-=-=-= Outcome =-=-=-=-=-=-=-=-=-=-=-=-=-=-=--=-=-=-=-"
)

// CLI drives a game session over plain line-based I/O.
type CLI struct {
	Engine   *engine.Engine
	Stats    *state.Stats
	DataDir  string
	SavePath string // empty disables autosave
	In       io.Reader
	Out      io.Writer
}

// New creates a CLI wired to the given engine and stat container.
func New(eng *engine.Engine, st *state.Stats, dataDir string) *CLI {
	return &CLI{
		Engine:   eng,
		Stats:    st,
		DataDir:  dataDir,
		SavePath: DefaultSavePath(),
		In:       os.Stdin,
		Out:      os.Stdout,
	}
}

// Run plays the game until the content runs out or the player stops.
func (c *CLI) Run() {
	c.printLine(title)
	c.printLine(c.Stats.String())

	scanner := bufio.NewScanner(c.In)

	for {
		c.Engine.RecomputePool(c.Stats)

		// A dominion level change rebinds the catalog, carrying the
		// dynamic event state into the new level.
		if c.Stats.DominionLevel() != c.Engine.Catalog.Level {
			cat, err := loader.Load(c.DataDir, c.Stats.DominionLevel())
			if err != nil {
				c.printLine("Error loading level content: " + err.Error())
				return
			}
			c.Engine = c.Engine.Rebind(cat)
			c.Engine.RecomputePool(c.Stats)
		}

		// Resume an event left unresolved by a previous session.
		ev := c.Engine.CurrentEvent()
		if ev == nil {
			ev = c.Engine.SelectNext(c.Stats)
		}
		if ev == nil {
			c.printLine("No events available. You may have finished the game or encountered an error.")
			break
		}

		c.printLine("")
		c.printLine(eventRule)
		c.printLine(ev.Title)
		c.printLine("")
		for _, line := range ev.Description {
			c.printLine(line)
		}
		c.printLine("")

		if len(ev.Choices) == 0 {
			// Nothing to resolve; the trigger was recorded at selection.
			c.Engine.State.CurrentEvent = nil
			c.autosave()
			if !c.askContinue(scanner) {
				break
			}
			continue
		}

		c.printChoices(ev)

		idx, ok := c.readChoice(scanner, len(ev.Choices))
		if !ok {
			break // input exhausted
		}
		choice := &ev.Choices[idx]

		// Outcome text reflects pre-resolve trigger state plus the event's
		// own trigger, which selection already recorded.
		outcome := c.Engine.OutcomeLines(choice)
		c.Engine.Resolve(ev, choice, c.Stats)
		c.autosave()

		c.printLine("")
		c.printLine(outcomeRule)
		for _, line := range outcome {
			c.printLine("  " + line)
		}
		c.printLine("")
		c.printLine(c.Stats.String())

		if !c.askContinue(scanner) {
			break
		}
	}

	c.printLine("Game session ended.")
}

// printChoices renders the numbered, possibly multi-line choice menu.
func (c *CLI) printChoices(ev *types.Event) {
	for i, choice := range ev.Choices {
		if len(choice.Text) == 0 {
			fmt.Fprintf(c.Out, "%d:\n", i+1)
			continue
		}
		fmt.Fprintf(c.Out, "%d: %s\n", i+1, choice.Text[0])
		for _, line := range choice.Text[1:] {
			c.printLine("   " + line)
		}
	}
}

// readChoice prompts until a valid 1-based selection arrives. The second
// return is false when the input stream ends.
func (c *CLI) readChoice(scanner *bufio.Scanner, n int) (int, bool) {
	for {
		c.print("Choose an option: ")
		if !scanner.Scan() {
			return 0, false
		}
		input := strings.TrimSpace(scanner.Text())
		idx, err := strconv.Atoi(input)
		if err != nil {
			c.printLine("Invalid input. Please enter a number.")
			continue
		}
		if idx < 1 || idx > n {
			fmt.Fprintf(c.Out, "Invalid choice. Please enter a number between 1 and %d.\n", n)
			continue
		}
		return idx - 1, true
	}
}

// askContinue prompts y/n. EOF counts as stopping.
func (c *CLI) askContinue(scanner *bufio.Scanner) bool {
	for {
		c.print("Continue? (y/n): ")
		if !scanner.Scan() {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y":
			return true
		case "n":
			return false
		default:
			c.printLine("Invalid input. Please enter 'y' or 'n'.")
		}
	}
}

// autosave captures the session to SavePath, if one is configured.
func (c *CLI) autosave() {
	if c.SavePath == "" {
		return
	}
	if err := SaveSession(c.SavePath, c.Stats, c.Engine); err != nil {
		c.printLine("Warning: failed to save: " + err.Error())
	}
}

func (c *CLI) print(s string) {
	fmt.Fprint(c.Out, s)
}

func (c *CLI) printLine(s string) {
	fmt.Fprintln(c.Out, s)
}
