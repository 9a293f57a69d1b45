package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/dominion/engine"
	"github.com/nathoo/dominion/engine/state"
	"github.com/nathoo/dominion/types"
)

func testCatalog() *state.Catalog {
	return &state.Catalog{Level: 0, Events: map[types.EventID]*types.Event{
		1: {
			ID:           1,
			Title:        "The Crimson Tithe",
			Description:  []string{"The village elder kneels before you."},
			MaxTriggered: 1,
			Choices: []types.Choice{
				{
					Text:        []string{"Accept the tithe."},
					OutcomeText: []string{"Blood flows into your coffers."},
					StatChange:  state.Delta(50, -1, -1, -1, -1),
				},
				{
					Text:        []string{"Refuse, for now."},
					OutcomeText: []string{"The elder retreats, uneasy."},
				},
			},
		},
	}}
}

func newTestCLI(t *testing.T, script string) (*CLI, *bytes.Buffer) {
	t.Helper()
	eng := engine.New(testCatalog(), 42)
	eng.Warn = io.Discard
	c := New(eng, state.NewStats(), t.TempDir())
	c.In = strings.NewReader(script)
	c.Out = &bytes.Buffer{}
	c.SavePath = filepath.Join(t.TempDir(), "save.json")
	return c, c.Out.(*bytes.Buffer)
}

func TestRun_ResolvesChoiceAndStops(t *testing.T) {
	c, out := newTestCLI(t, "1\nn\n")

	c.Run()

	got := out.String()
	if !strings.Contains(got, "The Crimson Tithe") {
		t.Errorf("expected the event title in output, got %q", got)
	}
	if !strings.Contains(got, "1: Accept the tithe.") {
		t.Errorf("expected the choice menu, got %q", got)
	}
	if !strings.Contains(got, "Blood flows into your coffers.") {
		t.Errorf("expected the outcome text, got %q", got)
	}
	if c.Stats.Blood() != state.DefaultBlood+50 {
		t.Errorf("expected blood %d, got %d", state.DefaultBlood+50, c.Stats.Blood())
	}
	if state.TriggerCount(c.Engine.State, 1) != 1 {
		t.Errorf("expected one trigger, got %d", state.TriggerCount(c.Engine.State, 1))
	}
}

func TestRun_InvalidInputReprompts(t *testing.T) {
	c, out := newTestCLI(t, "zero\n9\n2\nn\n")

	c.Run()

	got := out.String()
	if !strings.Contains(got, "Invalid input.") {
		t.Errorf("expected an invalid-input message, got %q", got)
	}
	if !strings.Contains(got, "between 1 and 2") {
		t.Errorf("expected an out-of-range message, got %q", got)
	}
	if !strings.Contains(got, "The elder retreats, uneasy.") {
		t.Errorf("expected the second choice's outcome, got %q", got)
	}
}

func TestRun_ExhaustionEndsSession(t *testing.T) {
	// One once-only event: after resolving it the pool is empty.
	c, out := newTestCLI(t, "1\ny\n")

	c.Run()

	if !strings.Contains(out.String(), "No events available.") {
		t.Errorf("expected the no-content message, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Game session ended.") {
		t.Errorf("expected the session end line, got %q", out.String())
	}
}

func TestRun_WritesSaveFile(t *testing.T) {
	c, _ := newTestCLI(t, "1\nn\n")

	c.Run()

	if _, err := os.Stat(c.SavePath); err != nil {
		t.Fatalf("expected a save file at %s: %v", c.SavePath, err)
	}

	snap := LoadSession(c.SavePath)
	if snap == nil {
		t.Fatal("expected a loadable save")
	}
	if snap.StatSet.Blood != state.DefaultBlood+50 {
		t.Errorf("expected saved blood %d, got %d", state.DefaultBlood+50, snap.StatSet.Blood)
	}
	if snap.TriggerCounts[1] != 1 {
		t.Errorf("expected saved trigger count 1, got %v", snap.TriggerCounts)
	}
}

func TestSaveSession_RotatesBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.json")
	eng := engine.New(testCatalog(), 42)
	eng.Warn = io.Discard
	st := state.NewStats()

	if err := SaveSession(path, st, eng); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	first, _ := os.ReadFile(path)

	st.SetBlood(999)
	if err := SaveSession(path, st, eng); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	backup, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("expected a backup file: %v", err)
	}
	if !bytes.Equal(first, backup) {
		t.Error("backup should hold the previous save verbatim")
	}

	snap := LoadSession(path)
	if snap == nil || snap.StatSet.Blood != 999 {
		t.Errorf("expected current save with blood 999, got %v", snap)
	}
}

func TestLoadSession_MissingOrCorrupt(t *testing.T) {
	if snap := LoadSession(filepath.Join(t.TempDir(), "nope.json")); snap != nil {
		t.Errorf("expected nil for a missing save, got %v", snap)
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{corrupt"), 0o644)
	if snap := LoadSession(path); snap != nil {
		t.Errorf("expected nil for a corrupt save, got %v", snap)
	}
}
