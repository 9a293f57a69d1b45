package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nathoo/dominion/engine"
	"github.com/nathoo/dominion/engine/save"
	"github.com/nathoo/dominion/engine/state"
)

// DefaultSavePath is the save location when none is configured.
func DefaultSavePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dominion", "save.json")
}

// SaveSession captures the session and writes it to path. The previous
// save, if any, is rotated to path.bak first; a failed rotation warns but
// never blocks the new save.
func SaveSession(path string, st *state.Stats, e *engine.Engine) error {
	data, err := save.Marshal(save.Capture(st, e))
	if err != nil {
		return fmt.Errorf("serializing save: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		backup := path + ".bak"
		if prev, err := os.ReadFile(path); err == nil {
			if err := os.WriteFile(backup, prev, 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to rotate backup save: %v\n", err)
			}
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	return nil
}

// LoadSession reads a snapshot from path. A missing or corrupt file is a
// fresh start, not an error: the returned snapshot is nil and the caller
// begins a new game.
func LoadSession(path string) *save.Snapshot {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	snap, err := save.Unmarshal(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load save, starting fresh: %v\n", err)
		return nil
	}
	return snap
}
