package rules

import (
	"testing"

	"github.com/nathoo/dominion/engine/state"
	"github.com/nathoo/dominion/types"
)

func catalogOf(events ...*types.Event) *state.Catalog {
	cat := &state.Catalog{Level: 0, Events: map[types.EventID]*types.Event{}}
	for _, ev := range events {
		cat.Events[ev.ID] = ev
	}
	return cat
}

func unlimited(id types.EventID) *types.Event {
	return &types.Event{ID: id, Title: "event", MaxTriggered: -1}
}

func TestCanTrigger_UnknownID(t *testing.T) {
	cat := catalogOf(unlimited(1))

	if CanTrigger(cat, state.NewState(), state.NewStats(), 99) {
		t.Error("unknown id should never be eligible")
	}
}

func TestCanTrigger_MaxTriggeredCap(t *testing.T) {
	ev := unlimited(1)
	ev.MaxTriggered = 2
	cat := catalogOf(ev)
	s := state.NewState()
	st := state.NewStats()

	if !CanTrigger(cat, s, st, 1) {
		t.Fatal("expected eligible before any trigger")
	}

	state.RecordTrigger(s, 1)
	if !CanTrigger(cat, s, st, 1) {
		t.Fatal("expected eligible at 1 of 2 triggers")
	}

	state.RecordTrigger(s, 1)
	if CanTrigger(cat, s, st, 1) {
		t.Error("expected ineligible once the cap is hit")
	}
}

func TestCanTrigger_UnlimitedTriggers(t *testing.T) {
	cat := catalogOf(unlimited(1))
	s := state.NewState()
	st := state.NewStats()

	for i := 0; i < 50; i++ {
		state.RecordTrigger(s, 1)
	}
	if !CanTrigger(cat, s, st, 1) {
		t.Error("maxTriggered -1 should never cap")
	}
}

func TestCanTrigger_RequiredEvents(t *testing.T) {
	ev := unlimited(1)
	ev.Requirements.RequiredEvents = []types.EventRef{{ID: 2}, {ID: 3}}
	cat := catalogOf(ev, unlimited(2), unlimited(3))
	s := state.NewState()
	st := state.NewStats()

	if CanTrigger(cat, s, st, 1) {
		t.Fatal("expected ineligible with no requirements met")
	}

	state.RecordTrigger(s, 2)
	if CanTrigger(cat, s, st, 1) {
		t.Fatal("expected ineligible with one of two requirements met")
	}

	state.RecordTrigger(s, 3)
	if !CanTrigger(cat, s, st, 1) {
		t.Error("expected eligible with all requirements met")
	}
}

func TestCanTrigger_StatBoundsInclusive(t *testing.T) {
	ev := unlimited(1)
	ev.Requirements.MinStats = state.Delta(100, -1, -1, -1, -1)
	ev.Requirements.MaxStats = state.Delta(200, -1, -1, -1, -1)
	cat := catalogOf(ev)
	s := state.NewState()

	tests := []struct {
		blood string
		value int
		want  bool
	}{
		{"below min", 99, false},
		{"at min", 100, true},
		{"inside", 150, true},
		{"at max", 200, true},
		{"above max", 201, false},
	}
	for _, tt := range tests {
		st := state.NewStatsWith(tt.value, 100, 50, 75, 0)
		if got := CanTrigger(cat, s, st, 1); got != tt.want {
			t.Errorf("%s (blood=%d): expected %v, got %v", tt.blood, tt.value, tt.want, got)
		}
	}
}

func TestCanTrigger_SentinelBoundsNeverConstrain(t *testing.T) {
	ev := unlimited(1)
	ev.Requirements.MinStats = state.Delta(-1, -1, -1, -1, -1)
	ev.Requirements.MaxStats = state.Delta(-1, -1, -1, -1, -1)
	cat := catalogOf(ev)

	// Extreme stats pass when every bound is the sentinel.
	st := state.NewStatsWith(0, 0, 0, 0, 0)
	if !CanTrigger(cat, state.NewState(), st, 1) {
		t.Error("sentinel bounds constrained a zeroed container")
	}
}

func TestCanTrigger_ZeroBoundIsReal(t *testing.T) {
	ev := unlimited(1)
	// maxStats.corruption = 0: only a fully pure court qualifies.
	ev.Requirements.MaxStats = state.Delta(-1, -1, -1, 0, -1)
	cat := catalogOf(ev)
	s := state.NewState()

	if CanTrigger(cat, s, state.NewStatsWith(100, 100, 50, 1, 0), 1) {
		t.Error("corruption 1 should fail a max bound of 0")
	}
	if !CanTrigger(cat, s, state.NewStatsWith(100, 100, 50, 0, 0), 1) {
		t.Error("corruption 0 should satisfy a max bound of 0")
	}
}

func TestCanTrigger_Suppressed(t *testing.T) {
	cat := catalogOf(unlimited(1))
	s := state.NewState()
	s.Suppressed[1] = true

	if CanTrigger(cat, s, state.NewStats(), 1) {
		t.Error("suppressed event must never be eligible")
	}
}

func TestWeight_ExponentialInRequirements(t *testing.T) {
	for r, want := range []int{1, 2, 4, 8, 16} {
		ev := unlimited(1)
		for i := 0; i < r; i++ {
			ev.Requirements.RequiredEvents = append(ev.Requirements.RequiredEvents,
				types.EventRef{ID: types.EventID(100 + i)})
		}
		if got := Weight(ev); got != want {
			t.Errorf("%d requirements: expected weight %d, got %d", r, want, got)
		}
	}
}
