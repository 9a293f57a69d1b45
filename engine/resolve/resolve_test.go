package resolve

import (
	"testing"

	"github.com/nathoo/dominion/engine/state"
	"github.com/nathoo/dominion/types"
)

func TestWinningInfluence_HighestTriggeredPriority(t *testing.T) {
	choice := &types.Choice{
		Influences: []types.Influence{
			{Target: types.EventRef{ID: 5}, Priority: 1},
			{Target: types.EventRef{ID: 7}, Priority: 3},
		},
	}
	s := state.NewState()
	state.RecordTrigger(s, 5)
	state.RecordTrigger(s, 7)

	inf := WinningInfluence(choice, s)
	if inf == nil {
		t.Fatal("expected a winning influence")
	}
	if inf.Target.ID != 7 {
		t.Errorf("expected priority-3 influence (target 7) to win, got target %d", inf.Target.ID)
	}
}

func TestWinningInfluence_OnlyTriggeredTargetsCompete(t *testing.T) {
	choice := &types.Choice{
		Influences: []types.Influence{
			{Target: types.EventRef{ID: 5}, Priority: 1},
			{Target: types.EventRef{ID: 7}, Priority: 3},
		},
	}
	s := state.NewState()
	state.RecordTrigger(s, 5) // only the low-priority target has triggered

	inf := WinningInfluence(choice, s)
	if inf == nil || inf.Target.ID != 5 {
		t.Errorf("expected the triggered target 5 to win, got %v", inf)
	}
}

func TestWinningInfluence_NoneTriggered(t *testing.T) {
	choice := &types.Choice{
		Influences: []types.Influence{
			{Target: types.EventRef{ID: 5}, Priority: 1},
		},
	}

	if inf := WinningInfluence(choice, state.NewState()); inf != nil {
		t.Errorf("expected nil with no triggered targets, got %v", inf)
	}
}

func TestWinningInfluence_TieBrokenByDeclarationOrder(t *testing.T) {
	choice := &types.Choice{
		Influences: []types.Influence{
			{Target: types.EventRef{ID: 5}, Priority: 2, OverrideOutcomeText: []string{"first"}},
			{Target: types.EventRef{ID: 7}, Priority: 2, OverrideOutcomeText: []string{"second"}},
		},
	}
	s := state.NewState()
	state.RecordTrigger(s, 5)
	state.RecordTrigger(s, 7)

	inf := WinningInfluence(choice, s)
	if inf == nil || inf.Target.ID != 5 {
		t.Errorf("expected the first-declared influence to win the tie, got %v", inf)
	}
}

func TestWinningInfluence_NilChoice(t *testing.T) {
	if inf := WinningInfluence(nil, state.NewState()); inf != nil {
		t.Errorf("expected nil for nil choice, got %v", inf)
	}
}

func TestOutcomeLines_FallbackChain(t *testing.T) {
	s := state.NewState()
	state.RecordTrigger(s, 5)

	override := types.Influence{
		Target:              types.EventRef{ID: 5},
		Priority:            1,
		OverrideOutcomeText: []string{"the override"},
	}

	tests := []struct {
		name   string
		choice *types.Choice
		want   []string
	}{
		{
			"influence override wins",
			&types.Choice{
				Text:        []string{"display"},
				OutcomeText: []string{"outcome"},
				Influences:  []types.Influence{override},
			},
			[]string{"the override"},
		},
		{
			"empty override falls back to outcome text",
			&types.Choice{
				Text:        []string{"display"},
				OutcomeText: []string{"outcome"},
				Influences: []types.Influence{
					{Target: types.EventRef{ID: 5}, Priority: 1},
				},
			},
			[]string{"outcome"},
		},
		{
			"outcome text without influences",
			&types.Choice{Text: []string{"display"}, OutcomeText: []string{"outcome"}},
			[]string{"outcome"},
		},
		{
			"display text as last resort",
			&types.Choice{Text: []string{"display"}},
			[]string{"display"},
		},
		{
			"nothing at all",
			&types.Choice{},
			nil,
		},
	}

	for _, tt := range tests {
		got := OutcomeLines(tt.choice, s)
		if len(got) != len(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
				break
			}
		}
	}
}

func TestOutcomeLines_NilChoice(t *testing.T) {
	if got := OutcomeLines(nil, state.NewState()); got != nil {
		t.Errorf("expected nil for nil choice, got %v", got)
	}
}
