// Package resolve computes the winning influence of a choice and the
// outcome text fallback chain. Pure helpers over the dynamic state.
package resolve

import (
	"sort"

	"github.com/nathoo/dominion/engine/state"
	"github.com/nathoo/dominion/types"
)

// WinningInfluence returns the influence that applies to this choice:
// among influences whose target has ever triggered, the one with the
// highest priority, ties broken by declaration order. Nil if none apply.
func WinningInfluence(choice *types.Choice, s *types.State) *types.Influence {
	if choice == nil || len(choice.Influences) == 0 {
		return nil
	}

	// Stable sort keeps declaration order within equal priorities.
	idx := make([]int, len(choice.Influences))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return choice.Influences[idx[a]].Priority > choice.Influences[idx[b]].Priority
	})

	for _, i := range idx {
		inf := &choice.Influences[i]
		if state.TriggerCount(s, inf.Target.ID) > 0 {
			return inf
		}
	}
	return nil
}

// OutcomeLines returns the text shown after a choice resolves. The chain:
// winning influence override, then the choice's outcome text, then the
// choice's display text, then nothing. Only text is overridden — stat
// effects stack regardless of which text wins.
func OutcomeLines(choice *types.Choice, s *types.State) []string {
	if choice == nil {
		return nil
	}

	if inf := WinningInfluence(choice, s); inf != nil && len(inf.OverrideOutcomeText) > 0 {
		return inf.OverrideOutcomeText
	}
	if len(choice.OutcomeText) > 0 {
		return choice.OutcomeText
	}
	if len(choice.Text) > 0 {
		return choice.Text
	}
	return nil
}
