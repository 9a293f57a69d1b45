// Package rules implements the pure eligibility predicate and the static
// selection weight over events.
package rules

import (
	"github.com/nathoo/dominion/engine/state"
	"github.com/nathoo/dominion/types"
)

// CanTrigger reports whether an event may fire right now. It reads the
// dynamic state and the stat container but mutates neither. The forced
// queue plays no part here — forced priority is a selection concern.
func CanTrigger(cat *state.Catalog, s *types.State, st *state.Stats, id types.EventID) bool {
	ev, ok := cat.Lookup(id)
	if !ok {
		return false
	}

	// Trigger cap (-1 = unlimited).
	if ev.MaxTriggered != -1 && state.TriggerCount(s, id) >= ev.MaxTriggered {
		return false
	}

	// Every required event must have triggered at least once.
	for _, req := range ev.Requirements.RequiredEvents {
		if state.TriggerCount(s, req.ID) == 0 {
			return false
		}
	}

	// Stat bounds, inclusive at both ends. Unset bounds never constrain.
	if !withinBounds(st, ev.Requirements.MinStats, ev.Requirements.MaxStats) {
		return false
	}

	return !state.IsSuppressed(s, id)
}

// withinBounds checks every set min/max overlay field against the live stats.
func withinBounds(st *state.Stats, min, max types.StatDelta) bool {
	check := func(v int, lo, hi *int) bool {
		if lo != nil && v < *lo {
			return false
		}
		if hi != nil && v > *hi {
			return false
		}
		return true
	}
	return check(st.Blood(), min.Blood, max.Blood) &&
		check(st.Population(), min.Population, max.Population) &&
		check(st.Happiness(), min.Happiness, max.Happiness) &&
		check(st.Corruption(), min.Corruption, max.Corruption) &&
		check(st.DominionLevel(), min.DominionLevel, max.DominionLevel)
}

// Weight is the selection weight of an event: 2^r for r declared required
// events. A static property of the event, biasing the draw toward deeper
// chains once their prerequisites are satisfied.
func Weight(ev *types.Event) int {
	return 1 << len(ev.Requirements.RequiredEvents)
}
