package loader

import (
	"sort"

	"github.com/nathoo/dominion/engine/state"
	"github.com/nathoo/dominion/types"
)

// validate runs referential-integrity checks over a loaded catalog: every
// event reference inside requirements, forces, suppressions, and
// influences must resolve within the catalog. Dangling references warn
// and never fail the load — the engine drops them at use time.
func validate(cat *state.Catalog) {
	ids := make([]types.EventID, 0, len(cat.Events))
	for id := range cat.Events {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	known := func(id types.EventID) bool {
		if id == -1 {
			return true // explicit "no reference"
		}
		_, ok := cat.Events[id]
		return ok
	}

	for _, id := range ids {
		ev := cat.Events[id]

		for _, req := range ev.Requirements.RequiredEvents {
			if !known(req.ID) {
				warnf("event %d requires missing event id %d", ev.ID, req.ID)
			}
		}

		for _, choice := range ev.Choices {
			if choice.Forces != nil && !known(choice.Forces.ID) {
				warnf("choice in event %d forces missing event id %d", ev.ID, choice.Forces.ID)
			}
			for _, ref := range choice.Suppresses {
				if !known(ref.ID) {
					warnf("choice in event %d prevents missing event id %d", ev.ID, ref.ID)
				}
			}
			for _, inf := range choice.Influences {
				if !known(inf.Target.ID) {
					warnf("influence in event %d references missing event id %d", ev.ID, inf.Target.ID)
				}
			}
		}
	}
}
