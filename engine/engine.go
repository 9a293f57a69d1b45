// Package engine provides the event engine: it binds a catalog for the
// current dominion level, maintains the eligible pool and the forced
// queue, selects the next event (forced-first, then weighted random), and
// resolves player choices into stat and bookkeeping mutations.
package engine

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/nathoo/dominion/engine/resolve"
	"github.com/nathoo/dominion/engine/rules"
	"github.com/nathoo/dominion/engine/state"
	"github.com/nathoo/dominion/types"
)

// Engine owns the catalog binding and all dynamic event state. It is
// single-threaded: callers run one logical turn at a time, and the engine
// is the sole writer of the stat container during Resolve.
type Engine struct {
	Catalog *state.Catalog
	State   *types.State
	RNG     *RNG

	pool []*types.Event // derived, rebuilt by RecomputePool, never persisted
	Warn io.Writer      // misuse warnings; defaults to stderr
}

// New creates an engine bound to the given catalog with fresh dynamic state.
func New(cat *state.Catalog, seed int64) *Engine {
	return &Engine{
		Catalog: cat,
		State:   state.NewState(),
		RNG:     NewRNG(seed),
		Warn:    os.Stderr,
	}
}

// Rebind constructs a new engine bound to a different catalog, carrying
// every dynamic-state field and the RNG across. The old engine should be
// discarded. Used on dominion level changes.
func (e *Engine) Rebind(cat *state.Catalog) *Engine {
	return &Engine{
		Catalog: cat,
		State:   e.State,
		RNG:     e.RNG,
		Warn:    e.Warn,
	}
}

// CanTrigger reports whether the event is eligible right now.
func (e *Engine) CanTrigger(id types.EventID, st *state.Stats) bool {
	return rules.CanTrigger(e.Catalog, e.State, st, id)
}

// RecomputePool rebuilds the eligible pool from scratch, sorted by id so a
// fixed RNG seed replays identically. Newly eligible forced events are
// auto-enqueued subject to the admission cap.
func (e *Engine) RecomputePool(st *state.Stats) {
	e.pool = e.pool[:0]

	ids := make([]types.EventID, 0, len(e.Catalog.Events))
	for id := range e.Catalog.Events {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if !rules.CanTrigger(e.Catalog, e.State, st, id) {
			continue
		}
		ev := e.Catalog.Events[id]
		if ev.Forced {
			e.enqueueForcedIfApplicable(id)
		}
		e.pool = append(e.pool, ev)
	}
}

// enqueueForcedIfApplicable admits an id to the forced queue only while
// triggered + already-queued instances stay under MaxTriggered. This keeps
// a repeatable forced event from piling up duplicates across recomputes.
func (e *Engine) enqueueForcedIfApplicable(id types.EventID) {
	ev, ok := e.Catalog.Lookup(id)
	if !ok {
		fmt.Fprintf(e.Warn, "warning: unknown forced event id %d\n", id)
		return
	}
	if ev.MaxTriggered != -1 &&
		state.TriggerCount(e.State, id)+state.QueuedCount(e.State, id) >= ev.MaxTriggered {
		return
	}
	e.State.ForcedQueue = append(e.State.ForcedQueue, id)
}

// SelectNext picks the event to present. The forced queue drains first:
// stale or no-longer-eligible ids are discarded, never returned. With the
// queue empty, a weighted random draw runs over the eligible pool. The
// selection is recorded as triggered before it is returned, so the event's
// own trigger is visible while its choice resolves. Nil means no content.
func (e *Engine) SelectNext(st *state.Stats) *types.Event {
	for len(e.State.ForcedQueue) > 0 {
		id := e.State.ForcedQueue[0]
		e.State.ForcedQueue = e.State.ForcedQueue[1:]

		ev, ok := e.Catalog.Lookup(id)
		if !ok || !rules.CanTrigger(e.Catalog, e.State, st, id) {
			continue
		}
		return e.markSelected(ev, st)
	}

	if len(e.pool) == 0 {
		return nil
	}

	weights := make([]int, len(e.pool))
	for i, ev := range e.pool {
		weights[i] = rules.Weight(ev)
	}
	return e.markSelected(e.pool[e.RNG.WeightedSelect(weights)], st)
}

// markSelected records the trigger, pins the in-flight event, and rebuilds
// the pool against the post-trigger state.
func (e *Engine) markSelected(ev *types.Event, st *state.Stats) *types.Event {
	id := ev.ID
	e.State.CurrentEvent = &id
	state.RecordTrigger(e.State, id)
	e.RecomputePool(st)
	return ev
}

// Resolve applies a chosen option: the choice's stat delta, its forced
// event (under the admission cap), its suppressions (unconditional), and
// the winning influence's stacking stat delta. Misuse — nil arguments, an
// event unknown to the catalog, or a choice the event does not own — is a
// warned no-op, never a failed turn.
func (e *Engine) Resolve(ev *types.Event, choice *types.Choice, st *state.Stats) {
	if ev == nil || choice == nil {
		fmt.Fprintf(e.Warn, "warning: resolve called with nil event or choice\n")
		return
	}
	if _, ok := e.Catalog.Lookup(ev.ID); !ok {
		fmt.Fprintf(e.Warn, "warning: resolve called for unknown event id %d\n", ev.ID)
		return
	}
	if !ownsChoice(ev, choice) {
		fmt.Fprintf(e.Warn, "warning: resolve called with a choice not owned by event %d\n", ev.ID)
		return
	}

	st.Apply(choice.StatChange)

	if choice.Forces != nil && choice.Forces.ID != -1 {
		if _, ok := e.Catalog.Lookup(choice.Forces.ID); !ok {
			fmt.Fprintf(e.Warn, "warning: choice in event %d forces unknown event id %d\n",
				ev.ID, choice.Forces.ID)
		} else {
			e.enqueueForcedIfApplicable(choice.Forces.ID)
		}
	}

	// Suppression is permanent and bypasses the admission cap entirely.
	for _, ref := range choice.Suppresses {
		if ref.ID == -1 {
			continue
		}
		if _, ok := e.Catalog.Lookup(ref.ID); !ok {
			fmt.Fprintf(e.Warn, "warning: choice in event %d suppresses unknown event id %d\n",
				ev.ID, ref.ID)
			continue
		}
		e.State.Suppressed[ref.ID] = true
	}

	// The winning influence stacks with the choice's own stat change.
	if inf := resolve.WinningInfluence(choice, e.State); inf != nil {
		st.Apply(inf.StatChange)
	}

	e.State.CurrentEvent = nil
	e.RecomputePool(st)
}

func ownsChoice(ev *types.Event, choice *types.Choice) bool {
	for i := range ev.Choices {
		if &ev.Choices[i] == choice {
			return true
		}
	}
	return false
}

// OutcomeLines returns the text to show for a resolved choice, following
// the influence-override fallback chain.
func (e *Engine) OutcomeLines(choice *types.Choice) []string {
	return resolve.OutcomeLines(choice, e.State)
}

// PeekForced returns the event at the front of the forced queue without
// removing it, or nil if the queue is empty or the front id is stale.
func (e *Engine) PeekForced() *types.Event {
	if len(e.State.ForcedQueue) == 0 {
		return nil
	}
	ev, _ := e.Catalog.Lookup(e.State.ForcedQueue[0])
	return ev
}

// EnqueueForced pushes an id onto the forced queue directly, skipping the
// admission cap. For externally driven forcing (debug, restore replay).
// Returns false if the id is unknown to the catalog.
func (e *Engine) EnqueueForced(id types.EventID) bool {
	if _, ok := e.Catalog.Lookup(id); !ok {
		return false
	}
	e.State.ForcedQueue = append(e.State.ForcedQueue, id)
	return true
}

// EligiblePool returns the current derived pool. Valid until the next
// recompute; callers must not mutate it.
func (e *Engine) EligiblePool() []*types.Event {
	return e.pool
}

// Event resolves an id against the bound catalog.
func (e *Engine) Event(id types.EventID) (*types.Event, bool) {
	return e.Catalog.Lookup(id)
}

// CurrentEvent returns the in-flight event (shown, not yet resolved),
// or nil.
func (e *Engine) CurrentEvent() *types.Event {
	if e.State.CurrentEvent == nil {
		return nil
	}
	ev, _ := e.Catalog.Lookup(*e.State.CurrentEvent)
	return ev
}
