// Package save implements JSON serialization and deserialization of a
// game session: the stat set plus the engine's five dynamic-state fields.
// Bytes in, bytes out — file handling belongs to the caller.
package save

import (
	"encoding/json"
	"sort"

	"github.com/nathoo/dominion/engine"
	"github.com/nathoo/dominion/engine/state"
	"github.com/nathoo/dominion/types"
)

// StatSet is the wire form of the stat container.
type StatSet struct {
	Blood         int `json:"blood"`
	Population    int `json:"population"`
	Happiness     int `json:"happiness"`
	Corruption    int `json:"corruption"`
	DominionLevel int `json:"dominionLevel"`
}

// Snapshot is the JSON-serializable session format. Its shape mirrors the
// engine's dynamic state exactly; restoring is a trusted bulk replace.
type Snapshot struct {
	StatSet          StatSet               `json:"statSet"`
	TriggerCounts    map[types.EventID]int `json:"triggerCounts"`
	TriggeredHistory []types.EventID       `json:"triggeredHistory"`
	SuppressedEvents []types.EventID       `json:"suppressedEvents"`
	ForcedQueue      []types.EventID       `json:"forcedQueue"`
	CurrentEventID   *types.EventID        `json:"currentEventId"`
}

// Capture snapshots the stat container and the engine's dynamic state.
func Capture(st *state.Stats, e *engine.Engine) Snapshot {
	s := e.State

	counts := make(map[types.EventID]int, len(s.TriggerCounts))
	for id, n := range s.TriggerCounts {
		counts[id] = n
	}

	suppressed := make([]types.EventID, 0, len(s.Suppressed))
	for id := range s.Suppressed {
		suppressed = append(suppressed, id)
	}
	// Sets have no order; sort so identical states serialize identically.
	sort.Slice(suppressed, func(i, j int) bool { return suppressed[i] < suppressed[j] })

	var current *types.EventID
	if s.CurrentEvent != nil {
		id := *s.CurrentEvent
		current = &id
	}

	return Snapshot{
		StatSet: StatSet{
			Blood:         st.Blood(),
			Population:    st.Population(),
			Happiness:     st.Happiness(),
			Corruption:    st.Corruption(),
			DominionLevel: st.DominionLevel(),
		},
		TriggerCounts:    counts,
		TriggeredHistory: append([]types.EventID{}, s.History...),
		SuppressedEvents: suppressed,
		ForcedQueue:      append([]types.EventID{}, s.ForcedQueue...),
		CurrentEventID:   current,
	}
}

// Marshal serializes a snapshot to JSON bytes.
func Marshal(snap Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// Unmarshal deserializes JSON bytes into a snapshot. Maps and slices are
// never nil afterward, so a partial save still restores cleanly.
func Unmarshal(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.TriggerCounts == nil {
		snap.TriggerCounts = map[types.EventID]int{}
	}
	if snap.TriggeredHistory == nil {
		snap.TriggeredHistory = []types.EventID{}
	}
	if snap.SuppressedEvents == nil {
		snap.SuppressedEvents = []types.EventID{}
	}
	if snap.ForcedQueue == nil {
		snap.ForcedQueue = []types.EventID{}
	}
	return &snap, nil
}

// Apply restores a snapshot onto the stat container and the engine. No
// eligibility checks run; the snapshot is trusted verbatim. The caller
// recomputes the pool afterward as part of the normal turn cycle.
func Apply(snap *Snapshot, st *state.Stats, e *engine.Engine) {
	st.SetBlood(snap.StatSet.Blood)
	st.SetPopulation(snap.StatSet.Population)
	st.SetHappiness(snap.StatSet.Happiness)
	st.SetCorruption(snap.StatSet.Corruption)
	st.SetDominionLevel(snap.StatSet.DominionLevel)

	s := e.State
	s.TriggerCounts = make(map[types.EventID]int, len(snap.TriggerCounts))
	for id, n := range snap.TriggerCounts {
		s.TriggerCounts[id] = n
	}
	s.History = append([]types.EventID{}, snap.TriggeredHistory...)
	s.Suppressed = make(map[types.EventID]bool, len(snap.SuppressedEvents))
	for _, id := range snap.SuppressedEvents {
		s.Suppressed[id] = true
	}
	s.ForcedQueue = append([]types.EventID{}, snap.ForcedQueue...)
	if snap.CurrentEventID != nil {
		id := *snap.CurrentEventID
		s.CurrentEvent = &id
	} else {
		s.CurrentEvent = nil
	}
}
