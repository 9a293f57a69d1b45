// Package types defines the shared data structures for the Dominion engine.
// This package contains only type definitions — no logic, no methods.
package types

// EventID identifies an event within a dominion level's catalog.
type EventID int

// EventRef is a by-id pointer to another event plus a cached display title.
// It is never an ownership relation; the id is resolved against the bound
// catalog at the point of use.
type EventRef struct {
	ID    EventID
	Title string
}

// StatDelta is an overlay over the five player stats. A nil field means
// "no constraint / no change", so a real 0 is always distinguishable from
// unset. The content wire format encodes unset as -1; the loader converts.
type StatDelta struct {
	Blood         *int
	Population    *int
	Happiness     *int
	Corruption    *int
	DominionLevel *int
}

// Requirements gate an event's eligibility: overlay stat bounds (inclusive
// at both ends where set) and required events that must all have triggered.
type Requirements struct {
	MinStats       StatDelta
	MaxStats       StatDelta
	RequiredEvents []EventRef
}

// Influence is a cross-event conditional modifier attached to a choice.
// If the target event has ever triggered, the influence competes by
// priority to add its stat delta and override the outcome text.
type Influence struct {
	Target              EventRef
	Priority            int
	StatChange          StatDelta
	OverrideOutcomeText []string
}

// Choice is one selectable option of an event.
type Choice struct {
	Text        []string // display text, first line is the summary
	OutcomeText []string // may be empty; the fallback chain applies
	StatChange  StatDelta
	Forces      *EventRef   // optional event pushed onto the forced queue
	Suppresses  []EventRef  // events permanently removed from eligibility
	Influences  []Influence // declaration order breaks priority ties
}

// Event is one narrative event, immutable once loaded into a catalog.
type Event struct {
	ID           EventID
	Title        string
	Description  []string
	Forced       bool
	MaxTriggered int // -1 = unlimited
	Requirements Requirements
	Choices      []Choice
}

// State is the dynamic engine bookkeeping that survives level changes and
// session boundaries. The eligible pool is derived state and lives on the
// engine instead.
type State struct {
	TriggerCounts map[EventID]int  // absent = 0, monotonically non-decreasing
	History       []EventID        // chronological, duplicates allowed
	Suppressed    map[EventID]bool // permanent
	ForcedQueue   []EventID        // FIFO, front at index 0
	CurrentEvent  *EventID         // shown but not yet resolved
}
