// Package state holds the clamped player stat container, the immutable
// catalog binding for a dominion level, and helpers over the dynamic
// engine state.
package state

import (
	"fmt"

	"github.com/nathoo/dominion/types"
)

// Stat ranges. Every mutation clamps into [0, max]; out-of-range input is
// defined behavior, not an error.
const (
	MaxBlood         = 10_000_000
	MaxPopulation    = 1_000_000
	MaxHappiness     = 100_000
	MaxCorruption    = 1_000_000
	MaxDominionLevel = 5

	minStat = 0
)

// Starting values. Blood and population start high enough to survive the
// early game; happiness and corruption reflect a vampiric court.
const (
	DefaultBlood         = 100
	DefaultPopulation    = 100
	DefaultHappiness     = 50
	DefaultCorruption    = 75
	DefaultDominionLevel = 0
)

// Stats is the player's resource container. All writes go through the
// setters so no stat ever leaves its declared range.
type Stats struct {
	blood         int
	population    int
	happiness     int
	corruption    int
	dominionLevel int
}

// NewStats returns a container at the default starting values.
func NewStats() *Stats {
	return &Stats{
		blood:         DefaultBlood,
		population:    DefaultPopulation,
		happiness:     DefaultHappiness,
		corruption:    DefaultCorruption,
		dominionLevel: DefaultDominionLevel,
	}
}

// NewStatsWith returns a container with the given values, clamped.
func NewStatsWith(blood, population, happiness, corruption, dominionLevel int) *Stats {
	s := &Stats{}
	s.SetBlood(blood)
	s.SetPopulation(population)
	s.SetHappiness(happiness)
	s.SetCorruption(corruption)
	s.SetDominionLevel(dominionLevel)
	return s
}

func (s *Stats) Blood() int         { return s.blood }
func (s *Stats) Population() int    { return s.population }
func (s *Stats) Happiness() int     { return s.happiness }
func (s *Stats) Corruption() int    { return s.corruption }
func (s *Stats) DominionLevel() int { return s.dominionLevel }

func (s *Stats) SetBlood(v int)         { s.blood = clamp(v, minStat, MaxBlood) }
func (s *Stats) SetPopulation(v int)    { s.population = clamp(v, minStat, MaxPopulation) }
func (s *Stats) SetHappiness(v int)     { s.happiness = clamp(v, minStat, MaxHappiness) }
func (s *Stats) SetCorruption(v int)    { s.corruption = clamp(v, minStat, MaxCorruption) }
func (s *Stats) SetDominionLevel(v int) { s.dominionLevel = clamp(v, minStat, MaxDominionLevel) }

// Apply adds each set overlay field to the corresponding stat and re-clamps.
// Unset fields are untouched.
func (s *Stats) Apply(d types.StatDelta) {
	if d.Blood != nil {
		s.SetBlood(s.blood + *d.Blood)
	}
	if d.Population != nil {
		s.SetPopulation(s.population + *d.Population)
	}
	if d.Happiness != nil {
		s.SetHappiness(s.happiness + *d.Happiness)
	}
	if d.Corruption != nil {
		s.SetCorruption(s.corruption + *d.Corruption)
	}
	if d.DominionLevel != nil {
		s.SetDominionLevel(s.dominionLevel + *d.DominionLevel)
	}
}

// String renders the stats the way the status line shows them.
func (s *Stats) String() string {
	return fmt.Sprintf("Blood: %d | Population: %d | Happiness: %d | Corruption: %d | Dominion Level: %d",
		s.blood, s.population, s.happiness, s.corruption, s.dominionLevel)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Delta builds a StatDelta from wire-style values: -1 means unset, any
// other value is a set field. Mirrors the content sentinel encoding.
func Delta(blood, population, happiness, corruption, dominionLevel int) types.StatDelta {
	opt := func(v int) *int {
		if v == -1 {
			return nil
		}
		n := v
		return &n
	}
	return types.StatDelta{
		Blood:         opt(blood),
		Population:    opt(population),
		Happiness:     opt(happiness),
		Corruption:    opt(corruption),
		DominionLevel: opt(dominionLevel),
	}
}

// Catalog is the immutable id-indexed event set for one dominion level.
type Catalog struct {
	Level  int
	Events map[types.EventID]*types.Event
}

// Lookup resolves an id against the catalog. The single place "unknown id"
// is decided.
func (c *Catalog) Lookup(id types.EventID) (*types.Event, bool) {
	ev, ok := c.Events[id]
	return ev, ok
}

// NewState creates empty dynamic bookkeeping.
func NewState() *types.State {
	return &types.State{
		TriggerCounts: map[types.EventID]int{},
		History:       []types.EventID{},
		Suppressed:    map[types.EventID]bool{},
		ForcedQueue:   []types.EventID{},
	}
}

// TriggerCount returns how many times an event has triggered. Absent = 0.
func TriggerCount(s *types.State, id types.EventID) int {
	return s.TriggerCounts[id]
}

// IsSuppressed reports whether an event is permanently ineligible.
func IsSuppressed(s *types.State, id types.EventID) bool {
	return s.Suppressed[id]
}

// QueuedCount returns how many instances of an id sit in the forced queue.
func QueuedCount(s *types.State, id types.EventID) int {
	n := 0
	for _, q := range s.ForcedQueue {
		if q == id {
			n++
		}
	}
	return n
}

// RecordTrigger increments the trigger count and appends to history.
func RecordTrigger(s *types.State, id types.EventID) {
	s.TriggerCounts[id]++
	s.History = append(s.History, id)
}
