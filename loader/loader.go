// Package loader reads the JSON event set for a dominion level into an
// id-indexed catalog. Content defects — missing files, bad JSON, schema
// violations, duplicate or dangling ids — are warned and degrade
// gracefully; the engine stays usable with a partial or empty catalog.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nathoo/dominion/engine/state"
	"github.com/nathoo/dominion/types"
)

// warnOut receives all non-fatal content warnings.
var warnOut io.Writer = os.Stderr

func warnf(format string, args ...any) {
	fmt.Fprintf(warnOut, "warning: "+format+"\n", args...)
}

// levelDir maps a dominion level to its content directory. Level 5 is the
// terminal level and has no content.
func levelDir(level int) (string, error) {
	switch level {
	case 0:
		return "0_early", nil
	case 1:
		return "1_early_mid", nil
	case 2:
		return "2_mid", nil
	case 3:
		return "3_mid_late", nil
	case 4:
		return "4_mid_late", nil
	case 5:
		return "", nil
	default:
		return "", fmt.Errorf("invalid dominion level %d", level)
	}
}

// manifest enumerates the event files belonging to a level's catalog.
type manifest struct {
	Events []string `json:"events"`
}

// Load reads the event catalog for a dominion level from dir. A level
// without content yields an empty catalog. The only error is an invalid
// level — a contract violation, not a content defect.
func Load(dir string, level int) (*state.Catalog, error) {
	sub, err := levelDir(level)
	if err != nil {
		return nil, err
	}

	cat := &state.Catalog{Level: level, Events: map[types.EventID]*types.Event{}}
	if sub == "" {
		return cat, nil
	}

	levelPath := filepath.Join(dir, sub)
	manifestPath := filepath.Join(levelPath, "manifest.json")

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		warnf("manifest not found: %s", manifestPath)
		return cat, nil
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		warnf("manifest unreadable: %s: %v", manifestPath, err)
		return cat, nil
	}

	for _, name := range m.Events {
		path := filepath.Join(levelPath, name)
		ev, ok := loadEventFile(path)
		if !ok {
			continue
		}
		if _, dup := cat.Events[ev.ID]; dup {
			warnf("duplicate event id %d in %s, later definition wins", ev.ID, name)
		}
		cat.Events[ev.ID] = ev
	}

	validate(cat)
	return cat, nil
}

// loadEventFile reads, schema-checks, and decodes one event file.
// Any defect warns and skips the file.
func loadEventFile(path string) (*types.Event, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		warnf("event file not found: %s", path)
		return nil, false
	}

	if err := validateSchema(data); err != nil {
		warnf("event file %s rejected by schema: %v", path, err)
		return nil, false
	}

	var fe fileEvent
	if err := json.Unmarshal(data, &fe); err != nil {
		warnf("event file %s unreadable: %v", path, err)
		return nil, false
	}
	return fe.toEvent(), true
}

// Wire structs. Stat fields are pointers so an absent field and the -1
// sentinel both decode to "unset" without swallowing a real zero.

type fileStats struct {
	Blood         *int `json:"blood"`
	Population    *int `json:"population"`
	Happiness     *int `json:"happiness"`
	Corruption    *int `json:"corruption"`
	DominionLevel *int `json:"dominionLevel"`
}

type fileRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type fileInfluence struct {
	ID                  int       `json:"id"`
	Title               string    `json:"title"`
	Priority            int       `json:"priority"`
	StatChange          fileStats `json:"statChange"`
	OverrideOutcomeText []string  `json:"overrideOutcomeText"`
}

type fileChoice struct {
	Text            []string        `json:"text"`
	OutcomeText     []string        `json:"outcomeText"`
	StatChange      fileStats       `json:"statChange"`
	ForcesEvent     *fileRef        `json:"forcesEvent"`
	PreventEvents   []fileRef       `json:"preventEvents"`
	EventInfluences []fileInfluence `json:"eventInfluences"`
}

type fileRequirements struct {
	MinStats       fileStats `json:"minStats"`
	MaxStats       fileStats `json:"maxStats"`
	RequiredEvents []fileRef `json:"requiredEvents"`
}

type fileEvent struct {
	ID           int              `json:"id"`
	Title        string           `json:"title"`
	Description  []string         `json:"description"`
	Forced       bool             `json:"forced"`
	MaxTriggered *int             `json:"maxTriggered"`
	Requirements fileRequirements `json:"requirements"`
	Choices      []fileChoice     `json:"choices"`
}

func (fs fileStats) toDelta() types.StatDelta {
	opt := func(p *int) *int {
		if p == nil || *p == -1 {
			return nil
		}
		n := *p
		return &n
	}
	return types.StatDelta{
		Blood:         opt(fs.Blood),
		Population:    opt(fs.Population),
		Happiness:     opt(fs.Happiness),
		Corruption:    opt(fs.Corruption),
		DominionLevel: opt(fs.DominionLevel),
	}
}

func (fr fileRef) toRef() types.EventRef {
	return types.EventRef{ID: types.EventID(fr.ID), Title: fr.Title}
}

func (fe *fileEvent) toEvent() *types.Event {
	maxTriggered := -1
	if fe.MaxTriggered != nil {
		maxTriggered = *fe.MaxTriggered
	}

	reqs := types.Requirements{
		MinStats: fe.Requirements.MinStats.toDelta(),
		MaxStats: fe.Requirements.MaxStats.toDelta(),
	}
	for _, r := range fe.Requirements.RequiredEvents {
		reqs.RequiredEvents = append(reqs.RequiredEvents, r.toRef())
	}

	var choices []types.Choice
	for _, fc := range fe.Choices {
		c := types.Choice{
			Text:        fc.Text,
			OutcomeText: fc.OutcomeText,
			StatChange:  fc.StatChange.toDelta(),
		}
		if fc.ForcesEvent != nil {
			ref := fc.ForcesEvent.toRef()
			c.Forces = &ref
		}
		for _, p := range fc.PreventEvents {
			c.Suppresses = append(c.Suppresses, p.toRef())
		}
		for _, fi := range fc.EventInfluences {
			c.Influences = append(c.Influences, types.Influence{
				Target:              types.EventRef{ID: types.EventID(fi.ID), Title: fi.Title},
				Priority:            fi.Priority,
				StatChange:          fi.StatChange.toDelta(),
				OverrideOutcomeText: fi.OverrideOutcomeText,
			})
		}
		choices = append(choices, c)
	}

	return &types.Event{
		ID:           types.EventID(fe.ID),
		Title:        fe.Title,
		Description:  fe.Description,
		Forced:       fe.Forced,
		MaxTriggered: maxTriggered,
		Requirements: reqs,
		Choices:      choices,
	}
}
