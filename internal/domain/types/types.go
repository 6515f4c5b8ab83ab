// Package types contains the report shapes shared by the ranking, render and history stages.
package types

import (
	"time"

	"github.com/okian/fplpulse/internal/domain/model"
)

// SetKind names a ranked set.
type SetKind string

// Ranked set kinds.
const (
	Gainers SetKind = "gainers"
	Losers  SetKind = "losers"
	Risers  SetKind = "risers"
	Fallers SetKind = "fallers"
)

// RankedSet is an ordered, capped view over enriched players.
// Players are borrowed from the enrichment result and must not be mutated.
type RankedSet struct {
	Kind    SetKind                 `json:"kind"`
	Cap     int                     `json:"cap"`
	Players []*model.EnrichedPlayer `json:"players"`
}

// Len returns the number of players in the set.
func (s RankedSet) Len() int { return len(s.Players) }

// Report is everything a renderer needs. Rendering is a pure function of it.
type Report struct {
	Variant     model.Variant `json:"variant"`
	GeneratedAt time.Time     `json:"generated_at"`
	Sets        []RankedSet   `json:"sets"`
}

// Date returns the report date as YYYY-MM-DD.
func (r Report) Date() string { return r.GeneratedAt.Format(time.DateOnly) }

// Set returns the set of the given kind, if present.
func (r Report) Set(kind SetKind) (RankedSet, bool) {
	for _, s := range r.Sets {
		if s.Kind == kind {
			return s, true
		}
	}
	return RankedSet{}, false
}

// HistoryEntry is one persisted report listed by the index.
type HistoryEntry struct {
	Name     string    `json:"name"`
	Stamp    time.Time `json:"stamp"`
	HasStamp bool      `json:"has_stamp"`
}

// HistoryIndex lists persisted reports of one extension, newest first.
type HistoryIndex struct {
	Ext     string         `json:"ext"`
	Entries []HistoryEntry `json:"entries"`
}

// Latest returns the newest entry, if any.
func (h HistoryIndex) Latest() (HistoryEntry, bool) {
	if len(h.Entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.Entries[0], true
}
