// Package teams resolves team ids to the labels shown in reports.
package teams

import (
	"fmt"
	"strings"

	"github.com/okian/fplpulse/internal/domain/model"
)

// LabelMode selects which team field becomes the label.
type LabelMode int

// Label modes.
const (
	FullName LabelMode = iota
	ShortCode
)

// ModeFor returns the label mode a report variant uses.
func ModeFor(v model.Variant) LabelMode {
	if v == model.PriceVariant {
		return ShortCode
	}
	return FullName
}

// Index maps team ids to labels. It is read-only once built.
type Index struct {
	labels map[int]string
}

// Resolve builds an Index over every team. Later duplicate ids overwrite
// earlier ones.
func Resolve(teams []model.RawTeam, mode LabelMode) (Index, error) {
	labels := make(map[int]string, len(teams))
	for _, t := range teams {
		label := t.Name
		if mode == ShortCode {
			label = t.ShortName
		}
		if strings.TrimSpace(label) == "" {
			return Index{}, fmt.Errorf("team %d: %w: %w", t.ID, ErrBlankLabel, model.ErrMalformedData)
		}
		labels[t.ID] = label
	}
	return Index{labels: labels}, nil
}

// Label returns the label for id. A miss is a broken snapshot and aborts the run.
func (i Index) Label(id int) (string, error) {
	label, ok := i.labels[id]
	if !ok {
		return "", fmt.Errorf("team %d: %w: %w", id, ErrUnresolvedTeam, model.ErrMalformedData)
	}
	return label, nil
}

// Len returns the number of distinct team ids.
func (i Index) Len() int { return len(i.labels) }
