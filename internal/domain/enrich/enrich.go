// Package enrich projects raw snapshot players into the normalized view used
// by ranking and rendering.
package enrich

import (
	"context"
	"fmt"

	"github.com/okian/fplpulse/internal/domain/model"
	"github.com/okian/fplpulse/internal/domain/teams"
	"github.com/shopspring/decimal"
)

// DefaultOwnershipThreshold is the minimum ownership percent for the ownership report.
const DefaultOwnershipThreshold = 2.0

// Option applies a configuration option to the Enricher.
type Option func(*Enricher)

// WithOwnershipThreshold sets the ownership noise filter. Negative values are ignored.
func WithOwnershipThreshold(pct float64) Option {
	return func(e *Enricher) {
		if pct >= 0 {
			e.threshold = decimal.NewFromFloat(pct)
		}
	}
}

// Enricher is a pure transform from raw players to enriched players.
type Enricher struct {
	threshold decimal.Decimal
}

// New creates an Enricher with configuration options.
func New(opts ...Option) *Enricher {
	e := &Enricher{
		threshold: decimal.NewFromFloat(DefaultOwnershipThreshold),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Threshold returns the ownership threshold in effect.
func (e *Enricher) Threshold() decimal.Decimal { return e.threshold }

// Enrich returns the players that pass the variant's inclusion rule, in
// snapshot order. Any malformed record or unresolved team aborts the call.
func (e *Enricher) Enrich(ctx context.Context, players []model.RawPlayer, idx teams.Index, variant model.Variant) ([]model.EnrichedPlayer, error) {
	if variant != model.OwnershipVariant && variant != model.PriceVariant {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}

	out := make([]model.EnrichedPlayer, 0, len(players))
	for i := range players {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled: %w", err)
		}
		p := &players[i]

		label, err := idx.Label(p.Team)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", p.ID, err)
		}
		ownership, err := ParseOwnership(p.ID, p.SelectedByPercent)
		if err != nil {
			return nil, err
		}

		ep := model.EnrichedPlayer{
			ID:             p.ID,
			DisplayName:    p.FirstName + " " + p.SecondName,
			TeamLabel:      label,
			Position:       model.PositionFromElementType(p.ElementType),
			Price:          tenths(p.NowCost),
			Ownership:      ownership,
			OwnershipDelta: p.TransfersInEvent - p.TransfersOutEvent,
			PriceDelta:     tenths(p.CostChangeEvent),
			Form:           p.Form,
		}

		switch variant {
		case model.OwnershipVariant:
			if ownership.LessThan(e.threshold) {
				continue
			}
		case model.PriceVariant:
			if ep.PriceDelta.IsZero() {
				continue
			}
			if _, err := ParseForm(p.ID, p.Form); err != nil {
				return nil, err
			}
		}
		out = append(out, ep)
	}
	return out, nil
}
