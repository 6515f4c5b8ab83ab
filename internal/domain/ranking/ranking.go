// Package ranking turns enriched players into capped, ordered report sets.
package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/fplpulse/internal/domain/model"
	"github.com/okian/fplpulse/internal/domain/types"
)

// LossStrategy decides how ownership losers are picked.
type LossStrategy string

const (
	// Ascending sorts by delta ascending and keeps the first N.
	Ascending LossStrategy = "ascending"
	// Tail keeps the last N of the descending sort, in descending order.
	Tail LossStrategy = "tail"
)

// ParseLossStrategy accepts "ascending" or "tail"; empty means Ascending.
func ParseLossStrategy(s string) (LossStrategy, error) {
	switch LossStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Ascending:
		return Ascending, nil
	case Tail:
		return Tail, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLossStrategy, s)
	}
}

// Ranker builds ranked sets. It never pads a set: its length is
// min(cap, qualifying players).
type Ranker struct {
	ownershipCap int
	priceCap     int
	loss         LossStrategy
}

// New creates a Ranker with configuration options.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		ownershipCap: DefaultOwnershipCap,
		priceCap:     DefaultPriceCap,
		loss:         Ascending,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LossStrategy returns the strategy in effect.
func (r *Ranker) LossStrategy() LossStrategy { return r.loss }

// Rank returns the two sets for the variant: gainers and losers for
// ownership, risers and fallers for price. Sets borrow from players.
func (r *Ranker) Rank(players []model.EnrichedPlayer, variant model.Variant) ([]types.RankedSet, error) {
	switch variant {
	case model.OwnershipVariant:
		return r.rankOwnership(players), nil
	case model.PriceVariant:
		return r.rankPrice(players), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
}

func (r *Ranker) rankOwnership(players []model.EnrichedPlayer) []types.RankedSet {
	desc := refs(players)
	slices.SortStableFunc(desc, func(a, b *model.EnrichedPlayer) int {
		return cmp.Compare(b.OwnershipDelta, a.OwnershipDelta)
	})

	var losers []*model.EnrichedPlayer
	switch r.loss {
	case Tail:
		losers = desc[max(0, len(desc)-r.ownershipCap):]
	default:
		asc := refs(players)
		slices.SortStableFunc(asc, func(a, b *model.EnrichedPlayer) int {
			return cmp.Compare(a.OwnershipDelta, b.OwnershipDelta)
		})
		losers = truncate(asc, r.ownershipCap)
	}

	return []types.RankedSet{
		{Kind: types.Gainers, Cap: r.ownershipCap, Players: truncate(desc, r.ownershipCap)},
		{Kind: types.Losers, Cap: r.ownershipCap, Players: slices.Clip(losers)},
	}
}

func (r *Ranker) rankPrice(players []model.EnrichedPlayer) []types.RankedSet {
	var risers, fallers []*model.EnrichedPlayer
	for i := range players {
		p := &players[i]
		switch p.PriceDelta.Sign() {
		case 1:
			risers = append(risers, p)
		case -1:
			fallers = append(fallers, p)
		}
	}
	return []types.RankedSet{
		{Kind: types.Risers, Cap: r.priceCap, Players: truncate(risers, r.priceCap)},
		{Kind: types.Fallers, Cap: r.priceCap, Players: truncate(fallers, r.priceCap)},
	}
}

func refs(players []model.EnrichedPlayer) []*model.EnrichedPlayer {
	out := make([]*model.EnrichedPlayer, len(players))
	for i := range players {
		out[i] = &players[i]
	}
	return out
}

func truncate(s []*model.EnrichedPlayer, n int) []*model.EnrichedPlayer {
	if len(s) > n {
		s = s[:n]
	}
	return slices.Clip(s)
}
