package ranking

// Default caps per variant.
const (
	DefaultOwnershipCap = 10
	DefaultPriceCap     = 20
)

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithOwnershipCap sets the size of the gainers and losers sets.
func WithOwnershipCap(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.ownershipCap = n
		}
	}
}

// WithPriceCap sets the size of the risers and fallers sets.
func WithPriceCap(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.priceCap = n
		}
	}
}

// WithLossStrategy selects how the losers set is derived.
func WithLossStrategy(s LossStrategy) Option {
	return func(r *Ranker) {
		if s == Ascending || s == Tail {
			r.loss = s
		}
	}
}
