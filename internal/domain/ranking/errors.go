package ranking

import "errors"

var (
	// ErrUnknownLossStrategy indicates a loss strategy name that is not supported.
	ErrUnknownLossStrategy = errors.New("unknown loss strategy")
	// ErrUnknownVariant indicates a variant the ranker cannot rank.
	ErrUnknownVariant = errors.New("unknown report variant")
)
