package enrich

import "errors"

var (
	// ErrOwnershipFormat indicates selected_by_percent is not a decimal.
	ErrOwnershipFormat = errors.New("ownership is not a decimal")
	// ErrOwnershipRange indicates an ownership value outside 0..100.
	ErrOwnershipRange = errors.New("ownership out of range")
	// ErrMissingForm indicates a blank form value.
	ErrMissingForm = errors.New("form is missing")
	// ErrUnknownVariant indicates a variant the enricher has no inclusion rule for.
	ErrUnknownVariant = errors.New("unknown report variant")
)
