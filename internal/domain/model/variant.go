package model

import (
	"fmt"
	"strings"
)

// Variant selects which report a run produces from the snapshot.
type Variant int

// Report variants.
const (
	OwnershipVariant Variant = iota + 1
	PriceVariant
)

// String returns the configuration name of the variant.
func (v Variant) String() string {
	switch v {
	case OwnershipVariant:
		return "ownership"
	case PriceVariant:
		return "price"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Kind is the file name prefix used for persisted reports of this variant.
func (v Variant) Kind() string {
	switch v {
	case OwnershipVariant:
		return "fpl_report"
	case PriceVariant:
		return "fpl_price_report"
	default:
		return "fpl_unknown_report"
	}
}

// ParseVariant accepts the configuration names "ownership" and "price".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ownership":
		return OwnershipVariant, nil
	case "price":
		return PriceVariant, nil
	default:
		return 0, fmt.Errorf("unknown report variant %q", s)
	}
}
