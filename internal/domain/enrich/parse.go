package enrich

import (
	"fmt"
	"strings"

	"github.com/okian/fplpulse/internal/domain/model"
	"github.com/shopspring/decimal"
)

var maxOwnership = decimal.NewFromInt(100)

// ParseOwnership parses a selected_by_percent value. The result is always
// within 0..100; anything else is malformed data.
func ParseOwnership(playerID int, raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("player %d selected_by_percent %q: %w: %w",
			playerID, raw, ErrOwnershipFormat, model.ErrMalformedData)
	}
	if v.IsNegative() || v.GreaterThan(maxOwnership) {
		return decimal.Zero, fmt.Errorf("player %d selected_by_percent %s: %w: %w",
			playerID, v, ErrOwnershipRange, model.ErrMalformedData)
	}
	return v, nil
}

// ParseForm checks that form is present and returns it verbatim.
func ParseForm(playerID int, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("player %d form: %w: %w", playerID, ErrMissingForm, model.ErrMalformedData)
	}
	return raw, nil
}

// tenths converts an integer amount of tenths into an exact decimal.
func tenths(v int) decimal.Decimal {
	return decimal.New(int64(v), -1)
}
