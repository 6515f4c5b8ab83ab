package render

import (
	"fmt"
	"time"

	"github.com/okian/fplpulse/internal/domain/model"
	"github.com/okian/fplpulse/internal/domain/types"
	"github.com/shopspring/decimal"
)

// Format is an output representation of a report.
type Format string

// Supported formats.
const (
	TXT  Format = "txt"
	MD   Format = "md"
	HTML Format = "html"
)

// Ext returns the file extension, with the leading dot.
func (f Format) Ext() string { return "." + string(f) }

// Rendered is one immutable rendered representation of a report.
type Rendered struct {
	Format      Format
	Body        []byte
	GeneratedAt time.Time
}

const (
	glyphUp   = "△"
	glyphDown = "▽"
	million   = 1_000_000
)

var (
	thousandD = decimal.NewFromInt(1_000)
	millionD  = decimal.NewFromInt(million)
)

// Money formats tenths-precision amounts as "£5.5".
func Money(d decimal.Decimal) string { return "£" + d.StringFixed(1) }

// Percent formats ownership as "10.0%".
func Percent(d decimal.Decimal) string { return d.StringFixed(1) + "%" }

// TransferDelta formats a signed transfer balance as a glyph and magnitude,
// e.g. "△ 400.0K" or "▽ 1.2m". Zero counts as a fall.
func TransferDelta(v int) string {
	glyph := glyphDown
	if v > 0 {
		glyph = glyphUp
	}
	abs := int64(v)
	if abs < 0 {
		abs = -abs
	}
	if abs >= million {
		return glyph + " " + decimal.NewFromInt(abs).Div(millionD).StringFixed(1) + "m"
	}
	return glyph + " " + decimal.NewFromInt(abs).Div(thousandD).StringFixed(1) + "K"
}

// PriceDelta formats a price change as "+£0.1" or "-£0.1".
func PriceDelta(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+£" + d.StringFixed(1)
	}
	return "-£" + d.Abs().StringFixed(1)
}

// Title is the document title shared by all formats.
func Title(r types.Report) (string, error) {
	switch r.Variant {
	case model.OwnershipVariant:
		return "FPL Daily Report - " + r.Date(), nil
	case model.PriceVariant:
		return "FPL Price Change Report | " + r.Date(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownVariant, r.Variant)
	}
}

// SetHeading is the label of one ranked set block.
func SetHeading(s types.RankedSet) string {
	switch s.Kind {
	case types.Gainers:
		return fmt.Sprintf("Top %d Ownership Gains", s.Cap)
	case types.Losers:
		return fmt.Sprintf("Top %d Ownership Losses", s.Cap)
	case types.Risers:
		return fmt.Sprintf("Risers (%d)", s.Len())
	case types.Fallers:
		return fmt.Sprintf("Fallers (%d)", s.Len())
	default:
		return string(s.Kind)
	}
}

// columns returns the header and cell values of one row. Text and Markdown
// share these so the formats agree on fields and order.
func columns(v model.Variant) ([]string, func(*model.EnrichedPlayer) []string, error) {
	switch v {
	case model.OwnershipVariant:
		return []string{"Player", "Team", "Price", "Ownership", "Δ Change"},
			func(p *model.EnrichedPlayer) []string {
				return []string{p.DisplayName, p.TeamLabel, Money(p.Price), Percent(p.Ownership), TransferDelta(p.OwnershipDelta)}
			}, nil
	case model.PriceVariant:
		return []string{"Player", "Team", "Pos", "Ownership", "Price", "Δ Price", "Form"},
			func(p *model.EnrichedPlayer) []string {
				return []string{p.DisplayName, p.TeamLabel, string(p.Position), Percent(p.Ownership), Money(p.Price), PriceDelta(p.PriceDelta), p.Form}
			}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownVariant, v)
	}
}
