package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/okian/fplpulse/internal/domain/model"
	"github.com/okian/fplpulse/internal/domain/types"
)

// priceHeader is the tab separated header of the price text report.
const priceHeader = "Name\tTeam\tPos\tOwnership\tPrice\t∆\tForm"

// Text renders the plain text report.
func Text(r types.Report) ([]byte, error) {
	title, err := Title(r)
	if err != nil {
		return nil, err
	}
	_, cells, err := columns(r.Variant)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.WriteString(title)
	b.WriteString("\n")
	for _, set := range r.Sets {
		b.WriteString("\n")
		switch r.Variant {
		case model.OwnershipVariant:
			fmt.Fprintf(&b, "%s:\n", SetHeading(set))
			for _, p := range set.Players {
				c := cells(p)
				// name (team) - price - ownership - delta
				fmt.Fprintf(&b, "%s (%s) - %s - %s - %s\n", c[0], c[1], c[2], c[3], c[4])
			}
		case model.PriceVariant:
			fmt.Fprintf(&b, "%s\n%s\n", SetHeading(set), priceHeader)
			for _, p := range set.Players {
				b.WriteString(strings.Join(cells(p), "\t"))
				b.WriteString("\n")
			}
		}
	}
	return b.Bytes(), nil
}
